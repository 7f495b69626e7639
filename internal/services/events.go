package services

import (
	"context"
	"log"
	"time"
)

// Routing keys of the domain events published after successful mutations.
const (
	EventUserCreated     = "user.created"
	EventUserRoleChanged = "user.role_changed"
	EventStoreCreated    = "store.created"
	EventRatingSubmitted = "rating.submitted"
)

// EventPublisher delivers domain events to interested consumers. A nil
// publisher disables events.
type EventPublisher interface {
	Publish(ctx context.Context, routingKey string, payload any) error
}

// RatingSubmittedEvent is published whenever a rating is created or overwritten.
type RatingSubmittedEvent struct {
	RatingID  uint      `json:"ratingId"`
	UserID    uint      `json:"userId"`
	StoreID   uint      `json:"storeId"`
	Rating    int       `json:"rating"`
	Created   bool      `json:"created"`
	Timestamp time.Time `json:"timestamp"`
}

// UserEvent is published when a user is created or changes role.
type UserEvent struct {
	UserID    uint      `json:"userId"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Timestamp time.Time `json:"timestamp"`
}

// StoreCreatedEvent is published when an admin creates a store.
type StoreCreatedEvent struct {
	StoreID   uint      `json:"storeId"`
	Name      string    `json:"name"`
	OwnerID   *uint     `json:"ownerId"`
	Timestamp time.Time `json:"timestamp"`
}

// publish never fails the calling operation: the mutation is already
// committed, so a broker outage is only logged.
func publish(ctx context.Context, p EventPublisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
