package models

import "time"

// Store represents a rateable store, optionally owned by a user.
type Store struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"type:varchar(255);not null"`
	Email     string    `json:"email" gorm:"type:varchar(255);not null"`
	Address   string    `json:"address" gorm:"type:varchar(400);not null"`
	OwnerID   *uint     `json:"ownerId" gorm:"index"`
	Owner     *User     `json:"-" gorm:"foreignKey:OwnerID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// StoreSummary is a store as listed to the public, with its derived average.
type StoreSummary struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	AverageRating *float64 `json:"averageRating"`
}

// AdminStoreSummary extends StoreSummary with the owner reference. Rating
// repeats AverageRating under the name the admin store table reads.
type AdminStoreSummary struct {
	ID            uint     `json:"id"`
	Name          string   `json:"name"`
	Email         string   `json:"email"`
	Address       string   `json:"address"`
	OwnerID       *uint    `json:"ownerId"`
	OwnerName     *string  `json:"ownerName"`
	AverageRating *float64 `json:"averageRating"`
	Rating        *float64 `json:"rating" gorm:"-"`
}
