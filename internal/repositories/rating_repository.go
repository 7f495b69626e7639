package repositories

import (
	"context"

	"storerate/internal/models"
)

// RatingRepository defines the interface for rating data access.
type RatingRepository interface {
	// Find returns the rating userID gave storeID.
	Find(ctx context.Context, userID, storeID uint) (*models.Rating, error)
	// Upsert atomically inserts the rating or overwrites the value of the
	// existing row for the same (user, store) pair. rating is refreshed with
	// the stored row.
	Upsert(ctx context.Context, rating *models.Rating) error
	AverageForStore(ctx context.Context, storeID uint) (*float64, error)
	AverageForOwner(ctx context.Context, ownerID uint) (*float64, error)
	ListForOwner(ctx context.Context, ownerID uint) ([]models.OwnerRatingEntry, error)
	Count(ctx context.Context) (int64, error)
}
