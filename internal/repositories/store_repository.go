package repositories

import (
	"context"

	"storerate/internal/models"
)

// StoreRepository defines the interface for store data access. Averages are
// computed by the query on every call and never stored.
type StoreRepository interface {
	Create(ctx context.Context, store *models.Store) error
	GetByID(ctx context.Context, id uint) (*models.Store, error)
	ListWithAverages(ctx context.Context) ([]models.StoreSummary, error)
	ListWithOwners(ctx context.Context) ([]models.AdminStoreSummary, error)
	ListByOwner(ctx context.Context, ownerID uint) ([]models.Store, error)
	Count(ctx context.Context) (int64, error)
}
