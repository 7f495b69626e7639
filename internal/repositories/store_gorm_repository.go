package repositories

import (
	"context"
	"errors"
	"fmt"

	"storerate/internal/models"

	"gorm.io/gorm"
)

// GORMStoreRepository is a GORM implementation of StoreRepository.
type GORMStoreRepository struct {
	db *gorm.DB
}

// NewGORMStoreRepository creates a new instance of GORMStoreRepository.
func NewGORMStoreRepository(db *gorm.DB) *GORMStoreRepository {
	return &GORMStoreRepository{
		db: db,
	}
}

// Create inserts a new store. An owner reference to a missing user fails
// with ErrReferenceMissing.
func (r *GORMStoreRepository) Create(ctx context.Context, store *models.Store) error {
	if err := r.db.WithContext(ctx).Omit("Owner").Create(store).Error; err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("store owner: %w", ErrReferenceMissing)
		}
		return fmt.Errorf("failed to create store: %w", err)
	}
	return nil
}

// GetByID retrieves a single store by its ID from the database.
func (r *GORMStoreRepository) GetByID(ctx context.Context, id uint) (*models.Store, error) {
	var store models.Store
	if err := r.db.WithContext(ctx).First(&store, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("store with ID %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get store by ID %d: %w", id, err)
	}
	return &store, nil
}

// ListWithAverages returns every store with the mean of its ratings. Stores
// without ratings carry a nil average.
func (r *GORMStoreRepository) ListWithAverages(ctx context.Context) ([]models.StoreSummary, error) {
	var stores []models.StoreSummary
	err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Select("stores.id, stores.name, stores.email, stores.address, AVG(ratings.rating) AS average_rating").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id, stores.name, stores.email, stores.address").
		Order("stores.id").
		Scan(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stores: %w", err)
	}
	return stores, nil
}

// ListWithOwners returns every store with its owner (if any) and average rating.
func (r *GORMStoreRepository) ListWithOwners(ctx context.Context) ([]models.AdminStoreSummary, error) {
	var stores []models.AdminStoreSummary
	err := r.db.WithContext(ctx).
		Model(&models.Store{}).
		Select("stores.id, stores.name, stores.email, stores.address, stores.owner_id, " +
			"owners.name AS owner_name, AVG(ratings.rating) AS average_rating").
		Joins("LEFT JOIN users AS owners ON owners.id = stores.owner_id").
		Joins("LEFT JOIN ratings ON ratings.store_id = stores.id").
		Group("stores.id, stores.name, stores.email, stores.address, stores.owner_id, owners.name").
		Order("stores.id").
		Scan(&stores).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stores with owners: %w", err)
	}
	for i := range stores {
		stores[i].Rating = stores[i].AverageRating
	}
	return stores, nil
}

// ListByOwner returns the stores owned by ownerID.
func (r *GORMStoreRepository) ListByOwner(ctx context.Context, ownerID uint) ([]models.Store, error) {
	var stores []models.Store
	if err := r.db.WithContext(ctx).Where("owner_id = ?", ownerID).Order("id").Find(&stores).Error; err != nil {
		return nil, fmt.Errorf("failed to list stores of owner %d: %w", ownerID, err)
	}
	return stores, nil
}

// Count returns the number of stores.
func (r *GORMStoreRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Store{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count stores: %w", err)
	}
	return n, nil
}
