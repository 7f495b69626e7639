package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"storerate/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GORMRatingRepository is a GORM implementation of RatingRepository.
type GORMRatingRepository struct {
	db *gorm.DB
}

// NewGORMRatingRepository creates a new instance of GORMRatingRepository.
func NewGORMRatingRepository(db *gorm.DB) *GORMRatingRepository {
	return &GORMRatingRepository{
		db: db,
	}
}

// Find retrieves the rating for the (userID, storeID) pair.
func (r *GORMRatingRepository) Find(ctx context.Context, userID, storeID uint) (*models.Rating, error) {
	var rating models.Rating
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND store_id = ?", userID, storeID).
		First(&rating).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("rating of user %d for store %d: %w", userID, storeID, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get rating of user %d for store %d: %w", userID, storeID, err)
	}
	return &rating, nil
}

// Upsert relies on the unique index idx_ratings_user_store: concurrent calls
// for the same pair collapse into one row, the last writer's value winning.
func (r *GORMRatingRepository) Upsert(ctx context.Context, rating *models.Rating) error {
	now := time.Now()
	row := models.Rating{
		Value:     rating.Value,
		UserID:    rating.UserID,
		StoreID:   rating.StoreID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	err := r.db.WithContext(ctx).
		Omit("User", "Store").
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "user_id"}, {Name: "store_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"rating", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		if errors.Is(err, gorm.ErrForeignKeyViolated) {
			return fmt.Errorf("rating of user %d for store %d: %w", rating.UserID, rating.StoreID, ErrReferenceMissing)
		}
		return fmt.Errorf("failed to upsert rating: %w", err)
	}

	stored, err := r.Find(ctx, rating.UserID, rating.StoreID)
	if err != nil {
		return err
	}
	*rating = *stored
	return nil
}

// AverageForStore returns the mean rating of storeID, or nil when it has none.
func (r *GORMRatingRepository) AverageForStore(ctx context.Context, storeID uint) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(rating)").
		Where("store_id = ?", storeID).
		Row().Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings of store %d: %w", storeID, err)
	}
	return nullableAverage(avg), nil
}

// AverageForOwner returns the mean over every rating of every store owned by
// ownerID, or nil when there are none.
func (r *GORMRatingRepository) AverageForOwner(ctx context.Context, ownerID uint) (*float64, error) {
	var avg sql.NullFloat64
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("AVG(ratings.rating)").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Where("stores.owner_id = ?", ownerID).
		Row().Scan(&avg)
	if err != nil {
		return nil, fmt.Errorf("failed to average ratings of owner %d: %w", ownerID, err)
	}
	return nullableAverage(avg), nil
}

// ListForOwner returns every rating on stores owned by ownerID together with
// the rating author.
func (r *GORMRatingRepository) ListForOwner(ctx context.Context, ownerID uint) ([]models.OwnerRatingEntry, error) {
	var entries []models.OwnerRatingEntry
	err := r.db.WithContext(ctx).
		Model(&models.Rating{}).
		Select("users.id AS user_id, users.name AS user_name, users.email AS user_email, "+
			"stores.id AS store_id, stores.name AS store_name, ratings.rating AS rating").
		Joins("JOIN stores ON stores.id = ratings.store_id").
		Joins("JOIN users ON users.id = ratings.user_id").
		Where("stores.owner_id = ?", ownerID).
		Order("stores.id, ratings.id").
		Scan(&entries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list ratings of owner %d: %w", ownerID, err)
	}
	return entries, nil
}

// Count returns the number of ratings.
func (r *GORMRatingRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.WithContext(ctx).Model(&models.Rating{}).Count(&n).Error; err != nil {
		return 0, fmt.Errorf("failed to count ratings: %w", err)
	}
	return n, nil
}

func nullableAverage(avg sql.NullFloat64) *float64 {
	if !avg.Valid {
		return nil
	}
	v := avg.Float64
	return &v
}
