package services

import (
	"context"

	"storerate/internal/models"
	"storerate/internal/repositories"
)

// OwnerDashboard lists the ratings on an owner's stores and their combined average.
type OwnerDashboard struct {
	Stores        []models.Store            `json:"stores"`
	Ratings       []models.OwnerRatingEntry `json:"ratings"`
	AverageRating *float64                  `json:"averageRating"`
}

// OwnerService serves the store-owner dashboard.
type OwnerService struct {
	storeRepo  repositories.StoreRepository
	ratingRepo repositories.RatingRepository
}

// NewOwnerService creates a new OwnerService.
func NewOwnerService(storeRepo repositories.StoreRepository, ratingRepo repositories.RatingRepository) *OwnerService {
	return &OwnerService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
	}
}

// Dashboard returns every rating on stores owned by ownerID. Stores owned by
// anyone else never appear.
func (s *OwnerService) Dashboard(ctx context.Context, ownerID uint) (*OwnerDashboard, error) {
	stores, err := s.storeRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, storageError("owner dashboard", err)
	}
	dashboard := &OwnerDashboard{
		Stores:  stores,
		Ratings: []models.OwnerRatingEntry{},
	}
	if dashboard.Stores == nil {
		dashboard.Stores = []models.Store{}
	}
	if len(stores) == 0 {
		return dashboard, nil
	}

	ratings, err := s.ratingRepo.ListForOwner(ctx, ownerID)
	if err != nil {
		return nil, storageError("owner dashboard", err)
	}
	if ratings != nil {
		dashboard.Ratings = ratings
	}
	if dashboard.AverageRating, err = s.ratingRepo.AverageForOwner(ctx, ownerID); err != nil {
		return nil, storageError("owner dashboard", err)
	}
	return dashboard, nil
}
