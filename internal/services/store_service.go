package services

import (
	"context"
	"errors"
	"time"

	"storerate/internal/apperr"
	"storerate/internal/models"
	"storerate/internal/repositories"
	"storerate/internal/validation"
)

// StoreService handles store browsing and rating submission.
type StoreService struct {
	storeRepo  repositories.StoreRepository
	ratingRepo repositories.RatingRepository
	events     EventPublisher
}

// NewStoreService creates a new StoreService. events may be nil.
func NewStoreService(storeRepo repositories.StoreRepository, ratingRepo repositories.RatingRepository, events EventPublisher) *StoreService {
	return &StoreService{
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		events:     events,
	}
}

// ListStores returns every store with its current average rating.
func (s *StoreService) ListStores(ctx context.Context) ([]models.StoreSummary, error) {
	stores, err := s.storeRepo.ListWithAverages(ctx)
	if err != nil {
		return nil, storageError("list stores", err)
	}
	if stores == nil {
		stores = []models.StoreSummary{}
	}
	return stores, nil
}

// StoreAverage returns the current average rating of storeID, or nil when
// the store has no ratings.
func (s *StoreService) StoreAverage(ctx context.Context, storeID uint) (*float64, error) {
	if err := s.requireStore(ctx, storeID); err != nil {
		return nil, err
	}
	avg, err := s.ratingRepo.AverageForStore(ctx, storeID)
	if err != nil {
		return nil, storageError("store average", err)
	}
	return avg, nil
}

// SubmitRating records userID's rating of storeID. The first submission
// creates the row; later ones overwrite its value in place. The returned
// bool reports whether the row was created.
func (s *StoreService) SubmitRating(ctx context.Context, userID, storeID uint, value int) (*models.Rating, bool, error) {
	if err := validation.Rating(value); err != nil {
		return nil, false, apperr.Validation("rating", err.Error())
	}
	if err := s.requireStore(ctx, storeID); err != nil {
		return nil, false, err
	}

	// Only decides between "added" and "updated" in the response. The upsert
	// below is atomic on its own.
	created := false
	if _, err := s.ratingRepo.Find(ctx, userID, storeID); err != nil {
		if !isNotFound(err) {
			return nil, false, storageError("submit rating", err)
		}
		created = true
	}

	rating := &models.Rating{UserID: userID, StoreID: storeID, Value: value}
	if err := s.ratingRepo.Upsert(ctx, rating); err != nil {
		if errors.Is(err, repositories.ErrReferenceMissing) {
			return nil, false, apperr.NotFound("Store not found")
		}
		return nil, false, storageError("submit rating", err)
	}

	publish(ctx, s.events, EventRatingSubmitted, RatingSubmittedEvent{
		RatingID:  rating.ID,
		UserID:    userID,
		StoreID:   storeID,
		Rating:    rating.Value,
		Created:   created,
		Timestamp: time.Now(),
	})
	return rating, created, nil
}

// UserRating returns the rating userID gave storeID.
func (s *StoreService) UserRating(ctx context.Context, userID, storeID uint) (*models.Rating, error) {
	if err := s.requireStore(ctx, storeID); err != nil {
		return nil, err
	}
	rating, err := s.ratingRepo.Find(ctx, userID, storeID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("Rating not found")
		}
		return nil, storageError("user rating", err)
	}
	return rating, nil
}

func (s *StoreService) requireStore(ctx context.Context, storeID uint) error {
	if _, err := s.storeRepo.GetByID(ctx, storeID); err != nil {
		if isNotFound(err) {
			return apperr.NotFound("Store not found")
		}
		return storageError("get store", err)
	}
	return nil
}
