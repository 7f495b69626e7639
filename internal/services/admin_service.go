package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"storerate/internal/apperr"
	"storerate/internal/models"
	"storerate/internal/repositories"
	"storerate/internal/validation"
)

// CreateUserInput is the body of an admin user-creation request. An empty
// role creates a plain user.
type CreateUserInput struct {
	Name     string `json:"name" validate:"person_name"`
	Email    string `json:"email" validate:"email_shape"`
	Address  string `json:"address" validate:"address"`
	Password string `json:"password" validate:"password"`
	Role     string `json:"role" validate:"omitempty,role"`
}

// CreateStoreInput is the body of an admin store-creation request.
type CreateStoreInput struct {
	Name    string   `json:"name" validate:"store_name"`
	Email   string   `json:"email" validate:"email_shape"`
	Address string   `json:"address" validate:"store_address"`
	OwnerID OwnerRef `json:"ownerId"`
}

// UpdateRoleInput is the body of a role change request.
type UpdateRoleInput struct {
	Role string `json:"role" validate:"role"`
}

// UserDetail is a user as shown to admins. AverageRating is only set for
// owners and covers every store they own.
type UserDetail struct {
	ID            uint        `json:"id"`
	Name          string      `json:"name"`
	Email         string      `json:"email"`
	Address       string      `json:"address"`
	Role          models.Role `json:"role"`
	AverageRating *float64    `json:"averageRating,omitempty"`
}

// AdminService handles administrative management and platform statistics.
type AdminService struct {
	accounts   *AuthService
	userRepo   repositories.UserRepository
	storeRepo  repositories.StoreRepository
	ratingRepo repositories.RatingRepository
	events     EventPublisher
}

// NewAdminService creates a new AdminService. events may be nil.
func NewAdminService(accounts *AuthService, userRepo repositories.UserRepository, storeRepo repositories.StoreRepository, ratingRepo repositories.RatingRepository, events EventPublisher) *AdminService {
	return &AdminService{
		accounts:   accounts,
		userRepo:   userRepo,
		storeRepo:  storeRepo,
		ratingRepo: ratingRepo,
		events:     events,
	}
}

// Stats counts users, stores and ratings at request time.
func (s *AdminService) Stats(ctx context.Context) (*models.DashboardStats, error) {
	users, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, storageError("stats", err)
	}
	stores, err := s.storeRepo.Count(ctx)
	if err != nil {
		return nil, storageError("stats", err)
	}
	ratings, err := s.ratingRepo.Count(ctx)
	if err != nil {
		return nil, storageError("stats", err)
	}
	return &models.DashboardStats{Users: users, Stores: stores, Ratings: ratings}, nil
}

// ListUsers returns every user without password hashes.
func (s *AdminService) ListUsers(ctx context.Context) ([]UserDetail, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, storageError("list users", err)
	}
	details := make([]UserDetail, 0, len(users))
	for i := range users {
		details = append(details, toUserDetail(&users[i]))
	}
	return details, nil
}

// GetUser returns one user; for owners the average over their stores is included.
func (s *AdminService) GetUser(ctx context.Context, id uint) (*UserDetail, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, storageError("get user", err)
	}
	detail := toUserDetail(user)
	if user.Role == models.RoleOwner {
		avg, err := s.ratingRepo.AverageForOwner(ctx, user.ID)
		if err != nil {
			return nil, storageError("get user", err)
		}
		detail.AverageRating = avg
	}
	return &detail, nil
}

// CreateUser creates a user with any role, applying the same rules as signup.
func (s *AdminService) CreateUser(ctx context.Context, in CreateUserInput) (*UserDetail, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	role := models.RoleUser
	if in.Role != "" {
		role = models.Role(in.Role)
	}
	user, err := s.accounts.CreateAccount(ctx, in.Name, in.Email, in.Address, in.Password, role)
	if err != nil {
		return nil, err
	}
	detail := toUserDetail(user)
	return &detail, nil
}

// SeedAdmin creates the admin account described by in unless a user with
// that email already exists. The bool reports whether it was created; an
// existing account is returned untouched.
func (s *AdminService) SeedAdmin(ctx context.Context, in CreateUserInput) (*UserDetail, bool, error) {
	in.Role = string(models.RoleAdmin)
	if err := validation.Struct(in); err != nil {
		return nil, false, err
	}
	existing, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err == nil {
		detail := toUserDetail(existing)
		return &detail, false, nil
	}
	if !isNotFound(err) {
		return nil, false, storageError("seed admin", err)
	}

	user, err := s.accounts.CreateAccount(ctx, in.Name, in.Email, in.Address, in.Password, models.RoleAdmin)
	if err != nil {
		return nil, false, err
	}
	detail := toUserDetail(user)
	return &detail, true, nil
}

// UpdateRole changes the role of user id.
func (s *AdminService) UpdateRole(ctx context.Context, id uint, in UpdateRoleInput) (*models.CurrentUser, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := s.userRepo.UpdateRole(ctx, id, models.Role(in.Role))
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.NotFound("User not found")
		}
		return nil, storageError("update role", err)
	}

	publish(ctx, s.events, EventUserRoleChanged, UserEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		Timestamp: time.Now(),
	})
	summary := user.Summary()
	return &summary, nil
}

// ListStores returns every store with its owner and average rating.
func (s *AdminService) ListStores(ctx context.Context) ([]models.AdminStoreSummary, error) {
	stores, err := s.storeRepo.ListWithOwners(ctx)
	if err != nil {
		return nil, storageError("list stores", err)
	}
	if stores == nil {
		stores = []models.AdminStoreSummary{}
	}
	return stores, nil
}

// CreateStore creates a store, optionally owned by an existing user.
func (s *AdminService) CreateStore(ctx context.Context, in CreateStoreInput) (*models.Store, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if !in.OwnerID.Valid() {
		return nil, apperr.Validation("ownerId", "Owner must be a user id")
	}
	if in.OwnerID.ID != nil {
		if _, err := s.userRepo.GetByID(ctx, *in.OwnerID.ID); err != nil {
			if isNotFound(err) {
				return nil, apperr.NotFound("Owner not found")
			}
			return nil, storageError("create store", err)
		}
	}

	store := &models.Store{
		Name:    strings.TrimSpace(in.Name),
		Email:   validation.NormalizeEmail(in.Email),
		Address: in.Address,
		OwnerID: in.OwnerID.ID,
	}
	if err := s.storeRepo.Create(ctx, store); err != nil {
		if errors.Is(err, repositories.ErrReferenceMissing) {
			return nil, apperr.NotFound("Owner not found")
		}
		return nil, storageError("create store", err)
	}

	publish(ctx, s.events, EventStoreCreated, StoreCreatedEvent{
		StoreID:   store.ID,
		Name:      store.Name,
		OwnerID:   store.OwnerID,
		Timestamp: time.Now(),
	})
	return store, nil
}

func toUserDetail(u *models.User) UserDetail {
	return UserDetail{
		ID:      u.ID,
		Name:    u.Name,
		Email:   u.Email,
		Address: u.Address,
		Role:    u.Role,
	}
}
