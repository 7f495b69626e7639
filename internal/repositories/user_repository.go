package repositories

import (
	"context"

	"storerate/internal/models"
)

// UserRepository defines the interface for user data access.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uint) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]models.User, error)
	UpdateRole(ctx context.Context, id uint, role models.Role) (*models.User, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
	Count(ctx context.Context) (int64, error)
}
