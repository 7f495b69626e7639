package services

import (
	"context"
	"errors"
	"log"
	"strings"
	"time"

	"storerate/internal/apperr"
	"storerate/internal/models"
	"storerate/internal/repositories"
	"storerate/internal/validation"
)

// SignupInput is the body of a public signup request. Signup always creates
// a plain user; roles are granted by an admin.
type SignupInput struct {
	Name     string `json:"name" validate:"person_name"`
	Email    string `json:"email" validate:"email_shape"`
	Address  string `json:"address" validate:"address"`
	Password string `json:"password" validate:"password"`
}

// LoginInput is the body of a login request.
type LoginInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ChangePasswordInput is the body of a change-password request.
type ChangePasswordInput struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword" validate:"password"`
}

// LoginResult is returned on successful login.
type LoginResult struct {
	Token string             `json:"token"`
	User  models.CurrentUser `json:"user"`
}

const invalidCredentials = "Invalid credentials"

// AuthService handles business logic for authentication and authorization.
type AuthService struct {
	userRepo repositories.UserRepository
	hasher   PasswordHasher
	tokens   *TokenService
	events   EventPublisher
}

// NewAuthService creates a new AuthService. events may be nil.
func NewAuthService(userRepo repositories.UserRepository, hasher PasswordHasher, tokens *TokenService, events EventPublisher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
		events:   events,
	}
}

// Signup registers a new user with role user.
func (s *AuthService) Signup(ctx context.Context, in SignupInput) (*models.User, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	return s.CreateAccount(ctx, in.Name, in.Email, in.Address, in.Password, models.RoleUser)
}

// CreateAccount is shared by signup and admin user creation. Input must already
// be validated.
func (s *AuthService) CreateAccount(ctx context.Context, name, email, address, password string, role models.Role) (*models.User, error) {
	email = validation.NormalizeEmail(email)

	// Early check for a clean error; the unique index is the real guard.
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, apperr.Conflict("Email already registered")
	} else if !isNotFound(err) {
		return nil, storageError("create user", err)
	}

	hashed, err := s.hasher.Hash(password)
	if err != nil {
		return nil, storageError("create user", err)
	}

	user := &models.User{
		Name:     strings.TrimSpace(name),
		Email:    email,
		Address:  address,
		Password: hashed,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, apperr.Conflict("Email already registered")
		}
		return nil, storageError("create user", err)
	}

	publish(ctx, s.events, EventUserCreated, UserEvent{
		UserID:    user.ID,
		Email:     user.Email,
		Role:      string(user.Role),
		Timestamp: time.Now(),
	})
	return user, nil
}

// Login checks credentials and issues a session token. Every credential
// failure produces the same message so callers cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, in LoginInput) (*LoginResult, error) {
	if validation.Email(in.Email) != nil || in.Password == "" {
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	user, err := s.userRepo.GetByEmail(ctx, validation.NormalizeEmail(in.Email))
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Unauthorized(invalidCredentials)
		}
		return nil, storageError("login", err)
	}
	if !s.hasher.Verify(in.Password, user.Password) {
		return nil, apperr.Unauthorized(invalidCredentials)
	}

	token, err := s.tokens.Issue(user.ID, user.Role)
	if err != nil {
		return nil, storageError("login", err)
	}
	log.Printf("User %d logged in", user.ID)
	return &LoginResult{Token: token, User: user.Summary()}, nil
}

// ChangePassword replaces the password of userID after verifying the old one.
func (s *AuthService) ChangePassword(ctx context.Context, userID uint, in ChangePasswordInput) error {
	if in.OldPassword == "" {
		return apperr.Validation("oldPassword", validation.ErrOldPasswordMissing.Error())
	}
	if err := validation.Struct(in); err != nil {
		return err
	}

	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if isNotFound(err) {
			return apperr.NotFound("User not found")
		}
		return storageError("change password", err)
	}
	if !s.hasher.Verify(in.OldPassword, user.Password) {
		return apperr.Validation("oldPassword", "Old password is incorrect")
	}

	hashed, err := s.hasher.Hash(in.NewPassword)
	if err != nil {
		return storageError("change password", err)
	}
	if err := s.userRepo.UpdatePassword(ctx, userID, hashed); err != nil {
		if isNotFound(err) {
			return apperr.NotFound("User not found")
		}
		return storageError("change password", err)
	}
	return nil
}

// Authenticate resolves a bearer token to the identity it belongs to. The
// role is read from storage, so a role change takes effect immediately.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.CurrentUser, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Unauthorized("Invalid or expired token")
	}

	user, err := s.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if isNotFound(err) {
			return nil, apperr.Unauthorized("Unauthorized")
		}
		return nil, storageError("authenticate", err)
	}
	current := user.Summary()
	return &current, nil
}
