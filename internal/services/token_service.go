package services

import (
	"errors"
	"fmt"
	"time"

	"storerate/internal/models"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"
)

// DefaultTokenTTL is how long an issued session token stays valid.
const DefaultTokenTTL = 24 * time.Hour

var (
	// ErrInvalidToken is returned for malformed tokens, bad signatures and
	// unexpected signing methods.
	ErrInvalidToken = errors.New("invalid token")
	// ErrExpiredToken is returned for a correctly signed token past its expiry.
	ErrExpiredToken = errors.New("token expired")
)

// Claims is the payload of a session token.
type Claims struct {
	UserID uint        `json:"user_id"`
	Role   models.Role `json:"role"`
	jwt.StandardClaims
}

// TokenService issues and verifies HS256 session tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewTokenService creates a TokenService signing with secret. A non-positive
// ttl falls back to DefaultTokenTTL.
func NewTokenService(secret string, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// WithClock returns a copy of s that reads the current time from now.
func (s *TokenService) WithClock(now func() time.Time) *TokenService {
	cp := *s
	cp.now = now
	return &cp
}

// Issue signs a token for userID with the given role.
func (s *TokenService) Issue(userID uint, role models.Role) (string, error) {
	issuedAt := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		UserID: userID,
		Role:   role,
		StandardClaims: jwt.StandardClaims{
			Id:        uuid.NewString(),
			Subject:   fmt.Sprint(userID),
			IssuedAt:  issuedAt.Unix(),
			ExpiresAt: issuedAt.Add(s.ttl).Unix(),
		},
	})

	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// Verify checks the signature first and the expiry second, so a forged token
// is always reported as invalid rather than expired.
func (s *TokenService) Verify(tokenString string) (*Claims, error) {
	parser := &jwt.Parser{
		ValidMethods:         []string{jwt.SigningMethodHS256.Alg()},
		SkipClaimsValidation: true,
	}
	claims := &Claims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	if claims.UserID == 0 || !claims.Role.Valid() || claims.ExpiresAt == 0 {
		return nil, ErrInvalidToken
	}
	if !claims.VerifyExpiresAt(s.now().Unix(), true) {
		return nil, ErrExpiredToken
	}
	return claims, nil
}
