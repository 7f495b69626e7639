package middleware_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"net/http/httptest"
	"testing"
	"time"

	"storerate/internal/apperr"
	"storerate/internal/authz"
	"storerate/internal/middleware"
	"storerate/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockAuthenticator struct {
	mock.Mock
}

func (m *mockAuthenticator) Authenticate(ctx context.Context, token string) (*models.CurrentUser, error) {
	args := m.Called(token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CurrentUser), args.Error(1)
}

type errorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field"`
}

func newTestApp(auth middleware.Authenticator) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	protected := app.Group("", middleware.AuthRequired(auth))
	protected.Get("/me", func(c *fiber.Ctx) error {
		return c.JSON(middleware.CurrentUser(c))
	})
	protected.Get("/admin", middleware.Authorize(authz.AdminStats), func(c *fiber.Ctx) error {
		return c.SendString("admin ok")
	})
	protected.Get("/owner", middleware.Authorize(authz.OwnerRatings), func(c *fiber.Ctx) error {
		return c.SendString("owner ok")
	})
	return app
}

func do(t *testing.T, app *fiber.App, path, authorization string) (int, errorBody, []byte) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodGet, path, nil)
	if authorization != "" {
		req.Header.Set(fiber.HeaderAuthorization, authorization)
	}
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body errorBody
	_ = json.Unmarshal(raw, &body)
	return resp.StatusCode, body, raw
}

func TestAuthRequired(t *testing.T) {
	log.SetOutput(io.Discard)
	auth := new(mockAuthenticator)
	auth.On("Authenticate", "good").Return(&models.CurrentUser{ID: 3, Name: "Jane", Email: "jane@example.com", Role: models.RoleUser}, nil)
	auth.On("Authenticate", "bad").Return(nil, apperr.Unauthorized("Invalid or expired token"))
	auth.On("Authenticate", "orphan").Return(nil, apperr.Unauthorized("Unauthorized"))
	app := newTestApp(auth)

	for _, header := range []string{"", "Basic abc", "Bearer", "Bearer   ", "bearer good", "Token good"} {
		status, body, _ := do(t, app, "/me", header)
		assert.Equal(t, fiber.StatusUnauthorized, status, "header %q", header)
		assert.Equal(t, "UNAUTHORIZED", body.Code)
		assert.Equal(t, "No token provided", body.Message)
	}

	status, body, _ := do(t, app, "/me", "Bearer bad")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Invalid or expired token", body.Message)

	status, body, _ = do(t, app, "/me", "Bearer orphan")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "Unauthorized", body.Message)

	status, _, raw := do(t, app, "/me", "Bearer good")
	assert.Equal(t, fiber.StatusOK, status)
	var current models.CurrentUser
	require.NoError(t, json.Unmarshal(raw, &current))
	assert.EqualValues(t, 3, current.ID)
	assert.Equal(t, models.RoleUser, current.Role)
}

func TestAuthorize(t *testing.T) {
	auth := new(mockAuthenticator)
	auth.On("Authenticate", "admin").Return(&models.CurrentUser{ID: 1, Role: models.RoleAdmin}, nil)
	auth.On("Authenticate", "owner").Return(&models.CurrentUser{ID: 2, Role: models.RoleOwner}, nil)
	auth.On("Authenticate", "user").Return(&models.CurrentUser{ID: 3, Role: models.RoleUser}, nil)
	app := newTestApp(auth)

	tests := []struct {
		token string
		path  string
		want  int
	}{
		{"admin", "/admin", fiber.StatusOK},
		{"owner", "/admin", fiber.StatusForbidden},
		{"user", "/admin", fiber.StatusForbidden},
		{"owner", "/owner", fiber.StatusOK},
		{"admin", "/owner", fiber.StatusForbidden},
		{"user", "/owner", fiber.StatusForbidden},
	}
	for _, tt := range tests {
		status, body, _ := do(t, app, tt.path, "Bearer "+tt.token)
		assert.Equal(t, tt.want, status, "%s on %s", tt.token, tt.path)
		if tt.want == fiber.StatusForbidden {
			assert.Equal(t, "FORBIDDEN", body.Code)
			assert.Equal(t, "Insufficient permissions", body.Message)
		}
	}
}

func TestAuthorizeWithoutAuthentication(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/", middleware.Authorize(authz.RateStore), func(c *fiber.Ctx) error { return nil })

	status, body, _ := do(t, app, "/", "")
	assert.Equal(t, fiber.StatusUnauthorized, status)
	assert.Equal(t, "UNAUTHORIZED", body.Code)
}

func TestAuthLimiter(t *testing.T) {
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Post("/login", middleware.AuthLimiter(3, time.Minute), func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusNoContent)
	})

	for i := 0; i < 3; i++ {
		resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)
	}
	resp, err := app.Test(httptest.NewRequest(fiber.MethodPost, "/login", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusTooManyRequests, resp.StatusCode)

	var body errorBody
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, "RATE_LIMITED", body.Code)
}

func TestErrorHandler(t *testing.T) {
	log.SetOutput(io.Discard)
	app := fiber.New(fiber.Config{ErrorHandler: middleware.ErrorHandler})
	app.Get("/validation", func(c *fiber.Ctx) error {
		return apperr.Validation("email", "Invalid email")
	})
	app.Get("/storage", func(c *fiber.Ctx) error {
		return apperr.Storage(errors.New("pq: relation does not exist"))
	})
	app.Get("/plain", func(c *fiber.Ctx) error {
		return errors.New("boom")
	})

	status, body, _ := do(t, app, "/validation", "")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, errorBody{Code: "VALIDATION_ERROR", Message: "Invalid email", Field: "email"}, body)

	status, body, raw := do(t, app, "/storage", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "An unexpected error occurred", body.Message)
	assert.NotContains(t, string(raw), "relation")

	status, body, raw = do(t, app, "/plain", "")
	assert.Equal(t, fiber.StatusInternalServerError, status)
	assert.Equal(t, "INTERNAL_ERROR", body.Code)
	assert.NotContains(t, string(raw), "boom")

	status, body, _ = do(t, app, "/missing", "")
	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, "NOT_FOUND", body.Code)
}
