// Package app assembles the fiber application from configuration and a
// database handle.
package app

import (
	"time"

	"storerate/internal/config"
	"storerate/internal/database"
	"storerate/internal/handlers"
	"storerate/internal/middleware"
	"storerate/internal/repositories"
	"storerate/internal/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"gorm.io/gorm"
)

// Services groups the services backing the HTTP layer.
type Services struct {
	Auth   *services.AuthService
	Stores *services.StoreService
	Admin  *services.AdminService
	Owner  *services.OwnerService
}

// NewServices builds repositories and services on db. events may be nil.
func NewServices(cfg *config.Config, db *gorm.DB, events services.EventPublisher) *Services {
	// --- Initialize Repositories ---
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)

	// --- Initialize Services ---
	tokens := services.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	auth := services.NewAuthService(userRepo, services.NewBcryptHasher(cfg.BcryptCost), tokens, events)
	return &Services{
		Auth:   auth,
		Stores: services.NewStoreService(storeRepo, ratingRepo, events),
		Admin:  services.NewAdminService(auth, userRepo, storeRepo, ratingRepo, events),
		Owner:  services.NewOwnerService(storeRepo, ratingRepo),
	}
}

// New returns the fiber app serving the API on db.
func New(cfg *config.Config, db *gorm.DB, events services.EventPublisher) *fiber.App {
	svc := NewServices(cfg, db, events)

	app := fiber.New(fiber.Config{
		AppName:      "storerate",
		ErrorHandler: middleware.ErrorHandler,
	})

	// --- Middleware ---
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New(logger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(cors.New(cors.Config{
		AllowOrigins: cfg.CORSOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PATCH,OPTIONS",
	}))

	authRequired := middleware.AuthRequired(svc.Auth)
	authLimiter := middleware.AuthLimiter(cfg.AuthRateLimitMax, cfg.AuthRateLimitWindow)

	// --- API Routes ---
	api := app.Group("/api")
	handlers.NewAuthHandler(svc.Auth).RegisterRoutes(api, authLimiter, authRequired)
	handlers.NewStoreHandler(svc.Stores).RegisterRoutes(api, authRequired)
	handlers.NewAdminHandler(svc.Admin).RegisterRoutes(api, authRequired)
	handlers.NewOwnerHandler(svc.Owner).RegisterRoutes(api, authRequired)

	// --- Health Check Endpoint ---
	app.Get("/health", func(c *fiber.Ctx) error {
		status, code, dbState := "healthy", fiber.StatusOK, "up"
		if err := database.Ping(c.UserContext(), db); err != nil {
			status, code, dbState = "unhealthy", fiber.StatusServiceUnavailable, "down"
		}
		return c.Status(code).JSON(fiber.Map{
			"status":   status,
			"time":     time.Now().Format(time.RFC3339),
			"database": dbState,
			"events":   events != nil,
		})
	})

	return app
}
