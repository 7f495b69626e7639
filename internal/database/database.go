// Package database opens the relational store and keeps its schema current.
package database

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"storerate/internal/config"
	"storerate/internal/models"

	"github.com/google/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Open connects to the database named by cfg and migrates the schema.
func Open(cfg *config.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dialector = postgres.Open(cfg.DatabaseDSN)
	case "sqlite":
		dialector = sqlite.Open(withSQLiteForeignKeys(cfg.DatabaseDSN))
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.DBDriver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		TranslateError: true, // surfaces gorm.ErrDuplicatedKey / gorm.ErrForeignKeyViolated
		Logger:         newLogger(os.Stdout),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	if cfg.DBDriver == "sqlite" {
		// sqlite serializes writers; a single connection avoids "database is locked".
		sqlDB, err := db.DB()
		if err != nil {
			return nil, fmt.Errorf("failed to access sql.DB: %w", err)
		}
		sqlDB.SetMaxOpenConns(1)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}
	log.Printf("Database ready (driver=%s)", cfg.DBDriver)
	return db, nil
}

// newLogger reports slow queries and failures. gorm.ErrRecordNotFound is
// not logged.
func newLogger(w io.Writer) logger.Interface {
	return logger.New(log.New(w, "\r\n", log.LstdFlags), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  logger.Warn,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// OpenInMemory opens a private, migrated in-memory sqlite database. Each call
// gets its own database, which makes it suitable for tests and local demos.
func OpenInMemory() (*gorm.DB, error) {
	return Open(&config.Config{
		DBDriver:    "sqlite",
		DatabaseDSN: "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	})
}

// Migrate creates or updates the users, stores and ratings tables together
// with the unique index on ratings(user_id, store_id).
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&models.User{}, &models.Store{}, &models.Rating{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}
	return nil
}

// Ping checks that the database answers.
func Ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func withSQLiteForeignKeys(dsn string) string {
	if strings.Contains(dsn, "_foreign_keys") || strings.Contains(dsn, "_fk=") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_foreign_keys=on"
}
