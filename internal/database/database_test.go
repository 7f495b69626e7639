package database

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"storerate/internal/config"
	"storerate/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestWithSQLiteForeignKeys(t *testing.T) {
	assert.Equal(t, "app.db?_foreign_keys=on", withSQLiteForeignKeys("app.db"))
	assert.Equal(t, "file:x?mode=memory&_foreign_keys=on", withSQLiteForeignKeys("file:x?mode=memory"))
	assert.Equal(t, "file:x?_fk=1", withSQLiteForeignKeys("file:x?_fk=1"))
}

func TestOpenMigratesSchema(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	for _, table := range []any{&models.User{}, &models.Store{}, &models.Rating{}} {
		assert.True(t, db.Migrator().HasTable(table))
	}
	assert.True(t, db.Migrator().HasIndex(&models.Rating{}, "idx_ratings_user_store"))
	assert.NoError(t, Ping(context.Background(), db))
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := Open(&config.Config{DBDriver: "oracle", DatabaseDSN: "x"})
	assert.Error(t, err)
}

func TestOpenInMemoryIsolated(t *testing.T) {
	a, err := OpenInMemory()
	require.NoError(t, err)
	b, err := OpenInMemory()
	require.NoError(t, err)

	require.NoError(t, a.Create(&models.User{Name: "Isolation Check Person", Email: "iso@example.com", Password: "x", Role: models.RoleUser}).Error)

	var count int64
	require.NoError(t, b.Model(&models.User{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoggerSkipsRecordNotFound(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf)
	sql := func() (string, int64) { return "SELECT * FROM users WHERE id = 42", 0 }

	l.Trace(context.Background(), time.Now(), sql, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())

	l.Trace(context.Background(), time.Now(), sql, errors.New("disk I/O error"))
	assert.Contains(t, buf.String(), "disk I/O error")
}

func TestLookupMissDoesNotLog(t *testing.T) {
	db, err := OpenInMemory()
	require.NoError(t, err)

	var buf bytes.Buffer
	quiet := db.Session(&gorm.Session{Logger: newLogger(&buf)})
	var user models.User
	err = quiet.First(&user, 9999).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Empty(t, buf.String())
}
