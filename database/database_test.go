package database

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"invoice-extract/config"
	"invoice-extract/models"
)

func TestConnect_SQLite(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    "file:" + uuid.NewString() + "?mode=memory&cache=shared",
	}

	db, err := Connect(cfg, "silent", zaptest.NewLogger(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = Close(db) })

	assert.NoError(t, Ping(db))
	assert.True(t, db.Migrator().HasTable(&models.Registration{}))
	assert.True(t, db.Migrator().HasTable(&models.Transaction{}))
	assert.True(t, db.Migrator().HasTable("fiscal_notes"))
}

func TestConnect_UnsupportedDriver(t *testing.T) {
	_, err := Connect(config.DatabaseConfig{Driver: "oracle"}, "silent", zaptest.NewLogger(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}
