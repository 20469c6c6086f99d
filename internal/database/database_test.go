package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/teamly-api/internal/config"
	"github.com/yukikurage/teamly-api/internal/store"
	"gorm.io/gorm/logger"
)

func TestConnectAndMigrate_SQLite(t *testing.T) {
	cfg := &config.Config{
		Server:   config.ServerConfig{LogLevel: "silent"},
		Database: config.DatabaseConfig{Driver: "sqlite", Path: filepath.Join(t.TempDir(), "teamly.db")},
	}

	db, err := Connect(cfg)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, Migrate(db))
	assert.True(t, db.Migrator().HasTable(&store.CollectionSnapshot{}))
}

func TestConnect_UnknownDriver(t *testing.T) {
	_, err := Connect(&config.Config{Database: config.DatabaseConfig{Driver: "oracle"}})
	require.Error(t, err)
}

func TestLogLevel(t *testing.T) {
	assert.Equal(t, logger.Info, LogLevel("debug"))
	assert.Equal(t, logger.Silent, LogLevel("silent"))
	assert.Equal(t, logger.Warn, LogLevel("info"))
}
