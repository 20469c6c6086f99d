package store_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/teamly-api/internal/models"
	"github.com/yukikurage/teamly-api/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupSQLiteBackend(t *testing.T) (*gorm.DB, *store.SQLBackend) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "store.db")), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&store.CollectionSnapshot{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	return db, store.NewSQLBackend(db)
}

func TestSQLBackend_RoundTrip(t *testing.T) {
	ctx := context.Background()
	_, backend := setupSQLiteBackend(t)

	s := store.New(backend, store.Options{})
	require.NoError(t, s.Init(ctx))
	// Seeding twice must not reset existing data.
	require.NoError(t, s.Users.Append(ctx, models.User{ID: "u1", Email: "a@example.com"}))
	require.NoError(t, s.Init(ctx))

	require.NoError(t, s.Users.Append(ctx, models.User{ID: "u2", Email: "b@example.com"}))

	users, err := s.Users.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 2)
	assert.Equal(t, "a@example.com", users[0].Email)
	assert.Equal(t, "b@example.com", users[1].Email)
}

func TestSQLBackend_MissingRowIsUnavailable(t *testing.T) {
	_, backend := setupSQLiteBackend(t)

	_, err := backend.Load(context.Background(), store.CollectionProjects)
	require.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func TestSQLBackend_ClosedDatabaseIsUnavailable(t *testing.T) {
	ctx := context.Background()
	db, backend := setupSQLiteBackend(t)
	require.NoError(t, backend.Ensure(ctx, store.Collections))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	err = backend.Replace(ctx, store.CollectionTasks, []byte(`[]`))
	require.ErrorIs(t, err, store.ErrStorageUnavailable)
}

func setupMockBackend(t *testing.T) (sqlmock.Sqlmock, *store.SQLBackend) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return mock, store.NewSQLBackend(db)
}

func TestSQLBackend_LoadQueryFailure(t *testing.T) {
	mock, backend := setupMockBackend(t)

	mock.ExpectQuery(`SELECT \* FROM "collection_snapshots"`).
		WillReturnError(errors.New("connection refused"))

	_, err := backend.Load(context.Background(), store.CollectionUsers)
	require.ErrorIs(t, err, store.ErrStorageUnavailable)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLBackend_LoadReturnsPayload(t *testing.T) {
	mock, backend := setupMockBackend(t)

	rows := sqlmock.NewRows([]string{"name", "payload", "updated_at"}).
		AddRow("users", `[{"id":"u1"}]`, time.Now())
	mock.ExpectQuery(`SELECT \* FROM "collection_snapshots"`).
		WillReturnRows(rows)

	data, err := backend.Load(context.Background(), store.CollectionUsers)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"id":"u1"}]`, string(data))
	require.NoError(t, mock.ExpectationsWereMet())
}
