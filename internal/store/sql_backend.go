package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionSnapshot is the row holding one serialized collection.
type CollectionSnapshot struct {
	Name      string `gorm:"primaryKey;type:varchar(64)"`
	Payload   string `gorm:"not null"`
	UpdatedAt time.Time
}

// SQLBackend keeps each collection as a single row, so a replace is one
// statement.
type SQLBackend struct {
	db *gorm.DB
}

// NewSQLBackend returns a backend over db. The collection_snapshots table must
// already exist; see database.Migrate.
func NewSQLBackend(db *gorm.DB) *SQLBackend {
	return &SQLBackend{db: db}
}

// Load reads the snapshot row for a collection.
func (b *SQLBackend) Load(ctx context.Context, collection string) ([]byte, error) {
	var snap CollectionSnapshot
	err := b.db.WithContext(ctx).Where("name = ?", collection).First(&snap).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: collection %s is missing", ErrStorageUnavailable, collection)
		}
		return nil, fmt.Errorf("%w: load %s: %v", ErrStorageUnavailable, collection, err)
	}
	return []byte(snap.Payload), nil
}

// Replace upserts the snapshot row.
func (b *SQLBackend) Replace(ctx context.Context, collection string, data []byte) error {
	snap := CollectionSnapshot{
		Name:    collection,
		Payload: string(data),
	}
	err := b.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&snap).Error
	if err != nil {
		return fmt.Errorf("%w: replace %s: %v", ErrStorageUnavailable, collection, err)
	}
	return nil
}

// Ensure inserts an empty snapshot for each collection without a row.
func (b *SQLBackend) Ensure(ctx context.Context, collections []string) error {
	for _, name := range collections {
		snap := CollectionSnapshot{Name: name, Payload: "[]"}
		err := b.db.WithContext(ctx).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&snap).Error
		if err != nil {
			return fmt.Errorf("%w: seed %s: %v", ErrStorageUnavailable, name, err)
		}
	}
	return nil
}
