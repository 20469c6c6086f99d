// Package store persists the users, projects and tasks collections as whole
// snapshots. Every read loads the full collection from a Backend and every
// write replaces it.
package store

import (
	"context"
	"errors"
)

const (
	CollectionUsers    = "users"
	CollectionProjects = "projects"
	CollectionTasks    = "tasks"
)

// Collections lists every collection the store manages.
var Collections = []string{CollectionUsers, CollectionProjects, CollectionTasks}

var (
	// ErrStorageUnavailable is returned when a collection cannot be read or
	// written. Missing or corrupt data is reported the same way.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// Backend stores one serialized JSON array per collection.
type Backend interface {
	// Load returns the raw snapshot of a collection.
	Load(ctx context.Context, collection string) ([]byte, error)

	// Replace swaps the stored snapshot for data. Readers see either the old
	// or the new snapshot, never a mix.
	Replace(ctx context.Context, collection string, data []byte) error

	// Ensure seeds an empty snapshot for every collection that has none.
	Ensure(ctx context.Context, collections []string) error
}
