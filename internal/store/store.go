package store

import (
	"context"
	"fmt"

	"github.com/yukikurage/teamly-api/internal/models"
)

// Store operation names reported to an Observer.
const (
	OpList   = "list"
	OpAppend = "append"
	OpUpdate = "update"
)

// Observer receives the outcome of every store operation.
type Observer interface {
	ObserveStoreOperation(collection, op string, err error)
}

type nopObserver struct{}

func (nopObserver) ObserveStoreOperation(string, string, error) {}

// Options tunes collection behavior.
type Options struct {
	// SerializeWrites guards each collection's read-modify-write cycle with a
	// mutex. Without it concurrent writers can lose updates.
	SerializeWrites bool

	Observer Observer
}

// Store groups the three entity collections over a single backend.
type Store struct {
	Users    *Collection[models.User]
	Projects *Collection[models.Project]
	Tasks    *Collection[models.Task]

	backend Backend
}

// New builds a Store over backend.
func New(backend Backend, opts Options) *Store {
	return &Store{
		Users:    newCollection[models.User](CollectionUsers, backend, opts),
		Projects: newCollection[models.Project](CollectionProjects, backend, opts),
		Tasks:    newCollection[models.Task](CollectionTasks, backend, opts),
		backend:  backend,
	}
}

// Init seeds any missing collection with an empty snapshot.
func (s *Store) Init(ctx context.Context) error {
	if err := s.backend.Ensure(ctx, Collections); err != nil {
		return fmt.Errorf("failed to initialize collections: %w", err)
	}
	return nil
}

// Ping checks that every collection is readable.
func (s *Store) Ping(ctx context.Context) error {
	for _, name := range Collections {
		if _, err := s.backend.Load(ctx, name); err != nil {
			return err
		}
	}
	return nil
}
