package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Record is anything keyed by an id field.
type Record interface {
	RecordID() string
}

// Patch merges a partial update into a record.
type Patch[T Record] interface {
	Apply(T) T
}

// Collection is a typed view over one backend collection.
type Collection[T Record] struct {
	name     string
	backend  Backend
	observer Observer

	// mu is nil unless writes are serialized.
	mu *sync.Mutex
}

func newCollection[T Record](name string, backend Backend, opts Options) *Collection[T] {
	c := &Collection[T]{
		name:     name,
		backend:  backend,
		observer: opts.Observer,
	}
	if c.observer == nil {
		c.observer = nopObserver{}
	}
	if opts.SerializeWrites {
		c.mu = &sync.Mutex{}
	}
	return c
}

// Name returns the collection name.
func (c *Collection[T]) Name() string {
	return c.name
}

// List returns every record in insertion order.
func (c *Collection[T]) List(ctx context.Context) ([]T, error) {
	records, err := c.load(ctx)
	c.observer.ObserveStoreOperation(c.name, OpList, err)
	return records, err
}

// Find returns the first record matching pred.
func (c *Collection[T]) Find(ctx context.Context, pred func(T) bool) (T, bool, error) {
	var zero T
	records, err := c.List(ctx)
	if err != nil {
		return zero, false, err
	}
	for _, r := range records {
		if pred(r) {
			return r, true, nil
		}
	}
	return zero, false, nil
}

// FindByID returns the record with the given id.
func (c *Collection[T]) FindByID(ctx context.Context, id string) (T, bool, error) {
	return c.Find(ctx, func(r T) bool { return r.RecordID() == id })
}

// Append adds record to the end of the collection and persists the whole
// collection.
func (c *Collection[T]) Append(ctx context.Context, record T) error {
	c.lock()
	defer c.unlock()

	err := c.appendLocked(ctx, record)
	c.observer.ObserveStoreOperation(c.name, OpAppend, err)
	return err
}

func (c *Collection[T]) appendLocked(ctx context.Context, record T) error {
	records, err := c.load(ctx)
	if err != nil {
		return err
	}
	records = append(records, record)
	return c.persist(ctx, records)
}

// Update merges patch into the record with the given id and persists the
// whole collection. An unknown id is a no-op that reports false and writes
// nothing.
func (c *Collection[T]) Update(ctx context.Context, id string, patch Patch[T]) (T, bool, error) {
	c.lock()
	defer c.unlock()

	updated, found, err := c.updateLocked(ctx, id, patch)
	c.observer.ObserveStoreOperation(c.name, OpUpdate, err)
	return updated, found, err
}

func (c *Collection[T]) updateLocked(ctx context.Context, id string, patch Patch[T]) (T, bool, error) {
	var zero T
	records, err := c.load(ctx)
	if err != nil {
		return zero, false, err
	}

	idx := -1
	for i, r := range records {
		if r.RecordID() == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return zero, false, nil
	}

	records[idx] = patch.Apply(records[idx])
	if err := c.persist(ctx, records); err != nil {
		return zero, false, err
	}
	return records[idx], true, nil
}

func (c *Collection[T]) load(ctx context.Context) ([]T, error) {
	data, err := c.backend.Load(ctx, c.name)
	if err != nil {
		return nil, err
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("%w: decode %s: %v", ErrStorageUnavailable, c.name, err)
	}
	if records == nil {
		return nil, fmt.Errorf("%w: %s is not a JSON array", ErrStorageUnavailable, c.name)
	}
	return records, nil
}

func (c *Collection[T]) persist(ctx context.Context, records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode %s: %v", ErrStorageUnavailable, c.name, err)
	}
	return c.backend.Replace(ctx, c.name, data)
}

func (c *Collection[T]) lock() {
	if c.mu != nil {
		c.mu.Lock()
	}
}

func (c *Collection[T]) unlock() {
	if c.mu != nil {
		c.mu.Unlock()
	}
}
