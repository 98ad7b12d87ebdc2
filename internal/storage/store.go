package storage

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	json "github.com/goccy/go-json"
)

// Store persists named record collections as JSON files under a single data
// directory, one file per collection. It is opened once at process start and
// shared by every repository.
//
// All mutating access to a collection goes through a per-collection mutex
// held for the full read-modify-write span, so concurrent updates to the
// same collection never lose writes. Different collections are independent
// and proceed in parallel.
type Store struct {
	dir    string
	logger *slog.Logger

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// Open prepares the data directory and returns a store handle.
func Open(dir string, logger *slog.Logger) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &Store{
		dir:    dir,
		logger: logger,
		locks:  make(map[string]*sync.Mutex),
	}, nil
}

// Close releases the store. No file handles are held between operations;
// kept for lifecycle symmetry with the open-once-at-startup contract.
func (s *Store) Close() {}

// HealthCheck verifies the data directory is still writable.
func (s *Store) HealthCheck(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	probe := filepath.Join(s.dir, ".healthcheck")
	if err := os.WriteFile(probe, []byte("ok"), 0o644); err != nil {
		return fmt.Errorf("data directory not writable: %w", err)
	}
	return os.Remove(probe)
}

// lock returns the mutex guarding a collection, creating it on first use.
func (s *Store) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *Store) path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Collection binds a record type to one named collection in the store.
type Collection[T any] struct {
	store *Store
	name  string
}

// NewCollection creates the typed handle for a named collection.
func NewCollection[T any](store *Store, name string) *Collection[T] {
	return &Collection[T]{store: store, name: name}
}

// Name returns the collection name.
func (c *Collection[T]) Name() string { return c.name }

// Load returns every record in the collection. A missing or corrupt file
// yields an empty slice with a logged warning rather than an error; the
// store favors availability over strict durability on the read path.
func (c *Collection[T]) Load(ctx context.Context) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lock := c.store.lock(c.name)
	lock.Lock()
	defer lock.Unlock()
	return c.load(), nil
}

// Save replaces the collection contents. The write is all-or-nothing: a
// partially written file is never observable by a subsequent Load.
func (c *Collection[T]) Save(ctx context.Context, records []T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	lock := c.store.lock(c.name)
	lock.Lock()
	defer lock.Unlock()
	return c.save(records)
}

// Update applies fn to the current contents and persists the result, holding
// the collection lock across the whole read-modify-write. Once started, the
// mutation completes even if the caller's context is later cancelled.
func (c *Collection[T]) Update(ctx context.Context, fn func([]T) ([]T, error)) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	lock := c.store.lock(c.name)
	lock.Lock()
	defer lock.Unlock()

	records := c.load()
	updated, err := fn(records)
	if err != nil {
		return nil, err
	}
	if err := c.save(updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// load must be called with the collection lock held.
func (c *Collection[T]) load() []T {
	data, err := os.ReadFile(c.store.path(c.name))
	if err != nil {
		if !os.IsNotExist(err) {
			c.store.logger.Warn("failed to read collection, treating as empty",
				slog.String("collection", c.name),
				slog.Any("error", err))
		}
		return []T{}
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		c.store.logger.Warn("corrupt collection file, treating as empty",
			slog.String("collection", c.name),
			slog.Any("error", err))
		return []T{}
	}
	return records
}

// save must be called with the collection lock held. It writes to a
// temporary file in the same directory, fsyncs, then renames over the
// target so readers only ever observe a complete file.
func (c *Collection[T]) save(records []T) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode collection %s: %w", c.name, err)
	}

	tmp, err := os.CreateTemp(c.store.dir, c.name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file for collection %s: %w", c.name, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to write collection %s: %w", c.name, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("failed to sync collection %s: %w", c.name, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file for collection %s: %w", c.name, err)
	}

	if err := os.Rename(tmpName, c.store.path(c.name)); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("failed to replace collection %s: %w", c.name, err)
	}
	return nil
}
