// Package catalog manages a named collection of datasets. It is the entry
// point applications use to load and save data by name instead of by path,
// with the set of datasets described in code or in a YAML config file.
package catalog

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/gofrs/flock"

	"github.com/datashed/datashed/dataset"
)

// lock acquisition budget for cross-process save guards
const (
	lockTimeout    = 3 * time.Second
	lockRetryDelay = 100 * time.Millisecond
)

// NotRegisteredError is returned when an operation names a dataset the
// catalog does not know.
type NotRegisteredError struct {
	Name string
}

func (e *NotRegisteredError) Error() string {
	return fmt.Sprintf("dataset %q is not registered in the catalog", e.Name)
}

// rwLocker serializes access to the catalog's registry. Reads can proceed
// concurrently; registration takes the exclusive lock.
type rwLocker struct {
	mu sync.RWMutex
}

func (l *rwLocker) read(fn func() error) error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return fn()
}

func (l *rwLocker) write(fn func() error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn()
}

// Catalog is a registry of named datasets.
type Catalog struct {
	locker   rwLocker
	datasets map[string]dataset.Dataset
	logger   *slog.Logger
}

// Option configures a catalog.
type Option func(*Catalog)

// WithLogger sets the logger used for operation logging.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = logger
	}
}

// New creates an empty catalog.
func New(opts ...Option) *Catalog {
	c := &Catalog{
		datasets: make(map[string]dataset.Dataset),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Add registers a dataset under name. Registering the same name twice is an
// error.
func (c *Catalog) Add(name string, ds dataset.Dataset) error {
	return c.locker.write(func() error {
		if _, exists := c.datasets[name]; exists {
			return fmt.Errorf("dataset %q is already registered", name)
		}
		c.datasets[name] = ds
		return nil
	})
}

// Get returns the dataset registered under name.
func (c *Catalog) Get(name string) (dataset.Dataset, error) {
	var ds dataset.Dataset
	err := c.locker.read(func() error {
		var ok bool
		ds, ok = c.datasets[name]
		if !ok {
			return &NotRegisteredError{Name: name}
		}
		return nil
	})
	return ds, err
}

// List returns the registered dataset names in sorted order.
func (c *Catalog) List() []string {
	var names []string
	_ = c.locker.read(func() error {
		names = make([]string, 0, len(c.datasets))
		for name := range c.datasets {
			names = append(names, name)
		}
		return nil
	})
	sort.Strings(names)
	return names
}

// Load loads the named dataset.
func (c *Catalog) Load(name string) (any, error) {
	ds, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	c.logger.Debug("loading dataset", "name", name)
	value, err := ds.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load dataset %q: %w", name, err)
	}
	return value, nil
}

// Save saves value to the named dataset. The save is wrapped in an advisory
// file lock on <filepath>.lock so that concurrent processes cannot race a
// generated save version; the dataset itself performs no locking.
func (c *Catalog) Save(name string, value any) error {
	ds, err := c.Get(name)
	if err != nil {
		return err
	}

	unlock, err := c.acquireSaveLock(ds)
	if err != nil {
		return fmt.Errorf("failed to save dataset %q: %w", name, err)
	}
	defer unlock()

	c.logger.Debug("saving dataset", "name", name)
	if err := ds.Save(value); err != nil {
		return fmt.Errorf("failed to save dataset %q: %w", name, err)
	}
	return nil
}

// Exists reports whether the named dataset exists on disk.
func (c *Catalog) Exists(name string) (bool, error) {
	ds, err := c.Get(name)
	if err != nil {
		return false, err
	}
	return ds.Exists()
}

// Describe returns the configuration of the named dataset.
func (c *Catalog) Describe(name string) (map[string]any, error) {
	ds, err := c.Get(name)
	if err != nil {
		return nil, err
	}
	return ds.Describe(), nil
}

// acquireSaveLock takes the cross-process lock for a dataset's filepath.
// Datasets that do not report a filepath are saved unguarded.
func (c *Catalog) acquireSaveLock(ds dataset.Dataset) (func(), error) {
	path, ok := ds.Describe()["filepath"].(string)
	if !ok || path == "" {
		return func() {}, nil
	}

	fileLock := flock.New(path + ".lock")
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	locked, err := fileLock.TryLockContext(ctx, lockRetryDelay)
	if err != nil {
		return nil, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if !locked {
		return nil, fmt.Errorf("could not acquire file lock for %s", path)
	}
	return func() { _ = fileLock.Unlock() }, nil
}
