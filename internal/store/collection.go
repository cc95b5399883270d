// Package store persists keyed collections of records as JSON arrays.
//
// A collection is mutated only by load, merge in memory, and overwrite.
// Writers serialize on an advisory lock file next to the collection and
// replace it atomically, so readers never observe a partial write.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/renameio/v2"
)

// DefaultLockTimeout bounds how long Merge waits for another writer.
const DefaultLockTimeout = 10 * time.Second

const lockRetryDelay = 50 * time.Millisecond

// KeyFunc returns the natural key of a record.
type KeyFunc[T any] func(T) string

// Policy decides how incoming records reconcile with stored ones.
type Policy[T any] struct {
	// Resolve returns the record to keep when incoming shares a key with existing.
	Resolve func(existing, incoming T) T
	// Prepare fills derived fields on loaded and newly inserted records.
	Prepare func(T) T
}

// MergeResult summarizes a merge for caller reporting.
type MergeResult struct {
	Added   int
	Updated int
	Total   int
}

// Collection is a JSON array on disk treated as a set keyed by KeyFunc.
type Collection[T any] struct {
	path        string
	key         KeyFunc[T]
	policy      Policy[T]
	lockTimeout time.Duration
}

// NewCollection creates a collection stored at path.
func NewCollection[T any](path string, key KeyFunc[T], policy Policy[T]) *Collection[T] {
	if policy.Resolve == nil {
		policy.Resolve = func(_, incoming T) T { return incoming }
	}
	if policy.Prepare == nil {
		policy.Prepare = func(item T) T { return item }
	}
	return &Collection[T]{
		path:        path,
		key:         key,
		policy:      policy,
		lockTimeout: DefaultLockTimeout,
	}
}

// WithLockTimeout sets how long Merge waits for the advisory lock.
func (c *Collection[T]) WithLockTimeout(d time.Duration) *Collection[T] {
	if d > 0 {
		c.lockTimeout = d
	}
	return c
}

// Path returns the collection file path.
func (c *Collection[T]) Path() string {
	return c.path
}

// Load reads the collection. A missing file is an empty collection. An
// unreadable or malformed file is logged and treated as empty; elements
// that fail to decode are logged and skipped.
func (c *Collection[T]) Load() []T {
	content, err := os.ReadFile(c.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			log.Printf("[STORE] warning: cannot read %s, treating as empty: %v", c.path, err)
		}
		return []T{}
	}

	items, err := c.decode(content, true)
	if err != nil {
		log.Printf("[STORE] warning: malformed collection %s, treating as empty: %v", c.path, err)
		return []T{}
	}
	return items
}

// LoadStrict reads the collection and fails on a missing or malformed file.
func (c *Collection[T]) LoadStrict() ([]T, error) {
	content, err := os.ReadFile(c.path)
	if err != nil {
		return nil, &LoadError{Path: c.path, Message: "failed to read collection", Cause: err}
	}
	items, err := c.decode(content, false)
	if err != nil {
		return nil, &LoadError{Path: c.path, Message: "failed to decode collection", Cause: err}
	}
	return items, nil
}

func (c *Collection[T]) decode(content []byte, lenient bool) ([]T, error) {
	var raw []json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil {
		return nil, err
	}

	items := make([]T, 0, len(raw))
	for i, element := range raw {
		var item T
		if err := json.Unmarshal(element, &item); err != nil {
			if !lenient {
				return nil, fmt.Errorf("element %d: %w", i, err)
			}
			log.Printf("[STORE] warning: skipping element %d of %s: %v", i, c.path, err)
			continue
		}
		items = append(items, c.policy.Prepare(item))
	}
	return items, nil
}

// Merge reconciles incoming records with the stored collection and
// overwrites it. Records with an empty key are skipped.
func (c *Collection[T]) Merge(ctx context.Context, incoming []T) (*MergeResult, error) {
	unlock, err := c.lock(ctx)
	if err != nil {
		return nil, err
	}
	defer unlock()

	merged := newOrderedSet[T]()
	for _, item := range c.Load() {
		key := c.key(item)
		if key == "" {
			continue
		}
		// Collapse duplicates left by older writers, first occurrence wins
		if _, ok := merged.get(key); !ok {
			merged.put(key, item)
		}
	}

	result := &MergeResult{}
	for _, item := range incoming {
		key := c.key(item)
		if key == "" {
			log.Printf("[STORE] warning: skipping record without key for %s", c.path)
			continue
		}
		if existing, ok := merged.get(key); ok {
			merged.put(key, c.policy.Resolve(existing, item))
			result.Updated++
			continue
		}
		merged.put(key, c.policy.Prepare(item))
		result.Added++
	}
	result.Total = merged.len()

	if err := WriteAll(c.path, merged.values()); err != nil {
		return nil, err
	}
	log.Printf("[STORE] Saved to %s: %d new, total: %d", c.path, result.Added, result.Total)
	return result, nil
}

// lock takes the advisory lock file next to the collection.
func (c *Collection[T]) lock(ctx context.Context) (func(), error) {
	if err := ensureDir(c.path); err != nil {
		return nil, &WriteError{Path: c.path, Cause: err}
	}

	lockCtx, cancel := context.WithTimeout(ctx, c.lockTimeout)
	defer cancel()

	fileLock := flock.New(c.path + ".lock")
	locked, err := fileLock.TryLockContext(lockCtx, lockRetryDelay)
	if err != nil {
		return nil, &LockError{Path: c.path, Cause: err}
	}
	if !locked {
		return nil, &LockError{Path: c.path}
	}
	return func() {
		if err := fileLock.Unlock(); err != nil {
			log.Printf("[STORE] warning: failed to release lock for %s: %v", c.path, err)
		}
	}, nil
}

// MergeAndSave merges incoming into the collection at path in one call.
func MergeAndSave[T any](ctx context.Context, path string, incoming []T, key KeyFunc[T], policy Policy[T]) (*MergeResult, error) {
	return NewCollection(path, key, policy).Merge(ctx, incoming)
}

// WriteAll overwrites path with items as an indented JSON array. The file
// is replaced atomically.
func WriteAll[T any](path string, items []T) error {
	if items == nil {
		items = []T{}
	}
	data, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return &WriteError{Path: path, Cause: fmt.Errorf("failed to marshal collection: %w", err)}
	}
	if err := ensureDir(path); err != nil {
		return &WriteError{Path: path, Cause: err}
	}
	if err := renameio.WriteFile(path, data, 0644); err != nil {
		return &WriteError{Path: path, Cause: err}
	}
	return nil
}

func ensureDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}
