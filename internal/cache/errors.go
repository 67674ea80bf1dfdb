package cache

import (
	"errors"
	"fmt"
)

// ErrInvalidCapacity is returned by New when the configured capacity is not
// a positive integer. It can only occur at construction time.
var ErrInvalidCapacity = errors.New("cache capacity must be positive")

// StoreError reports a backing store failure surfaced through a cache
// operation. The engine never retries store calls; retry policy belongs to
// the adapter or the caller.
type StoreError struct {
	Op  string // store call that failed: get, put, delete, delete_all
	ID  string // identifier involved, empty for bulk operations
	Err error
}

func (e *StoreError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("store %s: %v", e.Op, e.Err)
	}
	return fmt.Sprintf("store %s %q: %v", e.Op, e.ID, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// EvictionPersistError reports a failed write-back of an evicted entity. The
// entity has already left the cache (the capacity bound holds regardless of
// store health), so until the write-back is repeated the evicted data exists
// nowhere durable. Callers should treat this as a potential data loss signal,
// not an ordinary miss-path failure.
type EvictionPersistError struct {
	ID  string
	Err error
}

func (e *EvictionPersistError) Error() string {
	return fmt.Sprintf("persist evicted entity %q: %v", e.ID, e.Err)
}

func (e *EvictionPersistError) Unwrap() error { return e.Err }
