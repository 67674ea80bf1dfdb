package port

import (
	"context"
	"errors"

	"github.com/bnema/hoard/internal/domain/entity"
)

// ErrNotFound is returned by EntityStore.Get when no entity exists for the
// given identifier. Callers must distinguish it from transport or constraint
// failures; it is an answer, not a fault.
var ErrNotFound = errors.New("entity not found")

// EntityStore is the durable backing store behind the cache. The cache engine
// is its sole caller and treats every call as potentially failing; the store
// is only guaranteed to mirror cache contents immediately after a successful
// synchronizing call.
//
// Implementations must be safe for concurrent use.
type EntityStore interface {
	// Get retrieves an entity by identifier. Returns ErrNotFound when the
	// identifier is absent.
	Get(ctx context.Context, id string) (*entity.Entity, error)

	// Put creates or updates an entity (upsert).
	Put(ctx context.Context, e *entity.Entity) error

	// Delete removes an entity by identifier. Deleting an absent identifier
	// is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteAll removes every entity in the store's extent.
	DeleteAll(ctx context.Context) error
}
