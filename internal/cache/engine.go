// Package cache implements a bounded, recency-ordered entity cache that
// synchronizes evicted and removed data with a durable backing store.
//
// The engine owns all cache state and is the sole caller of the store. Reads
// and writes of a resident identifier promote it to most-recently-used; when
// an insert pushes the resident count over capacity, the least-recently-used
// entity is evicted and written back to the store (write-back on eviction,
// not write-through on every add).
package cache

import (
	"container/list"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/bnema/hoard/internal/application/port"
	"github.com/bnema/hoard/internal/domain/entity"
	"github.com/bnema/hoard/internal/logging"
	"golang.org/x/sync/singleflight"
)

// Engine is a thread-safe LRU cache with a fixed capacity in front of a
// port.EntityStore. Every public operation is a critical section with respect
// to the cache state; eviction write-backs happen while the lock is held so
// no caller ever observes a resident count above capacity, and miss-path
// store reads happen outside the lock with revalidation on reacquire.
type Engine struct {
	capacity   int
	store      port.EntityStore
	sink       port.AuditSink
	purgeStore bool

	mu    sync.Mutex
	items map[string]*list.Element
	order *list.List // Front = most recent, Back = least recent

	// removeSeq increments under the lock on every Remove/RemoveAll so
	// in-flight miss backfills can detect a concurrent removal.
	removeSeq uint64

	// group deduplicates concurrent store reads for the same identifier on
	// the miss path.
	group singleflight.Group
}

// slot holds a cached entity in the recency list.
type slot struct {
	ent *entity.Entity
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithAuditSink attaches a sink receiving one event per completed operation.
// Sink behavior never affects the outcome of the operation itself.
func WithAuditSink(sink port.AuditSink) Option {
	return func(e *Engine) { e.sink = sink }
}

// WithStorePurge makes RemoveAll purge the store's full extent after deleting
// the resident identifiers, instead of deleting only identifiers the engine
// currently knows about.
func WithStorePurge() Option {
	return func(e *Engine) { e.purgeStore = true }
}

// New creates an engine with a fixed, immutable capacity. Returns
// ErrInvalidCapacity when capacity is not positive.
func New(capacity int, store port.EntityStore, opts ...Option) (*Engine, error) {
	if capacity < 1 {
		return nil, ErrInvalidCapacity
	}
	if store == nil {
		return nil, errors.New("backing store is required")
	}

	e := &Engine{
		capacity: capacity,
		store:    store,
		items:    make(map[string]*list.Element),
		order:    list.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e, nil
}

// Add inserts or overwrites an entity and marks it most-recently-used.
//
// Overwriting a resident identifier never triggers eviction (the count is
// unchanged). Inserting a new identifier at capacity evicts exactly one
// least-recently-used entity and writes it back to the store; if that
// write-back fails the victim stays evicted (the capacity bound is a hard
// invariant) and the failure is returned as *EvictionPersistError.
func (e *Engine) Add(ctx context.Context, ent *entity.Entity) error {
	if err := ent.Valid(); err != nil {
		return err
	}
	log := logging.FromContext(ctx)

	e.mu.Lock()
	if el, ok := e.items[ent.ID]; ok {
		el.Value.(*slot).ent = ent.Clone()
		e.order.MoveToFront(el)
		e.mu.Unlock()

		log.Debug().Str("id", ent.ID).Msg("cache entry updated")
		e.audit(ctx, "add", ent.ID, port.OutcomeUpdated, "", nil)
		return nil
	}

	el := e.order.PushFront(&slot{ent: ent.Clone()})
	e.items[ent.ID] = el
	victimID, evictErr := e.evictLocked(ctx)
	e.mu.Unlock()

	if evictErr != nil {
		log.Error().Err(evictErr).Str("id", ent.ID).Str("evicted_id", victimID).
			Msg("eviction write-back failed, evicted data may be lost")
		e.audit(ctx, "add", ent.ID, port.OutcomeError, victimID, evictErr)
		return evictErr
	}

	if victimID != "" {
		log.Debug().Str("id", ent.ID).Str("evicted_id", victimID).Msg("cache entry added, LRU evicted")
		e.audit(ctx, "add", ent.ID, port.OutcomeEvicted, victimID, nil)
		return nil
	}

	log.Debug().Str("id", ent.ID).Msg("cache entry added")
	e.audit(ctx, "add", ent.ID, port.OutcomeAdded, "", nil)
	return nil
}

// Get returns the entity for id, from cache when resident (promoting it to
// most-recently-used) or from the store otherwise. A successful store read is
// backfilled into the cache under the same eviction policy as Add; a removal
// that completes while the store read is in flight suppresses the backfill.
// Returns port.ErrNotFound when the identifier exists in neither place; the
// cache is never mutated on a failed lookup.
func (e *Engine) Get(ctx context.Context, id string) (*entity.Entity, error) {
	log := logging.FromContext(ctx)

	e.mu.Lock()
	if el, ok := e.items[id]; ok {
		e.order.MoveToFront(el)
		out := el.Value.(*slot).ent.Clone()
		e.mu.Unlock()

		e.audit(ctx, "get", id, port.OutcomeHit, "", nil)
		return out, nil
	}
	seq := e.removeSeq
	e.mu.Unlock()

	// Miss: read the store outside the lock. Concurrent misses on the same
	// identifier share a single store read, so the read must not inherit
	// one caller's cancellation.
	loadCtx := context.WithoutCancel(ctx)
	v, err, _ := e.group.Do(id, func() (any, error) {
		return e.store.Get(loadCtx, id)
	})
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			e.audit(ctx, "get", id, port.OutcomeNotFound, "", nil)
			return nil, port.ErrNotFound
		}
		serr := &StoreError{Op: "get", ID: id, Err: err}
		log.Warn().Err(err).Str("id", id).Msg("store read failed")
		e.audit(ctx, "get", id, port.OutcomeError, "", serr)
		return nil, serr
	}
	fetched, _ := v.(*entity.Entity)
	if fetched == nil {
		// Adapters following the nil-on-no-rows convention instead of the
		// sentinel are treated as a miss.
		e.audit(ctx, "get", id, port.OutcomeNotFound, "", nil)
		return nil, port.ErrNotFound
	}

	e.mu.Lock()
	// Revalidate after reacquiring the lock: a concurrent Add may have made
	// the identifier resident while we were reading the store. The later
	// write supersedes the store copy.
	if el, ok := e.items[id]; ok {
		e.order.MoveToFront(el)
		out := el.Value.(*slot).ent.Clone()
		e.mu.Unlock()

		e.audit(ctx, "get", id, port.OutcomeHit, "", nil)
		return out, nil
	}

	// A removal completed while the store read was in flight. Serve the
	// fetched value to this caller (the lookup overlapped the removal) but
	// skip the backfill so a concurrently deleted entity cannot re-enter
	// the cache.
	if e.removeSeq != seq {
		e.mu.Unlock()

		e.audit(ctx, "get", id, port.OutcomeMiss, "", nil)
		return fetched.Clone(), nil
	}

	el := e.order.PushFront(&slot{ent: fetched.Clone()})
	e.items[id] = el
	victimID, evictErr := e.evictLocked(ctx)
	e.mu.Unlock()

	if evictErr != nil {
		log.Error().Err(evictErr).Str("id", id).Str("evicted_id", victimID).
			Msg("backfill eviction write-back failed, evicted data may be lost")
		e.audit(ctx, "get", id, port.OutcomeError, victimID, evictErr)
		return nil, evictErr
	}

	log.Debug().Str("id", id).Msg("cache miss backfilled from store")
	e.audit(ctx, "get", id, port.OutcomeMiss, victimID, nil)
	return fetched.Clone(), nil
}

// Remove deletes the identifier from the cache (no-op when absent) and then
// from the store. The contract is "the entity no longer exists anywhere", so
// Remove succeeds even for identifiers that were never cached. A store delete
// failure is returned as *StoreError; the cache-side removal is not rolled
// back, so a later Get re-fetches from the store rather than resurrecting a
// stale resident copy.
func (e *Engine) Remove(ctx context.Context, id string) error {
	log := logging.FromContext(ctx)

	e.mu.Lock()
	e.removeSeq++
	if el, ok := e.items[id]; ok {
		e.order.Remove(el)
		delete(e.items, id)
	}
	e.mu.Unlock()

	if err := e.store.Delete(ctx, id); err != nil {
		serr := &StoreError{Op: "delete", ID: id, Err: err}
		log.Warn().Err(err).Str("id", id).Msg("store delete failed")
		e.audit(ctx, "remove", id, port.OutcomeError, "", serr)
		return serr
	}

	log.Debug().Str("id", id).Msg("entity removed")
	e.audit(ctx, "remove", id, port.OutcomeRemoved, "", nil)
	return nil
}

// RemoveAll empties the cache and deletes every previously resident
// identifier from the store. Every identifier is attempted even when some
// deletes fail; failures are joined into the returned error. With
// WithStorePurge the store's full extent is purged afterwards as well.
func (e *Engine) RemoveAll(ctx context.Context) error {
	log := logging.FromContext(ctx)

	e.mu.Lock()
	e.removeSeq++
	ids := make([]string, 0, len(e.items))
	for el := e.order.Front(); el != nil; el = el.Next() {
		ids = append(ids, el.Value.(*slot).ent.ID)
	}
	e.items = make(map[string]*list.Element)
	e.order.Init()
	e.mu.Unlock()

	var errs []error
	for _, id := range ids {
		if err := e.store.Delete(ctx, id); err != nil {
			errs = append(errs, &StoreError{Op: "delete", ID: id, Err: err})
		}
	}
	if e.purgeStore {
		if err := e.store.DeleteAll(ctx); err != nil {
			errs = append(errs, &StoreError{Op: "delete_all", Err: err})
		}
	}

	if err := errors.Join(errs...); err != nil {
		log.Warn().Err(err).Int("resident", len(ids)).Msg("remove all completed with store failures")
		e.audit(ctx, "remove_all", "", port.OutcomeError, "", err)
		return err
	}

	log.Debug().Int("resident", len(ids)).Bool("purged_store", e.purgeStore).Msg("all entities removed")
	e.audit(ctx, "remove_all", "", port.OutcomeRemoved, "", nil)
	return nil
}

// Clear resets the in-memory structure only. The store is not touched, so
// Clear cannot fail; previously cached entities that were evicted or
// persisted remain retrievable through Get.
func (e *Engine) Clear(ctx context.Context) {
	e.mu.Lock()
	e.items = make(map[string]*list.Element)
	e.order.Init()
	e.mu.Unlock()

	logging.FromContext(ctx).Debug().Msg("cache cleared")
	e.audit(ctx, "clear", "", port.OutcomeCleared, "", nil)
}

// Len returns the number of currently resident entities.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.order.Len()
}

// Cap returns the configured capacity.
func (e *Engine) Cap() int { return e.capacity }

// Keys returns the resident identifiers in most- to least-recently-used
// order. Diagnostic helper; it does not touch recency.
func (e *Engine) Keys() []string {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]string, 0, e.order.Len())
	for el := e.order.Front(); el != nil; el = el.Next() {
		out = append(out, el.Value.(*slot).ent.ID)
	}
	return out
}

// evictLocked evicts least-recently-used entities until the resident count is
// within capacity, writing each victim back to the store while the lock is
// held. Inserts add one entity at a time, so at most one eviction occurs per
// call. The victim is unlinked before the write-back: the capacity bound must
// hold even when the store is failing.
func (e *Engine) evictLocked(ctx context.Context) (string, error) {
	for e.order.Len() > e.capacity {
		oldest := e.order.Back()
		if oldest == nil {
			return "", nil
		}
		victim := oldest.Value.(*slot).ent
		e.order.Remove(oldest)
		delete(e.items, victim.ID)

		if err := e.store.Put(ctx, victim); err != nil {
			return victim.ID, &EvictionPersistError{ID: victim.ID, Err: err}
		}
		return victim.ID, nil
	}
	return "", nil
}

// audit emits one event for a completed operation. The sink is a
// fire-and-forget side channel; a nil sink disables auditing.
func (e *Engine) audit(ctx context.Context, op, id string, outcome port.Outcome, evictedID string, err error) {
	if e.sink == nil {
		return
	}
	e.sink.Record(ctx, port.AuditEvent{
		Op:        op,
		ID:        id,
		Outcome:   outcome,
		EvictedID: evictedID,
		Err:       err,
		Time:      time.Now(),
	})
}
