package port

import (
	"context"
	"time"
)

// Outcome classifies how a cache operation completed.
type Outcome string

const (
	OutcomeHit      Outcome = "hit"
	OutcomeMiss     Outcome = "miss" // miss followed by successful backfill
	OutcomeAdded    Outcome = "added"
	OutcomeUpdated  Outcome = "updated"
	OutcomeEvicted  Outcome = "evicted"
	OutcomeRemoved  Outcome = "removed"
	OutcomeCleared  Outcome = "cleared"
	OutcomeNotFound Outcome = "not_found"
	OutcomeError    Outcome = "error"
)

// AuditEvent describes one completed cache operation.
type AuditEvent struct {
	Op        string
	ID        string
	Outcome   Outcome
	EvictedID string // set when the operation evicted an entity
	Err       error  // set when Outcome is OutcomeError
	Time      time.Time
}

// AuditSink consumes one event per completed cache operation. It is a
// fire-and-forget side channel: implementations must not block for long and
// have no way to fail the operation that produced the event.
type AuditSink interface {
	Record(ctx context.Context, ev AuditEvent)
}
