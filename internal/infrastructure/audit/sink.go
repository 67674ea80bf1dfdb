// Package audit provides port.AuditSink implementations.
package audit

import (
	"context"

	"github.com/bnema/hoard/internal/application/port"
	"github.com/rs/zerolog"
)

// ZerologSink writes one structured log line per cache operation event.
// Severity follows the outcome: error outcomes log at error level, not-found
// at debug, everything else at info.
type ZerologSink struct {
	logger zerolog.Logger
}

// NewZerologSink creates a sink writing to the given logger.
func NewZerologSink(logger zerolog.Logger) *ZerologSink {
	return &ZerologSink{logger: logger.With().Str("component", "audit").Logger()}
}

func (s *ZerologSink) Record(_ context.Context, ev port.AuditEvent) {
	var evt *zerolog.Event
	switch ev.Outcome {
	case port.OutcomeError:
		evt = s.logger.Error().Err(ev.Err)
	case port.OutcomeNotFound:
		evt = s.logger.Debug()
	default:
		evt = s.logger.Info()
	}

	evt = evt.Str("op", ev.Op).Str("outcome", string(ev.Outcome)).Time("at", ev.Time)
	if ev.ID != "" {
		evt = evt.Str("id", ev.ID)
	}
	if ev.EvictedID != "" {
		evt = evt.Str("evicted_id", ev.EvictedID)
	}
	evt.Msg("cache operation")
}

// Nop is a sink that discards every event.
type Nop struct{}

func (Nop) Record(context.Context, port.AuditEvent) {}
