package audit

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/hoard/internal/application/port"
)

func TestZerologSink_RecordsEventFields(t *testing.T) {
	var buf bytes.Buffer
	sink := NewZerologSink(zerolog.New(&buf))

	sink.Record(context.Background(), port.AuditEvent{
		Op:        "add",
		ID:        "a",
		Outcome:   port.OutcomeEvicted,
		EvictedID: "b",
		Time:      time.Now(),
	})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "add", line["op"])
	assert.Equal(t, "a", line["id"])
	assert.Equal(t, "evicted", line["outcome"])
	assert.Equal(t, "b", line["evicted_id"])
	assert.Equal(t, "info", line["level"])
	assert.Equal(t, "audit", line["component"])
}

func TestZerologSink_ErrorOutcomeAtErrorLevel(t *testing.T) {
	var buf bytes.Buffer
	sink := NewZerologSink(zerolog.New(&buf))

	sink.Record(context.Background(), port.AuditEvent{
		Op:      "add",
		ID:      "a",
		Outcome: port.OutcomeError,
		Err:     errors.New("disk full"),
		Time:    time.Now(),
	})

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))

	assert.Equal(t, "error", line["level"])
	assert.Contains(t, line["error"], "disk full")
}

func TestZerologSink_NotFoundAtDebugLevel(t *testing.T) {
	var buf bytes.Buffer
	sink := NewZerologSink(zerolog.New(&buf))

	sink.Record(context.Background(), port.AuditEvent{
		Op:      "get",
		ID:      "ghost",
		Outcome: port.OutcomeNotFound,
		Time:    time.Now(),
	})

	assert.True(t, strings.Contains(buf.String(), `"level":"debug"`))
}

func TestNop_DiscardsEvents(t *testing.T) {
	// must not panic
	Nop{}.Record(context.Background(), port.AuditEvent{Op: "add"})
}
