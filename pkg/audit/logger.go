// Package audit implements the append-only action log the governance
// pipeline writes to at every stage boundary. Implementations must
// never fail the caller's transaction: Logger.LogAction returning an
// error signals an infrastructure problem the caller treats as a
// separate failure class (see pkg/classify), never a masked success.
package audit

import (
	"context"
	"encoding/json"
	"io"
	"os"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entry is a single structured audit record.
type Entry struct {
	ID            string         `json:"id"`
	TenantID      string         `json:"tenant_id"`
	CorrelationID string         `json:"correlation_id"`
	Action        string         `json:"action"`
	ResourceType  string         `json:"resource_type"`
	ResourceID    string         `json:"resource_id"`
	Reason        string         `json:"reason,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
}

// Logger records audit events. Order of LogAction calls within a
// single workflow run is observable and load-bearing: implementations
// must not reorder or batch entries in a way that changes that order.
type Logger interface {
	LogAction(ctx context.Context, action, tenantID, correlationID, resourceType, resourceID, reason string, extra map[string]any) error
}

// writerLogger writes one line per audit entry to an injected
// io.Writer: the prefix "AUDIT: " followed by the entry's JSON. Mirrors the teacher's stdout logger shape.
type writerLogger struct {
	mu     sync.Mutex
	writer io.Writer
}

// NewLogger creates a Logger writing to os.Stdout.
func NewLogger() Logger {
	return NewLoggerWithWriter(os.Stdout)
}

// NewLoggerWithWriter creates a Logger writing to the given writer.
// A nil writer falls back to os.Stdout.
func NewLoggerWithWriter(w io.Writer) Logger {
	if w == nil {
		w = os.Stdout
	}
	return &writerLogger{writer: w}
}

func (l *writerLogger) LogAction(_ context.Context, action, tenantID, correlationID, resourceType, resourceID, reason string, extra map[string]any) error {
	entry := Entry{
		ID:            uuid.New().String(),
		TenantID:      tenantID,
		CorrelationID: correlationID,
		Action:        action,
		ResourceType:  resourceType,
		ResourceID:    resourceID,
		Reason:        reason,
		Extra:         extra,
		Timestamp:     time.Now().UTC(),
	}

	bytes, err := json.Marshal(entry)
	if err != nil {
		return err
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	_, err = l.writer.Write(append([]byte("AUDIT: "), append(bytes, '\n')...))
	return err
}
