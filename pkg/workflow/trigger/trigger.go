// Package trigger provides an extension point for kicking off external
// follow-up work after a workflow reaches a decision, without
// committing this module to any particular downstream orchestrator.
package trigger

import (
	"context"
	"log/slog"
)

// Trigger starts follow-up work for an event. Implementations must
// never fail the caller's transaction: a Trigger error is logged, not
// propagated.
type Trigger interface {
	Start(ctx context.Context, eventID, tenantID string) error
}

// NoopTrigger is a placeholder used when no real downstream workflow
// engine is wired. It logs and returns nil unconditionally.
type NoopTrigger struct {
	logger *slog.Logger
}

// NewNoopTrigger returns a Trigger that only logs. If logger is nil,
// slog.Default() is used.
func NewNoopTrigger(logger *slog.Logger) *NoopTrigger {
	if logger == nil {
		logger = slog.Default()
	}
	return &NoopTrigger{logger: logger}
}

func (t *NoopTrigger) Start(_ context.Context, eventID, tenantID string) error {
	t.logger.Info("workflow_trigger_placeholder", "event_id", eventID, "tenant_id", tenantID)
	return nil
}
