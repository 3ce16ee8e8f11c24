// Package engine implements the shared run contract every workflow
// (risk, compliance) follows: consult the idempotency cache, pass the
// governance gate, run the stage chain, then record metrics and write
// state. The generic Engine is parameterized over the concrete state
// type so risk and compliance workflows share one implementation of
// this contract instead of copy-pasting it.
package engine

import (
	"context"
	"errors"
	"log/slog"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/audit"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/classify"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/metrics"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/registry"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/store"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/trigger"
)

// Stage is one pure step of a workflow's stage chain. Stages are
// deterministic and non-suspending beyond what's needed to mutate
// state; each stage appends exactly one entry to state's audit trail.
type Stage[S domain.Identity] func(ctx context.Context, state S) error

// StateStore is the subset of store.StateStore one workflow type
// needs: a getter and setter for its own state type.
type StateStore[S domain.Identity] interface {
	Get(ctx context.Context, eventID string) (S, error)
	Set(ctx context.Context, eventID string, state S) error
}

// Config wires an Engine's collaborators. ModelName/PromptName are the
// governance gate's hard-coded resource identifiers for this workflow
// type (e.g. "risk-model"/"risk-prompt"). WorkflowName labels the
// metrics this Engine records (e.g. "risk"/"compliance").
type Config[S domain.Identity] struct {
	AuditLogger    audit.Logger
	Metrics        *metrics.Collector // nil disables metrics recording
	Classifier     *classify.FailureClassifier
	ModelRegistry  *registry.ModelRegistry
	PromptRegistry *registry.PromptRegistry
	StateStore     StateStore[S] // nil disables idempotency caching
	ModelName      string
	PromptName     string
	WorkflowName   string
	Stages         []Stage[S]
	Trigger        trigger.Trigger // nil disables the post-decision follow-up hook
}

// Engine runs a workflow's Config-supplied stage chain with the
// governance gate and idempotency envelope spec'd for every workflow
// type.
type Engine[S domain.Identity] struct {
	cfg Config[S]
}

// New constructs an Engine from cfg.
func New[S domain.Identity](cfg Config[S]) *Engine[S] {
	return &Engine[S]{cfg: cfg}
}

// Run executes the full contract for state, whose EventID/TenantID/
// CorrelationID are already populated by the caller: idempotency
// lookup, governance gate, stage chain, then metrics and a state-store
// write on success.
func (e *Engine[S]) Run(ctx context.Context, state S) (S, error) {
	var zero S

	if e.cfg.StateStore != nil {
		cached, err := e.cfg.StateStore.Get(ctx, state.GetEventID())
		if err == nil {
			if e.cfg.Metrics != nil {
				e.cfg.Metrics.Inc("cache_hit_count")
			}
			return cached, nil
		}
		if !errors.Is(err, store.ErrStateNotFound) {
			return zero, err
		}
	}

	if err := e.governanceGate(ctx, state); err != nil {
		e.recordFailure(err)
		return zero, err
	}

	for _, stage := range e.cfg.Stages {
		if err := stage(ctx, state); err != nil {
			e.recordFailure(err)
			return zero, err
		}
	}

	if e.cfg.Metrics != nil {
		e.cfg.Metrics.Inc("workflow_execution_count")
	}

	if e.cfg.StateStore != nil {
		if err := e.cfg.StateStore.Set(ctx, state.GetEventID(), state); err != nil {
			return zero, err
		}
	}

	if e.cfg.Trigger != nil {
		if err := e.cfg.Trigger.Start(ctx, state.GetEventID(), state.GetTenantID()); err != nil {
			slog.Error("workflow trigger failed", "event_id", state.GetEventID(), "error", err)
		}
	}

	return state, nil
}

func (e *Engine[S]) recordFailure(err error) {
	if e.cfg.Metrics == nil {
		return
	}
	category := e.cfg.Classifier.Classify(err)
	e.cfg.Metrics.IncLabeled("failure_count", "category="+string(category)+",workflow="+e.cfg.WorkflowName)
}

// governanceGate checks that the latest version of both the workflow's
// model and prompt are APPROVED, logging a GOVERNANCE_VIOLATION audit
// entry and raising the matching domain error otherwise.
func (e *Engine[S]) governanceGate(ctx context.Context, state S) error {
	if e.cfg.ModelRegistry != nil {
		approved, err := e.cfg.ModelRegistry.IsApproved(ctx, e.cfg.ModelName)
		if err != nil {
			return err
		}
		if !approved {
			reason := "model " + e.cfg.ModelName + " is unapproved"
			_ = e.cfg.AuditLogger.LogAction(ctx, "GOVERNANCE_VIOLATION", state.GetTenantID(), state.GetCorrelationID(),
				"model", e.cfg.ModelName, reason, nil)
			return domain.NewModelNotApprovedError(reason)
		}
	}

	if e.cfg.PromptRegistry != nil {
		approved, err := e.cfg.PromptRegistry.IsApproved(ctx, e.cfg.PromptName)
		if err != nil {
			return err
		}
		if !approved {
			reason := "prompt " + e.cfg.PromptName + " is unapproved"
			_ = e.cfg.AuditLogger.LogAction(ctx, "GOVERNANCE_VIOLATION", state.GetTenantID(), state.GetCorrelationID(),
				"prompt", e.cfg.PromptName, reason, nil)
			return domain.NewPromptNotApprovedError(reason)
		}
	}

	return nil
}
