package risk

import (
	"context"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/audit"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/classify"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/metrics"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/registry"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/store"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/engine"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/trigger"
)

// ModelName and PromptName are the governance gate's hard-coded
// resource identifiers for the risk workflow.
const (
	ModelName  = "risk-model"
	PromptName = "risk-prompt"
)

// stateStoreAdapter adapts the concrete store.StateStore's
// Get/SetRiskState pair to the engine's generic StateStore[S] shape.
type stateStoreAdapter struct {
	store store.StateStore
}

func (a stateStoreAdapter) Get(ctx context.Context, eventID string) (*domain.RiskState, error) {
	return a.store.GetRiskState(ctx, eventID)
}

func (a stateStoreAdapter) Set(ctx context.Context, eventID string, state *domain.RiskState) error {
	return a.store.SetRiskState(ctx, eventID, state)
}

// Workflow runs an event through the five risk stages behind the
// shared engine's idempotency and governance envelope.
type Workflow struct {
	engine *engine.Engine[*domain.RiskState]
}

// Deps wires a Workflow's collaborators. StateStore is optional: a nil
// StateStore disables idempotency caching entirely.
type Deps struct {
	AuditLogger       audit.Logger
	StateStore        store.StateStore
	MetricsCollector  *metrics.Collector
	FailureClassifier *classify.FailureClassifier
	ModelRegistry     *registry.ModelRegistry
	PromptRegistry    *registry.PromptRegistry
	Trigger           trigger.Trigger
}

// New constructs a risk Workflow from deps.
func New(deps Deps) *Workflow {
	cfg := engine.Config[*domain.RiskState]{
		AuditLogger:    deps.AuditLogger,
		Metrics:        deps.MetricsCollector,
		Classifier:     deps.FailureClassifier,
		ModelRegistry:  deps.ModelRegistry,
		PromptRegistry: deps.PromptRegistry,
		ModelName:      ModelName,
		PromptName:     PromptName,
		WorkflowName:   "risk",
		Trigger:        deps.Trigger,
		Stages: []engine.Stage[*domain.RiskState]{
			Retrieval,
			PolicyValidation,
			RiskScoring,
			Guardrails,
			Decision,
		},
	}
	if deps.StateStore != nil {
		cfg.StateStore = stateStoreAdapter{store: deps.StateStore}
	}

	return &Workflow{engine: engine.New(cfg)}
}

// Run executes the risk workflow for state.
func (w *Workflow) Run(ctx context.Context, state *domain.RiskState) (*domain.RiskState, error) {
	return w.engine.Run(ctx, state)
}
