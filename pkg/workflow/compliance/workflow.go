package compliance

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
// resource identifiers for the compliance workflow.
const (
	ModelName  = "compliance-model"
	PromptName = "compliance-prompt"
)

type stateStoreAdapter struct {
	store store.StateStore
}

func (a stateStoreAdapter) Get(ctx context.Context, eventID string) (*domain.ComplianceState, error) {
	return a.store.GetComplianceState(ctx, eventID)
}

func (a stateStoreAdapter) Set(ctx context.Context, eventID string, state *domain.ComplianceState) error {
	return a.store.SetComplianceState(ctx, eventID, state)
}

// Workflow runs an event through the three compliance stages behind
// the shared engine's idempotency and governance envelope.
type Workflow struct {
	engine *engine.Engine[*domain.ComplianceState]
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

// New constructs a compliance Workflow from deps.
func New(deps Deps) *Workflow {
	cfg := engine.Config[*domain.ComplianceState]{
		AuditLogger:    deps.AuditLogger,
		Metrics:        deps.MetricsCollector,
		Classifier:     deps.FailureClassifier,
		ModelRegistry:  deps.ModelRegistry,
		PromptRegistry: deps.PromptRegistry,
		ModelName:      ModelName,
		PromptName:     PromptName,
		WorkflowName:   "compliance",
		Trigger:        deps.Trigger,
		Stages: []engine.Stage[*domain.ComplianceState]{
			FlagCheck,
			Policy,
			Decision,
		},
	}
	if deps.StateStore != nil {
		cfg.StateStore = stateStoreAdapter{store: deps.StateStore}
	}

	return &Workflow{engine: engine.New(cfg)}
}

// Run executes the compliance workflow for state.
func (w *Workflow) Run(ctx context.Context, state *domain.ComplianceState) (*domain.ComplianceState, error) {
	return w.engine.Run(ctx, state)
}
