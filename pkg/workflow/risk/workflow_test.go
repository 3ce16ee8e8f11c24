package risk_test

import (
	"context"
	"testing"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/audit"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/classify"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/metrics"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/registry"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/store"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingTrigger struct {
	eventID, tenantID string
	called            bool
}

func (r *recordingTrigger) Start(_ context.Context, eventID, tenantID string) error {
	r.called = true
	r.eventID = eventID
	r.tenantID = tenantID
	return nil
}

func approvedRegistries(t *testing.T) (*registry.ModelRegistry, *registry.PromptRegistry) {
	t.Helper()
	ctx := context.Background()
	auditLogger := audit.NewLoggerWithWriter(nil)

	models := registry.NewModelRegistry(registry.NewInMemoryModelRepository(), auditLogger)
	_, err := models.RegisterModel(ctx, risk.ModelName, "1.0", "abc", "c0", "t0")
	require.NoError(t, err)
	require.NoError(t, models.Approve(ctx, risk.ModelName, "1.0", "c0", "t0"))

	prompts := registry.NewPromptRegistry(registry.NewInMemoryPromptRepository(), auditLogger)
	_, err = prompts.RegisterPrompt(ctx, risk.PromptName, "1.0", "You are a risk assessor...", "c0", "t0")
	require.NoError(t, err)
	require.NoError(t, prompts.Approve(ctx, risk.PromptName, "1.0", "c0", "t0"))

	return models, prompts
}

func newWorkflow(t *testing.T, stateStore store.StateStore) *risk.Workflow {
	t.Helper()
	models, prompts := approvedRegistries(t)
	return risk.New(risk.Deps{
		AuditLogger:       audit.NewLoggerWithWriter(nil),
		StateStore:        stateStore,
		MetricsCollector:  metrics.NewCollector(),
		FailureClassifier: classify.NewFailureClassifier(),
		ModelRegistry:     models,
		PromptRegistry:    prompts,
	})
}

func TestRiskWorkflow_HighRiskEvent_RequiresApproval(t *testing.T) {
	w := newWorkflow(t, nil)
	state := &domain.RiskState{EventID: "e1", TenantID: "t1", CorrelationID: "c1", RawEvent: map[string]any{"event_type": "high_risk"}}

	out, err := w.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 85.0, out.RiskScore)
	assert.Equal(t, "REQUIRE_APPROVAL", out.FinalDecision)
	assert.Len(t, out.AuditTrail, 5)
}

func TestRiskWorkflow_LowRiskEvent_Approved(t *testing.T) {
	w := newWorkflow(t, nil)
	state := &domain.RiskState{EventID: "e2", TenantID: "t1", CorrelationID: "c2", RawEvent: map[string]any{"event_type": "low_risk"}}

	out, err := w.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, 15.0, out.RiskScore)
	assert.Equal(t, "APPROVED", out.FinalDecision)
}

func TestRiskWorkflow_SensitiveCategory_RequiresApprovalEvenAtLowScore(t *testing.T) {
	w := newWorkflow(t, nil)
	state := &domain.RiskState{
		EventID: "e3", TenantID: "t1", CorrelationID: "c3",
		RawEvent: map[string]any{"event_type": "low_risk", "metadata": map[string]any{"category": "sensitive"}},
	}

	out, err := w.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "FAIL", out.PolicyResult)
	assert.Equal(t, "REQUIRE_APPROVAL", out.FinalDecision)
}

func TestRiskWorkflow_HighRiskEvent_DoesNotBreachGuardrailAtEightyFive(t *testing.T) {
	w := newWorkflow(t, nil)
	state := &domain.RiskState{EventID: "e4", TenantID: "t1", CorrelationID: "c4", RawEvent: map[string]any{"event_type": "high_risk"}}

	out, err := w.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "OK", out.GuardrailResult) // 85 doesn't breach the >90 guardrail
	assert.NotEqual(t, "REJECTED", out.FinalDecision)
}

func TestRiskWorkflow_AllFiveAuditNodesPresentInOrder(t *testing.T) {
	w := newWorkflow(t, nil)
	state := &domain.RiskState{EventID: "e5", TenantID: "t1", CorrelationID: "c5", RawEvent: map[string]any{"event_type": "standard"}}

	out, err := w.Run(context.Background(), state)
	require.NoError(t, err)

	wantNodes := []string{"retrieval", "policy_validation", "risk_scoring", "guardrails", "decision"}
	gotNodes := make([]string, len(out.AuditTrail))
	for i, e := range out.AuditTrail {
		gotNodes[i] = e.Node
	}
	assert.Equal(t, wantNodes, gotNodes)
}

func TestRiskWorkflow_IdempotencyCacheHit_SkipsStagesAndSetNotCalled(t *testing.T) {
	stateStore := store.NewInMemoryStateStore()
	cached := &domain.RiskState{EventID: "e6", TenantID: "t1", FinalDecision: "APPROVED", RiskScore: 15.0}
	require.NoError(t, stateStore.SetRiskState(context.Background(), "e6", cached))

	w := newWorkflow(t, stateStore)
	state := &domain.RiskState{EventID: "e6", TenantID: "t1", CorrelationID: "c6", RawEvent: map[string]any{"event_type": "high_risk"}}

	out, err := w.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "APPROVED", out.FinalDecision)
	assert.Equal(t, 15.0, out.RiskScore)
	assert.Empty(t, out.AuditTrail) // cached state never ran stages

	persisted, err := stateStore.GetRiskState(context.Background(), "e6")
	require.NoError(t, err)
	assert.Same(t, cached, persisted) // no Set overwrote the cached entry
}

func TestRiskWorkflow_NoCacheWritesStateOnSuccess(t *testing.T) {
	stateStore := store.NewInMemoryStateStore()
	w := newWorkflow(t, stateStore)
	state := &domain.RiskState{EventID: "e7", TenantID: "t1", CorrelationID: "c7", RawEvent: map[string]any{"event_type": "standard"}}

	_, err := w.Run(context.Background(), state)
	require.NoError(t, err)

	persisted, err := stateStore.GetRiskState(context.Background(), "e7")
	require.NoError(t, err)
	assert.Equal(t, "e7", persisted.EventID)
}

func TestRiskWorkflow_UnapprovedModel_RaisesModelNotApprovedError(t *testing.T) {
	ctx := context.Background()
	auditLogger := audit.NewLoggerWithWriter(nil)

	models := registry.NewModelRegistry(registry.NewInMemoryModelRepository(), auditLogger)
	_, err := models.RegisterModel(ctx, risk.ModelName, "1.0", "abc", "c7b", "t1")
	require.NoError(t, err)
	_, prompts := approvedRegistries(t)

	collector := metrics.NewCollector()
	w := risk.New(risk.Deps{
		AuditLogger:       auditLogger,
		MetricsCollector:  collector,
		FailureClassifier: classify.NewFailureClassifier(),
		ModelRegistry:     models,
		PromptRegistry:    prompts,
	})

	state := &domain.RiskState{EventID: "e8", TenantID: "t1", CorrelationID: "c7b", RawEvent: map[string]any{"event_type": "standard"}}
	_, err = w.Run(ctx, state)

	require.Error(t, err)
	var notApproved *domain.ModelNotApprovedError
	require.ErrorAs(t, err, &notApproved)
	assert.Contains(t, notApproved.Error(), risk.ModelName)

	byLabel := collector.ExportMetrics().CountersByLabels["failure_count"]
	assert.Equal(t, int64(1), byLabel["category=GOVERNANCE_ERROR,workflow=risk"])
}

func TestRiskWorkflow_UnapprovedPrompt_RaisesPromptNotApprovedError(t *testing.T) {
	ctx := context.Background()
	auditLogger := audit.NewLoggerWithWriter(nil)
	models, _ := approvedRegistries(t)

	prompts := registry.NewPromptRegistry(registry.NewInMemoryPromptRepository(), auditLogger)
	_, err := prompts.RegisterPrompt(ctx, risk.PromptName, "1.0", "You are a risk assessor...", "c1", "t1")
	require.NoError(t, err)

	w := risk.New(risk.Deps{
		AuditLogger:       auditLogger,
		MetricsCollector:  metrics.NewCollector(),
		FailureClassifier: classify.NewFailureClassifier(),
		ModelRegistry:     models,
		PromptRegistry:    prompts,
	})

	state := &domain.RiskState{EventID: "e9", TenantID: "t1", CorrelationID: "c1", RawEvent: map[string]any{"event_type": "standard"}}
	_, err = w.Run(ctx, state)

	require.Error(t, err)
	var notApproved *domain.PromptNotApprovedError
	require.ErrorAs(t, err, &notApproved)
	assert.Contains(t, notApproved.Error(), risk.PromptName)
}

func TestRiskWorkflow_NilMetricsCollectorDoesNotPanic(t *testing.T) {
	models, prompts := approvedRegistries(t)
	w := risk.New(risk.Deps{
		AuditLogger:       audit.NewLoggerWithWriter(nil),
		FailureClassifier: classify.NewFailureClassifier(),
		ModelRegistry:     models,
		PromptRegistry:    prompts,
	})
	state := &domain.RiskState{EventID: "e10", TenantID: "t1", CorrelationID: "c10", RawEvent: map[string]any{"event_type": "standard"}}

	out, err := w.Run(context.Background(), state)
	require.NoError(t, err)
	assert.Equal(t, "e10", out.EventID)
}

func TestRiskWorkflow_TriggerStartedAfterSuccess(t *testing.T) {
	models, prompts := approvedRegistries(t)
	trig := &recordingTrigger{}
	w := risk.New(risk.Deps{
		AuditLogger:       audit.NewLoggerWithWriter(nil),
		MetricsCollector:  metrics.NewCollector(),
		FailureClassifier: classify.NewFailureClassifier(),
		ModelRegistry:     models,
		PromptRegistry:    prompts,
		Trigger:           trig,
	})
	state := &domain.RiskState{EventID: "e11", TenantID: "t1", CorrelationID: "c11", RawEvent: map[string]any{"event_type": "standard"}}

	_, err := w.Run(context.Background(), state)
	require.NoError(t, err)
	assert.True(t, trig.called)
	assert.Equal(t, "e11", trig.eventID)
	assert.Equal(t, "t1", trig.tenantID)
}
