package risk_test

import (
	"context"
	"testing"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/risk"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuardrails_ViolatesAboveNinety(t *testing.T) {
	state := &domain.RiskState{RiskScore: 95}
	require.NoError(t, risk.Guardrails(context.Background(), state))
	assert.Equal(t, "VIOLATION", state.GuardrailResult)
}

func TestGuardrails_PassesAtNinety(t *testing.T) {
	state := &domain.RiskState{RiskScore: 90}
	require.NoError(t, risk.Guardrails(context.Background(), state))
	assert.Equal(t, "OK", state.GuardrailResult)
}

func TestDecision_GuardrailViolationOverridesEverythingElse(t *testing.T) {
	state := &domain.RiskState{GuardrailResult: "VIOLATION", PolicyResult: "PASS", RiskScore: 10}
	require.NoError(t, risk.Decision(context.Background(), state))
	assert.Equal(t, "REJECTED", state.FinalDecision)
}

func TestDecision_PolicyFailRequiresApprovalEvenAtLowScore(t *testing.T) {
	state := &domain.RiskState{GuardrailResult: "OK", PolicyResult: "FAIL", RiskScore: 5}
	require.NoError(t, risk.Decision(context.Background(), state))
	assert.Equal(t, "REQUIRE_APPROVAL", state.FinalDecision)
}

func TestDecision_ScoreAtSeventyRequiresApproval(t *testing.T) {
	state := &domain.RiskState{GuardrailResult: "OK", PolicyResult: "PASS", RiskScore: 70}
	require.NoError(t, risk.Decision(context.Background(), state))
	assert.Equal(t, "REQUIRE_APPROVAL", state.FinalDecision)
}

func TestDecision_LowScoreCleanPolicyIsApproved(t *testing.T) {
	state := &domain.RiskState{GuardrailResult: "OK", PolicyResult: "PASS", RiskScore: 30}
	require.NoError(t, risk.Decision(context.Background(), state))
	assert.Equal(t, "APPROVED", state.FinalDecision)
}
