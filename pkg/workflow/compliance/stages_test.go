package compliance

import (
	"context"
	"testing"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassifyPolicy_FailsAtEighty(t *testing.T) {
	assert.Equal(t, "FAIL", classifyPolicy(80))
}

func TestClassifyPolicy_PassesBelowEighty(t *testing.T) {
	assert.Equal(t, "PASS", classifyPolicy(79.9))
}

func TestScoreFor_KnownAndUnknownEventTypes(t *testing.T) {
	assert.Equal(t, 15.0, scoreFor("low_risk"))
	assert.Equal(t, 40.0, scoreFor("standard"))
	assert.Equal(t, 50.0, scoreFor("unusual"))
}

func TestPolicy_PopulatesScoreAndResult(t *testing.T) {
	state := &domain.ComplianceState{RawEvent: map[string]any{"event_type": "low_risk"}}
	require.NoError(t, Policy(context.Background(), state))
	assert.Equal(t, 15.0, state.RiskScore)
	assert.Equal(t, "PASS", state.PolicyResult)
	assert.Len(t, state.AuditTrail, 1)
	assert.Equal(t, "COMPLIANCE_POLICY_EVALUATED", state.AuditTrail[0].Action)
}

func TestDecision_PolicyFailWithoutApprovalFlagIsRejected(t *testing.T) {
	state := &domain.ComplianceState{ApprovalRequired: false, PolicyResult: "FAIL"}

	require.NoError(t, Decision(context.Background(), state))
	assert.Equal(t, "REJECTED", state.FinalDecision)
}

func TestDecision_ApprovalRequiredOverridesPolicy(t *testing.T) {
	state := &domain.ComplianceState{ApprovalRequired: true, PolicyResult: "PASS"}

	require.NoError(t, Decision(context.Background(), state))
	assert.Equal(t, "REQUIRE_APPROVAL", state.FinalDecision)
}

func TestDecision_CleanPolicyNoFlagsIsApproved(t *testing.T) {
	state := &domain.ComplianceState{ApprovalRequired: false, PolicyResult: "PASS"}

	require.NoError(t, Decision(context.Background(), state))
	assert.Equal(t, "APPROVED", state.FinalDecision)
	assert.False(t, state.ApprovalRequired)
}
