// Package compliance implements the three-stage compliance workflow:
// flag_check, policy, decision.
package compliance

import (
	"context"
	"time"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
)

func eventType(raw map[string]any) string {
	v, ok := raw["event_type"]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

func appendAudit(state *domain.ComplianceState, node, action string, extra map[string]any) {
	state.AuditTrail = append(state.AuditTrail, domain.StageAuditEntry{
		Node:          node,
		Action:        action,
		Timestamp:     time.Now().UTC(),
		CorrelationID: state.CorrelationID,
		Extra:         extra,
	})
}

// FlagCheck sets approval_required whenever any regulatory flag is
// present on the event. It performs no scoring of its own.
func FlagCheck(_ context.Context, state *domain.ComplianceState) error {
	state.ApprovalRequired = len(state.RegulatoryFlags) > 0

	appendAudit(state, "flag_check", "FLAGS_EVALUATED", map[string]any{
		"approval_required": state.ApprovalRequired,
		"regulatory_flags":  state.RegulatoryFlags,
	})
	return nil
}

// scoreFor returns the deterministic risk score stub for a compliance
// event's declared type.
func scoreFor(eventType string) float64 {
	switch eventType {
	case "low_risk":
		return 15.0
	case "standard":
		return 40.0
	default:
		return 50.0
	}
}

// classifyPolicy returns FAIL once score crosses the 80 threshold, PASS
// otherwise.
func classifyPolicy(score float64) string {
	if score >= 80 {
		return "FAIL"
	}
	return "PASS"
}

// Policy scores the event from its declared type, then fails events
// scoring at or above 80.
func Policy(_ context.Context, state *domain.ComplianceState) error {
	score := scoreFor(eventType(state.RawEvent))
	state.RiskScore = score

	result := classifyPolicy(score)
	state.PolicyResult = result

	appendAudit(state, "policy", "COMPLIANCE_POLICY_EVALUATED", map[string]any{
		"risk_score":    score,
		"policy_result": result,
	})
	return nil
}

// Decision combines the approval-required flag and policy outcome into
// a single final decision.
func Decision(_ context.Context, state *domain.ComplianceState) error {
	var decision string
	switch {
	case state.ApprovalRequired:
		decision = "REQUIRE_APPROVAL"
	case state.PolicyResult == "FAIL":
		decision = "REJECTED"
	default:
		decision = "APPROVED"
		state.ApprovalRequired = false
	}
	state.FinalDecision = decision
	appendAudit(state, "decision", "COMPLIANCE_DECISION_MADE", map[string]any{
		"final_decision":    decision,
		"approval_required": state.ApprovalRequired,
	})
	return nil
}
