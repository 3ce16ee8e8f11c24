// Package risk implements the five-stage risk workflow: retrieval,
// policy_validation, risk_scoring, guardrails, decision. Every stage
// is a pure function of the state accumulated so far; none perform
// I/O, and each appends exactly one entry to state.AuditTrail.
package risk

import (
	"context"
	"time"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
)

// eventType reads raw_event["event_type"] as a string, defaulting to
// "" when absent or of the wrong type.
func eventType(raw map[string]any) string {
	v, ok := raw["event_type"]
	if !ok {
		return ""
	}
	s, _ := v.(string)
	return s
}

// category reads raw_event.metadata.category, returning "" when either
// level is absent or of the wrong shape.
func category(raw map[string]any) string {
	meta, ok := raw["metadata"].(map[string]any)
	if !ok {
		return ""
	}
	s, _ := meta["category"].(string)
	return s
}

func appendAudit(state *domain.RiskState, node, action string, extra map[string]any) {
	state.AuditTrail = append(state.AuditTrail, domain.StageAuditEntry{
		Node:          node,
		Action:        action,
		Timestamp:     time.Now().UTC(),
		CorrelationID: state.CorrelationID,
		Extra:         extra,
	})
}

// Retrieval populates state.RetrievedContext from the raw event. In
// this deployment there is no real context store to call out to; the
// raw event itself is the retrieved context.
func Retrieval(_ context.Context, state *domain.RiskState) error {
	state.RetrievedContext = state.RawEvent
	appendAudit(state, "retrieval", "CONTEXT_RETRIEVED", map[string]any{"retrieved_context": state.RetrievedContext})
	return nil
}

// PolicyValidation fails a "sensitive" category event, otherwise passes.
func PolicyValidation(_ context.Context, state *domain.RiskState) error {
	result := "PASS"
	if category(state.RawEvent) == "sensitive" {
		result = "FAIL"
	}
	state.PolicyResult = result
	appendAudit(state, "policy_validation", "POLICY_EVALUATED", map[string]any{"policy_result": result})
	return nil
}

// RiskScoring assigns a deterministic score from the event's declared
// type. This is a stub: no ML inference is performed anywhere in this
// module.
func RiskScoring(_ context.Context, state *domain.RiskState) error {
	var score float64
	switch eventType(state.RawEvent) {
	case "high_risk":
		score = 85.0
	case "low_risk":
		score = 15.0
	default:
		score = 30.0
	}
	state.RiskScore = score
	appendAudit(state, "risk_scoring", "RISK_SCORED", map[string]any{"risk_score": score})
	return nil
}

// Guardrails flags a VIOLATION when the risk score exceeds 90, OK otherwise.
func Guardrails(_ context.Context, state *domain.RiskState) error {
	result := "OK"
	if state.RiskScore > 90 {
		result = "VIOLATION"
	}
	state.GuardrailResult = result
	appendAudit(state, "guardrails", "GUARDRAIL_CHECKED", map[string]any{"guardrail_result": result})
	return nil
}

// Decision combines the guardrail, policy, and score outcomes into a
// single final decision.
func Decision(_ context.Context, state *domain.RiskState) error {
	var decision string
	switch {
	case state.GuardrailResult == "VIOLATION":
		decision = "REJECTED"
	case state.PolicyResult == "FAIL":
		decision = "REQUIRE_APPROVAL"
	case state.RiskScore >= 70:
		decision = "REQUIRE_APPROVAL"
	default:
		decision = "APPROVED"
	}
	state.FinalDecision = decision
	appendAudit(state, "decision", "DECISION_MADE", map[string]any{"final_decision": decision})
	return nil
}
