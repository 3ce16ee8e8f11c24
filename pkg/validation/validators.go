// Package validation implements the pure, side-effect-free predicates
// that guard event creation and status transitions. No validator here
// performs I/O; each either returns nil or a concrete *domain.*Error.
package validation

import (
	"encoding/json"
	"strings"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
)

const (
	RiskScoreMin = 0.0
	RiskScoreMax = 100.0
)

// ValidateTenantID fails with InvalidTenantError if tenantID, once
// trimmed, is empty.
func ValidateTenantID(tenantID string) error {
	if strings.TrimSpace(tenantID) == "" {
		return domain.NewInvalidTenantError("tenant_id must not be empty")
	}
	return nil
}

// ValidateRiskScore allows a nil score through unconditionally;
// otherwise the score must fall in [RiskScoreMin, RiskScoreMax].
func ValidateRiskScore(score *float64) error {
	if score == nil {
		return nil
	}
	if *score < RiskScoreMin || *score > RiskScoreMax {
		return domain.NewRiskThresholdViolationError(
			"risk_score must be between 0 and 100, got " + trimFloat(*score))
	}
	return nil
}

// ValidateMetadataJSONSerializable fails with InvalidMetadataError if
// metadata cannot be round-tripped through encoding/json.
func ValidateMetadataJSONSerializable(metadata map[string]any) error {
	if metadata == nil {
		return nil
	}
	if _, err := json.Marshal(metadata); err != nil {
		return domain.NewInvalidMetadataError("metadata must be JSON-serializable")
	}
	return nil
}

// ValidateStatusTransition fails with InvalidStatusTransitionError if
// the (from, to) pair is not in the status-transition matrix.
func ValidateStatusTransition(from, to domain.EventStatus) error {
	if !domain.IsValidStatusTransition(from, to) {
		return domain.NewInvalidStatusTransitionError(string(from), string(to))
	}
	return nil
}

// ValidateRiskEventCreateRequest checks tenant, risk score, and version
// on a creation request for a risk event.
func ValidateRiskEventCreateRequest(req domain.RiskEventCreateRequest) error {
	if err := ValidateTenantID(req.TenantID); err != nil {
		return err
	}
	if err := ValidateRiskScore(req.RiskScore); err != nil {
		return err
	}
	return validateVersion(req.Version)
}

// ValidateComplianceEventCreateRequest checks tenant and version on a
// creation request for a compliance event.
func ValidateComplianceEventCreateRequest(req domain.ComplianceEventCreateRequest) error {
	if err := ValidateTenantID(req.TenantID); err != nil {
		return err
	}
	return validateVersion(req.Version)
}

// ValidateRiskEvent applies the entity-level checks (tenant, score) to
// an already-materialized RiskEvent.
func ValidateRiskEvent(ev *domain.RiskEvent) error {
	if err := ValidateTenantID(ev.TenantID); err != nil {
		return err
	}
	return ValidateRiskScore(ev.RiskScore)
}

// ValidateComplianceEvent applies the entity-level tenant check to an
// already-materialized ComplianceEvent.
func ValidateComplianceEvent(ev *domain.ComplianceEvent) error {
	return ValidateTenantID(ev.TenantID)
}

func validateVersion(version string) error {
	if strings.TrimSpace(version) == "" {
		return domain.NewDomainValidationError("version must not be empty")
	}
	return nil
}

// trimFloat renders a float without forcing scientific notation, good
// enough for embedding a score in an error message.
func trimFloat(f float64) string {
	b, _ := json.Marshal(f)
	return string(b)
}
