// Package classify maps a raised error onto a closed set of failure
// categories, used by the workflow engine to increment labeled metrics
// without leaking exception internals into counter names.
package classify

import "github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"

// FailureCategory is the closed set of buckets an engine failure falls into.
type FailureCategory string

const (
	CategoryValidation FailureCategory = "VALIDATION_ERROR"
	CategoryWorkflow   FailureCategory = "WORKFLOW_ERROR"
	CategoryGovernance FailureCategory = "GOVERNANCE_ERROR"
	CategoryUnknown    FailureCategory = "UNKNOWN_ERROR"
)

// FailureClassifier maps an error to its FailureCategory. The mapping is
// closed: anything not explicitly matched falls through to Unknown.
type FailureClassifier struct{}

// NewFailureClassifier returns a ready-to-use classifier.
func NewFailureClassifier() *FailureClassifier {
	return &FailureClassifier{}
}

// Classify returns the FailureCategory for err. Matching walks the
// domain error taxonomy from most to least specific; every domain.*
// validation type lands on VALIDATION_ERROR, idempotency conflicts and
// model/prompt state errors land on WORKFLOW_ERROR, and the
// not-approved/governance-gate errors land on GOVERNANCE_ERROR.
func (c *FailureClassifier) Classify(err error) FailureCategory {
	switch err.(type) {
	case *domain.DomainValidationError,
		*domain.InvalidStatusTransitionError,
		*domain.InvalidTenantError,
		*domain.RiskThresholdViolationError,
		*domain.InvalidMetadataError:
		return CategoryValidation

	case *domain.IdempotencyConflictError,
		*domain.ModelConflictError,
		*domain.InvalidModelStateTransition:
		return CategoryWorkflow

	case *domain.ModelNotApprovedError,
		*domain.PromptNotApprovedError:
		return CategoryGovernance

	default:
		return CategoryUnknown
	}
}
