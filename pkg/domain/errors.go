// Package domain defines the event entities, status lifecycle, and
// domain error taxonomy for the governance pipeline.
package domain

import "fmt"

// DomainError is the base of the domain error hierarchy. All domain
// validation failures are DomainError (directly or via a subtype).
type DomainError struct {
	Message string
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

func (e *DomainError) Error() string {
	return e.Message
}

// DomainValidationError signals a generic business-rule violation
// (e.g. a missing required field) that doesn't warrant its own type.
type DomainValidationError struct {
	DomainError
}

func NewDomainValidationError(message string) *DomainValidationError {
	return &DomainValidationError{DomainError{Message: message}}
}

// Unwrap lets errors.As/errors.Is match against the embedded DomainError.
func (e *DomainValidationError) Unwrap() error { return &e.DomainError }

// InvalidStatusTransitionError is raised when an event's status-transition
// request falls outside the matrix in the status-transition matrix.
type InvalidStatusTransitionError struct {
	DomainError
	From string
	To   string
}

func NewInvalidStatusTransitionError(from, to string) *InvalidStatusTransitionError {
	return &InvalidStatusTransitionError{
		DomainError: DomainError{Message: fmt.Sprintf("invalid status transition from %s to %s", from, to)},
		From:        from,
		To:          to,
	}
}

func (e *InvalidStatusTransitionError) Unwrap() error { return &e.DomainError }

// InvalidTenantError is raised when a tenant_id fails validation.
type InvalidTenantError struct {
	DomainError
}

func NewInvalidTenantError(message string) *InvalidTenantError {
	return &InvalidTenantError{DomainError{Message: message}}
}

func (e *InvalidTenantError) Unwrap() error { return &e.DomainError }

// RiskThresholdViolationError is raised when a risk_score falls outside [0, 100].
type RiskThresholdViolationError struct {
	DomainError
}

func NewRiskThresholdViolationError(message string) *RiskThresholdViolationError {
	return &RiskThresholdViolationError{DomainError{Message: message}}
}

func (e *RiskThresholdViolationError) Unwrap() error { return &e.DomainError }

// InvalidMetadataError is raised when event metadata is not JSON-serializable.
type InvalidMetadataError struct {
	DomainError
}

func NewInvalidMetadataError(message string) *InvalidMetadataError {
	return &InvalidMetadataError{DomainError{Message: message}}
}

func (e *InvalidMetadataError) Unwrap() error { return &e.DomainError }

// --- Application-layer errors ---

// IdempotencyConflictError signals a conflict in the idempotency cache
// (e.g. a state-store write collision on the same event_id).
type IdempotencyConflictError struct {
	Message string
}

func NewIdempotencyConflictError(message string) *IdempotencyConflictError {
	return &IdempotencyConflictError{Message: message}
}

func (e *IdempotencyConflictError) Error() string { return e.Message }

// --- Governance-layer errors ---

// ModelNotApprovedError blocks workflow execution when the governance
// gate cannot find an APPROVED model record for the requested version.
type ModelNotApprovedError struct {
	Message string
}

func NewModelNotApprovedError(message string) *ModelNotApprovedError {
	return &ModelNotApprovedError{Message: message}
}

func (e *ModelNotApprovedError) Error() string { return e.Message }

// PromptNotApprovedError is the prompt-registry analogue of ModelNotApprovedError.
type PromptNotApprovedError struct {
	Message string
}

func NewPromptNotApprovedError(message string) *PromptNotApprovedError {
	return &PromptNotApprovedError{Message: message}
}

func (e *PromptNotApprovedError) Error() string { return e.Message }

// ModelConflictError is raised by ModelRegistry.RegisterModel when the
// same (name, version) is registered with a different checksum.
type ModelConflictError struct {
	Message string
}

func NewModelConflictError(message string) *ModelConflictError {
	return &ModelConflictError{Message: message}
}

func (e *ModelConflictError) Error() string { return e.Message }

// InvalidModelStateTransition is raised when Approve is called on a
// model record that is not currently REGISTERED.
type InvalidModelStateTransition struct {
	Message string
}

func NewInvalidModelStateTransition(message string) *InvalidModelStateTransition {
	return &InvalidModelStateTransition{Message: message}
}

func (e *InvalidModelStateTransition) Error() string { return e.Message }
