package classify_test

import (
	"errors"
	"testing"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/classify"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
	"github.com/stretchr/testify/assert"
)

func TestFailureClassifier_MapsExceptions(t *testing.T) {
	c := classify.NewFailureClassifier()

	assert.Equal(t, classify.CategoryValidation, c.Classify(domain.NewDomainValidationError("x")))
	assert.Equal(t, classify.CategoryValidation, c.Classify(domain.NewInvalidTenantError("x")))
	assert.Equal(t, classify.CategoryValidation, c.Classify(domain.NewRiskThresholdViolationError("x")))
	assert.Equal(t, classify.CategoryValidation, c.Classify(domain.NewInvalidMetadataError("x")))
	assert.Equal(t, classify.CategoryValidation, c.Classify(domain.NewInvalidStatusTransitionError("received", "approved")))

	assert.Equal(t, classify.CategoryWorkflow, c.Classify(domain.NewIdempotencyConflictError("x")))
	assert.Equal(t, classify.CategoryWorkflow, c.Classify(domain.NewModelConflictError("x")))
	assert.Equal(t, classify.CategoryWorkflow, c.Classify(domain.NewInvalidModelStateTransition("x")))

	assert.Equal(t, classify.CategoryGovernance, c.Classify(domain.NewModelNotApprovedError("x")))
	assert.Equal(t, classify.CategoryGovernance, c.Classify(domain.NewPromptNotApprovedError("x")))

	assert.Equal(t, classify.CategoryUnknown, c.Classify(errors.New("boom")))
}
