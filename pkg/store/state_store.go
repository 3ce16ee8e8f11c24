package store

import (
	"context"
	"errors"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
)

// ErrStateNotFound is returned by GetRiskState/GetComplianceState when
// no state has been recorded for the given event ID yet. Workflow
// engines treat this as "run fresh", not as an infrastructure error.
var ErrStateNotFound = errors.New("store: state not found")

// StateStore is the idempotency cache the workflow engine consults
// before running a workflow and writes to after a successful run.
// Implementations must be linearizable per event ID: concurrent
// Set calls for the same ID must not interleave into a torn write.
type StateStore interface {
	GetRiskState(ctx context.Context, eventID string) (*domain.RiskState, error)
	SetRiskState(ctx context.Context, eventID string, state *domain.RiskState) error
	GetComplianceState(ctx context.Context, eventID string) (*domain.ComplianceState, error)
	SetComplianceState(ctx context.Context, eventID string, state *domain.ComplianceState) error
}
