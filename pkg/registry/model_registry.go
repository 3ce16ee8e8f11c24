package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/audit"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
)

// ModelRegistry is the governance gate for models: a version must be
// explicitly Approved, after being Registered, before a workflow may
// use it.
type ModelRegistry struct {
	repository  ModelRepository
	auditLogger audit.Logger
}

// NewModelRegistry constructs a ModelRegistry over repository, logging
// registration and approval actions to auditLogger.
func NewModelRegistry(repository ModelRepository, auditLogger audit.Logger) *ModelRegistry {
	return &ModelRegistry{repository: repository, auditLogger: auditLogger}
}

// RegisterModel records a new (name, version) pair in REGISTERED
// status. Re-registering the same version with a different checksum
// is a ModelConflictError; re-registering with the same checksum is a
// no-op that returns the existing record.
func (r *ModelRegistry) RegisterModel(ctx context.Context, name, version, checksum, correlationID, tenantID string) (*ModelRecord, error) {
	existing, err := r.repository.Get(ctx, name, version)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		if existing.Checksum != checksum {
			return nil, domain.NewModelConflictError(
				fmt.Sprintf("model %s version %s already registered with a different checksum", name, version))
		}
		return existing, nil
	}

	record := &ModelRecord{
		Name:          name,
		Version:       version,
		Checksum:      checksum,
		Status:        StatusRegistered,
		TenantID:      tenantID,
		CorrelationID: correlationID,
		RegisteredAt:  time.Now().UTC(),
	}
	if err := r.repository.Save(ctx, record); err != nil {
		return nil, err
	}

	_ = r.auditLogger.LogAction(ctx, "MODEL_REGISTERED", tenantID, correlationID, "model", name, "", map[string]any{"version": version})
	return record, nil
}

// Approve moves (name, version) from REGISTERED to APPROVED. Approving
// a record that is not currently REGISTERED is an
// InvalidModelStateTransition.
func (r *ModelRegistry) Approve(ctx context.Context, name, version, correlationID, tenantID string) error {
	record, err := r.repository.Get(ctx, name, version)
	if err != nil {
		return err
	}
	if record.Status != StatusRegistered {
		return domain.NewInvalidModelStateTransition(
			fmt.Sprintf("model %s version %s is not in REGISTERED status", name, version))
	}

	now := time.Now().UTC()
	record.Status = StatusApproved
	record.ApprovedAt = &now
	if err := r.repository.Save(ctx, record); err != nil {
		return err
	}

	_ = r.auditLogger.LogAction(ctx, "MODEL_APPROVED", tenantID, correlationID, "model", name, "", map[string]any{"version": version})
	return nil
}

// Get returns the (name, version) record, or ErrRecordNotFound.
func (r *ModelRegistry) Get(ctx context.Context, name, version string) (*ModelRecord, error) {
	return r.repository.Get(ctx, name, version)
}

// GetLatest returns the most recently registered version of name.
func (r *ModelRegistry) GetLatest(ctx context.Context, name string) (*ModelRecord, error) {
	return r.repository.GetLatest(ctx, name)
}

// IsApproved reports whether the latest registered version of name is
// APPROVED. A missing record is treated as not approved, not an error.
func (r *ModelRegistry) IsApproved(ctx context.Context, name string) (bool, error) {
	record, err := r.repository.GetLatest(ctx, name)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.Status == StatusApproved, nil
}
