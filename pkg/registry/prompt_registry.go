package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/audit"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
)

// PromptRegistry is the PromptRecord analogue of ModelRegistry.
type PromptRegistry struct {
	repository  PromptRepository
	auditLogger audit.Logger
}

func NewPromptRegistry(repository PromptRepository, auditLogger audit.Logger) *PromptRegistry {
	return &PromptRegistry{repository: repository, auditLogger: auditLogger}
}

func (r *PromptRegistry) RegisterPrompt(ctx context.Context, name, version, template, correlationID, tenantID string) (*PromptRecord, error) {
	existing, err := r.repository.Get(ctx, name, version)
	if err != nil && !errors.Is(err, ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil {
		return existing, nil
	}

	record := &PromptRecord{
		Name:          name,
		Version:       version,
		Template:      template,
		Status:        StatusRegistered,
		TenantID:      tenantID,
		CorrelationID: correlationID,
		RegisteredAt:  time.Now().UTC(),
	}
	if err := r.repository.Save(ctx, record); err != nil {
		return nil, err
	}

	_ = r.auditLogger.LogAction(ctx, "PROMPT_REGISTERED", tenantID, correlationID, "prompt", name, "", map[string]any{"version": version})
	return record, nil
}

func (r *PromptRegistry) Approve(ctx context.Context, name, version, correlationID, tenantID string) error {
	record, err := r.repository.Get(ctx, name, version)
	if err != nil {
		return err
	}
	if record.Status != StatusRegistered {
		return domain.NewInvalidModelStateTransition(
			fmt.Sprintf("prompt %s version %s is not in REGISTERED status", name, version))
	}

	now := time.Now().UTC()
	record.Status = StatusApproved
	record.ApprovedAt = &now
	if err := r.repository.Save(ctx, record); err != nil {
		return err
	}

	_ = r.auditLogger.LogAction(ctx, "PROMPT_APPROVED", tenantID, correlationID, "prompt", name, "", map[string]any{"version": version})
	return nil
}

func (r *PromptRegistry) Get(ctx context.Context, name, version string) (*PromptRecord, error) {
	return r.repository.Get(ctx, name, version)
}

func (r *PromptRegistry) GetLatest(ctx context.Context, name string) (*PromptRecord, error) {
	return r.repository.GetLatest(ctx, name)
}

func (r *PromptRegistry) IsApproved(ctx context.Context, name string) (bool, error) {
	record, err := r.repository.GetLatest(ctx, name)
	if err != nil {
		if errors.Is(err, ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return record.Status == StatusApproved, nil
}
