// Package registry implements the governance gate: ModelRegistry and
// PromptRegistry track which (name, version) pairs have been approved
// for use, backed by an injected Repository so the same gate logic
// runs against an in-memory map in tests or a SQL table in production.
package registry

import (
	"context"
	"time"
)

// Status is the lifecycle of a registered model/prompt record.
type Status string

const (
	StatusRegistered Status = "REGISTERED"
	StatusApproved   Status = "APPROVED"
)

// ModelRecord is a single versioned model registration.
type ModelRecord struct {
	Name          string
	Version       string
	Checksum      string
	Status        Status
	TenantID      string
	CorrelationID string
	RegisteredAt  time.Time
	ApprovedAt    *time.Time
}

// PromptRecord is a single versioned prompt registration. Template
// holds the prompt text this version registers; it is the artifact the
// governance gate actually approves.
type PromptRecord struct {
	Name          string
	Version       string
	Template      string
	Status        Status
	TenantID      string
	CorrelationID string
	RegisteredAt  time.Time
	ApprovedAt    *time.Time
}

// ModelRepository persists ModelRecords. Get returns a specific
// version; GetLatest returns the most recently registered version by
// RegisteredAt; GetVersions returns every version, newest first.
type ModelRepository interface {
	Save(ctx context.Context, record *ModelRecord) error
	Get(ctx context.Context, name, version string) (*ModelRecord, error)
	GetLatest(ctx context.Context, name string) (*ModelRecord, error)
	GetVersions(ctx context.Context, name string) ([]*ModelRecord, error)
}

// PromptRepository is the PromptRecord analogue of ModelRepository.
type PromptRepository interface {
	Save(ctx context.Context, record *PromptRecord) error
	Get(ctx context.Context, name, version string) (*PromptRecord, error)
	GetLatest(ctx context.Context, name string) (*PromptRecord, error)
	GetVersions(ctx context.Context, name string) ([]*PromptRecord, error)
}
