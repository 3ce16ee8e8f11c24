package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/audit"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/classify"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/config"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/metrics"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/registry"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/store"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/compliance"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/risk"
	"github.com/manasaranjanbehera/ai-risk-engine/pkg/workflow/trigger"
	"github.com/prometheus/client_golang/prometheus"
)

// collaborators bundles everything a workflow run needs, built once
// from cfg and reused across "run" and "serve".
type collaborators struct {
	auditLogger    audit.Logger
	stateStore     store.StateStore
	metrics        *metrics.Collector
	classifier     *classify.FailureClassifier
	modelRegistry  *registry.ModelRegistry
	promptRegistry *registry.PromptRegistry
	promRegistry   *prometheus.Registry
	trigger        trigger.Trigger

	closeFns []func() error
}

func (c *collaborators) Close() {
	for _, fn := range c.closeFns {
		_ = fn()
	}
}

func buildCollaborators(cfg *config.Config) (*collaborators, error) {
	c := &collaborators{
		classifier:   classify.NewFailureClassifier(),
		promRegistry: prometheus.NewRegistry(),
		trigger:      trigger.NewNoopTrigger(nil),
	}
	c.metrics = metrics.NewCollectorWithPrometheus(c.promRegistry)

	switch cfg.AuditSinkBackend {
	case "stdout", "":
		c.auditLogger = audit.NewLogger()

	case "postgres":
		db, err := sql.Open("postgres", cfg.AuditSinkDSN)
		if err != nil {
			return nil, fmt.Errorf("opening postgres audit sink: %w", err)
		}
		c.closeFns = append(c.closeFns, db.Close)

		pgAudit := audit.NewPostgresLogger(db)
		if err := pgAudit.Init(context.Background()); err != nil {
			return nil, fmt.Errorf("initializing postgres audit sink: %w", err)
		}
		c.auditLogger = pgAudit

	default:
		return nil, fmt.Errorf("unsupported AUDIT_SINK_BACKEND %q", cfg.AuditSinkBackend)
	}

	var modelRepo registry.ModelRepository
	var promptRepo registry.PromptRepository

	switch cfg.StateStoreBackend {
	case "memory", "":
		c.stateStore = store.NewInMemoryStateStore()
		modelRepo = registry.NewInMemoryModelRepository()
		promptRepo = registry.NewInMemoryPromptRepository()

	case "postgres":
		db, err := sql.Open("postgres", cfg.StateStoreDSN)
		if err != nil {
			return nil, fmt.Errorf("opening postgres: %w", err)
		}
		c.closeFns = append(c.closeFns, db.Close)

		pgState := store.NewPostgresStateStore(db)
		if err := pgState.Init(context.Background()); err != nil {
			return nil, fmt.Errorf("initializing postgres state store: %w", err)
		}
		c.stateStore = pgState

		pgModels := registry.NewPostgresModelRepository(db)
		if err := pgModels.Init(context.Background()); err != nil {
			return nil, fmt.Errorf("initializing postgres model repository: %w", err)
		}
		pgPrompts := registry.NewPostgresPromptRepository(db)
		if err := pgPrompts.Init(context.Background()); err != nil {
			return nil, fmt.Errorf("initializing postgres prompt repository: %w", err)
		}
		modelRepo, promptRepo = pgModels, pgPrompts

	case "sqlite":
		db, err := sql.Open("sqlite", cfg.StateStoreDSN)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite: %w", err)
		}
		c.closeFns = append(c.closeFns, db.Close)

		sqliteState, err := store.NewSQLiteStateStore(db)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite state store: %w", err)
		}
		c.stateStore = sqliteState
		modelRepo = registry.NewInMemoryModelRepository()
		promptRepo = registry.NewInMemoryPromptRepository()

	case "redis":
		// StateStoreDSN is treated as a bare addr ("host:port"); auth
		// and DB selection aren't exposed through Config today.
		c.stateStore = store.NewRedisStateStore(cfg.StateStoreDSN, "", 0)
		modelRepo = registry.NewInMemoryModelRepository()
		promptRepo = registry.NewInMemoryPromptRepository()

	default:
		return nil, fmt.Errorf("unsupported STATE_STORE_BACKEND %q", cfg.StateStoreBackend)
	}

	c.modelRegistry = registry.NewModelRegistry(modelRepo, c.auditLogger)
	c.promptRegistry = registry.NewPromptRegistry(promptRepo, c.auditLogger)

	if cfg.BootstrapApproveGovernance {
		if err := bootstrapApproveGovernance(context.Background(), c); err != nil {
			return nil, fmt.Errorf("bootstrap-approving governance: %w", err)
		}
	}

	return c, nil
}

// bootstrapApproveGovernance registers and approves version "1" of
// every workflow's model/prompt pair, so a freshly started process can
// run events without a separate out-of-band approval step. Meant for
// local runs and tests; production deployments approve out-of-band.
func bootstrapApproveGovernance(ctx context.Context, c *collaborators) error {
	const version, checksum, template, correlationID, tenantID = "1", "bootstrap", "bootstrap placeholder", "bootstrap", "bootstrap"

	for _, name := range []string{risk.ModelName, compliance.ModelName} {
		if _, err := c.modelRegistry.RegisterModel(ctx, name, version, checksum, correlationID, tenantID); err != nil {
			return err
		}
		if err := c.modelRegistry.Approve(ctx, name, version, correlationID, tenantID); err != nil {
			return err
		}
	}
	for _, name := range []string{risk.PromptName, compliance.PromptName} {
		if _, err := c.promptRegistry.RegisterPrompt(ctx, name, version, template, correlationID, tenantID); err != nil {
			return err
		}
		if err := c.promptRegistry.Approve(ctx, name, version, correlationID, tenantID); err != nil {
			return err
		}
	}
	return nil
}
