package config

import "os"

// Config holds process-wide configuration for the CLI entrypoint.
type Config struct {
	MetricsAddr string
	LogLevel    string

	StateStoreBackend string // "memory", "postgres", "redis", "sqlite"
	StateStoreDSN     string

	AuditSinkBackend string // "stdout", "postgres"
	AuditSinkDSN     string // only read when AuditSinkBackend is "postgres"

	// BootstrapApproveGovernance, when true, auto-approves the four
	// hard-coded model/prompt names at startup. Meant for local runs
	// and tests only; production deployments approve out-of-band.
	BootstrapApproveGovernance bool
}

// Load loads configuration from environment variables, the way the
// teacher's own Load() does: read, default, return.
func Load() *Config {
	metricsAddr := os.Getenv("METRICS_ADDR")
	if metricsAddr == "" {
		metricsAddr = ":9090"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "INFO"
	}

	stateStoreBackend := os.Getenv("STATE_STORE_BACKEND")
	if stateStoreBackend == "" {
		stateStoreBackend = "memory"
	}

	stateStoreDSN := os.Getenv("STATE_STORE_DSN")
	if stateStoreDSN == "" {
		// Default to local generic postgres
		stateStoreDSN = "postgres://ai-risk-engine@localhost:5432/ai_risk_engine?sslmode=disable"
	}

	auditSinkBackend := os.Getenv("AUDIT_SINK_BACKEND")
	if auditSinkBackend == "" {
		auditSinkBackend = "stdout"
	}

	auditSinkDSN := os.Getenv("AUDIT_SINK_DSN")
	if auditSinkDSN == "" {
		auditSinkDSN = stateStoreDSN
	}

	bootstrapApprove := os.Getenv("BOOTSTRAP_APPROVE_GOVERNANCE") == "true"

	return &Config{
		MetricsAddr:                metricsAddr,
		LogLevel:                   logLevel,
		StateStoreBackend:          stateStoreBackend,
		StateStoreDSN:              stateStoreDSN,
		AuditSinkBackend:           auditSinkBackend,
		AuditSinkDSN:               auditSinkDSN,
		BootstrapApproveGovernance: bootstrapApprove,
	}
}
