package audit

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// PostgresLogger persists audit entries as an append-only table, the
// way the teacher's idempotency/state tables persist by insert rather
// than by mutation. Entries are never updated or deleted.
type PostgresLogger struct {
	db *sql.DB
}

func NewPostgresLogger(db *sql.DB) *PostgresLogger {
	return &PostgresLogger{db: db}
}

const pgAuditLoggerSchema = `
CREATE TABLE IF NOT EXISTS audit_entries (
	id TEXT PRIMARY KEY,
	tenant_id TEXT NOT NULL,
	correlation_id TEXT NOT NULL,
	action TEXT NOT NULL,
	resource_type TEXT NOT NULL,
	resource_id TEXT NOT NULL,
	reason TEXT,
	extra_json JSONB,
	created_at TIMESTAMP NOT NULL
);
`

func (l *PostgresLogger) Init(ctx context.Context) error {
	_, err := l.db.ExecContext(ctx, pgAuditLoggerSchema)
	return err
}

func (l *PostgresLogger) LogAction(ctx context.Context, action, tenantID, correlationID, resourceType, resourceID, reason string, extra map[string]any) error {
	var extraJSON []byte
	if extra != nil {
		var err error
		extraJSON, err = json.Marshal(extra)
		if err != nil {
			return err
		}
	}

	_, err := l.db.ExecContext(ctx, `
		INSERT INTO audit_entries (id, tenant_id, correlation_id, action, resource_type, resource_id, reason, extra_json, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`, uuid.New().String(), tenantID, correlationID, action, resourceType, resourceID, reason, extraJSON, time.Now().UTC())
	return err
}
