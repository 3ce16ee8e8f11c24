package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"
)

// PostgresStateStore persists RiskState/ComplianceState as JSONB,
// upserting by event_id the way the teacher's idempotency store
// upserts by key.
type PostgresStateStore struct {
	db *sql.DB
}

func NewPostgresStateStore(db *sql.DB) *PostgresStateStore {
	return &PostgresStateStore{db: db}
}

const pgStateStoreSchema = `
CREATE TABLE IF NOT EXISTS risk_states (
	event_id TEXT PRIMARY KEY,
	state_json JSONB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS compliance_states (
	event_id TEXT PRIMARY KEY,
	state_json JSONB NOT NULL,
	updated_at TIMESTAMP NOT NULL DEFAULT now()
);
`

func (s *PostgresStateStore) Init(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, pgStateStoreSchema)
	return err
}

func (s *PostgresStateStore) GetRiskState(ctx context.Context, eventID string) (*domain.RiskState, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT state_json FROM risk_states WHERE event_id = $1`, eventID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	var state domain.RiskState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *PostgresStateStore) SetRiskState(ctx context.Context, eventID string, state *domain.RiskState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO risk_states (event_id, state_json, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (event_id) DO UPDATE SET state_json = $2, updated_at = now()
	`, eventID, raw)
	return err
}

func (s *PostgresStateStore) GetComplianceState(ctx context.Context, eventID string) (*domain.ComplianceState, error) {
	var raw []byte
	err := s.db.QueryRowContext(ctx, `SELECT state_json FROM compliance_states WHERE event_id = $1`, eventID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	var state domain.ComplianceState
	if err := json.Unmarshal(raw, &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *PostgresStateStore) SetComplianceState(ctx context.Context, eventID string, state *domain.ComplianceState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO compliance_states (event_id, state_json, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (event_id) DO UPDATE SET state_json = $2, updated_at = now()
	`, eventID, raw)
	return err
}
