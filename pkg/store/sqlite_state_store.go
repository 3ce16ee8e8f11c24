package store

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/manasaranjanbehera/ai-risk-engine/pkg/domain"

	_ "modernc.org/sqlite"
)

// SQLiteStateStore is the pure-Go, CGo-free StateStore for local
// development where spinning up a real Postgres is overkill. Same JSON-blob-per-event_id shape as
// PostgresStateStore, with SQLite's `?` placeholders.
type SQLiteStateStore struct {
	db *sql.DB
}

func NewSQLiteStateStore(db *sql.DB) (*SQLiteStateStore, error) {
	s := &SQLiteStateStore{db: db}
	if err := s.migrate(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *SQLiteStateStore) migrate() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS risk_states (
			event_id TEXT PRIMARY KEY,
			state_json TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS compliance_states (
			event_id TEXT PRIMARY KEY,
			state_json TEXT NOT NULL
		);
	`)
	return err
}

func (s *SQLiteStateStore) GetRiskState(ctx context.Context, eventID string) (*domain.RiskState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT state_json FROM risk_states WHERE event_id = ?`, eventID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	var state domain.RiskState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *SQLiteStateStore) SetRiskState(ctx context.Context, eventID string, state *domain.RiskState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO risk_states (event_id, state_json) VALUES (?, ?)
		ON CONFLICT(event_id) DO UPDATE SET state_json = excluded.state_json
	`, eventID, string(raw))
	return err
}

func (s *SQLiteStateStore) GetComplianceState(ctx context.Context, eventID string) (*domain.ComplianceState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT state_json FROM compliance_states WHERE event_id = ?`, eventID).Scan(&raw)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrStateNotFound
		}
		return nil, err
	}
	var state domain.ComplianceState
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		return nil, err
	}
	return &state, nil
}

func (s *SQLiteStateStore) SetComplianceState(ctx context.Context, eventID string, state *domain.ComplianceState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
		INSERT INTO compliance_states (event_id, state_json) VALUES (?, ?)
		ON CONFLICT(event_id) DO UPDATE SET state_json = excluded.state_json
	`, eventID, string(raw))
	return err
}
