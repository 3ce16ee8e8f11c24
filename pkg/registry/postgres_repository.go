package registry

import (
	"context"
	"database/sql"
)

// PostgresModelRepository persists ModelRecords to a Postgres table,
// upserting on (name, version) the way the teacher's bundle registry
// upserts on (name, version) in registry_bundles.
type PostgresModelRepository struct {
	db *sql.DB
}

func NewPostgresModelRepository(db *sql.DB) *PostgresModelRepository {
	return &PostgresModelRepository{db: db}
}

const pgModelRepositorySchema = `
CREATE TABLE IF NOT EXISTS model_records (
	name TEXT NOT NULL,
	version TEXT NOT NULL,
	checksum TEXT NOT NULL,
	status TEXT NOT NULL,
	tenant_id TEXT NOT NULL,
	correlation_id TEXT NOT NULL,
	registered_at TIMESTAMP NOT NULL,
	approved_at TIMESTAMP,
	PRIMARY KEY (name, version)
);
`

func (r *PostgresModelRepository) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, pgModelRepositorySchema)
	return err
}

func (r *PostgresModelRepository) Save(ctx context.Context, record *ModelRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO model_records (name, version, checksum, status, tenant_id, correlation_id, registered_at, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name, version) DO UPDATE
		SET checksum = $3, status = $4, tenant_id = $5, correlation_id = $6, approved_at = $8
	`, record.Name, record.Version, record.Checksum, record.Status, record.TenantID, record.CorrelationID, record.RegisteredAt, record.ApprovedAt)
	return err
}

func (r *PostgresModelRepository) Get(ctx context.Context, name, version string) (*ModelRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, version, checksum, status, tenant_id, correlation_id, registered_at, approved_at
		FROM model_records WHERE name = $1 AND version = $2
	`, name, version)
	return scanModelRecord(row)
}

func (r *PostgresModelRepository) GetLatest(ctx context.Context, name string) (*ModelRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, version, checksum, status, tenant_id, correlation_id, registered_at, approved_at
		FROM model_records WHERE name = $1 ORDER BY registered_at DESC LIMIT 1
	`, name)
	return scanModelRecord(row)
}

func (r *PostgresModelRepository) GetVersions(ctx context.Context, name string) ([]*ModelRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, version, checksum, status, tenant_id, correlation_id, registered_at, approved_at
		FROM model_records WHERE name = $1 ORDER BY registered_at DESC
	`, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*ModelRecord
	for rows.Next() {
		record, err := scanModelRecordRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanModelRecord(row *sql.Row) (*ModelRecord, error) {
	record, err := scanModelRecordRows(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func scanModelRecordRows(s rowScanner) (*ModelRecord, error) {
	var record ModelRecord
	var approvedAt sql.NullTime
	if err := s.Scan(&record.Name, &record.Version, &record.Checksum, &record.Status,
		&record.TenantID, &record.CorrelationID, &record.RegisteredAt, &approvedAt); err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		record.ApprovedAt = &t
	}
	return &record, nil
}

// PostgresPromptRepository is the PromptRecord analogue of PostgresModelRepository.
type PostgresPromptRepository struct {
	db *sql.DB
}

func NewPostgresPromptRepository(db *sql.DB) *PostgresPromptRepository {
	return &PostgresPromptRepository{db: db}
}

const pgPromptRepositorySchema = `
CREATE TABLE IF NOT EXISTS prompt_records (
	name TEXT NOT NULL,
	version TEXT NOT NULL,
	template TEXT NOT NULL,
	status TEXT NOT NULL,
	tenant_id TEXT NOT NULL,
	correlation_id TEXT NOT NULL,
	registered_at TIMESTAMP NOT NULL,
	approved_at TIMESTAMP,
	PRIMARY KEY (name, version)
);
`

func (r *PostgresPromptRepository) Init(ctx context.Context) error {
	_, err := r.db.ExecContext(ctx, pgPromptRepositorySchema)
	return err
}

func (r *PostgresPromptRepository) Save(ctx context.Context, record *PromptRecord) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO prompt_records (name, version, template, status, tenant_id, correlation_id, registered_at, approved_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (name, version) DO UPDATE
		SET template = $3, status = $4, tenant_id = $5, correlation_id = $6, approved_at = $8
	`, record.Name, record.Version, record.Template, record.Status, record.TenantID, record.CorrelationID, record.RegisteredAt, record.ApprovedAt)
	return err
}

func (r *PostgresPromptRepository) Get(ctx context.Context, name, version string) (*PromptRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, version, template, status, tenant_id, correlation_id, registered_at, approved_at
		FROM prompt_records WHERE name = $1 AND version = $2
	`, name, version)
	return scanPromptRecord(row)
}

func (r *PostgresPromptRepository) GetLatest(ctx context.Context, name string) (*PromptRecord, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT name, version, template, status, tenant_id, correlation_id, registered_at, approved_at
		FROM prompt_records WHERE name = $1 ORDER BY registered_at DESC LIMIT 1
	`, name)
	return scanPromptRecord(row)
}

func (r *PostgresPromptRepository) GetVersions(ctx context.Context, name string) ([]*PromptRecord, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT name, version, template, status, tenant_id, correlation_id, registered_at, approved_at
		FROM prompt_records WHERE name = $1 ORDER BY registered_at DESC
	`, name)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var records []*PromptRecord
	for rows.Next() {
		record, err := scanPromptRecordRows(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}
	return records, rows.Err()
}

func scanPromptRecord(row *sql.Row) (*PromptRecord, error) {
	record, err := scanPromptRecordRows(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}
	return record, nil
}

func scanPromptRecordRows(s rowScanner) (*PromptRecord, error) {
	var record PromptRecord
	var approvedAt sql.NullTime
	if err := s.Scan(&record.Name, &record.Version, &record.Template, &record.Status,
		&record.TenantID, &record.CorrelationID, &record.RegisteredAt, &approvedAt); err != nil {
		return nil, err
	}
	if approvedAt.Valid {
		t := approvedAt.Time
		record.ApprovedAt = &t
	}
	return &record, nil
}
