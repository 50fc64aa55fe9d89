package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/OFFIS-RIT/greenlens/pkg/audit"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const upsertRun = `
INSERT INTO audit_runs (id, company_name, status, stage, error, result, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
ON CONFLICT (id) DO UPDATE SET
	status = EXCLUDED.status,
	stage = EXCLUDED.stage,
	error = EXCLUDED.error,
	result = EXCLUDED.result,
	updated_at = EXCLUDED.updated_at`

const selectRun = `
SELECT id, company_name, status, stage, error, result, created_at, updated_at
FROM audit_runs
WHERE id = $1`

type pgxIConn interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, optionsAndArgs ...any) pgx.Row
}

// PgxStore keeps runs in the audit_runs table with the result as JSONB.
type PgxStore struct {
	conn pgxIConn
}

func NewPgxStore(conn pgxIConn) *PgxStore {
	return &PgxStore{conn: conn}
}

func (s *PgxStore) Put(ctx context.Context, run Run) error {
	var result []byte
	if run.Result != nil {
		var err error
		result, err = json.Marshal(run.Result)
		if err != nil {
			return err
		}
	}
	_, err := s.conn.Exec(ctx, upsertRun,
		run.ID, run.CompanyName, string(run.Status), run.Stage, run.Error, result, run.CreatedAt, run.UpdatedAt)
	return err
}

func (s *PgxStore) Get(ctx context.Context, id string) (Run, error) {
	var (
		run    Run
		status string
		result []byte
	)
	err := s.conn.QueryRow(ctx, selectRun, id).Scan(
		&run.ID, &run.CompanyName, &status, &run.Stage, &run.Error, &result, &run.CreatedAt, &run.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Run{}, ErrRunNotFound
	}
	if err != nil {
		return Run{}, err
	}
	run.Status = Status(status)

	if len(result) > 0 {
		var state audit.State
		if err := json.Unmarshal(result, &state); err != nil {
			return Run{}, err
		}
		run.Result = &state
	}
	return run, nil
}

const failStaleRuns = `
UPDATE audit_runs
SET status = 'failed', error = $2, updated_at = now()
WHERE status = 'running' AND updated_at < $1`

// FailStaleRuns marks runs that have not progressed since before as failed.
func (s *PgxStore) FailStaleRuns(ctx context.Context, before time.Time, message string) (int64, error) {
	tag, err := s.conn.Exec(ctx, failStaleRuns, before, message)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
