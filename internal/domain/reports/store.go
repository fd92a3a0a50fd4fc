package reports

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var (
	ErrJobRunNotFound = errors.New("job run not found")
	ErrInvalidRange   = errors.New("startedTo is before startedFrom")
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// JobRun is one execution of a background job as recorded in job_runs.
type JobRun struct {
	ID          string         `json:"id"`
	JobType     string         `json:"jobType"`
	Status      string         `json:"status"`
	Details     map[string]any `json:"details"`
	StartedAt   time.Time      `json:"startedAt"`
	CompletedAt *time.Time     `json:"completedAt,omitempty"`
}

type JobRunFilter struct {
	JobType     string
	Status      string
	StartedFrom *time.Time
	StartedTo   *time.Time
}

func (f JobRunFilter) predicate() sq.And {
	where := sq.And{}
	if value := strings.TrimSpace(f.JobType); value != "" {
		where = append(where, sq.Eq{"job_type": value})
	}
	if value := strings.TrimSpace(f.Status); value != "" {
		where = append(where, sq.Eq{"status": value})
	}
	if f.StartedFrom != nil && !f.StartedFrom.IsZero() {
		where = append(where, sq.GtOrEq{"started_at": *f.StartedFrom})
	}
	if f.StartedTo != nil && !f.StartedTo.IsZero() {
		where = append(where, sq.LtOrEq{"started_at": *f.StartedTo})
	}
	return where
}

func (f JobRunFilter) filtered(b sq.SelectBuilder) sq.SelectBuilder {
	if where := f.predicate(); len(where) > 0 {
		return b.Where(where)
	}
	return b
}

const jobRunColumns = "id, job_type, status, COALESCE(details_json, '{}'::jsonb), started_at, completed_at"

func ListJobRunsSQL(filter JobRunFilter, limit, offset int) (string, []any, error) {
	return filter.filtered(psql.Select(jobRunColumns).From("job_runs")).
		OrderBy("started_at DESC", "id DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset)).
		ToSql()
}

func CountJobRunsSQL(filter JobRunFilter) (string, []any, error) {
	return filter.filtered(psql.Select("COUNT(1)").From("job_runs")).ToSql()
}

type Store struct {
	DB *pgxpool.Pool
}

func NewStore(db *pgxpool.Pool) *Store {
	return &Store{DB: db}
}

func (s *Store) ListJobRuns(ctx context.Context, filter JobRunFilter, limit, offset int) ([]JobRun, error) {
	query, args, err := ListJobRunsSQL(filter, limit, offset)
	if err != nil {
		return nil, err
	}
	rows, err := s.DB.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	runs := []JobRun{}
	for rows.Next() {
		run, err := scanJobRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

func (s *Store) CountJobRuns(ctx context.Context, filter JobRunFilter) (int64, error) {
	query, args, err := CountJobRunsSQL(filter)
	if err != nil {
		return 0, err
	}
	var total int64
	if err := s.DB.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) JobRunByID(ctx context.Context, runID string) (JobRun, error) {
	query, args, err := psql.Select(jobRunColumns).From("job_runs").Where(sq.Eq{"id": runID}).ToSql()
	if err != nil {
		return JobRun{}, err
	}
	run, err := scanJobRun(s.DB.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return JobRun{}, ErrJobRunNotFound
	}
	return run, err
}

func scanJobRun(row pgx.Row) (JobRun, error) {
	var (
		run        JobRun
		detailsRaw []byte
	)
	if err := row.Scan(&run.ID, &run.JobType, &run.Status, &detailsRaw, &run.StartedAt, &run.CompletedAt); err != nil {
		return JobRun{}, err
	}
	run.Details = decodeDetails(detailsRaw)
	return run, nil
}

func decodeDetails(raw []byte) map[string]any {
	if len(raw) == 0 {
		return map[string]any{}
	}
	details := map[string]any{}
	if err := json.Unmarshal(raw, &details); err != nil {
		return map[string]any{
			"raw": string(raw),
		}
	}
	return details
}
