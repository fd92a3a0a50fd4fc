package jobs

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

const (
	JobSendPayslip        = "send_payslip"
	JobPurgeRevokedTokens = "purge_revoked_tokens"
)

const (
	StatusRunning   = "running"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type RunFunc func(context.Context) (any, error)

// RunRecorder persists one row per job execution.
type RunRecorder interface {
	Start(ctx context.Context, jobType string) (string, error)
	Finish(ctx context.Context, runID, status string, details []byte) error
}

const defaultDrainTimeout = 30 * time.Second

type Service struct {
	recorder RunRecorder
	queue    chan job
	wg       sync.WaitGroup

	// DrainTimeout bounds how long queued jobs may still run after shutdown.
	DrainTimeout time.Duration
}

type job struct {
	Type string
	Run  RunFunc
}

func New(recorder RunRecorder) *Service {
	return &Service{
		recorder:     recorder,
		queue:        make(chan job, 128),
		DrainTimeout: defaultDrainTimeout,
	}
}

// Start launches the queue worker. When ctx is cancelled the worker drains
// what is already queued before it exits.
func (s *Service) Start(ctx context.Context) {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.worker(ctx)
	}()
}

// Schedule runs fn every interval until ctx is cancelled. A non-positive
// interval disables the schedule.
func (s *Service) Schedule(ctx context.Context, jobType string, interval time.Duration, run RunFunc) {
	if interval <= 0 {
		return
	}
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Enqueue(jobType, run)
			}
		}
	}()
}

// Enqueue hands a job to the worker. It reports false when the queue is full.
func (s *Service) Enqueue(jobType string, run RunFunc) bool {
	select {
	case s.queue <- job{Type: jobType, Run: run}:
		return true
	default:
		slog.Warn("job queue full", "jobType", jobType)
		return false
	}
}

func (s *Service) RunNow(ctx context.Context, jobType string, run RunFunc) (any, error) {
	return s.runJob(ctx, job{Type: jobType, Run: run})
}

// Wait blocks until the worker has drained the queue and schedules have exited.
func (s *Service) Wait() {
	s.wg.Wait()
}

func (s *Service) worker(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			s.drain(ctx)
			return
		case j := <-s.queue:
			if ctx.Err() != nil {
				s.drain(ctx, j)
				return
			}
			if _, err := s.runJob(ctx, j); err != nil {
				slog.Warn("job run failed", "jobType", j.Type, "err", err)
			}
		}
	}
}

// drain runs the jobs left in the queue under a fresh deadline. Jobs still
// queued once the deadline passes are recorded as failed without running.
func (s *Service) drain(parent context.Context, pending ...job) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(parent), s.DrainTimeout)
	defer cancel()
	for _, j := range pending {
		s.drainOne(ctx, j)
	}
	for {
		select {
		case j := <-s.queue:
			s.drainOne(ctx, j)
		default:
			return
		}
	}
}

func (s *Service) drainOne(ctx context.Context, j job) {
	if ctx.Err() != nil {
		s.abandon(j)
		return
	}
	if _, err := s.runJob(ctx, j); err != nil {
		slog.Warn("job run failed during drain", "jobType", j.Type, "err", err)
	}
}

func (s *Service) abandon(j job) {
	slog.Warn("job abandoned at shutdown", "jobType", j.Type)
	if s.recorder == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	runID, err := s.recorder.Start(ctx, j.Type)
	if err != nil {
		slog.Warn("job run insert failed", "jobType", j.Type, "err", err)
		return
	}
	if err := s.recorder.Finish(ctx, runID, StatusFailed, []byte(`{"error":"abandoned at shutdown"}`)); err != nil {
		slog.Warn("job run update failed", "err", err)
	}
}

func (s *Service) runJob(ctx context.Context, j job) (any, error) {
	runID := ""
	if s.recorder != nil {
		id, err := s.recorder.Start(ctx, j.Type)
		if err != nil {
			slog.Warn("job run insert failed", "jobType", j.Type, "err", err)
		}
		runID = id
	}

	details, err := j.Run(ctx)
	status := StatusCompleted
	if err != nil {
		status = StatusFailed
		details = map[string]any{"error": err.Error(), "details": details}
	}
	detailsJSON, marshalErr := json.Marshal(details)
	if marshalErr != nil {
		slog.Warn("job details marshal failed", "err", marshalErr)
		detailsJSON = []byte("{}")
	}
	if runID != "" {
		// The run may have used up ctx; the outcome is still written.
		finishCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if updErr := s.recorder.Finish(finishCtx, runID, status, detailsJSON); updErr != nil {
			slog.Warn("job run update failed", "err", updErr)
		}
	}
	return details, err
}

type PgRecorder struct {
	DB *pgxpool.Pool
}

func NewPgRecorder(db *pgxpool.Pool) *PgRecorder {
	return &PgRecorder{DB: db}
}

func (r *PgRecorder) Start(ctx context.Context, jobType string) (string, error) {
	var id string
	err := r.DB.QueryRow(ctx, `
    INSERT INTO job_runs (job_type, status)
    VALUES ($1, $2)
    RETURNING id
  `, jobType, StatusRunning).Scan(&id)
	return id, err
}

func (r *PgRecorder) Finish(ctx context.Context, runID, status string, details []byte) error {
	_, err := r.DB.Exec(ctx, `
    UPDATE job_runs
    SET status = $1, details_json = $2, completed_at = now()
    WHERE id = $3
  `, status, details, runID)
	return err
}
