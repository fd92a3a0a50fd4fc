package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeStore struct {
	runs       []JobRun
	listErr    error
	lastFilter JobRunFilter
	lastLimit  int
	lastOffset int
}

func (f *fakeStore) ListJobRuns(_ context.Context, filter JobRunFilter, limit, offset int) ([]JobRun, error) {
	f.lastFilter, f.lastLimit, f.lastOffset = filter, limit, offset
	if f.listErr != nil {
		return nil, f.listErr
	}
	end := offset + limit
	if end > len(f.runs) {
		end = len(f.runs)
	}
	if offset > end {
		return []JobRun{}, nil
	}
	return f.runs[offset:end], nil
}

func (f *fakeStore) CountJobRuns(context.Context, JobRunFilter) (int64, error) {
	return int64(len(f.runs)), nil
}

func (f *fakeStore) JobRunByID(_ context.Context, runID string) (JobRun, error) {
	for _, run := range f.runs {
		if run.ID == runID {
			return run, nil
		}
	}
	return JobRun{}, ErrJobRunNotFound
}

func TestJobRunsPagesAndCounts(t *testing.T) {
	store := &fakeStore{runs: []JobRun{{ID: "r1"}, {ID: "r2"}, {ID: "r3"}}}
	svc := NewService(store)

	page, err := svc.JobRuns(context.Background(), JobRunFilter{JobType: "send_payslip"}, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, int64(3), page.Total)
	require.Len(t, page.Runs, 1)
	assert.Equal(t, "r3", page.Runs[0].ID)
	assert.Equal(t, "send_payslip", store.lastFilter.JobType)
	assert.Equal(t, 2, store.lastOffset)
}

func TestJobRunsRejectsInvertedRange(t *testing.T) {
	from := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	to := from.AddDate(0, 0, -1)
	_, err := NewService(&fakeStore{}).JobRuns(context.Background(), JobRunFilter{StartedFrom: &from, StartedTo: &to}, 10, 0)
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestJobRunsPropagatesStoreError(t *testing.T) {
	boom := errors.New("boom")
	_, err := NewService(&fakeStore{listErr: boom}).JobRuns(context.Background(), JobRunFilter{}, 10, 0)
	assert.ErrorIs(t, err, boom)
}

func TestJobRunLookup(t *testing.T) {
	svc := NewService(&fakeStore{runs: []JobRun{{ID: "r1", JobType: "purge_revoked_tokens"}}})

	run, err := svc.JobRun(context.Background(), "r1")
	require.NoError(t, err)
	assert.Equal(t, "purge_revoked_tokens", run.JobType)

	_, err = svc.JobRun(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrJobRunNotFound)
}
