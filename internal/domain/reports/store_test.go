package reports

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListJobRunsSQL(t *testing.T) {
	from := time.Date(2026, time.March, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := ListJobRunsSQL(JobRunFilter{JobType: " send_payslip ", Status: "failed", StartedFrom: &from}, 25, 50)
	require.NoError(t, err)
	assert.Equal(t,
		"SELECT id, job_type, status, COALESCE(details_json, '{}'::jsonb), started_at, completed_at FROM job_runs WHERE (job_type = $1 AND status = $2 AND started_at >= $3) ORDER BY started_at DESC, id DESC LIMIT 25 OFFSET 50",
		query)
	assert.Equal(t, []any{"send_payslip", "failed", from}, args)
}

func TestCountJobRunsSQLWithoutFilter(t *testing.T) {
	query, args, err := CountJobRunsSQL(JobRunFilter{})
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(1) FROM job_runs", query)
	assert.Empty(t, args)
}

func TestCountJobRunsSQLIgnoresZeroTimes(t *testing.T) {
	var zero time.Time
	to := time.Date(2026, time.April, 1, 0, 0, 0, 0, time.UTC)
	query, args, err := CountJobRunsSQL(JobRunFilter{StartedFrom: &zero, StartedTo: &to})
	require.NoError(t, err)
	assert.Equal(t, "SELECT COUNT(1) FROM job_runs WHERE (started_at <= $1)", query)
	assert.Equal(t, []any{to}, args)
}

func TestDecodeDetails(t *testing.T) {
	assert.Equal(t, map[string]any{}, decodeDetails(nil))
	assert.Equal(t, map[string]any{"purged": float64(3)}, decodeDetails([]byte(`{"purged":3}`)))
	assert.Equal(t, map[string]any{"raw": "not json"}, decodeDetails([]byte("not json")))
}
