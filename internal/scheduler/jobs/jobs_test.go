package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CRONANANI/ezana/backend/internal/dashboard"
	"github.com/CRONANANI/ezana/backend/internal/scheduler"
	"github.com/CRONANANI/ezana/backend/pkg/logger"
)

type fakeRefresher struct {
	result *dashboard.RefreshResult
	err    error
	calls  int
}

func (f *fakeRefresher) RefreshAll(_ context.Context) (*dashboard.RefreshResult, error) {
	f.calls++
	return f.result, f.err
}

func TestDashboardJobs_Names(t *testing.T) {
	r := &fakeRefresher{result: &dashboard.RefreshResult{}}

	refresh := NewDashboardRefreshJob(r, "0 */15 * * * *", logger.Nop())
	snapshot := NewDashboardSnapshotJob(r, "0 30 16 * * 1-5", logger.Nop())

	assert.Equal(t, "dashboard_refresh", refresh.Name())
	assert.Equal(t, "0 */15 * * * *", refresh.Schedule())
	assert.Equal(t, "dashboard_snapshot", snapshot.Name())
	assert.Equal(t, "0 30 16 * * 1-5", snapshot.Schedule())
}

func TestDashboardRefreshJob_Run(t *testing.T) {
	r := &fakeRefresher{result: &dashboard.RefreshResult{Total: 2, Refreshed: 2}}
	job := NewDashboardRefreshJob(r, "0 */15 * * * *", logger.Nop())

	require.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, r.calls)
}

func TestDashboardRefreshJob_PartialFailureNotRetried(t *testing.T) {
	r := &fakeRefresher{
		result: &dashboard.RefreshResult{Total: 3, Refreshed: 2, Failed: 1},
		err:    errors.New("p3: portfolio not found"),
	}
	job := NewDashboardRefreshJob(r, "0 */15 * * * *", logger.Nop())

	assert.NoError(t, job.Run(context.Background()))
	assert.Equal(t, 1, r.calls)
}

func TestDashboardRefreshJob_AllFailed(t *testing.T) {
	r := &fakeRefresher{
		result: &dashboard.RefreshResult{Total: 3, Failed: 3},
		err:    errors.New("pool exhausted"),
	}
	job := NewDashboardRefreshJob(r, "0 */15 * * * *", logger.Nop())

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "all 3 portfolios failed")
}

func TestDashboardRefreshJob_Interrupted(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r := &fakeRefresher{
		result: &dashboard.RefreshResult{Total: 3, Refreshed: 1},
		err:    context.Canceled,
	}
	job := NewDashboardRefreshJob(r, "0 */15 * * * *", logger.Nop())

	err := job.Run(ctx)
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Contains(t, err.Error(), "after 1 of 3 portfolios")
}

func TestDashboardRefreshJob_RetriedOnlyOnTotalFailure(t *testing.T) {
	r := &fakeRefresher{
		result: &dashboard.RefreshResult{Total: 3, Refreshed: 2, Failed: 1},
		err:    errors.New("p3: portfolio not found"),
	}
	sched := scheduler.New(logger.Nop(), scheduler.WithRetry(3, time.Millisecond))
	require.NoError(t, sched.AddJob(NewDashboardRefreshJob(r, "0 */15 * * * *", logger.Nop())))

	result, err := sched.RunJobSync(context.Background(), "dashboard_refresh")
	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 1, result.Attempts)
	assert.Equal(t, 1, r.calls)
}

func TestDashboardRefreshJob_ListFailure(t *testing.T) {
	r := &fakeRefresher{err: errors.New("db down")}
	job := NewDashboardRefreshJob(r, "0 */15 * * * *", logger.Nop())

	err := job.Run(context.Background())
	require.Error(t, err)
	assert.Equal(t, "db down", err.Error())
}

type fakePruner struct{ n int }

func (f *fakePruner) Prune() int { return f.n }

func TestRateLimitCleanupJob(t *testing.T) {
	job := NewRateLimitCleanupJob(&fakePruner{n: 4}, logger.Nop())

	assert.Equal(t, "ratelimit_cleanup", job.Name())
	assert.Equal(t, "0 */5 * * * *", job.Schedule())
	assert.NoError(t, job.Run(context.Background()))
}
