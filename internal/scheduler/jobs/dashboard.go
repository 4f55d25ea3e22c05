package jobs

import (
	"context"
	"fmt"

	"github.com/CRONANANI/ezana/backend/internal/dashboard"
	"github.com/CRONANANI/ezana/backend/pkg/logger"
)

// Refresher rebuilds every dashboard summary
type Refresher interface {
	RefreshAll(ctx context.Context) (*dashboard.RefreshResult, error)
}

// DashboardRefreshJob rebuilds all dashboards on a schedule.
// The same job type serves the cache warm-up and the end-of-day snapshot.
type DashboardRefreshJob struct {
	name      string
	schedule  string
	refresher Refresher
	logger    *logger.Logger
}

// NewDashboardRefreshJob keeps cached summaries warm (default every 15 minutes)
func NewDashboardRefreshJob(refresher Refresher, schedule string, log *logger.Logger) *DashboardRefreshJob {
	return &DashboardRefreshJob{
		name:      "dashboard_refresh",
		schedule:  schedule,
		refresher: refresher,
		logger:    log,
	}
}

// NewDashboardSnapshotJob stores end-of-day summaries (default weekdays 16:30)
func NewDashboardSnapshotJob(refresher Refresher, schedule string, log *logger.Logger) *DashboardRefreshJob {
	return &DashboardRefreshJob{
		name:      "dashboard_snapshot",
		schedule:  schedule,
		refresher: refresher,
		logger:    log,
	}
}

// Name returns the job name
func (j *DashboardRefreshJob) Name() string {
	return j.name
}

// Schedule returns the cron schedule
func (j *DashboardRefreshJob) Schedule() string {
	return j.schedule
}

// Run refreshes every portfolio.
// Only a run that refreshed nothing, or was cut short, is returned as an error
// and retried. Individual portfolio failures are logged and picked up on the next tick.
func (j *DashboardRefreshJob) Run(ctx context.Context) error {
	j.logger.WithField("job", j.name).Debug("Starting scheduled dashboard refresh")

	result, err := j.refresher.RefreshAll(ctx)
	if err != nil {
		if result == nil {
			return err
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return fmt.Errorf("refresh interrupted after %d of %d portfolios: %w", result.Refreshed, result.Total, ctxErr)
		}
		if result.Refreshed == 0 {
			return fmt.Errorf("all %d portfolios failed: %w", result.Total, err)
		}

		j.logger.WithError(err).WithFields(map[string]interface{}{
			"job":       j.name,
			"run_id":    result.RunID,
			"refreshed": result.Refreshed,
			"failed":    result.Failed,
		}).Warn("Scheduled dashboard refresh partially failed")
		return nil
	}

	j.logger.WithFields(map[string]interface{}{
		"job":       j.name,
		"run_id":    result.RunID,
		"refreshed": result.Refreshed,
	}).Info("Scheduled dashboard refresh completed")

	return nil
}
