package jobs

import (
	"context"

	"github.com/CRONANANI/ezana/backend/pkg/logger"
)

// Pruner drops idle in-memory state
type Pruner interface {
	Prune() int
}

// RateLimitCleanupJob drops idle local rate-limit buckets
type RateLimitCleanupJob struct {
	pruner Pruner
	logger *logger.Logger
}

// NewRateLimitCleanupJob creates a new rate limit cleanup job
func NewRateLimitCleanupJob(pruner Pruner, log *logger.Logger) *RateLimitCleanupJob {
	return &RateLimitCleanupJob{
		pruner: pruner,
		logger: log,
	}
}

// Name returns the job name
func (j *RateLimitCleanupJob) Name() string {
	return "ratelimit_cleanup"
}

// Schedule returns the cron schedule (every 5 minutes)
func (j *RateLimitCleanupJob) Schedule() string {
	return "0 */5 * * * *"
}

// Run executes the cleanup
func (j *RateLimitCleanupJob) Run(ctx context.Context) error {
	count := j.pruner.Prune()

	if count > 0 {
		j.logger.WithField("removed", count).Debug("Rate limit buckets pruned")
	}

	return nil
}
