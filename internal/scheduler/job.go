package scheduler

import (
	"context"
	"errors"
	"time"
)

// ErrJobRunning the job is still running from an earlier trigger
var ErrJobRunning = errors.New("job is already running")

// Job represents a scheduled job
// ⭐ SSOT: the only job contract
type Job interface {
	// Name returns the job name
	Name() string

	// Run executes the job
	Run(ctx context.Context) error

	// Schedule returns the cron expression, seconds first
	// Examples: "0 */15 * * * *" (every 15 minutes)
	//           "0 30 16 * * 1-5" (weekdays at 16:30)
	Schedule() string
}

// maxHistory results kept per job
const maxHistory = 100

// JobResult represents the result of a job execution
type JobResult struct {
	JobName   string        `json:"job_name"`
	StartTime time.Time     `json:"start_time"`
	EndTime   time.Time     `json:"end_time"`
	Duration  time.Duration `json:"duration"`
	Attempts  int           `json:"attempts"`
	Success   bool          `json:"success"`
	Skipped   bool          `json:"skipped,omitempty"` // dropped because a previous run was active
	Error     string        `json:"error,omitempty"`
}

// executed reports whether the job actually ran
func (r JobResult) executed() bool {
	return !r.Skipped
}

// JobHistory stores job execution history
type JobHistory struct {
	Results []JobResult
}

// AddResult adds a job result to history
func (h *JobHistory) AddResult(result JobResult) {
	h.Results = append(h.Results, result)

	if len(h.Results) > maxHistory {
		h.Results = h.Results[len(h.Results)-maxHistory:]
	}
}

// GetLatestResults returns the latest N results
func (h *JobHistory) GetLatestResults(n int) []JobResult {
	if n > len(h.Results) {
		n = len(h.Results)
	}
	if n <= 0 {
		return []JobResult{}
	}
	return h.Results[len(h.Results)-n:]
}

// GetFailedResults returns executed runs that failed. Skipped triggers are not failures.
func (h *JobHistory) GetFailedResults() []JobResult {
	failed := make([]JobResult, 0)
	for _, result := range h.Results {
		if result.executed() && !result.Success {
			failed = append(failed, result)
		}
	}
	return failed
}

// GetSuccessRate returns the success rate of executed runs (0.0 - 1.0)
func (h *JobHistory) GetSuccessRate() float64 {
	c := h.counts()
	if c.runs == 0 {
		return 0.0
	}
	return float64(c.successes) / float64(c.runs)
}

type historyCounts struct {
	runs      int
	successes int
	failures  int
	skipped   int
	attempts  int
}

func (h *JobHistory) counts() historyCounts {
	var c historyCounts
	for _, result := range h.Results {
		if !result.executed() {
			c.skipped++
			continue
		}
		c.runs++
		c.attempts += result.Attempts
		if result.Success {
			c.successes++
		} else {
			c.failures++
		}
	}
	return c
}

// lastExecuted returns the most recent result that actually ran
func (h *JobHistory) lastExecuted() (JobResult, bool) {
	for i := len(h.Results) - 1; i >= 0; i-- {
		if h.Results[i].executed() {
			return h.Results[i], true
		}
	}
	return JobResult{}, false
}
