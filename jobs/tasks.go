package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskReportWarmup pre-computes the cached management reports.
	TaskReportWarmup = "reports:warmup"
	// TaskCacheBump invalidates the report cache after bulk imports.
	TaskCacheBump = "reports:bump"
)

// ReportWarmupPayload names the period whose reports should be primed.
type ReportWarmupPayload struct {
	Period string `json:"period"`
}

// NewReportWarmupTask constructs an Asynq task.
func NewReportWarmupTask(payload ReportWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskReportWarmup, data), nil
}

// NewCacheBumpTask constructs a cache invalidation task.
func NewCacheBumpTask() *asynq.Task {
	return asynq.NewTask(TaskCacheBump, nil)
}
