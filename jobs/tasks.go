package jobs

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskDashboardWarmup pre-computes KPI summaries for the common periods.
	TaskDashboardWarmup = "dashboard:warmup"
	// TaskDashboardInvalidate drops every cached KPI summary.
	TaskDashboardInvalidate = "dashboard:invalidate"
)

// DashboardWarmupPayload selects which periods the warmup run covers. An
// empty list means the default period set.
type DashboardWarmupPayload struct {
	Periods []string `json:"periods,omitempty"`
}

// NewDashboardWarmupTask constructs an Asynq task for cache warmup.
func NewDashboardWarmupTask(payload DashboardWarmupPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskDashboardWarmup, data), nil
}

// NewDashboardInvalidateTask constructs an Asynq task for cache invalidation.
func NewDashboardInvalidateTask() *asynq.Task {
	return asynq.NewTask(TaskDashboardInvalidate, nil)
}
