package jobs

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/hibiken/asynq"

	"github.com/riohost/riohost/internal/dashboard"
	"github.com/riohost/riohost/internal/filters"
	jobmetrics "github.com/riohost/riohost/internal/jobs"
)

var defaultJobMetrics = jobmetrics.NewMetrics(nil)

// defaultWarmupPeriods are the selections operators open most; keeping them
// hot means the dashboard rarely pays the aggregation cost interactively.
var defaultWarmupPeriods = []string{
	filters.PeriodCurrentMonth,
	filters.PeriodCurrentYear,
	filters.PeriodLastMonth,
	filters.PeriodLast3Months,
}

// DashboardWarmupJob pre-populates the KPI cache for the common period set.
type DashboardWarmupJob struct {
	Dashboard *dashboard.Service
	Logger    *slog.Logger
	Metrics   *jobmetrics.Metrics
	clock     func() time.Time
}

// NewDashboardWarmupJob wires dependencies for the warmup handler.
func NewDashboardWarmupJob(svc *dashboard.Service, logger *slog.Logger, metrics *jobmetrics.Metrics) *DashboardWarmupJob {
	return &DashboardWarmupJob{
		Dashboard: svc,
		Logger:    logger,
		Metrics:   metrics,
		clock: func() time.Time {
			return time.Now().UTC()
		},
	}
}

// Handle processes dashboard warmup tasks.
func (j *DashboardWarmupJob) Handle(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("dashboard warmup: handler not configured")
	}
	var payload DashboardWarmupPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return asynq.SkipRetry
	}
	periods := payload.Periods
	if len(periods) == 0 {
		periods = defaultWarmupPeriods
	}

	tracker := j.metrics().Track(TaskDashboardWarmup)
	var resultErr error
	defer func() {
		resultErr = tracker.End(resultErr)
	}()

	logger := j.logger()
	logger.Info("starting dashboard warmup", slog.Int("periods", len(periods)))

	start := j.now()
	for _, period := range periods {
		if err := j.warmPeriod(ctx, period); err != nil {
			resultErr = err
			logger.Error("warm period", slog.String("period", period), slog.Any("error", err))
			return resultErr
		}
		j.metrics().AddWarmedSelections(period, 1)
	}

	logger.Info("completed dashboard warmup", slog.Duration("duration", time.Since(start)))
	return resultErr
}

func (j *DashboardWarmupJob) warmPeriod(ctx context.Context, period string) error {
	// Tighten each period with a timeout to avoid long-running jobs.
	periodCtx, cancel := context.WithTimeout(ctx, 20*time.Second)
	defer cancel()

	sel := filters.DefaultSelection()
	sel.Period = period
	_, err := j.Dashboard.Load(periodCtx, sel)
	return err
}

// HandleInvalidate processes dashboard invalidation tasks.
func (j *DashboardWarmupJob) HandleInvalidate(ctx context.Context, t *asynq.Task) error {
	if j == nil || j.Dashboard == nil {
		return errors.New("dashboard invalidate: handler not configured")
	}
	tracker := j.metrics().Track(TaskDashboardInvalidate)
	return tracker.End(j.Dashboard.Invalidate(ctx))
}

func (j *DashboardWarmupJob) logger() *slog.Logger {
	if j.Logger != nil {
		return j.Logger.With(slog.String("job", TaskDashboardWarmup))
	}
	return slog.Default().With(slog.String("job", TaskDashboardWarmup))
}

func (j *DashboardWarmupJob) metrics() *jobmetrics.Metrics {
	if j.Metrics != nil {
		return j.Metrics
	}
	return defaultJobMetrics
}

func (j *DashboardWarmupJob) now() time.Time {
	if j.clock != nil {
		return j.clock()
	}
	return time.Now().UTC()
}
