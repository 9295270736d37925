package jobs

import (
	"context"

	"carwash/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type rebalancer interface {
	RebalanceUpcoming(ctx context.Context, days int) ([]*services.RebalanceSummary, error)
}

// RebalanceJob sweeps today and the configured horizon for over-assigned
// employees.
type RebalanceJob struct {
	rebalance rebalancer
	horizon   int
	log       logger.Logger
	schedule  services.Schedule
}

func NewRebalanceJob(rebalance rebalancer, horizon int, schedule services.Schedule) *RebalanceJob {
	log := logger.New("rebalanceJob")
	log.Info("Creating new rebalance job", "schedule", schedule, "horizonDays", horizon)

	return &RebalanceJob{
		rebalance: rebalance,
		horizon:   horizon,
		log:       log,
		schedule:  schedule,
	}
}

func (j *RebalanceJob) Name() string {
	return "DailyRebalance"
}

func (j *RebalanceJob) Execute(ctx context.Context) error {
	log := j.log.Function("Execute")

	log.Info("Starting rebalance sweep", "horizonDays", j.horizon)

	summaries, err := j.rebalance.RebalanceUpcoming(ctx, j.horizon)
	if err != nil {
		return log.Err("rebalance sweep failed", err, "daysCompleted", len(summaries))
	}

	reassigned, failed := 0, 0
	for _, summary := range summaries {
		reassigned += summary.ReassignedCount
		failed += len(summary.Failures)
	}

	if failed > 0 {
		log.Warn("Rebalance sweep left jobs in place", "failed", failed)
	}

	log.Info("Rebalance sweep completed", "days", len(summaries), "reassigned", reassigned)
	return nil
}

func (j *RebalanceJob) Schedule() services.Schedule {
	return j.schedule
}
