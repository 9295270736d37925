package jobs

import (
	"carwash/config"
	"carwash/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

const (
	Daily = services.Daily
)

func RegisterAllJobs(
	schedulerService *services.SchedulerService,
	config config.Config,
	services services.Service,
) error {
	log := logger.New("jobs").Function("RegisterAllJobs")

	if !config.SchedulerEnabled {
		log.Info("Scheduler disabled, skipping job registration")
		return nil
	}

	rebalanceJob := NewRebalanceJob(services.Rebalance, config.RebalanceHorizonDays, Daily)
	if err := schedulerService.AddJob(rebalanceJob); err != nil {
		return log.Err("failed to register rebalance job", err)
	}
	log.Info("Registered rebalance job", "schedule", "daily", "at", config.RebalanceAt)

	return nil
}
