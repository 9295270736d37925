package services

import (
	"carwash/config"
	"carwash/internal/database"
	"carwash/internal/events"
	"carwash/internal/repositories"
)

type Service struct {
	Transaction  *TransactionService
	Scheduler    *SchedulerService
	Media        *MediaService
	Employee     *EmployeeService
	Capacity     *CapacityService
	Assignment   *AssignmentService
	Job          *JobService
	Subscription *SubscriptionService
	Rebalance    *RebalanceService
}

func New(db database.DB, config config.Config, eventBus *events.EventBus) (Service, error) {
	repos := repositories.New(db)

	transactionService := NewTransactionService(db)
	schedulerService := NewSchedulerService(config)
	mediaService := NewMediaService(config)
	employeeService := NewEmployeeService(db, repos, config)
	capacityService := NewCapacityService(repos)
	assignmentService := NewAssignmentService(repos, capacityService, employeeService)
	jobService := NewJobService(
		db,
		repos,
		transactionService,
		assignmentService,
		employeeService,
		mediaService,
		eventBus,
		config,
	)
	subscriptionService := NewSubscriptionService(
		db,
		repos,
		transactionService,
		assignmentService,
		employeeService,
		eventBus,
	)
	rebalanceService := NewRebalanceService(
		db,
		repos,
		transactionService,
		assignmentService,
		employeeService,
		eventBus,
	)

	return Service{
		Transaction:  transactionService,
		Scheduler:    schedulerService,
		Media:        mediaService,
		Employee:     employeeService,
		Capacity:     capacityService,
		Assignment:   assignmentService,
		Job:          jobService,
		Subscription: subscriptionService,
		Rebalance:    rebalanceService,
	}, nil
}

// SetClock replaces the time source of every clock-aware service.
func (s *Service) SetClock(clock Clock) {
	s.Employee.now = clock
	s.Job.now = clock
	s.Subscription.now = clock
	s.Rebalance.now = clock
}
