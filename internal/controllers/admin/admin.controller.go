package adminController

import (
	"context"
	"strings"

	"carwash/internal/database"
	. "carwash/internal/models"
	"carwash/internal/services"
	"carwash/internal/types"
	"carwash/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type OverrideEmployeeRequest struct {
	EmployeeID uuid.UUID `json:"employeeId"`
}

type CapacityResponse struct {
	Date      string                      `json:"date"`
	Employees []services.EmployeeWorkload `json:"employees"`
}

type AdminControllerInterface interface {
	Rebalance(ctx context.Context, date string) (*services.RebalanceSummary, error)
	Capacity(ctx context.Context, date string) (*CapacityResponse, error)
	MaterializeSubscription(ctx context.Context, subscriptionID uuid.UUID) (*services.MaterializeResult, error)
	OverrideEmployee(
		ctx context.Context,
		subscriptionID uuid.UUID,
		req OverrideEmployeeRequest,
	) (*Subscription, error)
	TriggerScheduledJob(ctx context.Context, name string) error
	ListEmployees(ctx context.Context) ([]services.EmployeeStatus, error)
	HireEmployee(ctx context.Context, req services.HireEmployeeRequest) (*Employee, error)
	UpdateEmployee(
		ctx context.Context,
		employeeID uuid.UUID,
		req services.UpdateEmployeeRequest,
	) (*Employee, error)
}

type AdminController struct {
	db                  database.DB
	rebalanceService    *services.RebalanceService
	capacityService     *services.CapacityService
	subscriptionService *services.SubscriptionService
	employeeService     *services.EmployeeService
	schedulerService    *services.SchedulerService
	log                 logger.Logger
}

func New(services services.Service, db database.DB) AdminControllerInterface {
	return &AdminController{
		db:                  db,
		rebalanceService:    services.Rebalance,
		capacityService:     services.Capacity,
		subscriptionService: services.Subscription,
		employeeService:     services.Employee,
		schedulerService:    services.Scheduler,
		log:                 logger.New("adminController"),
	}
}

// Rebalance runs one day's sweep. An empty date means today.
func (ac *AdminController) Rebalance(ctx context.Context, date string) (*services.RebalanceSummary, error) {
	log := ac.log.Function("Rebalance")

	if strings.TrimSpace(date) == "" {
		summaries, err := ac.rebalanceService.RebalanceUpcoming(ctx, 0)
		if err != nil {
			return nil, err
		}
		if len(summaries) == 0 {
			return nil, log.ErrMsg("rebalance produced no summary")
		}
		return summaries[0], nil
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, types.Validation("%s", err.Error())
	}
	return ac.rebalanceService.Rebalance(ctx, day)
}

func (ac *AdminController) Capacity(ctx context.Context, date string) (*CapacityResponse, error) {
	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, types.Validation("%s", err.Error())
	}
	day = utils.StartOfDay(day)

	loads, err := ac.capacityService.LoadsFor(ctx, ac.db.SQLWithContext(ctx), day)
	if err != nil {
		return nil, err
	}

	return &CapacityResponse{Date: day.Format(types.DateLayout), Employees: loads}, nil
}

func (ac *AdminController) MaterializeSubscription(
	ctx context.Context,
	subscriptionID uuid.UUID,
) (*services.MaterializeResult, error) {
	return ac.subscriptionService.CreateSubscriptionJobs(ctx, subscriptionID)
}

func (ac *AdminController) OverrideEmployee(
	ctx context.Context,
	subscriptionID uuid.UUID,
	req OverrideEmployeeRequest,
) (*Subscription, error) {
	if req.EmployeeID == uuid.Nil {
		return nil, types.Validation("employeeId is required")
	}
	return ac.subscriptionService.OverrideEmployee(ctx, subscriptionID, req.EmployeeID)
}

// TriggerScheduledJob runs a registered scheduled job once, now.
func (ac *AdminController) TriggerScheduledJob(ctx context.Context, name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return types.Validation("job name is required")
	}
	return ac.schedulerService.TriggerJobByName(ctx, name)
}

func (ac *AdminController) ListEmployees(ctx context.Context) ([]services.EmployeeStatus, error) {
	return ac.employeeService.Roster(ctx)
}

func (ac *AdminController) HireEmployee(ctx context.Context, req services.HireEmployeeRequest) (*Employee, error) {
	return ac.employeeService.Hire(ctx, req)
}

func (ac *AdminController) UpdateEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
	req services.UpdateEmployeeRequest,
) (*Employee, error) {
	return ac.employeeService.Update(ctx, employeeID, req)
}
