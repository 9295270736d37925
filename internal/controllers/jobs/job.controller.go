package jobController

import (
	"context"
	"strings"
	"time"

	. "carwash/internal/models"
	"carwash/internal/services"
	"carwash/internal/types"
	"carwash/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
)

type BookJobRequest struct {
	ServiceID uuid.UUID `json:"serviceId"`
	Date      string    `json:"date"`
	Location  Location  `json:"location"`
	Notes     *string   `json:"notes,omitempty"`
}

type CloseJobRequest struct {
	Reason string `json:"reason"`
}

type PhotosRequest struct {
	Photos []string `json:"photos"`
}

type JobControllerInterface interface {
	Book(ctx context.Context, customerID uuid.UUID, req BookJobRequest) (*Job, error)
	ListForEmployee(ctx context.Context, employeeID uuid.UUID, date string) ([]*Job, error)
	ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*Job, error)
	Start(ctx context.Context, jobID, employeeID uuid.UUID) (*Job, error)
	Complete(
		ctx context.Context,
		jobID uuid.UUID,
		employeeID uuid.UUID,
		req services.CompleteJobRequest,
	) (*Job, error)
	Cancel(ctx context.Context, jobID, employeeID uuid.UUID, req CloseJobRequest) (*Job, error)
	NoShow(ctx context.Context, jobID, employeeID uuid.UUID, req CloseJobRequest) (*Job, error)
	ReplacePhotos(
		ctx context.Context,
		jobID uuid.UUID,
		employeeID uuid.UUID,
		kind string,
		req PhotosRequest,
	) (*Job, error)
	Rate(ctx context.Context, jobID, customerID uuid.UUID, req services.RateJobRequest) (*Job, error)
}

type JobController struct {
	jobService *services.JobService
	log        logger.Logger
}

func New(services services.Service) JobControllerInterface {
	return &JobController{
		jobService: services.Job,
		log:        logger.New("jobController"),
	}
}

func (jc *JobController) Book(ctx context.Context, customerID uuid.UUID, req BookJobRequest) (*Job, error) {
	date, err := utils.ParseDate(req.Date)
	if err != nil {
		return nil, types.Validation("%s", err.Error())
	}
	if req.ServiceID == uuid.Nil {
		return nil, types.Validation("serviceId is required")
	}

	return jc.jobService.BookAdHocJob(ctx, services.BookingRequest{
		CustomerID: customerID,
		ServiceID:  req.ServiceID,
		Date:       date,
		Location:   req.Location,
		Notes:      req.Notes,
	})
}

// ListForEmployee returns the employee's jobs, restricted to one day when
// date is set.
func (jc *JobController) ListForEmployee(
	ctx context.Context,
	employeeID uuid.UUID,
	date string,
) ([]*Job, error) {
	if strings.TrimSpace(date) == "" {
		return jc.jobService.ListForEmployee(ctx, employeeID, time.Time{})
	}

	day, err := utils.ParseDate(date)
	if err != nil {
		return nil, types.Validation("%s", err.Error())
	}
	return jc.jobService.ListForEmployee(ctx, employeeID, day)
}

func (jc *JobController) ListForCustomer(ctx context.Context, customerID uuid.UUID) ([]*Job, error) {
	return jc.jobService.ListForCustomer(ctx, customerID)
}

func (jc *JobController) Start(ctx context.Context, jobID, employeeID uuid.UUID) (*Job, error) {
	return jc.jobService.StartJob(ctx, jobID, employeeID)
}

func (jc *JobController) Complete(
	ctx context.Context,
	jobID uuid.UUID,
	employeeID uuid.UUID,
	req services.CompleteJobRequest,
) (*Job, error) {
	req.JobID = jobID
	req.EmployeeID = employeeID
	return jc.jobService.CompleteJob(ctx, req)
}

func (jc *JobController) Cancel(
	ctx context.Context,
	jobID uuid.UUID,
	employeeID uuid.UUID,
	req CloseJobRequest,
) (*Job, error) {
	return jc.jobService.CancelJob(ctx, jobID, employeeID, strings.TrimSpace(req.Reason))
}

func (jc *JobController) NoShow(
	ctx context.Context,
	jobID uuid.UUID,
	employeeID uuid.UUID,
	req CloseJobRequest,
) (*Job, error) {
	return jc.jobService.MarkNoShow(ctx, jobID, employeeID, strings.TrimSpace(req.Reason))
}

func (jc *JobController) ReplacePhotos(
	ctx context.Context,
	jobID uuid.UUID,
	employeeID uuid.UUID,
	kind string,
	req PhotosRequest,
) (*Job, error) {
	log := jc.log.Function("ReplacePhotos")

	refs := make([]string, 0, len(req.Photos))
	for _, ref := range req.Photos {
		if ref = strings.TrimSpace(ref); ref != "" {
			refs = append(refs, ref)
		}
	}

	job, err := jc.jobService.ReplacePhotos(ctx, jobID, employeeID, PhotoKind(strings.ToLower(kind)), refs)
	if err != nil {
		return nil, err
	}

	log.Info("Job photos replaced", "jobID", jobID, "kind", kind, "count", len(refs))
	return job, nil
}

func (jc *JobController) Rate(
	ctx context.Context,
	jobID uuid.UUID,
	customerID uuid.UUID,
	req services.RateJobRequest,
) (*Job, error) {
	req.JobID = jobID
	req.CustomerID = customerID
	return jc.jobService.RateJob(ctx, req)
}
