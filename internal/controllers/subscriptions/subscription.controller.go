package subscriptionController

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

type CreateSubscriptionRequest struct {
	ServiceID uuid.UUID `json:"serviceId"`
	StartDate string    `json:"startDate"`
	EndDate   string    `json:"endDate,omitempty"`
	Location  Location  `json:"location"`
}

type UpdateStatusRequest struct {
	Status string `json:"status"`
}

type SubscriptionResponse struct {
	Subscription *Subscription              `json:"subscription"`
	Jobs         *services.MaterializeResult `json:"jobs,omitempty"`
}

type SubscriptionControllerInterface interface {
	Create(
		ctx context.Context,
		customerID uuid.UUID,
		req CreateSubscriptionRequest,
	) (*SubscriptionResponse, error)
	UpdateStatus(
		ctx context.Context,
		subscriptionID uuid.UUID,
		customerID uuid.UUID,
		req UpdateStatusRequest,
	) (*Subscription, error)
	List(ctx context.Context, customerID uuid.UUID) ([]*Subscription, error)
}

type SubscriptionController struct {
	subscriptionService *services.SubscriptionService
	log                 logger.Logger
}

func New(services services.Service) SubscriptionControllerInterface {
	return &SubscriptionController{
		subscriptionService: services.Subscription,
		log:                 logger.New("subscriptionController"),
	}
}

// Create stores the subscription and books its occurrences. Dates that could
// not be placed are reported in the response rather than failing the call.
func (sc *SubscriptionController) Create(
	ctx context.Context,
	customerID uuid.UUID,
	req CreateSubscriptionRequest,
) (*SubscriptionResponse, error) {
	log := sc.log.Function("Create")

	if req.ServiceID == uuid.Nil {
		return nil, types.Validation("serviceId is required")
	}

	start, err := utils.ParseDate(req.StartDate)
	if err != nil {
		return nil, types.Validation("startDate: %s", err.Error())
	}

	var end time.Time
	if strings.TrimSpace(req.EndDate) != "" {
		if end, err = utils.ParseDate(req.EndDate); err != nil {
			return nil, types.Validation("endDate: %s", err.Error())
		}
	}

	subscription, result, err := sc.subscriptionService.CreateSubscription(ctx, services.CreateSubscriptionRequest{
		CustomerID: customerID,
		ServiceID:  req.ServiceID,
		StartDate:  start,
		EndDate:    end,
		Location:   req.Location,
	})
	if err != nil {
		return nil, err
	}

	if len(result.Failed) > 0 {
		log.Warn(
			"Subscription created with unplaced dates",
			"subscriptionID", subscription.ID,
			"failed", len(result.Failed),
		)
	}

	return &SubscriptionResponse{Subscription: subscription, Jobs: result}, nil
}

func (sc *SubscriptionController) UpdateStatus(
	ctx context.Context,
	subscriptionID uuid.UUID,
	customerID uuid.UUID,
	req UpdateStatusRequest,
) (*Subscription, error) {
	status := SubscriptionStatus(strings.ToLower(strings.TrimSpace(req.Status)))
	return sc.subscriptionService.UpdateStatus(ctx, subscriptionID, &customerID, status)
}

func (sc *SubscriptionController) List(ctx context.Context, customerID uuid.UUID) ([]*Subscription, error) {
	return sc.subscriptionService.ListForCustomer(ctx, customerID)
}
