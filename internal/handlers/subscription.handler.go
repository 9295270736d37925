package handlers

import (
	"carwash/internal/app"
	subscriptionController "carwash/internal/controllers/subscriptions"
	"carwash/internal/handlers/middleware"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type SubscriptionHandler struct {
	Handler
	subscriptionController subscriptionController.SubscriptionControllerInterface
}

func NewSubscriptionHandler(app app.App, router fiber.Router) *SubscriptionHandler {
	log := logger.New("handlers").File("subscription_handler")
	return &SubscriptionHandler{
		subscriptionController: app.Controllers.Subscription,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *SubscriptionHandler) Register() {
	auth := h.middleware.RequireAuth()
	customer := h.middleware.RequireRole(middleware.RoleCustomer)

	h.router.Get("/subscriptions", auth, customer, h.listSubscriptions)
	h.router.Post("/subscriptions", auth, customer, h.createSubscription)
	h.router.Patch("/subscriptions/:id/status", auth, customer, h.updateStatus)
}

func (h *SubscriptionHandler) listSubscriptions(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listSubscriptions")

	subscriptions, err := h.subscriptionController.List(c.UserContext(), middleware.GetActor(c).ID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"subscriptions": subscriptions})
}

func (h *SubscriptionHandler) createSubscription(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("createSubscription")

	var req subscriptionController.CreateSubscriptionRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	response, err := h.subscriptionController.Create(c.UserContext(), middleware.GetActor(c).ID, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

func (h *SubscriptionHandler) updateStatus(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateStatus")

	subscriptionID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid subscription ID")
	}

	var req subscriptionController.UpdateStatusRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	subscription, err := h.subscriptionController.UpdateStatus(
		c.UserContext(),
		subscriptionID,
		middleware.GetActor(c).ID,
		req,
	)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"subscription": subscription})
}
