package handlers

import (
	"carwash/internal/app"
	adminController "carwash/internal/controllers/admin"
	"carwash/internal/handlers/middleware"
	"carwash/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type AdminHandler struct {
	Handler
	adminController adminController.AdminControllerInterface
}

func NewAdminHandler(app app.App, router fiber.Router) *AdminHandler {
	log := logger.New("handlers").File("admin_handler")
	return &AdminHandler{
		adminController: app.Controllers.Admin,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *AdminHandler) Register() {
	admin := h.router.Group(
		"/admin",
		h.middleware.RequireAuth(),
		h.middleware.RequireRole(middleware.RoleAdmin),
	)

	admin.Post("/rebalance", h.rebalance)
	admin.Get("/capacity", h.capacity)
	admin.Post("/scheduled-jobs/:name/trigger", h.triggerScheduledJob)

	admin.Post("/subscriptions/:id/jobs", h.materializeSubscription)
	admin.Put("/subscriptions/:id/employee", h.overrideEmployee)

	admin.Get("/employees", h.listEmployees)
	admin.Post("/employees", h.hireEmployee)
	admin.Patch("/employees/:id", h.updateEmployee)
}

func (h *AdminHandler) rebalance(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("rebalance")

	summary, err := h.adminController.Rebalance(c.UserContext(), c.Query("date"))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(summary)
}

func (h *AdminHandler) capacity(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("capacity")

	response, err := h.adminController.Capacity(c.UserContext(), c.Query("date"))
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(response)
}

func (h *AdminHandler) materializeSubscription(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("materializeSubscription")

	subscriptionID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid subscription ID")
	}

	result, err := h.adminController.MaterializeSubscription(c.UserContext(), subscriptionID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(result)
}

func (h *AdminHandler) overrideEmployee(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("overrideEmployee")

	subscriptionID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid subscription ID")
	}

	var req adminController.OverrideEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	subscription, err := h.adminController.OverrideEmployee(c.UserContext(), subscriptionID, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"subscription": subscription})
}

func (h *AdminHandler) triggerScheduledJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("triggerScheduledJob")

	name := c.Params("name")
	if err := h.adminController.TriggerScheduledJob(c.UserContext(), name); err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": name, "status": "completed"})
}

func (h *AdminHandler) listEmployees(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listEmployees")

	employees, err := h.adminController.ListEmployees(c.UserContext())
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"employees": employees})
}

func (h *AdminHandler) hireEmployee(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("hireEmployee")

	var req services.HireEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	employee, err := h.adminController.HireEmployee(c.UserContext(), req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"employee": employee})
}

func (h *AdminHandler) updateEmployee(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("updateEmployee")

	employeeID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid employee ID")
	}

	var req services.UpdateEmployeeRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	employee, err := h.adminController.UpdateEmployee(c.UserContext(), employeeID, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"employee": employee})
}
