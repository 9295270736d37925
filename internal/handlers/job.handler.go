package handlers

import (
	"carwash/internal/app"
	jobController "carwash/internal/controllers/jobs"
	"carwash/internal/handlers/middleware"
	"carwash/internal/services"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/gofiber/fiber/v2"
)

type JobHandler struct {
	Handler
	jobController jobController.JobControllerInterface
}

func NewJobHandler(app app.App, router fiber.Router) *JobHandler {
	log := logger.New("handlers").File("job_handler")
	return &JobHandler{
		jobController: app.Controllers.Job,
		Handler: Handler{
			log:        log,
			router:     router,
			middleware: app.Middleware,
		},
	}
}

func (h *JobHandler) Register() {
	auth := h.middleware.RequireAuth()
	customer := h.middleware.RequireRole(middleware.RoleCustomer)
	employee := h.middleware.RequireRole(middleware.RoleEmployee)
	either := h.middleware.RequireRole(middleware.RoleEmployee, middleware.RoleCustomer)

	h.router.Post("/bookings", auth, customer, h.bookJob)
	h.router.Get("/jobs", auth, either, h.listJobs)

	h.router.Post("/jobs/:id/start", auth, employee, h.startJob)
	h.router.Post("/jobs/:id/complete", auth, employee, h.completeJob)
	h.router.Post("/jobs/:id/cancel", auth, employee, h.cancelJob)
	h.router.Post("/jobs/:id/no-show", auth, employee, h.markNoShow)
	h.router.Put("/jobs/:id/photos/:kind", auth, employee, h.replacePhotos)
	h.router.Post("/jobs/:id/rate", auth, customer, h.rateJob)
}

func (h *JobHandler) bookJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("bookJob")
	actor := middleware.GetActor(c)

	var req jobController.BookJobRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.Book(c.UserContext(), actor.ID, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"job": job})
}

func (h *JobHandler) listJobs(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("listJobs")
	actor := middleware.GetActor(c)

	var (
		jobs any
		err  error
	)
	if actor.Role == middleware.RoleEmployee {
		jobs, err = h.jobController.ListForEmployee(c.UserContext(), actor.ID, c.Query("date"))
	} else {
		jobs, err = h.jobController.ListForCustomer(c.UserContext(), actor.ID)
	}
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"jobs": jobs})
}

func (h *JobHandler) startJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("startJob")

	jobID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	job, err := h.jobController.Start(c.UserContext(), jobID, middleware.GetActor(c).ID)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) completeJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("completeJob")

	jobID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	var req services.CompleteJobRequest
	if err := parseOptionalBody(c, &req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.Complete(c.UserContext(), jobID, middleware.GetActor(c).ID, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) cancelJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("cancelJob")

	jobID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	var req jobController.CloseJobRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.Cancel(c.UserContext(), jobID, middleware.GetActor(c).ID, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) markNoShow(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("markNoShow")

	jobID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	var req jobController.CloseJobRequest
	if err := parseOptionalBody(c, &req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.NoShow(c.UserContext(), jobID, middleware.GetActor(c).ID, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) replacePhotos(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("replacePhotos")

	jobID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	var req jobController.PhotosRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.ReplacePhotos(
		c.UserContext(),
		jobID,
		middleware.GetActor(c).ID,
		c.Params("kind"),
		req,
	)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": job})
}

func (h *JobHandler) rateJob(c *fiber.Ctx) error {
	log := h.log.TraceFromContext(c.UserContext()).Function("rateJob")

	jobID, err := paramID(c, "id")
	if err != nil {
		return badRequest(c, "Invalid job ID")
	}

	var req services.RateJobRequest
	if err := c.BodyParser(&req); err != nil {
		log.Warn("Invalid request body", "error", err)
		return badRequest(c, "Invalid request body")
	}

	job, err := h.jobController.Rate(c.UserContext(), jobID, middleware.GetActor(c).ID, req)
	if err != nil {
		return respondError(c, log, err)
	}

	return c.JSON(fiber.Map{"job": job})
}
