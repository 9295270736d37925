package app

import (
	"context"

	"carwash/config"
	"carwash/internal/controllers"
	"carwash/internal/database"
	"carwash/internal/events"
	"carwash/internal/handlers/middleware"
	"carwash/internal/jobs"
	"carwash/internal/services"

	logger "github.com/Bparsons0904/goLogger"
)

type App struct {
	Database    database.DB
	Middleware  middleware.Middleware
	EventBus    *events.EventBus
	Config      config.Config
	Services    services.Service
	Controllers controllers.Controllers
}

func New() (*App, error) {
	log := logger.New("app").Function("New")

	config, err := config.New()
	if err != nil {
		return &App{}, log.Err("failed to initialize config", err)
	}

	db, err := database.New(config)
	if err != nil {
		return &App{}, log.Err("failed to create database", err)
	}

	return Build(db, config)
}

// Build wires services, controllers and scheduled jobs on top of an open
// database.
func Build(db database.DB, config config.Config) (*App, error) {
	log := logger.New("app").Function("Build")

	eventBus := events.New(db.Cache.Events, config)

	services, err := services.New(db, config, eventBus)
	if err != nil {
		return &App{}, log.Err("failed to create services", err)
	}

	if err := jobs.RegisterAllJobs(services.Scheduler, config, services); err != nil {
		return &App{}, log.Err("failed to register jobs", err)
	}

	app := &App{
		Database:    db,
		Config:      config,
		Middleware:  middleware.New(config),
		EventBus:    eventBus,
		Services:    services,
		Controllers: controllers.New(services, db),
	}

	if err := app.validate(); err != nil {
		return &App{}, log.Err("failed to validate app", err)
	}

	return app, nil
}

func (a *App) validate() error {
	log := logger.New("app").Function("validate")
	if a.Database.SQL == nil {
		return log.ErrMsg("database is nil")
	}

	if a.Config == (config.Config{}) {
		return log.ErrMsg("config is nil")
	}

	missing := map[string]bool{
		"eventBus":               a.EventBus == nil,
		"transactionService":     a.Services.Transaction == nil,
		"schedulerService":       a.Services.Scheduler == nil,
		"jobService":             a.Services.Job == nil,
		"subscriptionService":    a.Services.Subscription == nil,
		"rebalanceService":       a.Services.Rebalance == nil,
		"jobController":          a.Controllers.Job == nil,
		"subscriptionController": a.Controllers.Subscription == nil,
		"adminController":        a.Controllers.Admin == nil,
	}

	for name, isNil := range missing {
		if isNil {
			return log.Error("nil check failed", "component", name)
		}
	}

	return nil
}

func (a *App) Close() (err error) {
	if a.EventBus != nil {
		if closeErr := a.EventBus.Close(); closeErr != nil {
			err = closeErr
		}
	}

	if a.Services.Scheduler != nil {
		if closeErr := a.Services.Scheduler.Stop(context.Background()); closeErr != nil {
			err = closeErr
		}
	}

	if dbErr := a.Database.Close(); dbErr != nil {
		err = dbErr
	}

	return err
}
