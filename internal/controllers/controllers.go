package controllers

import (
	"carwash/internal/database"
	"carwash/internal/services"

	adminController "carwash/internal/controllers/admin"
	jobController "carwash/internal/controllers/jobs"
	subscriptionController "carwash/internal/controllers/subscriptions"
)

type Controllers struct {
	Job          jobController.JobControllerInterface
	Subscription subscriptionController.SubscriptionControllerInterface
	Admin        adminController.AdminControllerInterface
}

func New(services services.Service, db database.DB) Controllers {
	return Controllers{
		Job:          jobController.New(services),
		Subscription: subscriptionController.New(services),
		Admin:        adminController.New(services, db),
	}
}
