package repositories

import (
	"carwash/internal/database"
)

type Repository struct {
	Employee     EmployeeRepository
	Job          JobRepository
	Subscription SubscriptionRepository
	Service      ServiceRepository
}

func New(db database.DB) Repository {
	return Repository{
		Employee:     NewEmployeeRepository(),
		Job:          NewJobRepository(),
		Subscription: NewSubscriptionRepository(),
		Service:      NewServiceRepository(db), // catalog lookups go through the cache
	}
}
