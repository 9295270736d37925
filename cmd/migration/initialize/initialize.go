package initialize

import (
	"carwash/config"
	. "carwash/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

func InitializeTables(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("InitializeTables")
	log.Info("Initializing essential production data")

	if err := initializeServices(db, log); err != nil {
		return log.Err("failed to initialize service catalog", err)
	}

	log.Info("Table initialization complete")
	return nil
}

func initializeServices(db *gorm.DB, log logger.Logger) error {
	log.Info("Initializing service catalog")

	services := getServiceCatalog()

	for _, service := range services {
		var existing Service
		if err := db.First(&existing, "name = ?", service.Name).Error; err == nil {
			log.Debug("Service already exists", "name", service.Name)
			continue
		}
		log.Info("Initializing service", "name", service.Name, "frequency", service.Frequency)
		if err := db.Create(&service).Error; err != nil {
			return log.Err("failed to create service", err, "name", service.Name)
		}
	}

	log.Info("Service catalog initialized", "count", len(services))
	return nil
}

func getServiceCatalog() []Service {
	return []Service{
		{
			Name:            "Exterior Wash",
			Price:           decimal.RequireFromString("15.00"),
			Frequency:       "one-time",
			DurationMinutes: 30,
			IsActive:        true,
		},
		{
			Name:            "Full Detail",
			Price:           decimal.RequireFromString("60.00"),
			Frequency:       "one-time",
			DurationMinutes: 120,
			IsActive:        true,
		},
		{
			Name:            "Daily Rinse",
			Price:           decimal.RequireFromString("8.00"),
			Frequency:       "daily",
			DurationMinutes: 15,
			IsActive:        true,
		},
		{
			Name:            "Alternate Day Wash",
			Price:           decimal.RequireFromString("10.00"),
			Frequency:       "2-days-once",
			DurationMinutes: 20,
			IsActive:        true,
		},
		{
			Name:            "Weekly Wash",
			Price:           decimal.RequireFromString("18.00"),
			Frequency:       "weekly-once",
			DurationMinutes: 30,
			IsActive:        true,
		},
		{
			Name:            "Biweekly Wash",
			Price:           decimal.RequireFromString("20.00"),
			Frequency:       "biweekly",
			DurationMinutes: 35,
			IsActive:        true,
		},
		{
			Name:            "Monthly Detail",
			Price:           decimal.RequireFromString("55.00"),
			Frequency:       "monthly",
			DurationMinutes: 90,
			IsActive:        true,
		},
	}
}
