package seed

import (
	"carwash/config"
	. "carwash/internal/models"

	logger "github.com/Bparsons0904/goLogger"
	"gorm.io/gorm"
)

func stringPtr(s string) *string {
	return &s
}

// Seed adds a demo roster for local development.
func Seed(db *gorm.DB, config config.Config, log logger.Logger) error {
	log = log.Function("seed")
	log.Info("Seeding development data")

	employees := []Employee{
		{Name: "Ada Washer", Phone: stringPtr("555-0101"), IsAvailable: true, DailyJobLimit: config.DefaultDailyJobLimit},
		{Name: "Ben Buffer", Phone: stringPtr("555-0102"), IsAvailable: true, DailyJobLimit: 4},
		{Name: "Cy Detailer", Phone: stringPtr("555-0103"), IsAvailable: true, DailyJobLimit: 8},
		{Name: "Dee Spare", IsAvailable: false},
	}

	for _, employee := range employees {
		var existing Employee
		if err := db.First(&existing, "name = ?", employee.Name).Error; err == nil {
			log.Info("Employee already exists", "name", employee.Name)
			continue
		}
		log.Info("Seeding employee", "name", employee.Name)
		if err := db.Create(&employee).Error; err != nil {
			log.Er("failed to create employee", err, "name", employee.Name)
		}
	}

	return nil
}
