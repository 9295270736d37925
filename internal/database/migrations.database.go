package database

import (
	"carwash/internal/models"

	logger "github.com/Bparsons0904/goLogger"
)

// Models lists every table owned by the service in dependency order.
func Models() []any {
	return []any{
		&models.Employee{},
		&models.Service{},
		&models.Subscription{},
		&models.Job{},
	}
}

// MigrateModels runs GORM AutoMigrate for all models.
func (db *DB) MigrateModels() error {
	log := logger.New("database").Function("MigrateModels")
	log.Info("Starting database migration")

	for _, model := range Models() {
		if err := db.SQL.AutoMigrate(model); err != nil {
			return log.Err("Failed to migrate model", err, "model", model)
		}
	}

	log.Info("Database migration completed successfully")
	return nil
}

// CreateIndexes creates indexes AutoMigrate cannot express.
func (db *DB) CreateIndexes() error {
	log := logger.New("database").Function("CreateIndexes")

	indexes := []string{
		"CREATE INDEX IF NOT EXISTS idx_jobs_subscription_date ON jobs(subscription_id, scheduled_date)",
		"CREATE INDEX IF NOT EXISTS idx_jobs_status_date ON jobs(status, scheduled_date)",
		"CREATE INDEX IF NOT EXISTS idx_employees_available ON employees(is_available)",
	}

	for _, indexSQL := range indexes {
		if err := db.SQL.Exec(indexSQL).Error; err != nil {
			log.Warn("Failed to create index", "sql", indexSQL, "error", err)
		}
	}

	log.Info("Additional database indexes created")
	return nil
}
