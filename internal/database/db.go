package database

import (
	"log"

	"taxengine/internal/model"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewConnection initializes a new connection pool using GORM
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	// Auto-migrate core models
	err = db.AutoMigrate(
		&model.User{},
		&model.RefreshToken{},
		&model.AuditLog{},
		&model.FiscalYear{},
		&model.Threshold{},
		&model.ObligationType{},
		&model.ObligationPeriodicity{},
		&model.RuleSet{},
		&model.Rule{},
		&model.RuleCondition{},
		&model.TaxProfile{},
		&model.Evaluation{},
		&model.EvaluationResult{},
		&model.CalendarEntry{},
	)
	if err != nil {
		log.Println("WARNING: Failed to auto-migrate models:", err)
	}

	return db, nil
}
