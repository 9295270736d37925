package models

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Service is a catalog entry. Frequency holds the recurrence code the
// scheduler materializes ("daily", "weekly-once", "one-time", ...).
type Service struct {
	BaseUUIDModel
	Name            string          `gorm:"type:text;not null;uniqueIndex" json:"name"`
	Description     *string         `gorm:"type:text"                      json:"description,omitempty"`
	Price           decimal.Decimal `gorm:"type:decimal(10,2);not null"    json:"price"`
	Frequency       string          `gorm:"type:text;not null"             json:"frequency"`
	DurationMinutes int             `gorm:"type:integer;not null"          json:"durationMinutes"`
	IsActive        bool            `gorm:"type:bool;not null"             json:"isActive"`
}

func (s *Service) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.Name == "" || s.Frequency == "" {
		return gorm.ErrInvalidValue
	}
	if s.Price.IsNegative() {
		return gorm.ErrInvalidValue
	}
	return nil
}
