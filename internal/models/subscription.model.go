package models

import (
	"time"

	"carwash/internal/utils"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusPaused    SubscriptionStatus = "paused"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusExpired   SubscriptionStatus = "expired"
)

var subscriptionTransitions = map[SubscriptionStatus][]SubscriptionStatus{
	SubscriptionStatusActive: {SubscriptionStatusPaused, SubscriptionStatusCancelled, SubscriptionStatusExpired},
	SubscriptionStatusPaused: {SubscriptionStatusActive, SubscriptionStatusCancelled},
}

func (s SubscriptionStatus) IsValid() bool {
	switch s {
	case SubscriptionStatusActive, SubscriptionStatusPaused, SubscriptionStatusCancelled, SubscriptionStatusExpired:
		return true
	}
	return false
}

func (s SubscriptionStatus) CanTransitionTo(next SubscriptionStatus) bool {
	for _, allowed := range subscriptionTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Subscription struct {
	BaseUUIDModel
	CustomerID         uuid.UUID                    `gorm:"type:uuid;not null;index" json:"customerId"`
	ServiceID          uuid.UUID                    `gorm:"type:uuid;not null;index" json:"serviceId"`
	StartDate          time.Time                    `gorm:"not null"                 json:"startDate"`
	EndDate            time.Time                    `gorm:"not null"                 json:"endDate"`
	NextWashDate       *time.Time                   `gorm:"index"                    json:"nextWashDate,omitempty"`
	Status             SubscriptionStatus           `gorm:"type:text;not null;index" json:"status"`
	CompletedWashes    int                          `gorm:"type:integer;not null"    json:"completedWashes"`
	AssignedEmployeeID *uuid.UUID                   `gorm:"type:uuid;index"          json:"assignedEmployeeId,omitempty"`
	Location           datatypes.JSONType[Location] `                                json:"location"`
}

func (s *Subscription) BeforeCreate(tx *gorm.DB) error {
	if err := s.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if s.CustomerID == uuid.Nil || s.ServiceID == uuid.Nil || s.StartDate.IsZero() {
		return gorm.ErrInvalidValue
	}

	s.StartDate = utils.StartOfDay(s.StartDate)
	if s.EndDate.IsZero() {
		s.EndDate = utils.AddMonthsClamped(s.StartDate, 1)
	}
	s.EndDate = utils.StartOfDay(s.EndDate)
	if s.EndDate.Before(s.StartDate) {
		return gorm.ErrInvalidValue
	}

	if s.NextWashDate == nil {
		next := s.StartDate
		s.NextWashDate = &next
	}
	if s.Status == "" {
		s.Status = SubscriptionStatusActive
	}
	return nil
}
