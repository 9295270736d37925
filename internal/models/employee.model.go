package models

import (
	"time"

	"carwash/internal/utils"

	"gorm.io/gorm"
)

const (
	DefaultDailyJobLimit = 6
	DefaultRating        = 5.0
)

type Employee struct {
	BaseUUIDModel
	Name          string  `gorm:"type:text;not null"            json:"name"`
	Phone         *string `gorm:"type:text"                     json:"phone,omitempty"`
	IsAvailable   bool    `gorm:"type:bool;not null;index"      json:"isAvailable"`
	DailyJobLimit int     `gorm:"type:integer;not null"         json:"dailyJobLimit"`

	// AssignedJobsToday caches the number of active jobs scheduled for
	// CounterDate. Job records stay authoritative for capacity decisions.
	AssignedJobsToday int        `gorm:"type:integer;not null;default:0" json:"-"`
	CounterDate       *time.Time `gorm:"type:timestamp"                  json:"-"`

	TotalJobsCompleted int     `gorm:"type:integer;not null;default:0" json:"totalJobsCompleted"`
	Rating             float64 `gorm:"type:decimal(3,2);not null"      json:"rating"`
	TotalRatings       int     `gorm:"type:integer;not null;default:0" json:"totalRatings"`
}

func (e *Employee) BeforeCreate(tx *gorm.DB) error {
	if err := e.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if e.Name == "" {
		return gorm.ErrInvalidValue
	}
	if e.DailyJobLimit <= 0 {
		e.DailyJobLimit = DefaultDailyJobLimit
	}
	if e.TotalRatings == 0 && e.Rating == 0 {
		e.Rating = DefaultRating
	}
	return nil
}

// EffectiveAssignedJobsToday applies the day rollover lazily: a counter
// stamped for another day reads as zero.
func (e *Employee) EffectiveAssignedJobsToday(now time.Time) int {
	if e.CounterDate == nil || !utils.SameDay(*e.CounterDate, now) {
		return 0
	}
	return e.AssignedJobsToday
}

// ApplyRating folds a new customer rating into the running average.
func (e *Employee) ApplyRating(rating int) {
	total := e.Rating*float64(e.TotalRatings) + float64(rating)
	e.TotalRatings++
	e.Rating = total / float64(e.TotalRatings)
}
