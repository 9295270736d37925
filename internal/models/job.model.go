package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type JobStatus string

const (
	JobStatusScheduled  JobStatus = "scheduled"
	JobStatusInProgress JobStatus = "in-progress"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusCancelled  JobStatus = "cancelled"
	JobStatusNoShow     JobStatus = "no-show"
)

var jobTransitions = map[JobStatus][]JobStatus{
	JobStatusScheduled:  {JobStatusInProgress, JobStatusCancelled, JobStatusNoShow},
	JobStatusInProgress: {JobStatusCompleted, JobStatusNoShow},
}

// ActiveJobStatuses are the states that consume an employee's daily capacity.
func ActiveJobStatuses() []string {
	return []string{string(JobStatusScheduled), string(JobStatusInProgress)}
}

func (s JobStatus) CanTransitionTo(next JobStatus) bool {
	for _, allowed := range jobTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s JobStatus) IsTerminal() bool {
	return len(jobTransitions[s]) == 0
}

type PhotoKind string

const (
	PhotoKindBefore PhotoKind = "before"
	PhotoKindAfter  PhotoKind = "after"
)

// Job is one concrete wash occurrence. SubscriptionID is nil for ad-hoc
// bookings; ReplacesJobID links a rebalanced job to the one it superseded.
type Job struct {
	BaseUUIDModel
	EmployeeID       uuid.UUID                    `gorm:"type:uuid;not null;index:idx_jobs_employee_date" json:"employeeId"`
	CustomerID       uuid.UUID                    `gorm:"type:uuid;not null;index"                        json:"customerId"`
	ServiceID        uuid.UUID                    `gorm:"type:uuid;not null"                              json:"serviceId"`
	SubscriptionID   *uuid.UUID                   `gorm:"type:uuid;index"                                 json:"subscriptionId,omitempty"`
	ReplacesJobID    *uuid.UUID                   `gorm:"type:uuid"                                       json:"replacesJobId,omitempty"`
	ScheduledDate    time.Time                    `gorm:"not null;index:idx_jobs_employee_date;index"     json:"scheduledDate"`
	Status           JobStatus                    `gorm:"type:text;not null;index"                        json:"status"`
	Price            decimal.Decimal              `gorm:"type:decimal(10,2);not null"                     json:"price"`
	Location         datatypes.JSONType[Location] `                                                       json:"location"`
	BeforePhotos     datatypes.JSONSlice[string]  `                                                       json:"beforePhotos"`
	AfterPhotos      datatypes.JSONSlice[string]  `                                                       json:"afterPhotos"`
	Notes            *string                      `gorm:"type:text"                                       json:"notes,omitempty"`
	CustomerRating   *int                         `gorm:"type:integer"                                    json:"customerRating,omitempty"`
	CustomerFeedback *string                      `gorm:"type:text"                                       json:"customerFeedback,omitempty"`
	StartTime        *time.Time                   `                                                       json:"startTime,omitempty"`
	EndTime          *time.Time                   `                                                       json:"endTime,omitempty"`
	CompletedDate    *time.Time                   `                                                       json:"completedDate,omitempty"`
}

func (j *Job) BeforeCreate(tx *gorm.DB) error {
	if err := j.BaseUUIDModel.BeforeCreate(tx); err != nil {
		return err
	}
	if j.EmployeeID == uuid.Nil || j.CustomerID == uuid.Nil || j.ServiceID == uuid.Nil {
		return gorm.ErrInvalidValue
	}
	if j.ScheduledDate.IsZero() {
		return gorm.ErrInvalidValue
	}
	j.ScheduledDate = j.ScheduledDate.UTC()
	if j.Status == "" {
		j.Status = JobStatusScheduled
	}
	return nil
}

func (j *Job) Photos(kind PhotoKind) []string {
	if kind == PhotoKindBefore {
		return j.BeforePhotos
	}
	return j.AfterPhotos
}
