package repositories

import (
	"context"
	"errors"
	"time"

	. "carwash/internal/models"
	"carwash/internal/types"
	"carwash/internal/utils"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobFilter narrows List. Zero fields are ignored; To is exclusive.
type JobFilter struct {
	EmployeeID *uuid.UUID
	CustomerID *uuid.UUID
	Status     JobStatus
	From       time.Time
	To         time.Time
}

type JobRepository interface {
	Create(ctx context.Context, tx *gorm.DB, job *Job) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Job, error)
	Update(ctx context.Context, tx *gorm.DB, job *Job) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	List(ctx context.Context, tx *gorm.DB, filter JobFilter) ([]*Job, error)
	CountActiveByEmployee(ctx context.Context, tx *gorm.DB, day time.Time) (map[uuid.UUID]int, error)
	CountActiveForEmployee(
		ctx context.Context,
		tx *gorm.DB,
		employeeID uuid.UUID,
		day time.Time,
	) (int, error)
	CountActiveForDay(ctx context.Context, tx *gorm.DB, day time.Time) (int, error)
	ListScheduledForEmployeeDay(
		ctx context.Context,
		tx *gorm.DB,
		employeeID uuid.UUID,
		day time.Time,
	) ([]*Job, error)
	ScheduledDatesForSubscription(ctx context.Context, tx *gorm.DB, subscriptionID uuid.UUID) ([]time.Time, error)
	CancelScheduledForSubscription(
		ctx context.Context,
		tx *gorm.DB,
		subscriptionID uuid.UUID,
		from time.Time,
	) ([]uuid.UUID, error)
}

type jobRepository struct {
	log logger.Logger
}

func NewJobRepository() JobRepository {
	return &jobRepository{
		log: logger.New("jobRepository"),
	}
}

func (r *jobRepository) Create(ctx context.Context, tx *gorm.DB, job *Job) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(job).Error; err != nil {
		return log.Err(
			"failed to create job",
			err,
			"employeeID", job.EmployeeID,
			"scheduledDate", job.ScheduledDate,
		)
	}

	return nil
}

func (r *jobRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Job, error) {
	log := r.log.Function("GetByID")

	var job Job
	err := tx.WithContext(ctx).First(&job, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("job", id)
		}
		return nil, log.Err("failed to get job", err, "jobID", id)
	}

	return &job, nil
}

func (r *jobRepository) Update(ctx context.Context, tx *gorm.DB, job *Job) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(job).Error; err != nil {
		return log.Err("failed to update job", err, "jobID", job.ID)
	}

	return nil
}

// Delete soft deletes the job. Deleted jobs drop out of every count.
func (r *jobRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Delete")

	result := tx.WithContext(ctx).Delete(&Job{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete job", result.Error, "jobID", id)
	}
	if result.RowsAffected == 0 {
		return types.NotFound("job", id)
	}

	return nil
}

func (r *jobRepository) List(ctx context.Context, tx *gorm.DB, filter JobFilter) ([]*Job, error) {
	log := r.log.Function("List")

	query := tx.WithContext(ctx).Model(&Job{})
	if filter.EmployeeID != nil {
		query = query.Where("employee_id = ?", *filter.EmployeeID)
	}
	if filter.CustomerID != nil {
		query = query.Where("customer_id = ?", *filter.CustomerID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if !filter.From.IsZero() {
		query = query.Where("scheduled_date >= ?", filter.From)
	}
	if !filter.To.IsZero() {
		query = query.Where("scheduled_date < ?", filter.To)
	}

	var jobs []*Job
	if err := query.Order("scheduled_date ASC, created_at ASC").Find(&jobs).Error; err != nil {
		return nil, log.Err("failed to list jobs", err)
	}

	return jobs, nil
}

type employeeCount struct {
	EmployeeID uuid.UUID
	Count      int
}

// CountActiveByEmployee counts scheduled and in-progress jobs per employee on
// the calendar day of day. Employees without active jobs are absent.
func (r *jobRepository) CountActiveByEmployee(
	ctx context.Context,
	tx *gorm.DB,
	day time.Time,
) (map[uuid.UUID]int, error) {
	log := r.log.Function("CountActiveByEmployee")

	start, end := utils.DayWindow(day)

	var rows []employeeCount
	err := tx.WithContext(ctx).
		Model(&Job{}).
		Select("employee_id, COUNT(*) AS count").
		Where("scheduled_date >= ? AND scheduled_date < ?", start, end).
		Where("status IN ?", ActiveJobStatuses()).
		Group("employee_id").
		Scan(&rows).Error
	if err != nil {
		return nil, log.Err("failed to count active jobs", err, "day", start)
	}

	counts := make(map[uuid.UUID]int, len(rows))
	for _, row := range rows {
		counts[row.EmployeeID] = row.Count
	}

	return counts, nil
}

func (r *jobRepository) CountActiveForEmployee(
	ctx context.Context,
	tx *gorm.DB,
	employeeID uuid.UUID,
	day time.Time,
) (int, error) {
	log := r.log.Function("CountActiveForEmployee")

	start, end := utils.DayWindow(day)

	var count int64
	err := tx.WithContext(ctx).
		Model(&Job{}).
		Where("employee_id = ?", employeeID).
		Where("scheduled_date >= ? AND scheduled_date < ?", start, end).
		Where("status IN ?", ActiveJobStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, log.Err("failed to count employee jobs", err, "employeeID", employeeID)
	}

	return int(count), nil
}

func (r *jobRepository) CountActiveForDay(ctx context.Context, tx *gorm.DB, day time.Time) (int, error) {
	log := r.log.Function("CountActiveForDay")

	start, end := utils.DayWindow(day)

	var count int64
	err := tx.WithContext(ctx).
		Model(&Job{}).
		Where("scheduled_date >= ? AND scheduled_date < ?", start, end).
		Where("status IN ?", ActiveJobStatuses()).
		Count(&count).Error
	if err != nil {
		return 0, log.Err("failed to count jobs for day", err, "day", start)
	}

	return int(count), nil
}

// ListScheduledForEmployeeDay returns the employee's not-yet-started jobs for
// the day, most recently created first.
func (r *jobRepository) ListScheduledForEmployeeDay(
	ctx context.Context,
	tx *gorm.DB,
	employeeID uuid.UUID,
	day time.Time,
) ([]*Job, error) {
	log := r.log.Function("ListScheduledForEmployeeDay")

	start, end := utils.DayWindow(day)

	var jobs []*Job
	err := tx.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("scheduled_date >= ? AND scheduled_date < ?", start, end).
		Where("status = ?", JobStatusScheduled).
		Order("created_at DESC, id DESC").
		Find(&jobs).Error
	if err != nil {
		return nil, log.Err("failed to list scheduled jobs", err, "employeeID", employeeID)
	}

	return jobs, nil
}

// ScheduledDatesForSubscription returns the day of every job already
// materialized for the subscription, whatever its status.
func (r *jobRepository) ScheduledDatesForSubscription(
	ctx context.Context,
	tx *gorm.DB,
	subscriptionID uuid.UUID,
) ([]time.Time, error) {
	log := r.log.Function("ScheduledDatesForSubscription")

	var jobs []*Job
	err := tx.WithContext(ctx).
		Select("scheduled_date").
		Where("subscription_id = ?", subscriptionID).
		Find(&jobs).Error
	if err != nil {
		return nil, log.Err("failed to list subscription dates", err, "subscriptionID", subscriptionID)
	}

	dates := make([]time.Time, 0, len(jobs))
	for _, job := range jobs {
		dates = append(dates, utils.StartOfDay(job.ScheduledDate))
	}

	return dates, nil
}

// CancelScheduledForSubscription cancels the subscription's scheduled jobs on
// or after from and returns the employees whose jobs were cancelled.
func (r *jobRepository) CancelScheduledForSubscription(
	ctx context.Context,
	tx *gorm.DB,
	subscriptionID uuid.UUID,
	from time.Time,
) ([]uuid.UUID, error) {
	log := r.log.Function("CancelScheduledForSubscription")

	scope := func(db *gorm.DB) *gorm.DB {
		return db.
			Where("subscription_id = ?", subscriptionID).
			Where("status = ?", JobStatusScheduled).
			Where("scheduled_date >= ?", utils.StartOfDay(from))
	}

	var employeeIDs []uuid.UUID
	if err := tx.WithContext(ctx).
		Model(&Job{}).
		Scopes(scope).
		Distinct("employee_id").
		Pluck("employee_id", &employeeIDs).Error; err != nil {
		return nil, log.Err("failed to load subscription job employees", err, "subscriptionID", subscriptionID)
	}
	if len(employeeIDs) == 0 {
		return employeeIDs, nil
	}

	if err := tx.WithContext(ctx).
		Model(&Job{}).
		Scopes(scope).
		Update("status", JobStatusCancelled).Error; err != nil {
		return nil, log.Err("failed to cancel subscription jobs", err, "subscriptionID", subscriptionID)
	}

	return employeeIDs, nil
}
