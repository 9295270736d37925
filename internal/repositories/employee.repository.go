package repositories

import (
	"context"
	"errors"
	"time"

	. "carwash/internal/models"
	"carwash/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type EmployeeRepository interface {
	Create(ctx context.Context, tx *gorm.DB, employee *Employee) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Employee, error)
	List(ctx context.Context, tx *gorm.DB) ([]*Employee, error)
	ListAvailable(ctx context.Context, tx *gorm.DB) ([]*Employee, error)
	Update(ctx context.Context, tx *gorm.DB, employee *Employee) error
	SetAssignedToday(
		ctx context.Context,
		tx *gorm.DB,
		id uuid.UUID,
		count int,
		day time.Time,
	) error
	IncrementCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	UpdateRating(ctx context.Context, tx *gorm.DB, employee *Employee) error
}

type employeeRepository struct {
	log logger.Logger
}

func NewEmployeeRepository() EmployeeRepository {
	return &employeeRepository{
		log: logger.New("employeeRepository"),
	}
}

func (r *employeeRepository) Create(ctx context.Context, tx *gorm.DB, employee *Employee) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(employee).Error; err != nil {
		return log.Err("failed to create employee", err, "name", employee.Name)
	}

	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Employee, error) {
	log := r.log.Function("GetByID")

	var employee Employee
	err := tx.WithContext(ctx).First(&employee, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("employee", id)
		}
		return nil, log.Err("failed to get employee", err, "employeeID", id)
	}

	return &employee, nil
}

func (r *employeeRepository) List(ctx context.Context, tx *gorm.DB) ([]*Employee, error) {
	log := r.log.Function("List")

	var employees []*Employee
	if err := tx.WithContext(ctx).Order("name ASC, id ASC").Find(&employees).Error; err != nil {
		return nil, log.Err("failed to list employees", err)
	}

	return employees, nil
}

func (r *employeeRepository) ListAvailable(ctx context.Context, tx *gorm.DB) ([]*Employee, error) {
	log := r.log.Function("ListAvailable")

	var employees []*Employee
	err := tx.WithContext(ctx).
		Where("is_available = ?", true).
		Order("id ASC").
		Find(&employees).Error
	if err != nil {
		return nil, log.Err("failed to list available employees", err)
	}

	return employees, nil
}

func (r *employeeRepository) Update(ctx context.Context, tx *gorm.DB, employee *Employee) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(employee).Error; err != nil {
		return log.Err("failed to update employee", err, "employeeID", employee.ID)
	}

	return nil
}

// SetAssignedToday stamps the cached daily counter with the day it counts.
func (r *employeeRepository) SetAssignedToday(
	ctx context.Context,
	tx *gorm.DB,
	id uuid.UUID,
	count int,
	day time.Time,
) error {
	log := r.log.Function("SetAssignedToday")

	err := tx.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"assigned_jobs_today": count,
			"counter_date":        day,
		}).Error
	if err != nil {
		return log.Err("failed to set assigned jobs counter", err, "employeeID", id)
	}

	return nil
}

func (r *employeeRepository) IncrementCompleted(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("IncrementCompleted")

	err := tx.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", id).
		UpdateColumn("total_jobs_completed", gorm.Expr("total_jobs_completed + ?", 1)).Error
	if err != nil {
		return log.Err("failed to increment completed jobs", err, "employeeID", id)
	}

	return nil
}

func (r *employeeRepository) UpdateRating(ctx context.Context, tx *gorm.DB, employee *Employee) error {
	log := r.log.Function("UpdateRating")

	err := tx.WithContext(ctx).
		Model(&Employee{}).
		Where("id = ?", employee.ID).
		Updates(map[string]any{
			"rating":        employee.Rating,
			"total_ratings": employee.TotalRatings,
		}).Error
	if err != nil {
		return log.Err("failed to update employee rating", err, "employeeID", employee.ID)
	}

	return nil
}
