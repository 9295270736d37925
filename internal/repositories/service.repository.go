package repositories

import (
	"context"
	"errors"

	"carwash/internal/constants"
	"carwash/internal/database"
	. "carwash/internal/models"
	"carwash/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ServiceRepository reads the wash catalog. Lookups by id are served from the
// catalog cache when one is configured.
type ServiceRepository interface {
	Create(ctx context.Context, tx *gorm.DB, service *Service) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Service, error)
	GetByName(ctx context.Context, tx *gorm.DB, name string) (*Service, error)
	List(ctx context.Context, tx *gorm.DB) ([]*Service, error)
	Update(ctx context.Context, tx *gorm.DB, service *Service) error
}

type serviceRepository struct {
	db  database.DB
	log logger.Logger
}

func NewServiceRepository(db database.DB) ServiceRepository {
	return &serviceRepository{
		db:  db,
		log: logger.New("serviceRepository"),
	}
}

func (r *serviceRepository) Create(ctx context.Context, tx *gorm.DB, service *Service) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(service).Error; err != nil {
		return log.Err("failed to create service", err, "name", service.Name)
	}

	return nil
}

func (r *serviceRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Service, error) {
	log := r.log.Function("GetByID")

	var service Service
	found, err := database.NewCacheBuilder(r.db.Cache.Catalog, id).
		WithHash(constants.ServiceCachePrefix).
		WithContext(ctx).
		Get(&service)
	if err != nil {
		log.Warn("failed to read service from cache", "serviceID", id, "error", err)
	}
	if found {
		return &service, nil
	}

	err = tx.WithContext(ctx).First(&service, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("service", id)
		}
		return nil, log.Err("failed to get service", err, "serviceID", id)
	}

	if err := r.cacheService(ctx, &service); err != nil {
		log.Warn("failed to add service to cache", "serviceID", id, "error", err)
	}

	return &service, nil
}

func (r *serviceRepository) GetByName(ctx context.Context, tx *gorm.DB, name string) (*Service, error) {
	log := r.log.Function("GetByName")

	var service Service
	err := tx.WithContext(ctx).First(&service, "name = ?", name).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("service", name)
		}
		return nil, log.Err("failed to get service by name", err, "name", name)
	}

	return &service, nil
}

func (r *serviceRepository) List(ctx context.Context, tx *gorm.DB) ([]*Service, error) {
	log := r.log.Function("List")

	var services []*Service
	if err := tx.WithContext(ctx).Order("name ASC").Find(&services).Error; err != nil {
		return nil, log.Err("failed to list services", err)
	}

	return services, nil
}

func (r *serviceRepository) Update(ctx context.Context, tx *gorm.DB, service *Service) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(service).Error; err != nil {
		return log.Err("failed to update service", err, "serviceID", service.ID)
	}

	err := database.NewCacheBuilder(r.db.Cache.Catalog, service.ID).
		WithHash(constants.ServiceCachePrefix).
		WithContext(ctx).
		Delete()
	if err != nil {
		log.Warn("failed to clear service cache after update", "serviceID", service.ID, "error", err)
	}

	return nil
}

func (r *serviceRepository) cacheService(ctx context.Context, service *Service) error {
	return database.NewCacheBuilder(r.db.Cache.Catalog, service.ID).
		WithHash(constants.ServiceCachePrefix).
		WithStruct(service).
		WithTTL(constants.ServiceCacheExpiry).
		WithContext(ctx).
		Set()
}
