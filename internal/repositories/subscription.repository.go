package repositories

import (
	"context"
	"errors"

	. "carwash/internal/models"
	"carwash/internal/types"

	logger "github.com/Bparsons0904/goLogger"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, tx *gorm.DB, subscription *Subscription) error
	GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Subscription, error)
	Update(ctx context.Context, tx *gorm.DB, subscription *Subscription) error
	Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error
	ListByCustomer(ctx context.Context, tx *gorm.DB, customerID uuid.UUID) ([]*Subscription, error)
}

type subscriptionRepository struct {
	log logger.Logger
}

func NewSubscriptionRepository() SubscriptionRepository {
	return &subscriptionRepository{
		log: logger.New("subscriptionRepository"),
	}
}

func (r *subscriptionRepository) Create(ctx context.Context, tx *gorm.DB, subscription *Subscription) error {
	log := r.log.Function("Create")

	if err := tx.WithContext(ctx).Create(subscription).Error; err != nil {
		return log.Err("failed to create subscription", err, "customerID", subscription.CustomerID)
	}

	return nil
}

func (r *subscriptionRepository) GetByID(ctx context.Context, tx *gorm.DB, id uuid.UUID) (*Subscription, error) {
	log := r.log.Function("GetByID")

	var subscription Subscription
	err := tx.WithContext(ctx).First(&subscription, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, types.NotFound("subscription", id)
		}
		return nil, log.Err("failed to get subscription", err, "subscriptionID", id)
	}

	return &subscription, nil
}

func (r *subscriptionRepository) Update(ctx context.Context, tx *gorm.DB, subscription *Subscription) error {
	log := r.log.Function("Update")

	if err := tx.WithContext(ctx).Save(subscription).Error; err != nil {
		return log.Err("failed to update subscription", err, "subscriptionID", subscription.ID)
	}

	return nil
}

func (r *subscriptionRepository) Delete(ctx context.Context, tx *gorm.DB, id uuid.UUID) error {
	log := r.log.Function("Delete")

	result := tx.WithContext(ctx).Delete(&Subscription{}, "id = ?", id)
	if result.Error != nil {
		return log.Err("failed to delete subscription", result.Error, "subscriptionID", id)
	}
	if result.RowsAffected == 0 {
		return types.NotFound("subscription", id)
	}

	return nil
}

func (r *subscriptionRepository) ListByCustomer(
	ctx context.Context,
	tx *gorm.DB,
	customerID uuid.UUID,
) ([]*Subscription, error) {
	log := r.log.Function("ListByCustomer")

	var subscriptions []*Subscription
	err := tx.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("start_date DESC").
		Find(&subscriptions).Error
	if err != nil {
		return nil, log.Err("failed to list subscriptions", err, "customerID", customerID)
	}

	return subscriptions, nil
}
