package store

import (
	"context"
	"errors"

	"eshop/internal/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OrderStore struct{ db *gorm.DB }

func (s *Store) Orders() *OrderStore { return &OrderStore{db: s.DB} }

// Create persists the order together with its line items and shipping address.
func (o *OrderStore) Create(ctx context.Context, ord *domain.Order) error {
	if ord.ID == uuid.Nil {
		ord.ID = uuid.New()
	}
	return o.db.WithContext(ctx).Create(ord).Error
}

func (o *OrderStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Order, error) {
	var ord domain.Order
	err := o.db.WithContext(ctx).
		Preload("Items").
		Preload("Shipping").
		First(&ord, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}
	return &ord, nil
}

func (o *OrderStore) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Order, error) {
	var orders []domain.Order
	err := o.db.WithContext(ctx).
		Preload("Items").
		Preload("Shipping").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, err
	}
	return orders, nil
}
