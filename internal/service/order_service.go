package service

import (
	"context"

	"eshop/internal/domain"
	"eshop/internal/dto"

	"github.com/google/uuid"
)

type OrderService interface {
	Place(ctx context.Context, user *domain.User, r dto.PlaceOrderRequest) (*dto.OrderResponse, error)
	Get(ctx context.Context, requester *domain.User, orderID uuid.UUID) (*dto.OrderResponse, error)
	ListMine(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error)
}
