package impl

import (
	"context"
	"fmt"
	"time"

	"eshop/internal/domain"
	"eshop/internal/dto"
	"eshop/internal/notify"
	"eshop/internal/observability/metrics"
	"eshop/internal/store"

	"github.com/google/uuid"
)

type orderNotifier interface {
	NewOrderAlert(ctx context.Context, username string, o *domain.Order) bool
}

type OrderServiceImpl struct {
	Store    dataStore
	Notifier orderNotifier
}

func NewOrderServiceImpl(st *store.Store, notifier *notify.Notifier) *OrderServiceImpl {
	return &OrderServiceImpl{
		Store:    gormStoreAdapter{store: st},
		Notifier: notifier,
	}
}

// Place validates and persists an order, then fires the best-effort operator
// alert. The alert never fails the placement.
func (s *OrderServiceImpl) Place(ctx context.Context, user *domain.User, r dto.PlaceOrderRequest) (*dto.OrderResponse, error) {
	if err := validateOrder(r); err != nil {
		metrics.OrdersPlacedTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	now := time.Now().UTC()
	order := &domain.Order{
		ID:            uuid.New(),
		UserID:        user.ID,
		PaymentMethod: r.PaymentMethod,
		TaxPrice:      *r.TaxPrice,
		ShippingPrice: *r.ShippingPrice,
		TotalPrice:    *r.TotalPrice,
		CreatedAt:     now,
		Shipping: &domain.ShippingAddress{
			Address:    r.ShippingAddress.Address,
			City:       r.ShippingAddress.City,
			PostalCode: r.ShippingAddress.PostalCode,
			Country:    r.ShippingAddress.Country,
		},
	}
	for _, it := range r.OrderItems {
		order.Items = append(order.Items, domain.OrderItem{
			OrderID: order.ID,
			Name:    it.Name,
			Qty:     it.Qty,
			Price:   it.Price,
		})
	}
	order.Shipping.OrderID = order.ID

	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		return tx.Orders().Create(ctx, order)
	})
	if err != nil {
		metrics.OrdersPlacedTotal.WithLabelValues("failed").Inc()
		return nil, err
	}
	metrics.OrdersPlacedTotal.WithLabelValues("success").Inc()

	// Outcome discarded deliberately; the notifier logs its own failures.
	s.Notifier.NewOrderAlert(ctx, user.Username, order)

	resp := dto.FromOrder(order)
	return &resp, nil
}

func (s *OrderServiceImpl) Get(ctx context.Context, requester *domain.User, orderID uuid.UUID) (*dto.OrderResponse, error) {
	var out *dto.OrderResponse
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		o, err := tx.Orders().GetByID(ctx, orderID)
		if err != nil {
			return err
		}
		if !requester.IsStaff && o.UserID != requester.ID {
			return domain.ErrNotAuthorized
		}
		resp := dto.FromOrder(o)
		out = &resp
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *OrderServiceImpl) ListMine(ctx context.Context, userID uuid.UUID) ([]dto.OrderResponse, error) {
	var out []dto.OrderResponse
	err := s.Store.WithTx(ctx, func(tx storeTx) error {
		orders, err := tx.Orders().ListByUser(ctx, userID)
		if err != nil {
			return err
		}
		if len(orders) == 0 {
			return domain.ErrNoOrders
		}
		out = make([]dto.OrderResponse, 0, len(orders))
		for i := range orders {
			out = append(out, dto.FromOrder(&orders[i]))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func validateOrder(r dto.PlaceOrderRequest) error {
	if len(r.OrderItems) == 0 {
		return &domain.ValidationError{Msg: dto.MsgNoOrderItems}
	}
	if r.PaymentMethod == "" {
		return &domain.ValidationError{Msg: dto.MsgPaymentMethodRequired}
	}
	if r.TaxPrice == nil || r.ShippingPrice == nil || r.TotalPrice == nil {
		return &domain.ValidationError{Msg: dto.MsgPricesRequired}
	}
	if r.ShippingAddress == nil {
		return &domain.ValidationError{Msg: shippingFieldMsg("address")}
	}
	fields := []struct {
		name  string
		value string
	}{
		{"address", r.ShippingAddress.Address},
		{"city", r.ShippingAddress.City},
		{"country", r.ShippingAddress.Country},
		{"postalCode", r.ShippingAddress.PostalCode},
	}
	for _, f := range fields {
		if f.value == "" {
			return &domain.ValidationError{Msg: shippingFieldMsg(f.name)}
		}
	}
	return nil
}

func shippingFieldMsg(field string) string {
	return fmt.Sprintf("Shipping address field '%s' is required!", field)
}
