package dto

import (
	"time"

	"eshop/internal/domain"
)

type OrderItemRequest struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type ShippingAddressRequest struct {
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Country    string `json:"country"`
}

// PlaceOrderRequest uses pointers for the price fields so that an absent field
// can be told apart from an explicit zero.
type PlaceOrderRequest struct {
	OrderItems      []OrderItemRequest      `json:"orderItems"`
	ShippingAddress *ShippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
	TaxPrice        *float64                `json:"taxPrice"`
	ShippingPrice   *float64                `json:"shippingPrice"`
	TotalPrice      *float64                `json:"totalPrice"`
}

type OrderItemResponse struct {
	Name  string  `json:"name"`
	Qty   int     `json:"qty"`
	Price float64 `json:"price"`
}

type OrderResponse struct {
	ID              string                  `json:"id"`
	UserID          string                  `json:"userId"`
	OrderItems      []OrderItemResponse     `json:"orderItems"`
	ShippingAddress *ShippingAddressRequest `json:"shippingAddress,omitempty"`
	PaymentMethod   string                  `json:"paymentMethod"`
	TaxPrice        float64                 `json:"taxPrice"`
	ShippingPrice   float64                 `json:"shippingPrice"`
	TotalPrice      float64                 `json:"totalPrice"`
	IsPaid          bool                    `json:"isPaid"`
	PaidAt          *time.Time              `json:"paidAt,omitempty"`
	IsDelivered     bool                    `json:"isDelivered"`
	DeliveredAt     *time.Time              `json:"deliveredAt,omitempty"`
	CreatedAt       time.Time               `json:"createdAt"`
}

func FromOrder(o *domain.Order) OrderResponse {
	items := make([]OrderItemResponse, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, OrderItemResponse{Name: it.Name, Qty: it.Qty, Price: it.Price})
	}
	resp := OrderResponse{
		ID:            o.ID.String(),
		UserID:        o.UserID.String(),
		OrderItems:    items,
		PaymentMethod: o.PaymentMethod,
		TaxPrice:      o.TaxPrice,
		ShippingPrice: o.ShippingPrice,
		TotalPrice:    o.TotalPrice,
		IsPaid:        o.IsPaid,
		PaidAt:        o.PaidAt,
		IsDelivered:   o.IsDelivered,
		DeliveredAt:   o.DeliveredAt,
		CreatedAt:     o.CreatedAt,
	}
	if o.Shipping != nil {
		resp.ShippingAddress = &ShippingAddressRequest{
			Address:    o.Shipping.Address,
			City:       o.Shipping.City,
			PostalCode: o.Shipping.PostalCode,
			Country:    o.Shipping.Country,
		}
	}
	return resp
}
