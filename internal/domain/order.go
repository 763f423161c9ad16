package domain

import "time"

type Order struct {
	ID            OrderID          `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        UserID           `gorm:"type:uuid;index:ix_orders_user" json:"userId"`
	PaymentMethod string           `gorm:"type:text;not null" json:"paymentMethod"`
	TaxPrice      float64          `gorm:"not null" json:"taxPrice"`
	ShippingPrice float64          `gorm:"not null" json:"shippingPrice"`
	TotalPrice    float64          `gorm:"not null" json:"totalPrice"`
	IsPaid        bool             `gorm:"not null;default:false" json:"isPaid"`
	PaidAt        *time.Time       `json:"paidAt,omitempty"`
	IsDelivered   bool             `gorm:"not null;default:false" json:"isDelivered"`
	DeliveredAt   *time.Time       `json:"deliveredAt,omitempty"`
	CreatedAt     time.Time        `gorm:"not null" json:"createdAt"`
	Items         []OrderItem      `gorm:"foreignKey:OrderID" json:"orderItems"`
	Shipping      *ShippingAddress `gorm:"foreignKey:OrderID" json:"shippingAddress,omitempty"`
}

func (Order) TableName() string { return "orders" }

type OrderItem struct {
	ID      uint    `gorm:"primaryKey" json:"id"`
	OrderID OrderID `gorm:"type:uuid;index:ix_order_items_order" json:"-"`
	Name    string  `gorm:"type:text;not null" json:"name"`
	Qty     int     `gorm:"not null" json:"qty"`
	Price   float64 `gorm:"not null" json:"price"`
}

func (OrderItem) TableName() string { return "order_items" }

type ShippingAddress struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	OrderID    OrderID `gorm:"type:uuid;uniqueIndex:ux_shipping_order" json:"-"`
	Address    string  `gorm:"type:text;not null" json:"address"`
	City       string  `gorm:"type:text;not null" json:"city"`
	PostalCode string  `gorm:"type:text;not null" json:"postalCode"`
	Country    string  `gorm:"type:text;not null" json:"country"`
}

func (ShippingAddress) TableName() string { return "shipping_addresses" }

// ItemsTotal is the derived sum of qty x price over all line items.
func (o *Order) ItemsTotal() float64 {
	var total float64
	for _, it := range o.Items {
		total += float64(it.Qty) * it.Price
	}
	return total
}
