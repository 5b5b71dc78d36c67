package domain

import (
	"encoding/json"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	StatusPending   OrderStatus = "PENDING"
	StatusPaid      OrderStatus = "PAID"
	StatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled:
		return true
	default:
		return false
	}
}

func (s OrderStatus) Label() string {
	switch s {
	case StatusPending:
		return "Pendente"
	case StatusPaid:
		return "Pago"
	case StatusCancelled:
		return "Cancelado"
	default:
		return ""
	}
}

type Order struct {
	ID              snowflake.ID    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CustomerID      *snowflake.ID   `gorm:"index" json:"customer_id"`
	ExternalID      string          `gorm:"size:255;not null;uniqueIndex" json:"external_id"`
	TotalAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"total_amount"`
	DiscountApplied decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"discount_applied"`
	SaleDate        time.Time       `gorm:"not null;index" json:"sale_date"`
	Status          OrderStatus     `gorm:"size:20;not null;default:PENDING" json:"status"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	Items []OrderItem `gorm:"-" json:"items"`
}

func (Order) TableName() string { return "orders" }

// ItemsTotal sums the line totals of the loaded items.
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, item := range o.Items {
		total = total.Add(item.TotalPrice())
	}
	return total
}

// DerivedTotal is the items total minus the discount, floored at zero.
func (o Order) DerivedTotal() decimal.Decimal {
	total := o.ItemsTotal().Sub(o.DiscountApplied)
	if total.IsNegative() {
		return decimal.Zero
	}
	return total
}

type OrderItem struct {
	ID        snowflake.ID    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	OrderID   snowflake.ID    `gorm:"not null;index" json:"order_id"`
	ProductID *snowflake.ID   `gorm:"index" json:"product_id"`
	Quantity  int64           `gorm:"not null" json:"quantity"`
	Price     decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (OrderItem) TableName() string { return "order_items" }

// TotalPrice is price times quantity. It is never stored.
func (i OrderItem) TotalPrice() decimal.Decimal {
	return i.Price.Mul(decimal.NewFromInt(i.Quantity))
}

func (i OrderItem) MarshalJSON() ([]byte, error) {
	type plain OrderItem
	return json.Marshal(struct {
		plain
		TotalPrice decimal.Decimal `json:"total_price"`
	}{plain: plain(i), TotalPrice: i.TotalPrice()})
}
