package domain

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

type OrderItemInput struct {
	ProductID string          `json:"product_id"`
	Quantity  *int64          `json:"quantity"`
	Price     decimal.Decimal `json:"price"`
}

type CreateOrderRequest struct {
	CustomerID      string           `json:"customer_id"`
	ExternalID      string           `json:"external_id"`
	TotalAmount     *decimal.Decimal `json:"total_amount"`
	DiscountApplied *decimal.Decimal `json:"discount_applied"`
	SaleDate        *time.Time       `json:"sale_date"`
	Status          string           `json:"status"`
	Items           []OrderItemInput `json:"items"`
}

type ListOrderRequest struct {
	PageToken  string
	PageSize   int
	Status     string
	CustomerID string
}

type ListOrderFilter struct {
	Status     OrderStatus
	CustomerID int64
}

type ListOrderResponse struct {
	pagination.PageInfo
	Orders []Order `json:"orders"`
}

type Service interface {
	Create(context.Context, CreateOrderRequest) (Order, error)
	Get(ctx context.Context, id string) (Order, error)
	List(context.Context, ListOrderRequest) (ListOrderResponse, error)
	UpdateStatus(ctx context.Context, id string, status string) (Order, error)
	Delete(ctx context.Context, id string) error
	Receipt(ctx context.Context, id string) (io.Reader, error)
}

var (
	ErrInvalidID         = errors.New("invalid_id")
	ErrInvalidCustomer   = errors.New("invalid_customer")
	ErrInvalidExternalID = errors.New("invalid_external_id")
	ErrInvalidAmount     = errors.New("invalid_amount")
	ErrInvalidDiscount   = errors.New("invalid_discount")
	ErrInvalidStatus     = errors.New("invalid_status")
	ErrInvalidQuantity   = errors.New("invalid_quantity")
	ErrInvalidPrice      = errors.New("invalid_price")
	ErrInvalidProduct    = errors.New("invalid_product")
	ErrDuplicateOrder    = errors.New("duplicate_external_id")
	ErrNotFound          = errors.New("not_found")
)
