package domain

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

type CreateCategoryRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateCategoryRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ListCategoryRequest struct {
	Name    string
	SortBy  string
	OrderBy string
}

type CreateBrandRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type UpdateBrandRequest struct {
	ID          string  `json:"-"`
	Name        *string `json:"name"`
	Description *string `json:"description"`
}

type ListBrandRequest struct {
	Name    string
	SortBy  string
	OrderBy string
}

type CreateProductRequest struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price"`
	SKU         string          `json:"sku"`
	Barcode     string          `json:"barcode"`
	BrandID     string          `json:"brand_id"`
	CategoryID  string          `json:"category_id"`
	Stock       *int64          `json:"stock"`
	Status      string          `json:"status"`
	Unit        string          `json:"unit"`
}

// UpdateProductRequest applies only the non-nil fields. An empty BrandID or
// CategoryID clears the reference.
type UpdateProductRequest struct {
	ID          string           `json:"-"`
	Name        *string          `json:"name"`
	Description *string          `json:"description"`
	Price       *decimal.Decimal `json:"price"`
	SKU         *string          `json:"sku"`
	Barcode     *string          `json:"barcode"`
	BrandID     *string          `json:"brand_id"`
	CategoryID  *string          `json:"category_id"`
	Stock       *int64           `json:"stock"`
	Status      *string          `json:"status"`
	Unit        *string          `json:"unit"`
}

type ListProductRequest struct {
	PageToken  string
	PageSize   int
	Name       string
	Status     string
	BrandID    string
	CategoryID string
}

type ListProductFilter struct {
	Name       string
	Status     ProductStatus
	BrandID    int64
	CategoryID int64
}

type ListProductResponse struct {
	pagination.PageInfo
	Products []Product `json:"products"`
}

type Service interface {
	CreateCategory(context.Context, CreateCategoryRequest) (Category, error)
	GetCategory(ctx context.Context, id string) (Category, error)
	ListCategories(context.Context, ListCategoryRequest) ([]Category, error)
	UpdateCategory(context.Context, UpdateCategoryRequest) (Category, error)
	DeleteCategory(ctx context.Context, id string) error

	CreateBrand(context.Context, CreateBrandRequest) (Brand, error)
	GetBrand(ctx context.Context, id string) (Brand, error)
	ListBrands(context.Context, ListBrandRequest) ([]Brand, error)
	UpdateBrand(context.Context, UpdateBrandRequest) (Brand, error)
	DeleteBrand(ctx context.Context, id string) error

	CreateProduct(context.Context, CreateProductRequest) (Product, error)
	GetProduct(ctx context.Context, id string) (Product, error)
	ListProducts(context.Context, ListProductRequest) (ListProductResponse, error)
	UpdateProduct(context.Context, UpdateProductRequest) (Product, error)
	DeleteProduct(ctx context.Context, id string) error
}

var (
	ErrInvalidID        = errors.New("invalid_id")
	ErrInvalidName      = errors.New("invalid_name")
	ErrInvalidPrice     = errors.New("invalid_price")
	ErrInvalidSKU       = errors.New("invalid_sku")
	ErrInvalidBarcode   = errors.New("invalid_barcode")
	ErrInvalidStock     = errors.New("invalid_stock")
	ErrInvalidStatus    = errors.New("invalid_status")
	ErrInvalidUnit      = errors.New("invalid_unit")
	ErrInvalidBrand     = errors.New("invalid_brand")
	ErrInvalidCategory  = errors.New("invalid_category")
	ErrDuplicateProduct = errors.New("duplicate_product")
	ErrNotFound         = errors.New("not_found")
)
