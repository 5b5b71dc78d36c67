package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Category struct {
	ID          snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Slug        string       `gorm:"size:255;not null;index" json:"slug"`
	Description string       `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

func (Category) TableName() string { return "categories" }

type Brand struct {
	ID          snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string       `gorm:"size:255;not null" json:"name"`
	Slug        string       `gorm:"size:255;not null;index" json:"slug"`
	Description string       `gorm:"type:text;not null" json:"description"`
	CreatedAt   time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time    `gorm:"not null" json:"updated_at"`
}

func (Brand) TableName() string { return "brands" }

type Unit string

const (
	UnitPiece    Unit = "UN"
	UnitKilogram Unit = "KG"
	UnitLiter    Unit = "L"
	UnitPart     Unit = "PC"
	UnitMeter    Unit = "M"
	UnitBox      Unit = "CX"
)

func (u Unit) Valid() bool {
	switch u {
	case UnitPiece, UnitKilogram, UnitLiter, UnitPart, UnitMeter, UnitBox:
		return true
	default:
		return false
	}
}

func (u Unit) Label() string {
	switch u {
	case UnitPiece:
		return "Unidade"
	case UnitKilogram:
		return "Kilograma"
	case UnitLiter:
		return "Litro"
	case UnitPart:
		return "Peça"
	case UnitMeter:
		return "Metro"
	case UnitBox:
		return "Caixa"
	default:
		return ""
	}
}

type ProductStatus string

const (
	ProductActive   ProductStatus = "ACTIVE"
	ProductInactive ProductStatus = "INACTIVE"
)

func (s ProductStatus) Valid() bool {
	return s == ProductActive || s == ProductInactive
}

func (s ProductStatus) Label() string {
	switch s {
	case ProductActive:
		return "Ativo"
	case ProductInactive:
		return "Inativo"
	default:
		return ""
	}
}

type Product struct {
	ID          snowflake.ID    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text;not null" json:"description"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	SKU         string          `gorm:"column:sku;size:255;not null;uniqueIndex" json:"sku"`
	Barcode     string          `gorm:"size:255;not null;uniqueIndex" json:"barcode"`
	BrandID     *snowflake.ID   `gorm:"index" json:"brand_id"`
	CategoryID  *snowflake.ID   `gorm:"index" json:"category_id"`
	Stock       int64           `gorm:"not null;default:0" json:"stock"`
	Status      ProductStatus   `gorm:"size:20;not null;default:ACTIVE" json:"status"`
	Unit        Unit            `gorm:"size:255;not null;default:UN" json:"unit"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (Product) TableName() string { return "products" }
