package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, order *Order) error
	InsertItems(ctx context.Context, db *gorm.DB, items []OrderItem) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Order, error)
	Items(ctx context.Context, db *gorm.DB, orderID snowflake.ID) ([]OrderItem, error)
	List(ctx context.Context, db *gorm.DB, filter ListOrderFilter, page pagination.Pagination) ([]*Order, error)
	UpdateStatus(ctx context.Context, db *gorm.DB, id snowflake.ID, status OrderStatus, at time.Time) (int64, error)
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}

// ReferenceChecker looks up rows owned by other modules.
type ReferenceChecker interface {
	CustomerExists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	CountProducts(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (int64, error)
	CustomerName(ctx context.Context, db *gorm.DB, id snowflake.ID) (string, error)
	ProductNames(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (map[snowflake.ID]string, error)
}
