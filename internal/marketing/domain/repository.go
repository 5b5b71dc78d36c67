package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
)

type OfferRepository interface {
	Insert(ctx context.Context, db *gorm.DB, offer *Offer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Offer, error)
	List(ctx context.Context, db *gorm.DB, filter ListOfferFilter, page pagination.Pagination) ([]*Offer, error)
	Update(ctx context.Context, db *gorm.DB, offer *Offer) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)

	ProductIDs(ctx context.Context, db *gorm.DB, offerID snowflake.ID) ([]snowflake.ID, error)
	ReplaceProducts(ctx context.Context, db *gorm.DB, offerID snowflake.ID, productIDs []snowflake.ID) error
	CountProducts(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) (int64, error)
}

type CouponRepository interface {
	Insert(ctx context.Context, db *gorm.DB, coupon *Coupon) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Coupon, error)
	FindByCode(ctx context.Context, db *gorm.DB, code string) (*Coupon, error)
	List(ctx context.Context, db *gorm.DB, filter ListCouponFilter, page pagination.Pagination) ([]*Coupon, error)
	Update(ctx context.Context, db *gorm.DB, coupon *Coupon) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	// IncrementUsage consumes one usage only while the coupon is active and
	// below its cap. Zero rows means nothing was consumed.
	IncrementUsage(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) (int64, error)
}
