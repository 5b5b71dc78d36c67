package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/pkg/db/option"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
)

type couponRepo struct{}

func ProvideCoupon() domain.CouponRepository {
	return &couponRepo{}
}

const couponColumns = `id, code, offer_id, max_usages, current_usages, max_usages_per_customer, valid_from, valid_until, is_active, created_at, updated_at`

func (r *couponRepo) Insert(ctx context.Context, db *gorm.DB, c *domain.Coupon) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO coupons (`+couponColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Code, c.OfferID, c.MaxUsages, c.CurrentUsages, c.MaxUsagesPerCustomer,
		c.ValidFrom, c.ValidUntil, c.IsActive, c.CreatedAt, c.UpdatedAt,
	).Error
}

func (r *couponRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Coupon, error) {
	return r.findOne(ctx, db, "id = ?", id)
}

func (r *couponRepo) FindByCode(ctx context.Context, db *gorm.DB, code string) (*domain.Coupon, error) {
	return r.findOne(ctx, db, "code = ?", code)
}

func (r *couponRepo) findOne(ctx context.Context, db *gorm.DB, where string, arg any) (*domain.Coupon, error) {
	var c domain.Coupon
	err := db.WithContext(ctx).Raw(`SELECT `+couponColumns+` FROM coupons WHERE `+where, arg).Scan(&c).Error
	if err != nil {
		return nil, err
	}
	if c.ID == 0 {
		return nil, nil
	}
	return &c, nil
}

func (r *couponRepo) List(ctx context.Context, db *gorm.DB, filter domain.ListCouponFilter, page pagination.Pagination) ([]*domain.Coupon, error) {
	var coupons []*domain.Coupon
	stmt := db.WithContext(ctx).Model(&domain.Coupon{})
	if filter.OfferID != 0 {
		stmt = stmt.Where("offer_id = ?", filter.OfferID)
	}
	if filter.IsActive != nil {
		stmt = stmt.Where("is_active = ?", *filter.IsActive)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Find(&coupons).Error; err != nil {
		return nil, err
	}
	return coupons, nil
}

func (r *couponRepo) Update(ctx context.Context, db *gorm.DB, c *domain.Coupon) error {
	return db.WithContext(ctx).Exec(
		`UPDATE coupons
		 SET code = ?, offer_id = ?, max_usages = ?, max_usages_per_customer = ?, valid_from = ?,
		     valid_until = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		c.Code, c.OfferID, c.MaxUsages, c.MaxUsagesPerCustomer, c.ValidFrom,
		c.ValidUntil, c.IsActive, c.UpdatedAt, c.ID,
	).Error
}

func (r *couponRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM coupons WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *couponRepo) IncrementUsage(ctx context.Context, db *gorm.DB, id snowflake.ID, at time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE coupons
		 SET current_usages = current_usages + 1, updated_at = ?
		 WHERE id = ? AND is_active = ? AND current_usages < max_usages`,
		at,
		id,
		true,
	)
	return res.RowsAffected, res.Error
}
