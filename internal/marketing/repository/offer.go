package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/pkg/db/option"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
)

type offerRepo struct{}

func ProvideOffer() domain.OfferRepository {
	return &offerRepo{}
}

const offerColumns = `id, campaign_id, name, offer_type, discount_value, min_purchase_amount, is_exclusive_for_loyalty, created_at, updated_at`

func (r *offerRepo) Insert(ctx context.Context, db *gorm.DB, o *domain.Offer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO offers (`+offerColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		o.ID, o.CampaignID, o.Name, o.OfferType, o.DiscountValue, o.MinPurchaseAmount,
		o.IsExclusiveForLoyalty, o.CreatedAt, o.UpdatedAt,
	).Error
}

func (r *offerRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Offer, error) {
	var o domain.Offer
	err := db.WithContext(ctx).Raw(`SELECT `+offerColumns+` FROM offers WHERE id = ?`, id).Scan(&o).Error
	if err != nil {
		return nil, err
	}
	if o.ID == 0 {
		return nil, nil
	}
	return &o, nil
}

func (r *offerRepo) List(ctx context.Context, db *gorm.DB, filter domain.ListOfferFilter, page pagination.Pagination) ([]*domain.Offer, error) {
	var offers []*domain.Offer
	stmt := db.WithContext(ctx).Model(&domain.Offer{})
	if filter.CampaignID != 0 {
		stmt = stmt.Where("campaign_id = ?", filter.CampaignID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Find(&offers).Error; err != nil {
		return nil, err
	}
	return offers, nil
}

func (r *offerRepo) Update(ctx context.Context, db *gorm.DB, o *domain.Offer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE offers
		 SET campaign_id = ?, name = ?, offer_type = ?, discount_value = ?, min_purchase_amount = ?,
		     is_exclusive_for_loyalty = ?, updated_at = ?
		 WHERE id = ?`,
		o.CampaignID, o.Name, o.OfferType, o.DiscountValue, o.MinPurchaseAmount,
		o.IsExclusiveForLoyalty, o.UpdatedAt, o.ID,
	).Error
}

func (r *offerRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM offers WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *offerRepo) ProductIDs(ctx context.Context, db *gorm.DB, offerID snowflake.ID) ([]snowflake.ID, error) {
	var ids []int64
	err := db.WithContext(ctx).
		Table("offer_products").
		Where("offer_id = ?", offerID).
		Order("product_id").
		Pluck("product_id", &ids).Error
	if err != nil {
		return nil, err
	}
	out := make([]snowflake.ID, 0, len(ids))
	for _, id := range ids {
		out = append(out, snowflake.ID(id))
	}
	return out, nil
}

func (r *offerRepo) ReplaceProducts(ctx context.Context, db *gorm.DB, offerID snowflake.ID, productIDs []snowflake.ID) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM offer_products WHERE offer_id = ?`, offerID).Error; err != nil {
		return err
	}
	if len(productIDs) == 0 {
		return nil
	}
	rows := make([]domain.OfferProduct, 0, len(productIDs))
	for _, id := range productIDs {
		rows = append(rows, domain.OfferProduct{OfferID: offerID, ProductID: id})
	}
	return db.WithContext(ctx).Create(&rows).Error
}

func (r *offerRepo) CountProducts(ctx context.Context, db *gorm.DB, productIDs []snowflake.ID) (int64, error) {
	if len(productIDs) == 0 {
		return 0, nil
	}
	ids := make([]int64, 0, len(productIDs))
	for _, id := range productIDs {
		ids = append(ids, id.Int64())
	}
	var count int64
	err := db.WithContext(ctx).Table("products").Where("id IN ?", ids).Count(&count).Error
	return count, err
}
