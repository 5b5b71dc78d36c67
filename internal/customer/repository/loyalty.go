package repository

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/customer/domain"
	"gorm.io/gorm"
)

type loyaltyRepo struct{}

func ProvideLoyalty() domain.LoyaltyRepository {
	return &loyaltyRepo{}
}

func (r *loyaltyRepo) Insert(ctx context.Context, db *gorm.DB, p *domain.LoyaltyProgram) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO loyalty_programs (id, customer_id, points, tier, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		p.ID, p.CustomerID, p.Points, p.Tier, p.CreatedAt, p.UpdatedAt,
	).Error
}

func (r *loyaltyRepo) FindByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*domain.LoyaltyProgram, error) {
	var p domain.LoyaltyProgram
	err := db.WithContext(ctx).Raw(
		`SELECT id, customer_id, points, tier, created_at, updated_at
		 FROM loyalty_programs WHERE customer_id = ?`,
		customerID,
	).Scan(&p).Error
	if err != nil {
		return nil, err
	}
	if p.ID == 0 {
		return nil, nil
	}
	return &p, nil
}

func (r *loyaltyRepo) AddPoints(ctx context.Context, db *gorm.DB, customerID snowflake.ID, amount int64, at time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE loyalty_programs SET points = points + ?, updated_at = ? WHERE customer_id = ?`,
		amount,
		at,
		customerID,
	)
	return res.RowsAffected, res.Error
}

func (r *loyaltyRepo) SetTier(ctx context.Context, db *gorm.DB, customerID snowflake.ID, tier domain.LoyaltyTier, at time.Time) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`UPDATE loyalty_programs SET tier = ?, updated_at = ? WHERE customer_id = ?`,
		tier,
		at,
		customerID,
	)
	return res.RowsAffected, res.Error
}
