package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/group/domain"
	"gorm.io/gorm"
)

type referenceRepo struct{}

func ProvideReferences() domain.ReferenceChecker {
	return &referenceRepo{}
}

func (r *referenceRepo) CustomerExists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	return exists(ctx, db, "customers", id)
}

func (r *referenceRepo) AddressExists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	return exists(ctx, db, "addresses", id)
}

func (r *referenceRepo) CountContacts(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Int64())
	}
	var count int64
	err := db.WithContext(ctx).Table("contacts").Where("id IN ?", raw).Count(&count).Error
	return count, err
}

func exists(ctx context.Context, db *gorm.DB, table string, id snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Table(table).Where("id = ?", id.Int64()).Count(&count).Error
	return count > 0, err
}
