package repository

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/sales/domain"
	"gorm.io/gorm"
)

type referenceRepo struct{}

func ProvideReferences() domain.ReferenceChecker {
	return &referenceRepo{}
}

func (r *referenceRepo) CustomerExists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error) {
	var count int64
	err := db.WithContext(ctx).Table("customers").Where("id = ?", id.Int64()).Count(&count).Error
	return count > 0, err
}

func (r *referenceRepo) CountProducts(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Int64())
	}
	var count int64
	err := db.WithContext(ctx).Table("products").Where("id IN ?", raw).Count(&count).Error
	return count, err
}

func (r *referenceRepo) CustomerName(ctx context.Context, db *gorm.DB, id snowflake.ID) (string, error) {
	var row struct {
		FirstName string
		LastName  string
	}
	err := db.WithContext(ctx).Raw(
		`SELECT first_name, last_name FROM customers WHERE id = ?`,
		id,
	).Scan(&row).Error
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(row.FirstName + " " + row.LastName), nil
}

func (r *referenceRepo) ProductNames(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (map[snowflake.ID]string, error) {
	names := make(map[snowflake.ID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}
	raw := make([]int64, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Int64())
	}
	var rows []struct {
		ID   int64
		Name string
	}
	if err := db.WithContext(ctx).Table("products").Select("id, name").Where("id IN ?", raw).Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		names[snowflake.ID(row.ID)] = row.Name
	}
	return names, nil
}
