package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/catalog/domain"
	"github.com/smallbiznis/varejo/pkg/db/option"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
)

type productRepo struct{}

func ProvideProduct() domain.ProductRepository {
	return &productRepo{}
}

const productColumns = `id, name, description, price, sku, barcode, brand_id, category_id, stock, status, unit, created_at, updated_at`

func (r *productRepo) Insert(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO products (`+productColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		product.ID,
		product.Name,
		product.Description,
		product.Price,
		product.SKU,
		product.Barcode,
		product.BrandID,
		product.CategoryID,
		product.Stock,
		product.Status,
		product.Unit,
		product.CreatedAt,
		product.UpdatedAt,
	).Error
}

func (r *productRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Product, error) {
	var product domain.Product
	err := db.WithContext(ctx).Raw(
		`SELECT `+productColumns+` FROM products WHERE id = ?`,
		id,
	).Scan(&product).Error
	if err != nil {
		return nil, err
	}
	if product.ID == 0 {
		return nil, nil
	}
	return &product, nil
}

func (r *productRepo) List(ctx context.Context, db *gorm.DB, filter domain.ListProductFilter, page pagination.Pagination) ([]*domain.Product, error) {
	var products []*domain.Product
	stmt := db.WithContext(ctx).Model(&domain.Product{})
	if filter.Name != "" {
		stmt = stmt.Where("LOWER(name) LIKE ?", "%"+filter.Name+"%")
	}
	if filter.Status != "" {
		stmt = stmt.Where("status = ?", filter.Status)
	}
	if filter.BrandID != 0 {
		stmt = stmt.Where("brand_id = ?", filter.BrandID)
	}
	if filter.CategoryID != 0 {
		stmt = stmt.Where("category_id = ?", filter.CategoryID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

func (r *productRepo) Update(ctx context.Context, db *gorm.DB, product *domain.Product) error {
	if product == nil {
		return gorm.ErrInvalidData
	}
	return db.WithContext(ctx).Exec(
		`UPDATE products
		 SET name = ?, description = ?, price = ?, sku = ?, barcode = ?, brand_id = ?, category_id = ?,
		     stock = ?, status = ?, unit = ?, updated_at = ?
		 WHERE id = ?`,
		product.Name,
		product.Description,
		product.Price,
		product.SKU,
		product.Barcode,
		product.BrandID,
		product.CategoryID,
		product.Stock,
		product.Status,
		product.Unit,
		product.UpdatedAt,
		product.ID,
	).Error
}

func (r *productRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM products WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
