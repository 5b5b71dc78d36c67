package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/catalog/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"github.com/smallbiznis/varejo/pkg/money"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Service) CreateProduct(ctx context.Context, req domain.CreateProductRequest) (domain.Product, error) {
	now := s.clock.Now()
	product := domain.Product{
		ID:          s.genID.Generate(),
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Price:       req.Price,
		SKU:         strings.TrimSpace(req.SKU),
		Barcode:     strings.TrimSpace(req.Barcode),
		Status:      domain.ProductActive,
		Unit:        domain.UnitPiece,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if req.Stock != nil {
		product.Stock = *req.Stock
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		product.Status = domain.ProductStatus(strings.ToUpper(status))
	}
	if unit := strings.TrimSpace(req.Unit); unit != "" {
		product.Unit = domain.Unit(strings.ToUpper(unit))
	}

	var err error
	if product.BrandID, err = s.resolveBrand(ctx, req.BrandID); err != nil {
		return domain.Product{}, err
	}
	if product.CategoryID, err = s.resolveCategory(ctx, req.CategoryID); err != nil {
		return domain.Product{}, err
	}
	if err := validateProduct(&product); err != nil {
		return domain.Product{}, err
	}

	if err := s.products.Insert(ctx, s.db, &product); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Product{}, domain.ErrDuplicateProduct
		}
		return domain.Product{}, err
	}

	s.log.Debug("product created",
		zap.String("product_id", product.ID.String()),
		zap.String("sku", product.SKU),
	)
	return product, nil
}

func (s *Service) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	productID, err := s.parseID(id)
	if err != nil {
		return domain.Product{}, err
	}

	item, err := s.products.FindByID(ctx, s.db, productID)
	if err != nil {
		return domain.Product{}, err
	}
	if item == nil {
		return domain.Product{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) ListProducts(ctx context.Context, req domain.ListProductRequest) (domain.ListProductResponse, error) {
	filter := domain.ListProductFilter{
		Name: strings.ToLower(strings.TrimSpace(req.Name)),
	}
	if status := strings.TrimSpace(req.Status); status != "" {
		filter.Status = domain.ProductStatus(strings.ToUpper(status))
		if !filter.Status.Valid() {
			return domain.ListProductResponse{}, domain.ErrInvalidStatus
		}
	}
	if raw := strings.TrimSpace(req.BrandID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.ListProductResponse{}, domain.ErrInvalidBrand
		}
		filter.BrandID = id.Int64()
	}
	if raw := strings.TrimSpace(req.CategoryID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.ListProductResponse{}, domain.ErrInvalidCategory
		}
		filter.CategoryID = id.Int64()
	}
	if req.PageToken != "" {
		if _, err := pagination.DecodeCursor(req.PageToken); err != nil {
			return domain.ListProductResponse{}, err
		}
	}

	pageSize := s.retail.Get().PageSize(req.PageSize)
	items, err := s.products.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListProductResponse{}, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, pageSize, func(p *domain.Product) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: p.ID.String()})
		return token
	})

	products := make([]domain.Product, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		products = append(products, *item)
	}
	return domain.ListProductResponse{PageInfo: pageInfo, Products: products}, nil
}

func (s *Service) UpdateProduct(ctx context.Context, req domain.UpdateProductRequest) (domain.Product, error) {
	item, err := s.GetProduct(ctx, req.ID)
	if err != nil {
		return domain.Product{}, err
	}

	if req.Name != nil {
		item.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.SKU != nil {
		item.SKU = strings.TrimSpace(*req.SKU)
	}
	if req.Barcode != nil {
		item.Barcode = strings.TrimSpace(*req.Barcode)
	}
	if req.Stock != nil {
		item.Stock = *req.Stock
	}
	if req.Status != nil {
		item.Status = domain.ProductStatus(strings.ToUpper(strings.TrimSpace(*req.Status)))
	}
	if req.Unit != nil {
		item.Unit = domain.Unit(strings.ToUpper(strings.TrimSpace(*req.Unit)))
	}
	if req.BrandID != nil {
		if item.BrandID, err = s.resolveBrand(ctx, *req.BrandID); err != nil {
			return domain.Product{}, err
		}
	}
	if req.CategoryID != nil {
		if item.CategoryID, err = s.resolveCategory(ctx, *req.CategoryID); err != nil {
			return domain.Product{}, err
		}
	}
	if err := validateProduct(&item); err != nil {
		return domain.Product{}, err
	}

	item.UpdatedAt = s.clock.Now()
	if err := s.products.Update(ctx, s.db, &item); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Product{}, domain.ErrDuplicateProduct
		}
		return domain.Product{}, err
	}
	return item, nil
}

// DeleteProduct keeps past order lines with a cleared product and drops the
// product from every offer.
func (s *Service) DeleteProduct(ctx context.Context, id string) error {
	productID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{productID.Int64()},
			db.Relation{Table: "order_items", Column: "product_id", Policy: db.SetNull},
			db.Relation{Table: "offer_products", Column: "product_id", Policy: db.Cascade},
		); err != nil {
			return err
		}
		rows, err := s.products.Delete(ctx, tx, productID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

// resolveBrand parses an optional brand reference and checks that it exists.
func (s *Service) resolveBrand(ctx context.Context, raw string) (*snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidBrand
	}
	brand, err := s.brands.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if brand == nil {
		return nil, domain.ErrInvalidBrand
	}
	return &id, nil
}

func (s *Service) resolveCategory(ctx context.Context, raw string) (*snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCategory
	}
	category, err := s.categories.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.ErrInvalidCategory
	}
	return &id, nil
}

func validateProduct(p *domain.Product) error {
	switch {
	case !validName(p.Name):
		return domain.ErrInvalidName
	case !money.Price(p.Price):
		return domain.ErrInvalidPrice
	case p.SKU == "" || len(p.SKU) > 255:
		return domain.ErrInvalidSKU
	case p.Barcode == "" || len(p.Barcode) > 255:
		return domain.ErrInvalidBarcode
	case p.Stock < 0:
		return domain.ErrInvalidStock
	case !p.Status.Valid():
		return domain.ErrInvalidStatus
	case !p.Unit.Valid():
		return domain.ErrInvalidUnit
	}
	return nil
}
