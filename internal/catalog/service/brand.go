package service

import (
	"context"
	"strings"

	"github.com/gosimple/slug"
	"github.com/smallbiznis/varejo/internal/catalog/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"github.com/smallbiznis/varejo/pkg/db/option"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Service) CreateBrand(ctx context.Context, req domain.CreateBrandRequest) (domain.Brand, error) {
	name := strings.TrimSpace(req.Name)
	if !validName(name) {
		return domain.Brand{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	brand := domain.Brand{
		ID:          s.genID.Generate(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.brands.Create(ctx, &brand); err != nil {
		return domain.Brand{}, err
	}

	s.log.Debug("brand created", zap.String("brand_id", brand.ID.String()))
	return brand, nil
}

func (s *Service) GetBrand(ctx context.Context, id string) (domain.Brand, error) {
	brandID, err := s.parseID(id)
	if err != nil {
		return domain.Brand{}, err
	}

	item, err := s.brands.FindByID(ctx, brandID)
	if err != nil {
		return domain.Brand{}, err
	}
	if item == nil {
		return domain.Brand{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) ListBrands(ctx context.Context, req domain.ListBrandRequest) ([]domain.Brand, error) {
	query := &domain.Brand{}
	opts := []option.QueryOption{
		option.WithSortBy(option.WithQuerySortBy(req.SortBy, req.OrderBy, sortableColumns)),
		option.WithLimit(s.retail.Get().Pagination.MaxPageSize),
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		query.Name = name
	}

	items, err := s.brands.Find(ctx, query, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Brand, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out, nil
}

func (s *Service) UpdateBrand(ctx context.Context, req domain.UpdateBrandRequest) (domain.Brand, error) {
	item, err := s.GetBrand(ctx, req.ID)
	if err != nil {
		return domain.Brand{}, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !validName(name) {
			return domain.Brand{}, domain.ErrInvalidName
		}
		item.Name = name
		item.Slug = slug.Make(name)
		fields["name"] = item.Name
		fields["slug"] = item.Slug
	}
	if req.Description != nil {
		item.Description = strings.TrimSpace(*req.Description)
		fields["description"] = item.Description
	}
	if len(fields) == 0 {
		return item, nil
	}

	item.UpdatedAt = s.clock.Now()
	fields["updated_at"] = item.UpdatedAt
	if _, err := s.brands.Update(ctx, item.ID, fields); err != nil {
		return domain.Brand{}, err
	}
	return item, nil
}

// DeleteBrand removes the brand and detaches its products.
func (s *Service) DeleteBrand(ctx context.Context, id string) error {
	brandID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{brandID.Int64()}, db.Relation{
			Table: "products", Column: "brand_id", Policy: db.SetNull,
		}); err != nil {
			return err
		}
		rows, err := s.brands.WithTrx(tx).Delete(ctx, brandID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
