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

func (s *Service) CreateCategory(ctx context.Context, req domain.CreateCategoryRequest) (domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if !validName(name) {
		return domain.Category{}, domain.ErrInvalidName
	}

	now := s.clock.Now()
	category := domain.Category{
		ID:          s.genID.Generate(),
		Name:        name,
		Slug:        slug.Make(name),
		Description: strings.TrimSpace(req.Description),
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.categories.Create(ctx, &category); err != nil {
		return domain.Category{}, err
	}

	s.log.Debug("category created", zap.String("category_id", category.ID.String()))
	return category, nil
}

func (s *Service) GetCategory(ctx context.Context, id string) (domain.Category, error) {
	categoryID, err := s.parseID(id)
	if err != nil {
		return domain.Category{}, err
	}

	item, err := s.categories.FindByID(ctx, categoryID)
	if err != nil {
		return domain.Category{}, err
	}
	if item == nil {
		return domain.Category{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) ListCategories(ctx context.Context, req domain.ListCategoryRequest) ([]domain.Category, error) {
	query := &domain.Category{}
	opts := []option.QueryOption{
		option.WithSortBy(option.WithQuerySortBy(req.SortBy, req.OrderBy, sortableColumns)),
		option.WithLimit(s.retail.Get().Pagination.MaxPageSize),
	}
	if name := strings.TrimSpace(req.Name); name != "" {
		query.Name = name
	}

	items, err := s.categories.Find(ctx, query, opts...)
	if err != nil {
		return nil, err
	}

	out := make([]domain.Category, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out, nil
}

func (s *Service) UpdateCategory(ctx context.Context, req domain.UpdateCategoryRequest) (domain.Category, error) {
	item, err := s.GetCategory(ctx, req.ID)
	if err != nil {
		return domain.Category{}, err
	}

	fields := map[string]any{}
	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if !validName(name) {
			return domain.Category{}, domain.ErrInvalidName
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
	if _, err := s.categories.Update(ctx, item.ID, fields); err != nil {
		return domain.Category{}, err
	}
	return item, nil
}

// DeleteCategory removes the category and detaches its products.
func (s *Service) DeleteCategory(ctx context.Context, id string) error {
	categoryID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{categoryID.Int64()}, db.Relation{
			Table: "products", Column: "category_id", Policy: db.SetNull,
		}); err != nil {
			return err
		}
		rows, err := s.categories.WithTrx(tx).Delete(ctx, categoryID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}
