package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"github.com/smallbiznis/varejo/pkg/db/option"
	"github.com/smallbiznis/varejo/pkg/money"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func (s *Service) CreateCampaign(ctx context.Context, input domain.CampaignInput) (domain.Campaign, error) {
	campaign := domain.Campaign{IsActive: true, Budget: decimal.Zero}
	if err := applyCampaign(&campaign, input); err != nil {
		return domain.Campaign{}, err
	}

	now := s.clock.Now()
	campaign.ID = s.genID.Generate()
	campaign.CreatedAt = now
	campaign.UpdatedAt = now
	if err := s.campaigns.Create(ctx, &campaign); err != nil {
		return domain.Campaign{}, err
	}

	s.log.Debug("campaign created", zap.String("campaign_id", campaign.ID.String()))
	return campaign, nil
}

func (s *Service) GetCampaign(ctx context.Context, id string) (domain.Campaign, error) {
	campaignID, err := s.parseID(id)
	if err != nil {
		return domain.Campaign{}, err
	}
	item, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		return domain.Campaign{}, err
	}
	if item == nil {
		return domain.Campaign{}, domain.ErrNotFound
	}
	return *item, nil
}

func (s *Service) ListCampaigns(ctx context.Context, activeOnly bool) ([]domain.Campaign, error) {
	query := &domain.Campaign{IsActive: activeOnly}
	items, err := s.campaigns.Find(ctx, query,
		option.WithSortBy(option.SortBy{Column: "start_date", Desc: true}),
		option.WithLimit(s.retail.Get().Pagination.MaxPageSize),
	)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Campaign, 0, len(items))
	for _, item := range items {
		out = append(out, *item)
	}
	return out, nil
}

func (s *Service) UpdateCampaign(ctx context.Context, id string, input domain.CampaignInput) (domain.Campaign, error) {
	campaign, err := s.GetCampaign(ctx, id)
	if err != nil {
		return domain.Campaign{}, err
	}
	if err := applyCampaign(&campaign, input); err != nil {
		return domain.Campaign{}, err
	}

	campaign.UpdatedAt = s.clock.Now()
	if _, err := s.campaigns.Update(ctx, campaign.ID, map[string]any{
		"name":        campaign.Name,
		"description": campaign.Description,
		"start_date":  campaign.StartDate,
		"end_date":    campaign.EndDate,
		"is_active":   campaign.IsActive,
		"budget":      campaign.Budget,
		"updated_at":  campaign.UpdatedAt,
	}); err != nil {
		return domain.Campaign{}, err
	}
	return campaign, nil
}

// DeleteCampaign keeps the campaign's offers as standalone offers.
func (s *Service) DeleteCampaign(ctx context.Context, id string) error {
	campaignID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{campaignID.Int64()}, db.Relation{
			Table: "offers", Column: "campaign_id", Policy: db.SetNull,
		}); err != nil {
			return err
		}
		rows, err := s.campaigns.WithTrx(tx).Delete(ctx, campaignID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func applyCampaign(c *domain.Campaign, input domain.CampaignInput) error {
	name := strings.TrimSpace(input.Name)
	if !validName(name) {
		return domain.ErrInvalidName
	}
	if input.StartDate.IsZero() || input.EndDate.IsZero() || input.EndDate.Before(input.StartDate) {
		return domain.ErrInvalidPeriod
	}
	if input.Budget != nil {
		if !money.Budget(*input.Budget) {
			return domain.ErrInvalidBudget
		}
		c.Budget = *input.Budget
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}

	c.Name = name
	c.Description = strings.TrimSpace(input.Description)
	c.StartDate = input.StartDate.UTC()
	c.EndDate = input.EndDate.UTC()
	return nil
}
