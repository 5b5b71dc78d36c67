package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"github.com/smallbiznis/varejo/pkg/money"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var offerDependents = []db.Relation{
	{Table: "coupons", Column: "offer_id", Policy: db.Cascade},
	{Table: "offer_products", Column: "offer_id", Policy: db.Cascade},
}

var hundred = decimal.NewFromInt(100)

func (s *Service) CreateOffer(ctx context.Context, input domain.OfferInput) (domain.Offer, error) {
	offer := domain.Offer{}
	if err := s.applyOffer(ctx, &offer, input); err != nil {
		return domain.Offer{}, err
	}
	productIDs, err := s.resolveProducts(ctx, input.ProductIDs)
	if err != nil {
		return domain.Offer{}, err
	}

	now := s.clock.Now()
	offer.ID = s.genID.Generate()
	offer.CreatedAt = now
	offer.UpdatedAt = now
	offer.ProductIDs = productIDs

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.offers.Insert(ctx, tx, &offer); err != nil {
			return err
		}
		return s.offers.ReplaceProducts(ctx, tx, offer.ID, productIDs)
	})
	if err != nil {
		return domain.Offer{}, err
	}

	s.log.Debug("offer created",
		zap.String("offer_id", offer.ID.String()),
		zap.String("offer_type", string(offer.OfferType)),
		zap.Int("products", len(productIDs)),
	)
	return offer, nil
}

func (s *Service) GetOffer(ctx context.Context, id string) (domain.Offer, error) {
	offerID, err := s.parseID(id)
	if err != nil {
		return domain.Offer{}, err
	}
	offer, err := s.offers.FindByID(ctx, s.db, offerID)
	if err != nil {
		return domain.Offer{}, err
	}
	if offer == nil {
		return domain.Offer{}, domain.ErrNotFound
	}
	if offer.ProductIDs, err = s.offers.ProductIDs(ctx, s.db, offer.ID); err != nil {
		return domain.Offer{}, err
	}
	return *offer, nil
}

func (s *Service) ListOffers(ctx context.Context, req domain.ListOfferRequest) (domain.ListOfferResponse, error) {
	filter := domain.ListOfferFilter{}
	if raw := strings.TrimSpace(req.CampaignID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.ListOfferResponse{}, domain.ErrInvalidCampaign
		}
		filter.CampaignID = id.Int64()
	}
	if req.PageToken != "" {
		if _, err := pagination.DecodeCursor(req.PageToken); err != nil {
			return domain.ListOfferResponse{}, err
		}
	}

	pageSize := s.retail.Get().PageSize(req.PageSize)
	items, err := s.offers.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListOfferResponse{}, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, pageSize, func(o *domain.Offer) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: o.ID.String()})
		return token
	})

	offers := make([]domain.Offer, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		offers = append(offers, *item)
	}
	return domain.ListOfferResponse{PageInfo: pageInfo, Offers: offers}, nil
}

// UpdateOffer rewrites the offer fields. Linked products only change when
// product_ids is present in the input.
func (s *Service) UpdateOffer(ctx context.Context, id string, input domain.OfferInput) (domain.Offer, error) {
	offer, err := s.GetOffer(ctx, id)
	if err != nil {
		return domain.Offer{}, err
	}
	if err := s.applyOffer(ctx, &offer, input); err != nil {
		return domain.Offer{}, err
	}

	replace := input.ProductIDs != nil
	var productIDs []snowflake.ID
	if replace {
		if productIDs, err = s.resolveProducts(ctx, input.ProductIDs); err != nil {
			return domain.Offer{}, err
		}
	}

	offer.UpdatedAt = s.clock.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.offers.Update(ctx, tx, &offer); err != nil {
			return err
		}
		if !replace {
			return nil
		}
		return s.offers.ReplaceProducts(ctx, tx, offer.ID, productIDs)
	})
	if err != nil {
		return domain.Offer{}, err
	}
	if replace {
		offer.ProductIDs = productIDs
	}
	return offer, nil
}

func (s *Service) ReplaceOfferProducts(ctx context.Context, id string, productIDs []string) (domain.Offer, error) {
	offer, err := s.GetOffer(ctx, id)
	if err != nil {
		return domain.Offer{}, err
	}
	ids, err := s.resolveProducts(ctx, productIDs)
	if err != nil {
		return domain.Offer{}, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.offers.ReplaceProducts(ctx, tx, offer.ID, ids)
	})
	if err != nil {
		return domain.Offer{}, err
	}
	offer.ProductIDs = ids
	return offer, nil
}

// DeleteOffer removes the offer with its coupons and product links.
func (s *Service) DeleteOffer(ctx context.Context, id string) error {
	offerID, err := s.parseID(id)
	if err != nil {
		return err
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := db.ApplyDeletePolicy(ctx, tx, []int64{offerID.Int64()}, offerDependents...); err != nil {
			return err
		}
		rows, err := s.offers.Delete(ctx, tx, offerID)
		if err != nil {
			return err
		}
		if rows == 0 {
			return domain.ErrNotFound
		}
		return nil
	})
}

func (s *Service) applyOffer(ctx context.Context, o *domain.Offer, input domain.OfferInput) error {
	name := strings.TrimSpace(input.Name)
	if !validName(name) {
		return domain.ErrInvalidName
	}

	offerType := domain.OfferPercentage
	if raw := strings.TrimSpace(input.OfferType); raw != "" {
		offerType = domain.OfferType(strings.ToUpper(raw))
	}
	if !offerType.Valid() {
		return domain.ErrInvalidOfferType
	}

	if !money.Price(input.DiscountValue) {
		return domain.ErrInvalidDiscountValue
	}
	if offerType == domain.OfferPercentage && input.DiscountValue.GreaterThan(hundred) {
		return domain.ErrInvalidDiscountValue
	}

	minPurchase := decimal.Zero
	if input.MinPurchaseAmount != nil {
		if !money.Price(*input.MinPurchaseAmount) {
			return domain.ErrInvalidMinPurchase
		}
		minPurchase = *input.MinPurchaseAmount
	}

	campaignID, err := s.resolveCampaign(ctx, input.CampaignID)
	if err != nil {
		return err
	}

	o.CampaignID = campaignID
	o.Name = name
	o.OfferType = offerType
	o.DiscountValue = input.DiscountValue
	o.MinPurchaseAmount = minPurchase
	o.IsExclusiveForLoyalty = input.IsExclusiveForLoyalty
	return nil
}

func (s *Service) resolveCampaign(ctx context.Context, raw string) (*snowflake.ID, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, nil
	}
	id, err := snowflake.ParseString(raw)
	if err != nil || id == 0 {
		return nil, domain.ErrInvalidCampaign
	}
	campaign, err := s.campaigns.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if campaign == nil {
		return nil, domain.ErrInvalidCampaign
	}
	return &id, nil
}

// resolveProducts parses and deduplicates product ids and checks that every
// one of them exists.
func (s *Service) resolveProducts(ctx context.Context, raw []string) ([]snowflake.ID, error) {
	seen := make(map[snowflake.ID]struct{}, len(raw))
	ids := make([]snowflake.ID, 0, len(raw))
	for _, value := range raw {
		id, err := snowflake.ParseString(strings.TrimSpace(value))
		if err != nil || id == 0 {
			return nil, domain.ErrInvalidProducts
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return ids, nil
	}

	count, err := s.offers.CountProducts(ctx, s.db, ids)
	if err != nil {
		return nil, err
	}
	if count != int64(len(ids)) {
		return nil, domain.ErrInvalidProducts
	}
	return ids, nil
}
