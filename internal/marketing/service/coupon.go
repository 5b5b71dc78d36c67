package service

import (
	"context"
	"strings"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/pkg/db"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"go.uber.org/zap"
)

func (s *Service) CreateCoupon(ctx context.Context, input domain.CouponInput) (domain.Coupon, error) {
	defaults := s.retail.Get().Coupon
	coupon := domain.Coupon{
		MaxUsages:            defaults.MaxUsages,
		MaxUsagesPerCustomer: defaults.MaxUsagesPerCustomer,
		IsActive:             true,
	}
	if err := s.applyCoupon(ctx, &coupon, input); err != nil {
		return domain.Coupon{}, err
	}

	now := s.clock.Now()
	coupon.ID = s.genID.Generate()
	coupon.CreatedAt = now
	coupon.UpdatedAt = now
	if err := s.coupons.Insert(ctx, s.db, &coupon); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Coupon{}, domain.ErrDuplicateCode
		}
		return domain.Coupon{}, err
	}

	s.log.Debug("coupon created",
		zap.String("coupon_id", coupon.ID.String()),
		zap.String("offer_id", coupon.OfferID.String()),
	)
	return coupon, nil
}

func (s *Service) GetCoupon(ctx context.Context, id string) (domain.Coupon, error) {
	couponID, err := s.parseID(id)
	if err != nil {
		return domain.Coupon{}, err
	}
	coupon, err := s.coupons.FindByID(ctx, s.db, couponID)
	if err != nil {
		return domain.Coupon{}, err
	}
	if coupon == nil {
		return domain.Coupon{}, domain.ErrNotFound
	}
	return *coupon, nil
}

func (s *Service) ListCoupons(ctx context.Context, req domain.ListCouponRequest) (domain.ListCouponResponse, error) {
	filter := domain.ListCouponFilter{IsActive: req.IsActive}
	if raw := strings.TrimSpace(req.OfferID); raw != "" {
		id, err := snowflake.ParseString(raw)
		if err != nil {
			return domain.ListCouponResponse{}, domain.ErrInvalidOffer
		}
		filter.OfferID = id.Int64()
	}
	if req.PageToken != "" {
		if _, err := pagination.DecodeCursor(req.PageToken); err != nil {
			return domain.ListCouponResponse{}, err
		}
	}

	pageSize := s.retail.Get().PageSize(req.PageSize)
	items, err := s.coupons.List(ctx, s.db, filter, pagination.Pagination{
		PageToken: req.PageToken,
		PageSize:  pageSize,
	})
	if err != nil {
		return domain.ListCouponResponse{}, err
	}

	pageInfo, items := pagination.BuildCursorPageInfo(items, pageSize, func(c *domain.Coupon) string {
		token, _ := pagination.EncodeCursor(pagination.Cursor{ID: c.ID.String()})
		return token
	})

	coupons := make([]domain.Coupon, 0, len(items))
	for _, item := range items {
		if item == nil {
			continue
		}
		coupons = append(coupons, *item)
	}
	return domain.ListCouponResponse{PageInfo: pageInfo, Coupons: coupons}, nil
}

// UpdateCoupon rewrites the coupon definition. Usage already consumed is kept.
func (s *Service) UpdateCoupon(ctx context.Context, id string, input domain.CouponInput) (domain.Coupon, error) {
	coupon, err := s.GetCoupon(ctx, id)
	if err != nil {
		return domain.Coupon{}, err
	}
	if err := s.applyCoupon(ctx, &coupon, input); err != nil {
		return domain.Coupon{}, err
	}

	coupon.UpdatedAt = s.clock.Now()
	if err := s.coupons.Update(ctx, s.db, &coupon); err != nil {
		if db.IsDuplicateKeyErr(err) {
			return domain.Coupon{}, domain.ErrDuplicateCode
		}
		return domain.Coupon{}, err
	}
	return coupon, nil
}

func (s *Service) DeleteCoupon(ctx context.Context, id string) error {
	couponID, err := s.parseID(id)
	if err != nil {
		return err
	}
	rows, err := s.coupons.Delete(ctx, s.db, couponID)
	if err != nil {
		return err
	}
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// CheckCoupon reports whether the coupon is usable right now without
// consuming it.
func (s *Service) CheckCoupon(ctx context.Context, code string) (domain.CouponCheck, error) {
	coupon, err := s.findByCode(ctx, code)
	if err != nil {
		return domain.CouponCheck{}, err
	}

	status := domain.Status(coupon, s.clock.Now())
	if status != domain.CouponValid {
		s.metrics.RecordCouponRejection(ctx, string(status))
	}
	return domain.CouponCheck{
		Code:   coupon.Code,
		Valid:  status == domain.CouponValid,
		Status: status,
	}, nil
}

// RedeemCoupon consumes one usage. The increment is conditional on the cap
// and the active flag so concurrent redemptions never overshoot max_usages.
func (s *Service) RedeemCoupon(ctx context.Context, code string) (domain.Coupon, error) {
	coupon, err := s.findByCode(ctx, code)
	if err != nil {
		return domain.Coupon{}, err
	}

	now := s.clock.Now()
	if status := domain.Status(coupon, now); status != domain.CouponValid {
		s.metrics.RecordCouponRejection(ctx, string(status))
		return domain.Coupon{}, domain.ErrCouponNotRedeemable
	}

	rows, err := s.coupons.IncrementUsage(ctx, s.db, coupon.ID, now)
	if err != nil {
		return domain.Coupon{}, err
	}
	if rows == 0 {
		s.metrics.RecordCouponRejection(ctx, string(domain.CouponExhausted))
		return domain.Coupon{}, domain.ErrCouponNotRedeemable
	}

	updated, err := s.coupons.FindByID(ctx, s.db, coupon.ID)
	if err != nil {
		return domain.Coupon{}, err
	}
	if updated == nil {
		return domain.Coupon{}, domain.ErrNotFound
	}

	discountType := ""
	if offer, err := s.offers.FindByID(ctx, s.db, updated.OfferID); err == nil && offer != nil {
		discountType = string(offer.OfferType)
	}
	s.metrics.RecordCouponRedemption(ctx, discountType)
	s.log.Info("coupon redeemed",
		zap.String("coupon_id", updated.ID.String()),
		zap.Int64("current_usages", updated.CurrentUsages),
		zap.Int64("max_usages", updated.MaxUsages),
	)
	return *updated, nil
}

func (s *Service) findByCode(ctx context.Context, code string) (domain.Coupon, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return domain.Coupon{}, domain.ErrInvalidCode
	}
	coupon, err := s.coupons.FindByCode(ctx, s.db, code)
	if err != nil {
		return domain.Coupon{}, err
	}
	if coupon == nil {
		return domain.Coupon{}, domain.ErrNotFound
	}
	return *coupon, nil
}

func (s *Service) applyCoupon(ctx context.Context, c *domain.Coupon, input domain.CouponInput) error {
	code := strings.TrimSpace(input.Code)
	if code == "" || len([]rune(code)) > 50 {
		return domain.ErrInvalidCode
	}

	offerID, err := snowflake.ParseString(strings.TrimSpace(input.OfferID))
	if err != nil || offerID == 0 {
		return domain.ErrInvalidOffer
	}
	offer, err := s.offers.FindByID(ctx, s.db, offerID)
	if err != nil {
		return err
	}
	if offer == nil {
		return domain.ErrInvalidOffer
	}

	if input.MaxUsages != nil {
		c.MaxUsages = *input.MaxUsages
	}
	if input.MaxUsagesPerCustomer != nil {
		c.MaxUsagesPerCustomer = *input.MaxUsagesPerCustomer
	}
	if c.MaxUsages <= 0 || c.MaxUsagesPerCustomer <= 0 {
		return domain.ErrInvalidMaxUsages
	}

	if input.ValidFrom.IsZero() || input.ValidUntil.IsZero() || input.ValidUntil.Before(input.ValidFrom) {
		return domain.ErrInvalidValidity
	}
	if input.IsActive != nil {
		c.IsActive = *input.IsActive
	}

	c.Code = code
	c.OfferID = offerID
	c.ValidFrom = input.ValidFrom.UTC()
	c.ValidUntil = input.ValidUntil.UTC()
	return nil
}
