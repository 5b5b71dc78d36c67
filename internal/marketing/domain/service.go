package domain

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

type CampaignInput struct {
	Name        string           `json:"name"`
	Description string           `json:"description"`
	StartDate   time.Time        `json:"start_date"`
	EndDate     time.Time        `json:"end_date"`
	IsActive    *bool            `json:"is_active"`
	Budget      *decimal.Decimal `json:"budget"`
}

type OfferInput struct {
	CampaignID            string           `json:"campaign_id"`
	Name                  string           `json:"name"`
	OfferType             string           `json:"offer_type"`
	DiscountValue         decimal.Decimal  `json:"discount_value"`
	MinPurchaseAmount     *decimal.Decimal `json:"min_purchase_amount"`
	IsExclusiveForLoyalty bool             `json:"is_exclusive_for_loyalty"`
	ProductIDs            []string         `json:"product_ids"`
}

type ListOfferRequest struct {
	PageToken  string
	PageSize   int
	CampaignID string
}

type ListOfferFilter struct {
	CampaignID int64
}

type ListOfferResponse struct {
	pagination.PageInfo
	Offers []Offer `json:"offers"`
}

type CouponInput struct {
	Code                 string    `json:"code"`
	OfferID              string    `json:"offer_id"`
	MaxUsages            *int64    `json:"max_usages"`
	MaxUsagesPerCustomer *int64    `json:"max_usages_per_customer"`
	ValidFrom            time.Time `json:"valid_from"`
	ValidUntil           time.Time `json:"valid_until"`
	IsActive             *bool     `json:"is_active"`
}

type ListCouponRequest struct {
	PageToken string
	PageSize  int
	OfferID   string
	IsActive  *bool
}

type ListCouponFilter struct {
	OfferID  int64
	IsActive *bool
}

type ListCouponResponse struct {
	pagination.PageInfo
	Coupons []Coupon `json:"coupons"`
}

type CouponCheck struct {
	Code   string       `json:"code"`
	Valid  bool         `json:"valid"`
	Status CouponStatus `json:"status"`
}

type ChannelInput struct {
	Type     string `json:"type"`
	Value    string `json:"value"`
	IsActive *bool  `json:"is_active"`
}

type Service interface {
	CreateCampaign(context.Context, CampaignInput) (Campaign, error)
	GetCampaign(ctx context.Context, id string) (Campaign, error)
	ListCampaigns(ctx context.Context, activeOnly bool) ([]Campaign, error)
	UpdateCampaign(ctx context.Context, id string, input CampaignInput) (Campaign, error)
	DeleteCampaign(ctx context.Context, id string) error

	CreateOffer(context.Context, OfferInput) (Offer, error)
	GetOffer(ctx context.Context, id string) (Offer, error)
	ListOffers(context.Context, ListOfferRequest) (ListOfferResponse, error)
	UpdateOffer(ctx context.Context, id string, input OfferInput) (Offer, error)
	ReplaceOfferProducts(ctx context.Context, id string, productIDs []string) (Offer, error)
	DeleteOffer(ctx context.Context, id string) error

	CreateCoupon(context.Context, CouponInput) (Coupon, error)
	GetCoupon(ctx context.Context, id string) (Coupon, error)
	ListCoupons(context.Context, ListCouponRequest) (ListCouponResponse, error)
	UpdateCoupon(ctx context.Context, id string, input CouponInput) (Coupon, error)
	DeleteCoupon(ctx context.Context, id string) error
	CheckCoupon(ctx context.Context, code string) (CouponCheck, error)
	RedeemCoupon(ctx context.Context, code string) (Coupon, error)

	CreateContact(context.Context, ChannelInput) (Contact, error)
	GetContact(ctx context.Context, id string) (Contact, error)
	ListContacts(ctx context.Context, activeOnly bool) ([]Contact, error)
	UpdateContact(ctx context.Context, id string, input ChannelInput) (Contact, error)
	DeleteContact(ctx context.Context, id string) error

	CreateSocialMedia(context.Context, ChannelInput) (SocialMedia, error)
	GetSocialMedia(ctx context.Context, id string) (SocialMedia, error)
	ListSocialMedia(ctx context.Context, activeOnly bool) ([]SocialMedia, error)
	UpdateSocialMedia(ctx context.Context, id string, input ChannelInput) (SocialMedia, error)
	DeleteSocialMedia(ctx context.Context, id string) error
}

var (
	ErrInvalidID            = errors.New("invalid_id")
	ErrInvalidName          = errors.New("invalid_name")
	ErrInvalidPeriod        = errors.New("invalid_period")
	ErrInvalidBudget        = errors.New("invalid_budget")
	ErrInvalidCampaign      = errors.New("invalid_campaign")
	ErrInvalidOfferType     = errors.New("invalid_offer_type")
	ErrInvalidDiscountValue = errors.New("invalid_discount_value")
	ErrInvalidMinPurchase   = errors.New("invalid_min_purchase_amount")
	ErrInvalidProducts      = errors.New("invalid_products")
	ErrInvalidCode          = errors.New("invalid_code")
	ErrInvalidOffer         = errors.New("invalid_offer")
	ErrInvalidMaxUsages     = errors.New("invalid_max_usages")
	ErrInvalidValidity      = errors.New("invalid_validity")
	ErrInvalidType          = errors.New("invalid_type")
	ErrInvalidValue         = errors.New("invalid_value")
	ErrDuplicateCode        = errors.New("duplicate_code")
	ErrCouponNotRedeemable  = errors.New("coupon_not_redeemable")
	ErrNotFound             = errors.New("not_found")
)
