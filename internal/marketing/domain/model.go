package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
)

type Campaign struct {
	ID          snowflake.ID    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name        string          `gorm:"size:255;not null" json:"name"`
	Description string          `gorm:"type:text;not null;default:''" json:"description"`
	StartDate   time.Time       `gorm:"not null" json:"start_date"`
	EndDate     time.Time       `gorm:"not null" json:"end_date"`
	IsActive    bool            `gorm:"not null" json:"is_active"`
	Budget      decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0" json:"budget"`
	CreatedAt   time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"not null" json:"updated_at"`
}

func (Campaign) TableName() string { return "campaigns" }

type OfferType string

const (
	OfferPercentage  OfferType = "PERCENTAGE"
	OfferFixedAmount OfferType = "FIXED_AMOUNT"
	OfferBOGO        OfferType = "BOGO"
)

func (t OfferType) Valid() bool {
	switch t {
	case OfferPercentage, OfferFixedAmount, OfferBOGO:
		return true
	default:
		return false
	}
}

func (t OfferType) Label() string {
	switch t {
	case OfferPercentage:
		return "Percentual"
	case OfferFixedAmount:
		return "Valor Fixo"
	case OfferBOGO:
		return "Leve X Pague Y"
	default:
		return ""
	}
}

type Offer struct {
	ID                    snowflake.ID    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CampaignID            *snowflake.ID   `gorm:"index" json:"campaign_id"`
	Name                  string          `gorm:"size:255;not null" json:"name"`
	OfferType             OfferType       `gorm:"size:20;not null;default:PERCENTAGE" json:"offer_type"`
	DiscountValue         decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"discount_value"`
	MinPurchaseAmount     decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"min_purchase_amount"`
	IsExclusiveForLoyalty bool            `gorm:"not null;default:false" json:"is_exclusive_for_loyalty"`
	CreatedAt             time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt             time.Time       `gorm:"not null" json:"updated_at"`

	ProductIDs []snowflake.ID `gorm:"-" json:"product_ids"`
}

func (Offer) TableName() string { return "offers" }

type OfferProduct struct {
	OfferID   snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	ProductID snowflake.ID `gorm:"primaryKey;autoIncrement:false;index"`
}

func (OfferProduct) TableName() string { return "offer_products" }

type Coupon struct {
	ID                   snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Code                 string       `gorm:"size:50;not null;uniqueIndex" json:"code"`
	OfferID              snowflake.ID `gorm:"not null;index" json:"offer_id"`
	MaxUsages            int64        `gorm:"not null;default:100" json:"max_usages"`
	CurrentUsages        int64        `gorm:"not null;default:0" json:"current_usages"`
	MaxUsagesPerCustomer int64        `gorm:"not null;default:1" json:"max_usages_per_customer"`
	ValidFrom            time.Time    `gorm:"not null" json:"valid_from"`
	ValidUntil           time.Time    `gorm:"not null" json:"valid_until"`
	IsActive             bool         `gorm:"not null" json:"is_active"`
	CreatedAt            time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt            time.Time    `gorm:"not null" json:"updated_at"`
}

func (Coupon) TableName() string { return "coupons" }

type ContactType string

const (
	ContactPhone    ContactType = "PHONE"
	ContactEmail    ContactType = "EMAIL"
	ContactWhatsApp ContactType = "WHATSAPP"
	ContactOther    ContactType = "OTHER"
)

func (t ContactType) Valid() bool {
	switch t {
	case ContactPhone, ContactEmail, ContactWhatsApp, ContactOther:
		return true
	default:
		return false
	}
}

func (t ContactType) Label() string {
	switch t {
	case ContactPhone:
		return "Telefone"
	case ContactEmail:
		return "E-mail"
	case ContactWhatsApp:
		return "WhatsApp"
	case ContactOther:
		return "Outro"
	default:
		return ""
	}
}

type Contact struct {
	ID        snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Type      ContactType  `gorm:"column:type;size:20;not null;default:OTHER" json:"type"`
	Value     string       `gorm:"size:255;not null" json:"value"`
	IsActive  bool         `gorm:"not null" json:"is_active"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`
}

func (Contact) TableName() string { return "contacts" }

type SocialMediaType string

const (
	SocialFacebook  SocialMediaType = "FACEBOOK"
	SocialInstagram SocialMediaType = "INSTAGRAM"
	SocialTwitter   SocialMediaType = "TWITTER"
	SocialOther     SocialMediaType = "OTHER"
)

func (t SocialMediaType) Valid() bool {
	switch t {
	case SocialFacebook, SocialInstagram, SocialTwitter, SocialOther:
		return true
	default:
		return false
	}
}

func (t SocialMediaType) Label() string {
	switch t {
	case SocialFacebook:
		return "Facebook"
	case SocialInstagram:
		return "Instagram"
	case SocialTwitter:
		return "Twitter"
	case SocialOther:
		return "Outro"
	default:
		return ""
	}
}

type SocialMedia struct {
	ID        snowflake.ID    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Type      SocialMediaType `gorm:"column:type;size:20;not null;default:OTHER" json:"type"`
	Value     string          `gorm:"size:255;not null" json:"value"`
	IsActive  bool            `gorm:"not null" json:"is_active"`
	CreatedAt time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time       `gorm:"not null" json:"updated_at"`
}

func (SocialMedia) TableName() string { return "social_media" }
