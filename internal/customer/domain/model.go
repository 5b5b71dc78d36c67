package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"gorm.io/datatypes"
)

type Gender string

const (
	GenderUnset  Gender = ""
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
)

func (g Gender) Valid() bool {
	switch g {
	case GenderUnset, GenderMale, GenderFemale:
		return true
	default:
		return false
	}
}

func (g Gender) Label() string {
	switch g {
	case GenderMale:
		return "Masculino"
	case GenderFemale:
		return "Feminino"
	default:
		return ""
	}
}

// Customer is keyed by email. Every customer owns exactly one document.
type Customer struct {
	ID         snowflake.ID    `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Email      string          `gorm:"size:254;not null;uniqueIndex" json:"email"`
	FirstName  string          `gorm:"size:150;not null" json:"first_name"`
	LastName   string          `gorm:"size:150;not null;default:''" json:"last_name"`
	Phone      string          `gorm:"size:15;not null;default:''" json:"phone"`
	BirthDate  *datatypes.Date `json:"birth_date"`
	Gender     Gender          `gorm:"size:1;not null;default:''" json:"gender"`
	DocumentID snowflake.ID    `gorm:"not null;uniqueIndex" json:"document_id"`
	IsActive   bool            `gorm:"not null" json:"is_active"`
	DateJoined time.Time       `gorm:"not null" json:"date_joined"`
	CreatedAt  time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time       `gorm:"not null" json:"updated_at"`

	Document *CustomerDocument `gorm:"-" json:"document,omitempty"`
}

func (Customer) TableName() string { return "customers" }

func (c Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type CustomerDocument struct {
	ID             snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	DocumentType   DocumentType `gorm:"size:20;not null;default:CPF" json:"document_type"`
	DocumentNumber string       `gorm:"size:255;not null" json:"document_number"`
	CreatedAt      time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time    `gorm:"not null" json:"updated_at"`
}

func (CustomerDocument) TableName() string { return "customer_documents" }

// Address is shared between customers and groups through join tables.
type Address struct {
	ID           snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Name         string       `gorm:"size:255;not null;default:''" json:"name"`
	Latitude     *float64     `json:"latitude"`
	Longitude    *float64     `json:"longitude"`
	ZipCode      string       `gorm:"size:255;not null;default:''" json:"zip_code"`
	Street       string       `gorm:"size:255;not null;default:''" json:"street"`
	Number       string       `gorm:"size:255;not null;default:''" json:"number"`
	Complement   string       `gorm:"size:255;not null;default:''" json:"complement"`
	Neighborhood string       `gorm:"size:255;not null;default:''" json:"neighborhood"`
	City         string       `gorm:"size:255;not null;default:''" json:"city"`
	State        string       `gorm:"size:255;not null;default:''" json:"state"`
	Country      string       `gorm:"size:255;not null;default:''" json:"country"`
	Details      string       `gorm:"type:text;not null;default:''" json:"details"`
	Main         bool         `gorm:"not null;default:false" json:"main"`
	CreatedAt    time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt    time.Time    `gorm:"not null" json:"updated_at"`
}

func (Address) TableName() string { return "addresses" }

type CustomerAddress struct {
	CustomerID snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AddressID  snowflake.ID `gorm:"primaryKey;autoIncrement:false;index"`
}

func (CustomerAddress) TableName() string { return "customer_addresses" }

type LoyaltyTier string

const (
	TierBronze LoyaltyTier = "BRONZE"
	TierSilver LoyaltyTier = "SILVER"
	TierGold   LoyaltyTier = "GOLD"
)

func (t LoyaltyTier) Valid() bool {
	switch t {
	case TierBronze, TierSilver, TierGold:
		return true
	default:
		return false
	}
}

func (t LoyaltyTier) Label() string {
	switch t {
	case TierBronze:
		return "Bronze"
	case TierSilver:
		return "Prata"
	case TierGold:
		return "Ouro"
	default:
		return ""
	}
}

type LoyaltyProgram struct {
	ID         snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	CustomerID snowflake.ID `gorm:"not null;uniqueIndex" json:"customer_id"`
	Points     int64        `gorm:"not null;default:0" json:"points"`
	Tier       LoyaltyTier  `gorm:"size:20;not null;default:BRONZE" json:"tier"`
	CreatedAt  time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt  time.Time    `gorm:"not null" json:"updated_at"`
}

func (LoyaltyProgram) TableName() string { return "loyalty_programs" }
