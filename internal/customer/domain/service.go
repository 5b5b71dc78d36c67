package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

type DocumentInput struct {
	Type   string `json:"document_type"`
	Number string `json:"document_number"`
}

type CreateCustomerRequest struct {
	Email     string        `json:"email"`
	FirstName string        `json:"first_name"`
	LastName  string        `json:"last_name"`
	Phone     string        `json:"phone"`
	BirthDate string        `json:"birth_date"`
	Gender    string        `json:"gender"`
	Document  DocumentInput `json:"document"`
}

type UpdateCustomerRequest struct {
	ID        string  `json:"-"`
	Email     *string `json:"email"`
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Phone     *string `json:"phone"`
	BirthDate *string `json:"birth_date"`
	Gender    *string `json:"gender"`
	IsActive  *bool   `json:"is_active"`
}

type ReplaceDocumentRequest struct {
	CustomerID string `json:"-"`
	DocumentInput
}

type ListCustomerRequest struct {
	PageToken string
	PageSize  int
	Email     string
	Name      string
}

type ListCustomerFilter struct {
	Email string
	Name  string
}

type ListCustomerResponse struct {
	pagination.PageInfo
	Customers []Customer `json:"customers"`
}

type AddressInput struct {
	Name         string   `json:"name"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	ZipCode      string   `json:"zip_code"`
	Street       string   `json:"street"`
	Number       string   `json:"number"`
	Complement   string   `json:"complement"`
	Neighborhood string   `json:"neighborhood"`
	City         string   `json:"city"`
	State        string   `json:"state"`
	Country      string   `json:"country"`
	Details      string   `json:"details"`
	Main         bool     `json:"main"`
}

type Service interface {
	Create(context.Context, CreateCustomerRequest) (Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	List(context.Context, ListCustomerRequest) (ListCustomerResponse, error)
	Update(context.Context, UpdateCustomerRequest) (Customer, error)
	Delete(ctx context.Context, id string) error
	ReplaceDocument(context.Context, ReplaceDocumentRequest) (CustomerDocument, error)
}

type AddressService interface {
	CreateAddress(ctx context.Context, customerID string, input AddressInput) (Address, error)
	GetAddress(ctx context.Context, id string) (Address, error)
	ListAddresses(ctx context.Context, customerID string) ([]Address, error)
	UpdateAddress(ctx context.Context, id string, input AddressInput) (Address, error)
	AttachAddress(ctx context.Context, customerID, addressID string) error
	DetachAddress(ctx context.Context, customerID, addressID string) error
	DeleteAddress(ctx context.Context, id string) error
}

type LoyaltyService interface {
	Enroll(ctx context.Context, customerID string) (LoyaltyProgram, error)
	GetLoyalty(ctx context.Context, customerID string) (LoyaltyProgram, error)
	AddPoints(ctx context.Context, customerID string, amount int64) (LoyaltyProgram, error)
	SetTier(ctx context.Context, customerID string, tier string) (LoyaltyProgram, error)
}

var (
	ErrInvalidID           = errors.New("invalid_id")
	ErrInvalidEmail        = errors.New("invalid_email")
	ErrInvalidFirstName    = errors.New("invalid_first_name")
	ErrInvalidLastName     = errors.New("invalid_last_name")
	ErrInvalidPhone        = errors.New("invalid_phone")
	ErrInvalidBirthDate    = errors.New("invalid_birth_date")
	ErrInvalidGender       = errors.New("invalid_gender")
	ErrInvalidDocumentType = errors.New("invalid_document_type")
	ErrInvalidAddress      = errors.New("invalid_address")
	ErrInvalidPoints       = errors.New("invalid_points")
	ErrInvalidTier         = errors.New("invalid_tier")
	ErrDuplicateEmail      = errors.New("duplicate_email")
	ErrAlreadyEnrolled     = errors.New("already_enrolled")
	ErrNotEnrolled         = errors.New("not_enrolled")
	ErrNotFound            = errors.New("not_found")
)
