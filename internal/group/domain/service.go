package domain

import (
	"context"
	"errors"

	"github.com/smallbiznis/varejo/pkg/db/pagination"
)

type GroupInput struct {
	Status    *bool  `json:"status"`
	Email     string `json:"email"`
	Name      string `json:"name"`
	ShortName string `json:"short_name"`
	FullName  string `json:"full_name"`
	CNPJ      string `json:"cnpj"`
	Phone     string `json:"phone"`
	OwnerID   string `json:"owner_id"`
}

type ListGroupRequest struct {
	PageToken string
	PageSize  int
	OwnerID   string
}

type ListGroupFilter struct {
	OwnerID int64
}

type ListGroupResponse struct {
	pagination.PageInfo
	Groups []Group `json:"groups"`
}

type StoreInput struct {
	Status    *bool  `json:"status"`
	Name      string `json:"name"`
	CNPJ      string `json:"cnpj"`
	Phone     string `json:"phone"`
	AddressID string `json:"address_id"`
}

type Service interface {
	CreateGroup(context.Context, GroupInput) (Group, error)
	GetGroup(ctx context.Context, id string) (Group, error)
	ListGroups(context.Context, ListGroupRequest) (ListGroupResponse, error)
	UpdateGroup(ctx context.Context, id string, input GroupInput) (Group, error)
	DeleteGroup(ctx context.Context, id string) error
	AttachAddress(ctx context.Context, groupID, addressID string) (Group, error)
	DetachAddress(ctx context.Context, groupID, addressID string) error

	CreateStore(ctx context.Context, groupID string, input StoreInput) (Store, error)
	GetStore(ctx context.Context, id string) (Store, error)
	ListStores(ctx context.Context, groupID string) ([]Store, error)
	UpdateStore(ctx context.Context, id string, input StoreInput) (Store, error)
	DeleteStore(ctx context.Context, id string) error
	ReplaceStoreContacts(ctx context.Context, id string, contactIDs []string) (Store, error)
}

var (
	ErrInvalidID       = errors.New("invalid_id")
	ErrInvalidEmail    = errors.New("invalid_email")
	ErrInvalidName     = errors.New("invalid_name")
	ErrInvalidOwner    = errors.New("invalid_owner")
	ErrInvalidAddress  = errors.New("invalid_address")
	ErrInvalidContacts = errors.New("invalid_contacts")
	ErrInvalidField    = errors.New("invalid_field")
	ErrDuplicateEmail  = errors.New("duplicate_email")
	ErrNotFound        = errors.New("not_found")
)
