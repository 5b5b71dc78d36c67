package domain

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	Insert(ctx context.Context, db *gorm.DB, group *Group) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Group, error)
	List(ctx context.Context, db *gorm.DB, filter ListGroupFilter, page pagination.Pagination) ([]*Group, error)
	Update(ctx context.Context, db *gorm.DB, group *Group) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)

	AddressIDs(ctx context.Context, db *gorm.DB, groupID snowflake.ID) ([]snowflake.ID, error)
	AttachAddress(ctx context.Context, db *gorm.DB, groupID, addressID snowflake.ID) error
	DetachAddress(ctx context.Context, db *gorm.DB, groupID, addressID snowflake.ID) (int64, error)
}

type StoreRepository interface {
	Insert(ctx context.Context, db *gorm.DB, store *Store) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Store, error)
	ListByGroup(ctx context.Context, db *gorm.DB, groupID snowflake.ID) ([]Store, error)
	Update(ctx context.Context, db *gorm.DB, store *Store) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)

	ContactIDs(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]snowflake.ID, error)
	ReplaceContacts(ctx context.Context, db *gorm.DB, storeID snowflake.ID, contactIDs []snowflake.ID) error
}

// ReferenceChecker looks up rows owned by other modules.
type ReferenceChecker interface {
	CustomerExists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	AddressExists(ctx context.Context, db *gorm.DB, id snowflake.ID) (bool, error)
	CountContacts(ctx context.Context, db *gorm.DB, ids []snowflake.ID) (int64, error)
}
