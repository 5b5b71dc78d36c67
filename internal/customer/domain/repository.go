package domain

import (
	"context"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
)

type Repository interface {
	InsertDocument(ctx context.Context, db *gorm.DB, document *CustomerDocument) error
	UpdateDocument(ctx context.Context, db *gorm.DB, document *CustomerDocument) error
	FindDocument(ctx context.Context, db *gorm.DB, id snowflake.ID) (*CustomerDocument, error)
	DeleteDocument(ctx context.Context, db *gorm.DB, id snowflake.ID) error

	Insert(ctx context.Context, db *gorm.DB, customer *Customer) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Customer, error)
	List(ctx context.Context, db *gorm.DB, filter ListCustomerFilter, page pagination.Pagination) ([]*Customer, error)
	Update(ctx context.Context, db *gorm.DB, customer *Customer) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
}

type AddressRepository interface {
	Insert(ctx context.Context, db *gorm.DB, address *Address) error
	FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*Address, error)
	Update(ctx context.Context, db *gorm.DB, address *Address) error
	Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error)
	Attach(ctx context.Context, db *gorm.DB, customerID, addressID snowflake.ID) error
	Detach(ctx context.Context, db *gorm.DB, customerID, addressID snowflake.ID) (int64, error)
	ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]Address, error)
}

type LoyaltyRepository interface {
	Insert(ctx context.Context, db *gorm.DB, program *LoyaltyProgram) error
	FindByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) (*LoyaltyProgram, error)
	// AddPoints increments the balance in place and reports the rows touched.
	AddPoints(ctx context.Context, db *gorm.DB, customerID snowflake.ID, amount int64, at time.Time) (int64, error)
	SetTier(ctx context.Context, db *gorm.DB, customerID snowflake.ID, tier LoyaltyTier, at time.Time) (int64, error)
}
