package domain

import (
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/pkg/db"
)

// Group is a retail group owned by a customer. It is stored in store_groups
// since GROUPS is reserved in MySQL.
type Group struct {
	ID        snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	Status    bool         `gorm:"not null" json:"status"`
	Email     string       `gorm:"size:254;not null;uniqueIndex" json:"email"`
	Name      string       `gorm:"size:255;not null" json:"name"`
	ShortName string       `gorm:"size:255;not null" json:"short_name"`
	FullName  string       `gorm:"size:255;not null" json:"full_name"`
	CNPJ      string       `gorm:"column:cnpj;size:255;not null" json:"cnpj"`
	Phone     string       `gorm:"size:255;not null" json:"phone"`
	OwnerID   snowflake.ID `gorm:"not null;index" json:"owner_id"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`

	AddressIDs []snowflake.ID `gorm:"-" json:"address_ids,omitempty"`
}

func (Group) TableName() string { return "store_groups" }

type GroupAddress struct {
	GroupID   snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	AddressID snowflake.ID `gorm:"primaryKey;autoIncrement:false;index"`
}

func (GroupAddress) TableName() string { return "group_addresses" }

type Store struct {
	ID        snowflake.ID `gorm:"primaryKey;autoIncrement:false" json:"id"`
	GroupID   snowflake.ID `gorm:"not null;index" json:"group_id"`
	Status    bool         `gorm:"not null" json:"status"`
	Name      string       `gorm:"size:255;not null" json:"name"`
	CNPJ      string       `gorm:"column:cnpj;size:255;not null" json:"cnpj"`
	Phone     string       `gorm:"size:255;not null" json:"phone"`
	AddressID snowflake.ID `gorm:"not null;index" json:"address_id"`
	CreatedAt time.Time    `gorm:"not null" json:"created_at"`
	UpdatedAt time.Time    `gorm:"not null" json:"updated_at"`

	ContactIDs []snowflake.ID `gorm:"-" json:"contact_ids,omitempty"`
}

func (Store) TableName() string { return "stores" }

type StoreContact struct {
	StoreID   snowflake.ID `gorm:"primaryKey;autoIncrement:false"`
	ContactID snowflake.ID `gorm:"primaryKey;autoIncrement:false;index"`
}

func (StoreContact) TableName() string { return "store_contacts" }

// StoreDependents are removed with a store.
var StoreDependents = []db.Relation{
	{Table: "store_contacts", Column: "store_id", Policy: db.Cascade},
}

// GroupDependents are removed with a group.
var GroupDependents = []db.Relation{
	{Table: "stores", Column: "group_id", Policy: db.Cascade, Children: StoreDependents},
	{Table: "group_addresses", Column: "group_id", Policy: db.Cascade},
}
