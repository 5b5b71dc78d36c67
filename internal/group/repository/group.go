package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/group/domain"
	"github.com/smallbiznis/varejo/pkg/db/option"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type groupRepo struct{}

func Provide() domain.Repository {
	return &groupRepo{}
}

const groupColumns = `id, status, email, name, short_name, full_name, cnpj, phone, owner_id, created_at, updated_at`

func (r *groupRepo) Insert(ctx context.Context, db *gorm.DB, g *domain.Group) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO store_groups (`+groupColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Status, g.Email, g.Name, g.ShortName, g.FullName, g.CNPJ, g.Phone, g.OwnerID,
		g.CreatedAt, g.UpdatedAt,
	).Error
}

func (r *groupRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Group, error) {
	var g domain.Group
	err := db.WithContext(ctx).Raw(`SELECT `+groupColumns+` FROM store_groups WHERE id = ?`, id).Scan(&g).Error
	if err != nil {
		return nil, err
	}
	if g.ID == 0 {
		return nil, nil
	}
	return &g, nil
}

func (r *groupRepo) List(ctx context.Context, db *gorm.DB, filter domain.ListGroupFilter, page pagination.Pagination) ([]*domain.Group, error) {
	var groups []*domain.Group
	stmt := db.WithContext(ctx).Model(&domain.Group{})
	if filter.OwnerID != 0 {
		stmt = stmt.Where("owner_id = ?", filter.OwnerID)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Find(&groups).Error; err != nil {
		return nil, err
	}
	return groups, nil
}

func (r *groupRepo) Update(ctx context.Context, db *gorm.DB, g *domain.Group) error {
	return db.WithContext(ctx).Exec(
		`UPDATE store_groups
		 SET status = ?, email = ?, name = ?, short_name = ?, full_name = ?, cnpj = ?, phone = ?,
		     owner_id = ?, updated_at = ?
		 WHERE id = ?`,
		g.Status, g.Email, g.Name, g.ShortName, g.FullName, g.CNPJ, g.Phone, g.OwnerID, g.UpdatedAt, g.ID,
	).Error
}

func (r *groupRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM store_groups WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *groupRepo) AddressIDs(ctx context.Context, db *gorm.DB, groupID snowflake.ID) ([]snowflake.ID, error) {
	return pluckIDs(ctx, db, "group_addresses", "address_id", "group_id", groupID)
}

func (r *groupRepo) AttachAddress(ctx context.Context, db *gorm.DB, groupID, addressID snowflake.ID) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.GroupAddress{GroupID: groupID, AddressID: addressID}).Error
}

func (r *groupRepo) DetachAddress(ctx context.Context, db *gorm.DB, groupID, addressID snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM group_addresses WHERE group_id = ? AND address_id = ?`,
		groupID,
		addressID,
	)
	return res.RowsAffected, res.Error
}

func pluckIDs(ctx context.Context, db *gorm.DB, table, column, owner string, ownerID snowflake.ID) ([]snowflake.ID, error) {
	var ids []int64
	err := db.WithContext(ctx).
		Table(table).
		Where(owner+" = ?", ownerID.Int64()).
		Order(column).
		Pluck(column, &ids).Error
	if err != nil {
		return nil, err
	}
	out := make([]snowflake.ID, 0, len(ids))
	for _, id := range ids {
		out = append(out, snowflake.ID(id))
	}
	return out, nil
}
