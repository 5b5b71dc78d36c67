package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/group/domain"
	"gorm.io/gorm"
)

type storeRepo struct{}

func ProvideStore() domain.StoreRepository {
	return &storeRepo{}
}

const storeColumns = `id, group_id, status, name, cnpj, phone, address_id, created_at, updated_at`

func (r *storeRepo) Insert(ctx context.Context, db *gorm.DB, s *domain.Store) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO stores (`+storeColumns+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.GroupID, s.Status, s.Name, s.CNPJ, s.Phone, s.AddressID, s.CreatedAt, s.UpdatedAt,
	).Error
}

func (r *storeRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Store, error) {
	var s domain.Store
	err := db.WithContext(ctx).Raw(`SELECT `+storeColumns+` FROM stores WHERE id = ?`, id).Scan(&s).Error
	if err != nil {
		return nil, err
	}
	if s.ID == 0 {
		return nil, nil
	}
	return &s, nil
}

func (r *storeRepo) ListByGroup(ctx context.Context, db *gorm.DB, groupID snowflake.ID) ([]domain.Store, error) {
	var stores []domain.Store
	err := db.WithContext(ctx).Raw(
		`SELECT `+storeColumns+` FROM stores WHERE group_id = ? ORDER BY name, id`,
		groupID,
	).Scan(&stores).Error
	return stores, err
}

func (r *storeRepo) Update(ctx context.Context, db *gorm.DB, s *domain.Store) error {
	return db.WithContext(ctx).Exec(
		`UPDATE stores
		 SET status = ?, name = ?, cnpj = ?, phone = ?, address_id = ?, updated_at = ?
		 WHERE id = ?`,
		s.Status, s.Name, s.CNPJ, s.Phone, s.AddressID, s.UpdatedAt, s.ID,
	).Error
}

func (r *storeRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM stores WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *storeRepo) ContactIDs(ctx context.Context, db *gorm.DB, storeID snowflake.ID) ([]snowflake.ID, error) {
	return pluckIDs(ctx, db, "store_contacts", "contact_id", "store_id", storeID)
}

func (r *storeRepo) ReplaceContacts(ctx context.Context, db *gorm.DB, storeID snowflake.ID, contactIDs []snowflake.ID) error {
	if err := db.WithContext(ctx).Exec(`DELETE FROM store_contacts WHERE store_id = ?`, storeID).Error; err != nil {
		return err
	}
	if len(contactIDs) == 0 {
		return nil
	}
	rows := make([]domain.StoreContact, 0, len(contactIDs))
	for _, id := range contactIDs {
		rows = append(rows, domain.StoreContact{StoreID: storeID, ContactID: id})
	}
	return db.WithContext(ctx).Create(&rows).Error
}
