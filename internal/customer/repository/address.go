package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/customer/domain"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type addressRepo struct{}

func ProvideAddress() domain.AddressRepository {
	return &addressRepo{}
}

const addressColumns = `id, name, latitude, longitude, zip_code, street, number, complement, neighborhood, city, state, country, details, main, created_at, updated_at`

func (r *addressRepo) Insert(ctx context.Context, db *gorm.DB, a *domain.Address) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO addresses (`+addressColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.Name, a.Latitude, a.Longitude, a.ZipCode, a.Street, a.Number, a.Complement,
		a.Neighborhood, a.City, a.State, a.Country, a.Details, a.Main, a.CreatedAt, a.UpdatedAt,
	).Error
}

func (r *addressRepo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Address, error) {
	var address domain.Address
	err := db.WithContext(ctx).Raw(
		`SELECT `+addressColumns+` FROM addresses WHERE id = ?`,
		id,
	).Scan(&address).Error
	if err != nil {
		return nil, err
	}
	if address.ID == 0 {
		return nil, nil
	}
	return &address, nil
}

func (r *addressRepo) Update(ctx context.Context, db *gorm.DB, a *domain.Address) error {
	return db.WithContext(ctx).Exec(
		`UPDATE addresses
		 SET name = ?, latitude = ?, longitude = ?, zip_code = ?, street = ?, number = ?, complement = ?,
		     neighborhood = ?, city = ?, state = ?, country = ?, details = ?, main = ?, updated_at = ?
		 WHERE id = ?`,
		a.Name, a.Latitude, a.Longitude, a.ZipCode, a.Street, a.Number, a.Complement,
		a.Neighborhood, a.City, a.State, a.Country, a.Details, a.Main, a.UpdatedAt, a.ID,
	).Error
}

func (r *addressRepo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM addresses WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}

func (r *addressRepo) Attach(ctx context.Context, db *gorm.DB, customerID, addressID snowflake.ID) error {
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&domain.CustomerAddress{CustomerID: customerID, AddressID: addressID}).Error
}

func (r *addressRepo) Detach(ctx context.Context, db *gorm.DB, customerID, addressID snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(
		`DELETE FROM customer_addresses WHERE customer_id = ? AND address_id = ?`,
		customerID,
		addressID,
	)
	return res.RowsAffected, res.Error
}

func (r *addressRepo) ListByCustomer(ctx context.Context, db *gorm.DB, customerID snowflake.ID) ([]domain.Address, error) {
	var items []domain.Address
	err := db.WithContext(ctx).Raw(
		`SELECT a.id, a.name, a.latitude, a.longitude, a.zip_code, a.street, a.number, a.complement,
		        a.neighborhood, a.city, a.state, a.country, a.details, a.main, a.created_at, a.updated_at
		 FROM addresses a
		 JOIN customer_addresses ca ON ca.address_id = a.id
		 WHERE ca.customer_id = ?
		 ORDER BY a.main DESC, a.id DESC`,
		customerID,
	).Scan(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}
