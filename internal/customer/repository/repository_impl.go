package repository

import (
	"context"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/customer/domain"
	"github.com/smallbiznis/varejo/pkg/db/option"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

const customerColumns = `id, email, first_name, last_name, phone, birth_date, gender, document_id, is_active, date_joined, created_at, updated_at`

func (r *repo) InsertDocument(ctx context.Context, db *gorm.DB, document *domain.CustomerDocument) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customer_documents (id, document_type, document_number, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		document.ID,
		document.DocumentType,
		document.DocumentNumber,
		document.CreatedAt,
		document.UpdatedAt,
	).Error
}

func (r *repo) UpdateDocument(ctx context.Context, db *gorm.DB, document *domain.CustomerDocument) error {
	return db.WithContext(ctx).Exec(
		`UPDATE customer_documents SET document_type = ?, document_number = ?, updated_at = ? WHERE id = ?`,
		document.DocumentType,
		document.DocumentNumber,
		document.UpdatedAt,
		document.ID,
	).Error
}

func (r *repo) FindDocument(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.CustomerDocument, error) {
	var document domain.CustomerDocument
	err := db.WithContext(ctx).Raw(
		`SELECT id, document_type, document_number, created_at, updated_at
		 FROM customer_documents WHERE id = ?`,
		id,
	).Scan(&document).Error
	if err != nil {
		return nil, err
	}
	if document.ID == 0 {
		return nil, nil
	}
	return &document, nil
}

func (r *repo) DeleteDocument(ctx context.Context, db *gorm.DB, id snowflake.ID) error {
	return db.WithContext(ctx).Exec(`DELETE FROM customer_documents WHERE id = ?`, id).Error
}

func (r *repo) Insert(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`INSERT INTO customers (`+customerColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		customer.ID,
		customer.Email,
		customer.FirstName,
		customer.LastName,
		customer.Phone,
		customer.BirthDate,
		customer.Gender,
		customer.DocumentID,
		customer.IsActive,
		customer.DateJoined,
		customer.CreatedAt,
		customer.UpdatedAt,
	).Error
}

func (r *repo) FindByID(ctx context.Context, db *gorm.DB, id snowflake.ID) (*domain.Customer, error) {
	var customer domain.Customer
	err := db.WithContext(ctx).Raw(
		`SELECT `+customerColumns+` FROM customers WHERE id = ?`,
		id,
	).Scan(&customer).Error
	if err != nil {
		return nil, err
	}
	if customer.ID == 0 {
		return nil, nil
	}
	return &customer, nil
}

func (r *repo) List(ctx context.Context, db *gorm.DB, filter domain.ListCustomerFilter, page pagination.Pagination) ([]*domain.Customer, error) {
	var customers []*domain.Customer
	stmt := db.WithContext(ctx).Model(&domain.Customer{})
	if filter.Email != "" {
		stmt = stmt.Where("email = ?", filter.Email)
	}
	if filter.Name != "" {
		like := "%" + filter.Name + "%"
		stmt = stmt.Where("LOWER(first_name) LIKE ? OR LOWER(last_name) LIKE ?", like, like)
	}
	stmt = option.ApplyPagination(page).Apply(stmt)
	if err := stmt.Find(&customers).Error; err != nil {
		return nil, err
	}
	return customers, nil
}

func (r *repo) Update(ctx context.Context, db *gorm.DB, customer *domain.Customer) error {
	return db.WithContext(ctx).Exec(
		`UPDATE customers
		 SET email = ?, first_name = ?, last_name = ?, phone = ?, birth_date = ?, gender = ?, is_active = ?, updated_at = ?
		 WHERE id = ?`,
		customer.Email,
		customer.FirstName,
		customer.LastName,
		customer.Phone,
		customer.BirthDate,
		customer.Gender,
		customer.IsActive,
		customer.UpdatedAt,
		customer.ID,
	).Error
}

func (r *repo) Delete(ctx context.Context, db *gorm.DB, id snowflake.ID) (int64, error) {
	res := db.WithContext(ctx).Exec(`DELETE FROM customers WHERE id = ?`, id)
	return res.RowsAffected, res.Error
}
