package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/customer/domain"
	"github.com/smallbiznis/varejo/internal/customer/repository"
	"github.com/smallbiznis/varejo/internal/dbtest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()

	conn := dbtest.Open(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	svc := New(Params{
		DB:        conn,
		Log:       zap.NewNop(),
		GenID:     node,
		Clock:     clock.NewFakeClock(time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)),
		Retail:    config.NewStaticRetailConfigHolder(config.DefaultRetailConfig()),
		Repo:      repository.Provide(),
		Addresses: repository.ProvideAddress(),
		Loyalty:   repository.ProvideLoyalty(),
	})
	return svc, conn
}

func createCustomer(t *testing.T, svc *Service, email string) domain.Customer {
	t.Helper()
	customer, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Email:     email,
		FirstName: "Ana",
		LastName:  "Souza",
		Phone:     "(11) 98765-4321",
		BirthDate: "1990-05-17",
		Gender:    "f",
		Document:  domain.DocumentInput{Type: "CPF", Number: "123.456.789-09"},
	})
	require.NoError(t, err)
	return customer
}

func countRows(t *testing.T, conn *gorm.DB, table string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, conn.Table(table).Count(&count).Error)
	return count
}

func TestCreateNormalizesDocumentAndEmail(t *testing.T) {
	svc, _ := newTestService(t)

	customer := createCustomer(t, svc, "Ana.Souza@Example.COM")
	assert.Equal(t, "Ana.Souza@example.com", customer.Email)
	assert.Equal(t, "11987654321", customer.Phone)
	assert.Equal(t, domain.GenderFemale, customer.Gender)
	require.NotNil(t, customer.Document)
	assert.Equal(t, "12345678909", customer.Document.DocumentNumber)

	got, err := svc.GetByID(context.Background(), customer.ID.String())
	require.NoError(t, err)
	require.NotNil(t, got.Document)
	assert.Equal(t, domain.DocumentCPF, got.Document.DocumentType)
	assert.Equal(t, "12345678909", got.Document.DocumentNumber)
	require.NotNil(t, got.BirthDate)
}

func TestCreateRejectsShortCPFWithoutWriting(t *testing.T) {
	svc, conn := newTestService(t)

	_, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Email:     "ana@example.com",
		FirstName: "Ana",
		Document:  domain.DocumentInput{Type: "CPF", Number: "123"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidDocumentNumber)
	assert.Zero(t, countRows(t, conn, "customers"))
	assert.Zero(t, countRows(t, conn, "customer_documents"))
}

func TestCreateAcceptsCNPJAndOtherTypes(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	company, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Email:     "compras@empresa.com.br",
		FirstName: "Empresa",
		Document:  domain.DocumentInput{Type: "CNPJ", Number: "12.345.678/0001-95"},
	})
	require.NoError(t, err)
	assert.Equal(t, "12345678000195", company.Document.DocumentNumber)

	visitor, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Email:     "visitor@example.com",
		FirstName: "John",
		Document:  domain.DocumentInput{Type: "PASSPORT", Number: "AB 123"},
	})
	require.NoError(t, err)
	assert.Equal(t, "AB 123", visitor.Document.DocumentNumber)

	padded, err := svc.Create(ctx, domain.CreateCustomerRequest{
		Email:     "rg@example.com",
		FirstName: "Maria",
		Document:  domain.DocumentInput{Type: "RG", Number: " 12.345.678-X "},
	})
	require.NoError(t, err)
	assert.Equal(t, " 12.345.678-X ", padded.Document.DocumentNumber)

	_, err = svc.Create(ctx, domain.CreateCustomerRequest{
		Email:     "blank@example.com",
		FirstName: "Maria",
		Document:  domain.DocumentInput{Type: "CNH", Number: "   "},
	})
	require.ErrorIs(t, err, domain.ErrInvalidDocumentNumber)
}

func TestCreateDuplicateEmail(t *testing.T) {
	svc, conn := newTestService(t)
	createCustomer(t, svc, "ana@example.com")

	_, err := svc.Create(context.Background(), domain.CreateCustomerRequest{
		Email:     "ana@EXAMPLE.com",
		FirstName: "Outra",
		Document:  domain.DocumentInput{Type: "CPF", Number: "98765432100"},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)
	assert.Equal(t, int64(1), countRows(t, conn, "customer_documents"))
}

func TestReplaceDocument(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	customer := createCustomer(t, svc, "ana@example.com")

	_, err := svc.ReplaceDocument(ctx, domain.ReplaceDocumentRequest{
		CustomerID:    customer.ID.String(),
		DocumentInput: domain.DocumentInput{Type: "CNPJ", Number: "123"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidDocumentNumber)

	got, err := svc.GetByID(ctx, customer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, "12345678909", got.Document.DocumentNumber)

	doc, err := svc.ReplaceDocument(ctx, domain.ReplaceDocumentRequest{
		CustomerID:    customer.ID.String(),
		DocumentInput: domain.DocumentInput{Type: "RG", Number: "12.345.678-X"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.DocumentRG, doc.DocumentType)
	assert.Equal(t, "12.345.678-X", doc.DocumentNumber)
}

func TestLoyaltyAccrual(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	customer := createCustomer(t, svc, "ana@example.com")
	id := customer.ID.String()

	_, err := svc.AddPoints(ctx, id, 10)
	require.ErrorIs(t, err, domain.ErrNotEnrolled)

	program, err := svc.Enroll(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, domain.TierBronze, program.Tier)
	assert.Zero(t, program.Points)

	_, err = svc.Enroll(ctx, id)
	require.ErrorIs(t, err, domain.ErrAlreadyEnrolled)

	program, err = svc.AddPoints(ctx, id, 10)
	require.NoError(t, err)
	assert.Equal(t, int64(10), program.Points)

	program, err = svc.AddPoints(ctx, id, 5)
	require.NoError(t, err)
	assert.Equal(t, int64(15), program.Points)
	assert.Equal(t, domain.TierBronze, program.Tier)

	_, err = svc.AddPoints(ctx, id, -1)
	require.ErrorIs(t, err, domain.ErrInvalidPoints)

	program, err = svc.GetLoyalty(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, int64(15), program.Points)

	program, err = svc.SetTier(ctx, id, "gold")
	require.NoError(t, err)
	assert.Equal(t, domain.TierGold, program.Tier)

	_, err = svc.SetTier(ctx, id, "PLATINUM")
	require.ErrorIs(t, err, domain.ErrInvalidTier)

	_, err = svc.AddPoints(ctx, snowflake.ID(42).String(), 1)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestAddPointsConcurrently(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	customer := createCustomer(t, svc, "ana@example.com")
	_, err := svc.Enroll(ctx, customer.ID.String())
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.AddPoints(ctx, customer.ID.String(), 3)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	program, err := svc.GetLoyalty(ctx, customer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(60), program.Points)
}

func TestAddresses(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	customer := createCustomer(t, svc, "ana@example.com")

	lat := -23.55
	address, err := svc.CreateAddress(ctx, customer.ID.String(), domain.AddressInput{
		Name:     "Casa",
		Latitude: &lat,
		Street:   "Rua Augusta",
		City:     "São Paulo",
		Main:     true,
	})
	require.NoError(t, err)

	list, err := svc.ListAddresses(ctx, customer.ID.String())
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, address.ID, list[0].ID)

	bad := 91.0
	_, err = svc.CreateAddress(ctx, customer.ID.String(), domain.AddressInput{Latitude: &bad})
	require.ErrorIs(t, err, domain.ErrInvalidAddress)

	require.NoError(t, svc.DetachAddress(ctx, customer.ID.String(), address.ID.String()))
	list, err = svc.ListAddresses(ctx, customer.ID.String())
	require.NoError(t, err)
	assert.Empty(t, list)
	require.ErrorIs(t, svc.DetachAddress(ctx, customer.ID.String(), address.ID.String()), domain.ErrNotFound)

	require.NoError(t, svc.AttachAddress(ctx, customer.ID.String(), address.ID.String()))
	require.NoError(t, svc.DeleteAddress(ctx, address.ID.String()))
	list, err = svc.ListAddresses(ctx, customer.ID.String())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestDeleteCustomerAppliesPolicies(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()
	customer := createCustomer(t, svc, "ana@example.com")

	_, err := svc.Enroll(ctx, customer.ID.String())
	require.NoError(t, err)
	address, err := svc.CreateAddress(ctx, customer.ID.String(), domain.AddressInput{Name: "Casa"})
	require.NoError(t, err)

	now := time.Now().UTC()
	require.NoError(t, conn.Exec(
		`INSERT INTO orders (id, customer_id, external_id, total_amount, discount_applied, sale_date, status, created_at, updated_at)
		 VALUES (1, ?, 'ext-1', 10, 0, ?, 'PAID', ?, ?)`, customer.ID, now, now, now).Error)
	require.NoError(t, conn.Exec(
		`INSERT INTO store_groups (id, status, email, name, short_name, full_name, cnpj, phone, owner_id, created_at, updated_at)
		 VALUES (2, true, 'rede@example.com', 'Rede', '', '', '', '', ?, ?, ?)`, customer.ID, now, now).Error)
	require.NoError(t, conn.Exec(
		`INSERT INTO stores (id, group_id, status, name, cnpj, phone, address_id, created_at, updated_at)
		 VALUES (3, 2, true, 'Loja', '', '', ?, ?, ?)`, address.ID, now, now).Error)

	require.NoError(t, svc.Delete(ctx, customer.ID.String()))

	assert.Zero(t, countRows(t, conn, "customers"))
	assert.Zero(t, countRows(t, conn, "customer_documents"))
	assert.Zero(t, countRows(t, conn, "loyalty_programs"))
	assert.Zero(t, countRows(t, conn, "customer_addresses"))
	assert.Zero(t, countRows(t, conn, "store_groups"))
	assert.Zero(t, countRows(t, conn, "stores"))
	assert.Equal(t, int64(1), countRows(t, conn, "addresses"))

	var customerID sql.NullInt64
	require.NoError(t, conn.Raw(`SELECT customer_id FROM orders WHERE id = 1`).Row().Scan(&customerID))
	assert.False(t, customerID.Valid)

	require.ErrorIs(t, svc.Delete(ctx, customer.ID.String()), domain.ErrNotFound)
}
