package service

import (
	"context"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/dbtest"
	"github.com/smallbiznis/varejo/internal/group/domain"
	"github.com/smallbiznis/varejo/internal/group/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 14, 9, 0, 0, 0, time.UTC)

const (
	ownerID   = 10
	addressID = 20
	contactID = 30
)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn := dbtest.Open(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	seed := []struct {
		sql  string
		args []any
	}{
		{`INSERT INTO customer_documents (id, document_type, document_number, created_at, updated_at) VALUES (1, 'CPF', '12345678909', ?, ?)`, []any{testNow, testNow}},
		{`INSERT INTO customers (id, email, first_name, last_name, phone, gender, document_id, is_active, date_joined, created_at, updated_at)
		  VALUES (?, 'dono@example.com', 'Dono', '', '', '', 1, true, ?, ?, ?)`, []any{ownerID, testNow, testNow, testNow}},
		{`INSERT INTO addresses (id, name, zip_code, street, number, complement, neighborhood, city, state, country, details, main, created_at, updated_at)
		  VALUES (?, 'Matriz', '01310-100', 'Av. Paulista', '1000', '', 'Bela Vista', 'São Paulo', 'SP', 'BR', '', true, ?, ?)`, []any{addressID, testNow, testNow}},
		{`INSERT INTO contacts (id, type, value, is_active, created_at, updated_at) VALUES (?, 'PHONE', '1133334444', true, ?, ?)`, []any{contactID, testNow, testNow}},
	}
	for _, s := range seed {
		require.NoError(t, conn.Exec(s.sql, s.args...).Error)
	}

	svc := New(Params{
		DB:         conn,
		Log:        zap.NewNop(),
		GenID:      node,
		Clock:      clock.NewFakeClock(testNow),
		Retail:     config.NewStaticRetailConfigHolder(config.DefaultRetailConfig()),
		Repo:       repository.Provide(),
		Stores:     repository.ProvideStore(),
		References: repository.ProvideReferences(),
	})
	return svc, conn
}

func groupInput(email string) domain.GroupInput {
	return domain.GroupInput{
		Email:     email,
		Name:      "  Mercado Bom Preço ",
		ShortName: "Bom Preço",
		CNPJ:      "12.345.678/0001-95",
		OwnerID:   "10",
	}
}

func TestCreateGroup(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, groupInput("Contato@BomPreco.COM.BR"))
	require.NoError(t, err)
	assert.True(t, group.Status)
	assert.Equal(t, "Contato@bompreco.com.br", group.Email)
	assert.Equal(t, "Mercado Bom Preço", group.Name)
	assert.Equal(t, "12.345.678/0001-95", group.CNPJ)

	_, err = svc.CreateGroup(ctx, groupInput("Contato@bompreco.com.br"))
	require.ErrorIs(t, err, domain.ErrDuplicateEmail)

	disabled := false
	in := groupInput("fechado@bompreco.com.br")
	in.Status = &disabled
	closed, err := svc.CreateGroup(ctx, in)
	require.NoError(t, err)
	assert.False(t, closed.Status)
	stored, err := svc.GetGroup(ctx, closed.ID.String())
	require.NoError(t, err)
	assert.False(t, stored.Status)

	cases := []struct {
		name   string
		mutate func(*domain.GroupInput)
		want   error
	}{
		{name: "bad email", mutate: func(in *domain.GroupInput) { in.Email = "nope" }, want: domain.ErrInvalidEmail},
		{name: "empty name", mutate: func(in *domain.GroupInput) { in.Name = " " }, want: domain.ErrInvalidName},
		{name: "unknown owner", mutate: func(in *domain.GroupInput) { in.OwnerID = "999" }, want: domain.ErrInvalidOwner},
		{name: "missing owner", mutate: func(in *domain.GroupInput) { in.OwnerID = "" }, want: domain.ErrInvalidOwner},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			in := groupInput("outro@example.com")
			tc.mutate(&in)
			_, err := svc.CreateGroup(ctx, in)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestListGroupsByOwner(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		_, err := svc.CreateGroup(ctx, groupInput(email))
		require.NoError(t, err)
	}

	page, err := svc.ListGroups(ctx, domain.ListGroupRequest{OwnerID: "10", PageSize: 2})
	require.NoError(t, err)
	assert.Len(t, page.Groups, 2)
	assert.NotEmpty(t, page.NextPageToken)

	rest, err := svc.ListGroups(ctx, domain.ListGroupRequest{OwnerID: "10", PageSize: 2, PageToken: page.NextPageToken})
	require.NoError(t, err)
	assert.Len(t, rest.Groups, 1)

	none, err := svc.ListGroups(ctx, domain.ListGroupRequest{OwnerID: "11"})
	require.NoError(t, err)
	assert.Empty(t, none.Groups)

	_, err = svc.ListGroups(ctx, domain.ListGroupRequest{OwnerID: "abc"})
	require.ErrorIs(t, err, domain.ErrInvalidOwner)
}

func TestGroupAddresses(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, groupInput("a@example.com"))
	require.NoError(t, err)

	_, err = svc.AttachAddress(ctx, group.ID.String(), "404")
	require.ErrorIs(t, err, domain.ErrInvalidAddress)

	group, err = svc.AttachAddress(ctx, group.ID.String(), "20")
	require.NoError(t, err)
	assert.Equal(t, []snowflake.ID{addressID}, group.AddressIDs)

	group, err = svc.AttachAddress(ctx, group.ID.String(), "20")
	require.NoError(t, err)
	assert.Len(t, group.AddressIDs, 1)

	require.NoError(t, svc.DetachAddress(ctx, group.ID.String(), "20"))
	require.ErrorIs(t, svc.DetachAddress(ctx, group.ID.String(), "20"), domain.ErrNotFound)
}

func TestStoreLifecycle(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, groupInput("a@example.com"))
	require.NoError(t, err)

	_, err = svc.CreateStore(ctx, group.ID.String(), domain.StoreInput{Name: "Loja 1"})
	require.ErrorIs(t, err, domain.ErrInvalidAddress)

	_, err = svc.CreateStore(ctx, "404", domain.StoreInput{Name: "Loja 1", AddressID: "20"})
	require.ErrorIs(t, err, domain.ErrNotFound)

	closed := false
	store, err := svc.CreateStore(ctx, group.ID.String(), domain.StoreInput{
		Name:      "Loja Paulista",
		AddressID: "20",
		Status:    &closed,
	})
	require.NoError(t, err)
	assert.False(t, store.Status)
	assert.Equal(t, group.ID, store.GroupID)

	stored, err := svc.GetStore(ctx, store.ID.String())
	require.NoError(t, err)
	assert.False(t, stored.Status)

	_, err = svc.ReplaceStoreContacts(ctx, store.ID.String(), []string{"30", "31"})
	require.ErrorIs(t, err, domain.ErrInvalidContacts)

	store, err = svc.ReplaceStoreContacts(ctx, store.ID.String(), []string{"30", "30"})
	require.NoError(t, err)
	assert.Equal(t, []snowflake.ID{contactID}, store.ContactIDs)

	stores, err := svc.ListStores(ctx, group.ID.String())
	require.NoError(t, err)
	require.Len(t, stores, 1)

	store, err = svc.UpdateStore(ctx, store.ID.String(), domain.StoreInput{Name: "Loja Paulista 2", AddressID: "20"})
	require.NoError(t, err)
	assert.Equal(t, "Loja Paulista 2", store.Name)
	assert.False(t, store.Status)
}

func TestDeleteGroupRemovesStores(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	group, err := svc.CreateGroup(ctx, groupInput("a@example.com"))
	require.NoError(t, err)
	_, err = svc.AttachAddress(ctx, group.ID.String(), "20")
	require.NoError(t, err)
	store, err := svc.CreateStore(ctx, group.ID.String(), domain.StoreInput{Name: "Loja", AddressID: "20"})
	require.NoError(t, err)
	_, err = svc.ReplaceStoreContacts(ctx, store.ID.String(), []string{"30"})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteGroup(ctx, group.ID.String()))

	for _, table := range []string{"store_groups", "stores", "store_contacts", "group_addresses"} {
		var n int64
		require.NoError(t, conn.Table(table).Count(&n).Error)
		assert.Zero(t, n, table)
	}
	var addresses, contacts int64
	require.NoError(t, conn.Table("addresses").Count(&addresses).Error)
	require.NoError(t, conn.Table("contacts").Count(&contacts).Error)
	assert.Equal(t, int64(1), addresses)
	assert.Equal(t, int64(1), contacts)

	require.ErrorIs(t, svc.DeleteGroup(ctx, group.ID.String()), domain.ErrNotFound)
}
