package service

import (
	"context"
	"io"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/oklog/ulid/v2"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/dbtest"
	"github.com/smallbiznis/varejo/internal/sales/domain"
	"github.com/smallbiznis/varejo/internal/sales/receipt"
	"github.com/smallbiznis/varejo/internal/sales/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 14, 15, 30, 0, 0, time.UTC)

func newTestService(t *testing.T) (domain.Service, *gorm.DB) {
	t.Helper()

	conn := dbtest.Open(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)

	require.NoError(t, conn.Exec(
		`INSERT INTO customer_documents (id, document_type, document_number, created_at, updated_at) VALUES (1, 'CPF', '12345678909', ?, ?)`,
		testNow, testNow).Error)
	require.NoError(t, conn.Exec(
		`INSERT INTO customers (id, email, first_name, last_name, phone, gender, document_id, is_active, date_joined, created_at, updated_at)
		 VALUES (7, 'ana@example.com', 'Ana', 'Souza', '', '', 1, true, ?, ?, ?)`,
		testNow, testNow, testNow).Error)
	for id, sku := range map[int64]string{100: "CAFE", 101: "LEITE"} {
		require.NoError(t, conn.Exec(
			`INSERT INTO products (id, name, description, price, sku, barcode, stock, status, unit, created_at, updated_at)
			 VALUES (?, ?, '', 19.99, ?, ?, 0, 'ACTIVE', 'UN', ?, ?)`,
			id, "Produto "+sku, sku, "789"+sku, testNow, testNow).Error)
	}

	cfg := config.Config{AppName: "Mercado Teste", TimeZone: "America/Sao_Paulo"}
	svc := New(Params{
		DB:         conn,
		Log:        zap.NewNop(),
		Cfg:        cfg,
		GenID:      node,
		Clock:      clock.NewFakeClock(testNow),
		Retail:     config.NewStaticRetailConfigHolder(config.DefaultRetailConfig()),
		Repo:       repository.Provide(),
		References: repository.ProvideReferences(),
		Receipts:   receipt.New(cfg.AppName),
	})
	return svc, conn
}

func qty(n int64) *int64 { return &n }

func TestCreateOrderDerivesTotal(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	discount := decimal.RequireFromString("4.97")
	order, err := svc.Create(ctx, domain.CreateOrderRequest{
		CustomerID:      "7",
		DiscountApplied: &discount,
		Items: []domain.OrderItemInput{
			{ProductID: "100", Quantity: qty(3), Price: decimal.RequireFromString("19.99")},
			{ProductID: "101", Price: decimal.RequireFromString("5.00")},
		},
	})
	require.NoError(t, err)

	_, err = ulid.ParseStrict(order.ExternalID)
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, order.Status)
	assert.Equal(t, "60.00", order.TotalAmount.StringFixed(2))
	assert.True(t, order.SaleDate.Equal(testNow))
	require.NotNil(t, order.CustomerID)

	got, err := svc.Get(ctx, order.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Items, 2)
	assert.Equal(t, int64(1), got.Items[1].Quantity)
	assert.Equal(t, "64.97", got.ItemsTotal().StringFixed(2))
	assert.Equal(t, "60.00", got.TotalAmount.StringFixed(2))
}

func TestCreateOrderKeepsExplicitTotal(t *testing.T) {
	svc, _ := newTestService(t)

	total := decimal.RequireFromString("10.00")
	order, err := svc.Create(context.Background(), domain.CreateOrderRequest{
		ExternalID:  "PDV-0001",
		TotalAmount: &total,
		Status:      "paid",
		Items:       []domain.OrderItemInput{{Price: decimal.RequireFromString("12.50")}},
	})
	require.NoError(t, err)
	assert.Equal(t, "PDV-0001", order.ExternalID)
	assert.Equal(t, domain.StatusPaid, order.Status)
	assert.Equal(t, "10.00", order.TotalAmount.StringFixed(2))
	assert.Nil(t, order.CustomerID)
}

func TestCreateOrderAcceptsZeroQuantity(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, domain.CreateOrderRequest{
		Items: []domain.OrderItemInput{{Quantity: qty(0), Price: decimal.RequireFromString("19.99")}},
	})
	require.NoError(t, err)
	assert.True(t, order.TotalAmount.IsZero())

	got, err := svc.Get(ctx, order.ID.String())
	require.NoError(t, err)
	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(0), got.Items[0].Quantity)
	assert.True(t, got.Items[0].TotalPrice().IsZero())
}

func TestCreateOrderValidation(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	negative := decimal.NewFromInt(-1)
	cases := []struct {
		name string
		req  domain.CreateOrderRequest
		want error
	}{
		{name: "negative quantity", req: domain.CreateOrderRequest{Items: []domain.OrderItemInput{{Quantity: qty(-1), Price: decimal.NewFromInt(1)}}}, want: domain.ErrInvalidQuantity},
		{name: "fractional cents", req: domain.CreateOrderRequest{Items: []domain.OrderItemInput{{Price: decimal.RequireFromString("1.005")}}}, want: domain.ErrInvalidPrice},
		{name: "unknown product", req: domain.CreateOrderRequest{Items: []domain.OrderItemInput{{ProductID: "555", Price: decimal.NewFromInt(1)}}}, want: domain.ErrInvalidProduct},
		{name: "unknown customer", req: domain.CreateOrderRequest{CustomerID: "8"}, want: domain.ErrInvalidCustomer},
		{name: "bad status", req: domain.CreateOrderRequest{Status: "SHIPPED"}, want: domain.ErrInvalidStatus},
		{name: "negative discount", req: domain.CreateOrderRequest{DiscountApplied: &negative}, want: domain.ErrInvalidDiscount},
		{name: "negative total", req: domain.CreateOrderRequest{TotalAmount: &negative}, want: domain.ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(ctx, tc.req)
			require.ErrorIs(t, err, tc.want)
		})
	}

	var orders, items int64
	require.NoError(t, conn.Table("orders").Count(&orders).Error)
	require.NoError(t, conn.Table("order_items").Count(&items).Error)
	assert.Zero(t, orders)
	assert.Zero(t, items)
}

func TestDuplicateExternalID(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	req := domain.CreateOrderRequest{
		ExternalID: "PDV-0001",
		Items:      []domain.OrderItemInput{{ProductID: "100", Price: decimal.NewFromInt(2)}},
	}
	_, err := svc.Create(ctx, req)
	require.NoError(t, err)

	_, err = svc.Create(ctx, req)
	require.ErrorIs(t, err, domain.ErrDuplicateOrder)

	var items int64
	require.NoError(t, conn.Table("order_items").Count(&items).Error)
	assert.Equal(t, int64(1), items)
}

func TestListUpdateAndDelete(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	var last domain.Order
	for i := 0; i < 3; i++ {
		order, err := svc.Create(ctx, domain.CreateOrderRequest{
			CustomerID: "7",
			Items:      []domain.OrderItemInput{{ProductID: "100", Price: decimal.NewFromInt(1)}},
		})
		require.NoError(t, err)
		last = order
	}

	page, err := svc.List(ctx, domain.ListOrderRequest{PageSize: 2, CustomerID: "7"})
	require.NoError(t, err)
	assert.Len(t, page.Orders, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, last.ID, page.Orders[0].ID)

	updated, err := svc.UpdateStatus(ctx, last.ID.String(), "cancelled")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelled, updated.Status)

	cancelled, err := svc.List(ctx, domain.ListOrderRequest{Status: "CANCELLED"})
	require.NoError(t, err)
	require.Len(t, cancelled.Orders, 1)

	_, err = svc.UpdateStatus(ctx, last.ID.String(), "REFUNDED")
	require.ErrorIs(t, err, domain.ErrInvalidStatus)

	require.NoError(t, svc.Delete(ctx, last.ID.String()))
	require.ErrorIs(t, svc.Delete(ctx, last.ID.String()), domain.ErrNotFound)

	var items int64
	require.NoError(t, conn.Table("order_items").Where("order_id = ?", last.ID).Count(&items).Error)
	assert.Zero(t, items)
}

func TestReceipt(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	order, err := svc.Create(ctx, domain.CreateOrderRequest{
		CustomerID: "7",
		Items: []domain.OrderItemInput{
			{ProductID: "100", Quantity: qty(2), Price: decimal.RequireFromString("19.99")},
			{ProductID: "101", Price: decimal.RequireFromString("4.50")},
		},
	})
	require.NoError(t, err)
	require.NoError(t, conn.Exec(`UPDATE order_items SET product_id = NULL WHERE product_id = 101`).Error)

	r, err := svc.Receipt(ctx, order.ID.String())
	require.NoError(t, err)
	body, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "%PDF", string(body[:4]))

	_, err = svc.Receipt(ctx, "99")
	require.ErrorIs(t, err, domain.ErrNotFound)
}
