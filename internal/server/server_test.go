package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	catalogdomain "github.com/smallbiznis/varejo/internal/catalog/domain"
	"github.com/smallbiznis/varejo/internal/config"
	customerdomain "github.com/smallbiznis/varejo/internal/customer/domain"
	groupdomain "github.com/smallbiznis/varejo/internal/group/domain"
	marketingdomain "github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/internal/observability"
	salesdomain "github.com/smallbiznis/varejo/internal/sales/domain"
	"github.com/smallbiznis/varejo/pkg/db/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCatalog struct {
	catalogdomain.Service
	err error
}

func (f *fakeCatalog) GetProduct(context.Context, string) (catalogdomain.Product, error) {
	return catalogdomain.Product{Name: "Arroz 5kg"}, f.err
}

func (f *fakeCatalog) ListProducts(_ context.Context, req catalogdomain.ListProductRequest) (catalogdomain.ListProductResponse, error) {
	if req.PageToken != "" {
		return catalogdomain.ListProductResponse{}, pagination.ErrInvalidPageToken
	}
	return catalogdomain.ListProductResponse{}, nil
}

func (f *fakeCatalog) CreateCategory(_ context.Context, req catalogdomain.CreateCategoryRequest) (catalogdomain.Category, error) {
	return catalogdomain.Category{Name: req.Name}, nil
}

type fakeCustomers struct {
	customerdomain.Service
	err error
}

func (f *fakeCustomers) Create(context.Context, customerdomain.CreateCustomerRequest) (customerdomain.Customer, error) {
	return customerdomain.Customer{}, f.err
}

type fakeLoyalty struct {
	customerdomain.LoyaltyService
	points int64
}

func (f *fakeLoyalty) AddPoints(_ context.Context, _ string, amount int64) (customerdomain.LoyaltyProgram, error) {
	f.points += amount
	return customerdomain.LoyaltyProgram{}, nil
}

func (f *fakeLoyalty) GetLoyalty(context.Context, string) (customerdomain.LoyaltyProgram, error) {
	return customerdomain.LoyaltyProgram{}, customerdomain.ErrNotEnrolled
}

type fakeMarketing struct {
	marketingdomain.Service
	redeemErr error
}

func (f *fakeMarketing) RedeemCoupon(context.Context, string) (marketingdomain.Coupon, error) {
	return marketingdomain.Coupon{}, f.redeemErr
}

func (f *fakeMarketing) ListCampaigns(_ context.Context, activeOnly bool) ([]marketingdomain.Campaign, error) {
	if activeOnly {
		return []marketingdomain.Campaign{}, nil
	}
	return []marketingdomain.Campaign{{Name: "Black Friday"}}, nil
}

type fakeSales struct {
	salesdomain.Service
}

func (f *fakeSales) Receipt(_ context.Context, id string) (io.Reader, error) {
	if id == "404" {
		return nil, salesdomain.ErrNotFound
	}
	return bytes.NewReader([]byte("%PDF-1.7 receipt")), nil
}

type fixture struct {
	engine    *gin.Engine
	catalog   *fakeCatalog
	customers *fakeCustomers
	loyalty   *fakeLoyalty
	marketing *fakeMarketing
}

func newFixture(t *testing.T, cfg config.Config) *fixture {
	t.Helper()
	gin.SetMode(gin.TestMode)

	if cfg.AllowedHosts == nil {
		cfg.AllowedHosts = []string{"example.com"}
	}

	f := &fixture{
		engine:    NewEngine(cfg, observability.Config{}, nil),
		catalog:   &fakeCatalog{},
		customers: &fakeCustomers{},
		loyalty:   &fakeLoyalty{},
		marketing: &fakeMarketing{},
	}
	NewServer(ServerParams{
		Gin:          f.engine,
		Cfg:          cfg,
		CatalogSvc:   f.catalog,
		CustomerSvc:  f.customers,
		LoyaltySvc:   f.loyalty,
		GroupSvc:     struct{ groupdomain.Service }{},
		MarketingSvc: f.marketing,
		SalesSvc:     &fakeSales{},
	})
	return f
}

func (f *fixture) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) errorPayload {
	t.Helper()
	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp.Error
}

func TestHelloEchoesQuery(t *testing.T) {
	f := newFixture(t, config.Config{})

	for _, path := range []string{"/", "/api"} {
		rec := f.do(http.MethodGet, path+"?loja=centro&loja=norte", "")
		require.Equal(t, http.StatusOK, rec.Code, path)

		var body struct {
			Message string              `json:"message"`
			Data    map[string][]string `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Hello, world!", body.Message)
		assert.Equal(t, []string{"centro", "norte"}, body.Data["loja"])
	}
}

func TestAllowedHosts(t *testing.T) {
	f := newFixture(t, config.Config{AllowedHosts: []string{"mercado.com.br"}})

	req := httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Host = "evil.test"
	rec := httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "disallowed_host", decodeError(t, rec).Type)

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Host = "evil.test"
	rec = httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api", nil)
	req.Host = "mercado.com.br:8000"
	rec = httptest.NewRecorder()
	f.engine.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestUnknownRouteReturnsJSON(t *testing.T) {
	f := newFixture(t, config.Config{})

	rec := f.do(http.MethodGet, "/admin/nothing-here", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Type)
}

func TestErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		typ    string
		field  string
	}{
		{name: "invalid id", err: catalogdomain.ErrInvalidID, status: http.StatusBadRequest, typ: "validation_error", field: "id"},
		{name: "not found", err: catalogdomain.ErrNotFound, status: http.StatusNotFound, typ: "not_found"},
		{name: "duplicate", err: catalogdomain.ErrDuplicateProduct, status: http.StatusConflict, typ: "conflict"},
		{name: "unexpected", err: errors.New("connection reset"), status: http.StatusInternalServerError, typ: "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, config.Config{})
			f.catalog.err = tt.err

			rec := f.do(http.MethodGet, "/admin/products/1", "")
			assert.Equal(t, tt.status, rec.Code)

			payload := decodeError(t, rec)
			assert.Equal(t, tt.typ, payload.Type)
			if tt.field != "" {
				require.Len(t, payload.Errors, 1)
				assert.Equal(t, tt.field, payload.Errors[0].Field)
			}
		})
	}
}

func TestInvalidPageToken(t *testing.T) {
	f := newFixture(t, config.Config{})

	rec := f.do(http.MethodGet, "/admin/products?page_token=garbage", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeError(t, rec)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "invalid page token", payload.Errors[0].Message)
}

func TestCreateReturnsCreated(t *testing.T) {
	f := newFixture(t, config.Config{})

	rec := f.do(http.MethodPost, "/admin/categories", `{"name":"Bebidas"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	var body struct {
		Data catalogdomain.Category `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "Bebidas", body.Data.Name)

	rec = f.do(http.MethodPost, "/admin/categories", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "request", decodeError(t, rec).Errors[0].Field)
}

func TestDocumentErrorMessage(t *testing.T) {
	f := newFixture(t, config.Config{})
	f.customers.err = &customerdomain.DocumentError{Type: customerdomain.DocumentCPF, Digits: 10}

	rec := f.do(http.MethodPost, "/admin/customers", `{"email":"ana@example.com"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	payload := decodeError(t, rec)
	require.Len(t, payload.Errors, 1)
	assert.Equal(t, "document_number", payload.Errors[0].Field)
	assert.Equal(t, f.customers.err.Error(), payload.Errors[0].Message)
}

func TestLoyaltyRoutes(t *testing.T) {
	f := newFixture(t, config.Config{})

	rec := f.do(http.MethodPost, "/admin/customers/1/loyalty/points", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "points", decodeError(t, rec).Errors[0].Field)

	rec = f.do(http.MethodPost, "/admin/customers/1/loyalty/points", `{"points":150}`)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(150), f.loyalty.points)

	rec = f.do(http.MethodGet, "/admin/customers/1/loyalty", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRedeemCouponConflict(t *testing.T) {
	f := newFixture(t, config.Config{})
	f.marketing.redeemErr = marketingdomain.ErrCouponNotRedeemable

	rec := f.do(http.MethodPost, "/admin/coupon-codes/NATAL10/redeem", "")
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Equal(t, "coupon cannot be redeemed", decodeError(t, rec).Message)

	f.marketing.redeemErr = nil
	rec = f.do(http.MethodPost, "/admin/coupon-codes/NATAL10/redeem", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestActiveFilter(t *testing.T) {
	f := newFixture(t, config.Config{})

	rec := f.do(http.MethodGet, "/admin/campaigns", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Black Friday")

	rec = f.do(http.MethodGet, "/admin/campaigns?active=true", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotContains(t, rec.Body.String(), "Black Friday")

	rec = f.do(http.MethodGet, "/admin/campaigns?active=maybe", "")
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestOrderReceipt(t *testing.T) {
	f := newFixture(t, config.Config{})

	rec := f.do(http.MethodGet, "/admin/orders/42/receipt", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/pdf", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "pedido-42.pdf")
	assert.True(t, strings.HasPrefix(rec.Body.String(), "%PDF"))

	rec = f.do(http.MethodGet, "/admin/orders/404/receipt", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "not_found", decodeError(t, rec).Type)
}

func TestURLPrefix(t *testing.T) {
	assert.Equal(t, "/static", urlPrefix("static/"))
	assert.Equal(t, "/media", urlPrefix("/media/"))
	assert.Equal(t, "", urlPrefix("  "))
	assert.Equal(t, "", urlPrefix("https://cdn.example.com/static/"))
}
