package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bwmarrin/snowflake"
	"github.com/shopspring/decimal"
	"github.com/smallbiznis/varejo/internal/clock"
	"github.com/smallbiznis/varejo/internal/config"
	"github.com/smallbiznis/varejo/internal/dbtest"
	"github.com/smallbiznis/varejo/internal/marketing/domain"
	"github.com/smallbiznis/varejo/internal/marketing/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

type fixture struct {
	svc   domain.Service
	db    *gorm.DB
	clock *clock.FakeClock
}

func newFixture(t *testing.T) fixture {
	t.Helper()

	conn := dbtest.Open(t)
	node, err := snowflake.NewNode(1)
	require.NoError(t, err)
	fake := clock.NewFakeClock(testNow)

	svc := New(Params{
		DB:          conn,
		Log:         zap.NewNop(),
		GenID:       node,
		Clock:       fake,
		Retail:      config.NewStaticRetailConfigHolder(config.DefaultRetailConfig()),
		Offers:      repository.ProvideOffer(),
		Coupons:     repository.ProvideCoupon(),
		Campaigns:   repository.ProvideCampaigns(conn),
		Contacts:    repository.ProvideContacts(conn),
		SocialMedia: repository.ProvideSocialMedia(conn),
	})
	return fixture{svc: svc, db: conn, clock: fake}
}

func (f fixture) offer(t *testing.T) domain.Offer {
	t.Helper()
	offer, err := f.svc.CreateOffer(context.Background(), domain.OfferInput{
		Name:          "10% em bebidas",
		DiscountValue: decimal.NewFromInt(10),
	})
	require.NoError(t, err)
	return offer
}

func (f fixture) coupon(t *testing.T, code string, maxUsages int64) domain.Coupon {
	t.Helper()
	offer := f.offer(t)
	coupon, err := f.svc.CreateCoupon(context.Background(), domain.CouponInput{
		Code:       code,
		OfferID:    offer.ID.String(),
		MaxUsages:  &maxUsages,
		ValidFrom:  testNow.Add(-time.Hour),
		ValidUntil: testNow.Add(time.Hour),
	})
	require.NoError(t, err)
	return coupon
}

func (f fixture) insertProduct(t *testing.T, id int64, sku string) {
	t.Helper()
	require.NoError(t, f.db.Exec(
		`INSERT INTO products (id, name, description, price, sku, barcode, stock, status, unit, created_at, updated_at)
		 VALUES (?, ?, '', 1, ?, ?, 0, 'ACTIVE', 'UN', ?, ?)`,
		id, "Produto "+sku, sku, "789"+sku, testNow, testNow,
	).Error)
}

func TestCampaignLifecycle(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateCampaign(ctx, domain.CampaignInput{
		Name:      "Natal",
		StartDate: testNow,
		EndDate:   testNow.Add(-time.Hour),
	})
	require.ErrorIs(t, err, domain.ErrInvalidPeriod)

	negative := decimal.NewFromInt(-1)
	_, err = f.svc.CreateCampaign(ctx, domain.CampaignInput{
		Name:      "Natal",
		StartDate: testNow,
		EndDate:   testNow,
		Budget:    &negative,
	})
	require.ErrorIs(t, err, domain.ErrInvalidBudget)

	inactive := false
	campaign, err := f.svc.CreateCampaign(ctx, domain.CampaignInput{
		Name:      "Natal",
		StartDate: testNow,
		EndDate:   testNow.Add(30 * 24 * time.Hour),
		IsActive:  &inactive,
	})
	require.NoError(t, err)
	assert.False(t, campaign.IsActive)
	assert.True(t, campaign.Budget.IsZero())

	stored, err := f.svc.GetCampaign(ctx, campaign.ID.String())
	require.NoError(t, err)
	assert.False(t, stored.IsActive)

	active, err := f.svc.ListCampaigns(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	offer, err := f.svc.CreateOffer(ctx, domain.OfferInput{
		CampaignID:    campaign.ID.String(),
		Name:          "Panetone",
		OfferType:     "fixed_amount",
		DiscountValue: decimal.RequireFromString("5.00"),
	})
	require.NoError(t, err)
	require.NotNil(t, offer.CampaignID)

	require.NoError(t, f.svc.DeleteCampaign(ctx, campaign.ID.String()))

	got, err := f.svc.GetOffer(ctx, offer.ID.String())
	require.NoError(t, err)
	assert.Nil(t, got.CampaignID)
}

func TestOfferValidationAndProducts(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.insertProduct(t, 100, "A")
	f.insertProduct(t, 101, "B")

	_, err := f.svc.CreateOffer(ctx, domain.OfferInput{Name: "x", DiscountValue: decimal.NewFromInt(101)})
	require.ErrorIs(t, err, domain.ErrInvalidDiscountValue)

	_, err = f.svc.CreateOffer(ctx, domain.OfferInput{Name: "x", OfferType: "FREE", DiscountValue: decimal.NewFromInt(1)})
	require.ErrorIs(t, err, domain.ErrInvalidOfferType)

	_, err = f.svc.CreateOffer(ctx, domain.OfferInput{
		Name:          "x",
		DiscountValue: decimal.NewFromInt(1),
		ProductIDs:    []string{"100", "999"},
	})
	require.ErrorIs(t, err, domain.ErrInvalidProducts)

	offer, err := f.svc.CreateOffer(ctx, domain.OfferInput{
		Name:          "Combo",
		DiscountValue: decimal.NewFromInt(15),
		ProductIDs:    []string{"100", "100"},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.OfferPercentage, offer.OfferType)
	assert.Equal(t, []snowflake.ID{100}, offer.ProductIDs)

	offer, err = f.svc.ReplaceOfferProducts(ctx, offer.ID.String(), []string{"101", "100"})
	require.NoError(t, err)
	assert.Len(t, offer.ProductIDs, 2)

	got, err := f.svc.GetOffer(ctx, offer.ID.String())
	require.NoError(t, err)
	assert.Equal(t, []snowflake.ID{100, 101}, got.ProductIDs)
}

func TestDeleteOfferCascadesCoupons(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coupon := f.coupon(t, "NATAL10", 5)

	require.NoError(t, f.svc.DeleteOffer(ctx, coupon.OfferID.String()))

	_, err := f.svc.GetCoupon(ctx, coupon.ID.String())
	require.ErrorIs(t, err, domain.ErrNotFound)
	require.ErrorIs(t, f.svc.DeleteOffer(ctx, coupon.OfferID.String()), domain.ErrNotFound)
}

func TestCreateCouponDefaults(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	offer := f.offer(t)

	coupon, err := f.svc.CreateCoupon(ctx, domain.CouponInput{
		Code:       "BEMVINDO",
		OfferID:    offer.ID.String(),
		ValidFrom:  testNow,
		ValidUntil: testNow.Add(time.Hour),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(100), coupon.MaxUsages)
	assert.Equal(t, int64(1), coupon.MaxUsagesPerCustomer)
	assert.Zero(t, coupon.CurrentUsages)
	assert.True(t, coupon.IsActive)

	_, err = f.svc.CreateCoupon(ctx, domain.CouponInput{
		Code:       "BEMVINDO",
		OfferID:    offer.ID.String(),
		ValidFrom:  testNow,
		ValidUntil: testNow.Add(time.Hour),
	})
	require.ErrorIs(t, err, domain.ErrDuplicateCode)

	_, err = f.svc.CreateCoupon(ctx, domain.CouponInput{
		Code:       "INVERTIDO",
		OfferID:    offer.ID.String(),
		ValidFrom:  testNow,
		ValidUntil: testNow.Add(-time.Second),
	})
	require.ErrorIs(t, err, domain.ErrInvalidValidity)

	_, err = f.svc.CreateCoupon(ctx, domain.CouponInput{
		Code:       "SEMOFERTA",
		OfferID:    "12345",
		ValidFrom:  testNow,
		ValidUntil: testNow,
	})
	require.ErrorIs(t, err, domain.ErrInvalidOffer)
}

func TestCheckCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coupon := f.coupon(t, "NATAL10", 5)

	check, err := f.svc.CheckCoupon(ctx, "NATAL10")
	require.NoError(t, err)
	assert.True(t, check.Valid)
	assert.Equal(t, domain.CouponValid, check.Status)

	f.clock.Set(coupon.ValidUntil)
	check, err = f.svc.CheckCoupon(ctx, "NATAL10")
	require.NoError(t, err)
	assert.True(t, check.Valid)

	f.clock.Set(coupon.ValidUntil.Add(time.Second))
	check, err = f.svc.CheckCoupon(ctx, "NATAL10")
	require.NoError(t, err)
	assert.False(t, check.Valid)
	assert.Equal(t, domain.CouponExpired, check.Status)

	_, err = f.svc.CheckCoupon(ctx, "NOPE")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRedeemCouponStopsAtCap(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.coupon(t, "NATAL10", 2)

	first, err := f.svc.RedeemCoupon(ctx, "NATAL10")
	require.NoError(t, err)
	assert.Equal(t, int64(1), first.CurrentUsages)

	second, err := f.svc.RedeemCoupon(ctx, "NATAL10")
	require.NoError(t, err)
	assert.Equal(t, int64(2), second.CurrentUsages)

	_, err = f.svc.RedeemCoupon(ctx, "NATAL10")
	require.ErrorIs(t, err, domain.ErrCouponNotRedeemable)

	check, err := f.svc.CheckCoupon(ctx, "NATAL10")
	require.NoError(t, err)
	assert.Equal(t, domain.CouponExhausted, check.Status)
}

func TestRedeemInactiveCoupon(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coupon := f.coupon(t, "PAUSADO", 5)

	inactive := false
	_, err := f.svc.UpdateCoupon(ctx, coupon.ID.String(), domain.CouponInput{
		Code:       coupon.Code,
		OfferID:    coupon.OfferID.String(),
		ValidFrom:  coupon.ValidFrom,
		ValidUntil: coupon.ValidUntil,
		IsActive:   &inactive,
	})
	require.NoError(t, err)

	_, err = f.svc.RedeemCoupon(ctx, "PAUSADO")
	require.ErrorIs(t, err, domain.ErrCouponNotRedeemable)

	got, err := f.svc.GetCoupon(ctx, coupon.ID.String())
	require.NoError(t, err)
	assert.Zero(t, got.CurrentUsages)
}

func TestRedeemCouponConcurrently(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	coupon := f.coupon(t, "CORRIDA", 5)

	var redeemed, rejected atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.svc.RedeemCoupon(ctx, "CORRIDA")
			switch err {
			case nil:
				redeemed.Add(1)
			case domain.ErrCouponNotRedeemable:
				rejected.Add(1)
			default:
				t.Errorf("unexpected error: %v", err)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int64(5), redeemed.Load())
	assert.Equal(t, int64(15), rejected.Load())

	got, err := f.svc.GetCoupon(ctx, coupon.ID.String())
	require.NoError(t, err)
	assert.Equal(t, int64(5), got.CurrentUsages)
}

func TestContactsAndSocialMedia(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.CreateContact(ctx, domain.ChannelInput{Type: "FAX", Value: "123"})
	require.ErrorIs(t, err, domain.ErrInvalidType)
	_, err = f.svc.CreateContact(ctx, domain.ChannelInput{Type: "PHONE", Value: " "})
	require.ErrorIs(t, err, domain.ErrInvalidValue)

	contact, err := f.svc.CreateContact(ctx, domain.ChannelInput{Type: "whatsapp", Value: "+55 11 98765-4321"})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactWhatsApp, contact.Type)
	assert.True(t, contact.IsActive)

	inactive := false
	contact, err = f.svc.UpdateContact(ctx, contact.ID.String(), domain.ChannelInput{Value: "+55 11 0000-0000", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, domain.ContactWhatsApp, contact.Type)
	assert.False(t, contact.IsActive)

	require.NoError(t, f.db.Exec(`INSERT INTO store_contacts (store_id, contact_id) VALUES (1, ?)`, contact.ID).Error)
	require.NoError(t, f.svc.DeleteContact(ctx, contact.ID.String()))
	var links int64
	require.NoError(t, f.db.Table("store_contacts").Count(&links).Error)
	assert.Zero(t, links)

	hidden, err := f.svc.CreateContact(ctx, domain.ChannelInput{Type: "email", Value: "sac@varejo.com.br", IsActive: &inactive})
	require.NoError(t, err)
	assert.False(t, hidden.IsActive)
	contacts, err := f.svc.ListContacts(ctx, false)
	require.NoError(t, err)
	require.Len(t, contacts, 1)
	assert.False(t, contacts[0].IsActive)
	contacts, err = f.svc.ListContacts(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, contacts)

	profile, err := f.svc.CreateSocialMedia(ctx, domain.ChannelInput{Type: "instagram", Value: "@varejo", IsActive: &inactive})
	require.NoError(t, err)
	assert.Equal(t, domain.SocialInstagram, profile.Type)
	assert.False(t, profile.IsActive)

	all, err := f.svc.ListSocialMedia(ctx, false)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.False(t, all[0].IsActive)
	active, err := f.svc.ListSocialMedia(ctx, true)
	require.NoError(t, err)
	assert.Empty(t, active)

	require.NoError(t, f.svc.DeleteSocialMedia(ctx, profile.ID.String()))
	require.ErrorIs(t, f.svc.DeleteSocialMedia(ctx, profile.ID.String()), domain.ErrNotFound)
}
