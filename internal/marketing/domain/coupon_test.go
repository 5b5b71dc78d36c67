package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsValid(t *testing.T) {
	from := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	until := time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)
	base := Coupon{
		Code:          "WELCOME10",
		MaxUsages:     5,
		CurrentUsages: 0,
		ValidFrom:     from,
		ValidUntil:    until,
		IsActive:      true,
	}
	mid := from.Add(10 * 24 * time.Hour)

	cases := []struct {
		name   string
		mutate func(c *Coupon)
		now    time.Time
		want   CouponStatus
	}{
		{name: "inside window", now: mid, want: CouponValid},
		{name: "window start is inclusive", now: from, want: CouponValid},
		{name: "window end is inclusive", now: until, want: CouponValid},
		{name: "before window", now: from.Add(-time.Second), want: CouponNotStarted},
		{name: "after window", now: until.Add(time.Second), want: CouponExpired},
		{name: "inactive", now: mid, mutate: func(c *Coupon) { c.IsActive = false }, want: CouponInactive},
		{name: "usages exhausted", now: mid, mutate: func(c *Coupon) { c.CurrentUsages = 5 }, want: CouponExhausted},
		{name: "one usage left", now: mid, mutate: func(c *Coupon) { c.CurrentUsages = 4 }, want: CouponValid},
		{name: "inactive wins over expired", now: until.Add(time.Hour), mutate: func(c *Coupon) { c.IsActive = false }, want: CouponInactive},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := base
			if tc.mutate != nil {
				tc.mutate(&c)
			}
			assert.Equal(t, tc.want, Status(c, tc.now))
			assert.Equal(t, tc.want == CouponValid, IsValid(c, tc.now))
		})
	}
}

func TestEnumLabels(t *testing.T) {
	assert.Equal(t, "Leve X Pague Y", OfferBOGO.Label())
	assert.Equal(t, "WhatsApp", ContactWhatsApp.Label())
	assert.Equal(t, "Instagram", SocialInstagram.Label())
	assert.False(t, OfferType("FREE").Valid())
	assert.False(t, ContactType("FAX").Valid())
	assert.False(t, SocialMediaType("TIKTOK").Valid())
}
