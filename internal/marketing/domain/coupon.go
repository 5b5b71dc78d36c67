package domain

import "time"

type CouponStatus string

const (
	CouponValid      CouponStatus = "valid"
	CouponInactive   CouponStatus = "inactive"
	CouponNotStarted CouponStatus = "not_started"
	CouponExpired    CouponStatus = "expired"
	CouponExhausted  CouponStatus = "exhausted"
)

// IsValid reports whether the coupon can be used at now. The validity window
// is inclusive on both ends.
func IsValid(c Coupon, now time.Time) bool {
	return Status(c, now) == CouponValid
}

// Status tells why a coupon is or is not usable at now. Checks run in a fixed
// order so the first failing rule is reported.
func Status(c Coupon, now time.Time) CouponStatus {
	switch {
	case !c.IsActive:
		return CouponInactive
	case now.Before(c.ValidFrom):
		return CouponNotStarted
	case now.After(c.ValidUntil):
		return CouponExpired
	case c.CurrentUsages >= c.MaxUsages:
		return CouponExhausted
	default:
		return CouponValid
	}
}
