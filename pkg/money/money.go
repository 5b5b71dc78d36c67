// Package money validates fixed-point amounts stored as decimal(precision, scale).
package money

import "github.com/shopspring/decimal"

// Fits reports whether d is non-negative and representable as
// decimal(precision, scale) without rounding.
func Fits(d decimal.Decimal, precision, scale int32) bool {
	if d.IsNegative() {
		return false
	}
	if !d.Round(scale).Equal(d) {
		return false
	}
	limit := decimal.New(1, precision-scale)
	return d.LessThan(limit)
}

// Price is decimal(10,2).
func Price(d decimal.Decimal) bool {
	return Fits(d, 10, 2)
}

// Budget is decimal(12,2).
func Budget(d decimal.Decimal) bool {
	return Fits(d, 12, 2)
}
