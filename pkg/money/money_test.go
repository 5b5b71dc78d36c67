package money

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestPrice(t *testing.T) {
	cases := map[string]bool{
		"0":           true,
		"19.99":       true,
		"99999999.99": true,
		"100000000":   false,
		"1.999":       false,
		"-0.01":       false,
	}
	for raw, want := range cases {
		assert.Equal(t, want, Price(decimal.RequireFromString(raw)), raw)
	}
}

func TestBudget(t *testing.T) {
	assert.True(t, Budget(decimal.RequireFromString("9999999999.99")))
	assert.False(t, Budget(decimal.RequireFromString("10000000000")))
}
