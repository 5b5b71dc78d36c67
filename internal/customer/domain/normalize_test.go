package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeEmail(t *testing.T) {
	got, err := NormalizeEmail("  Maria.Silva@Example.COM ")
	require.NoError(t, err)
	assert.Equal(t, "Maria.Silva@example.com", got)

	for _, raw := range []string{"", "maria", "@example.com", "maria@", "maria silva@example.com"} {
		_, err := NormalizeEmail(raw)
		assert.ErrorIs(t, err, ErrInvalidEmail, raw)
	}
}

func TestNormalizePhone(t *testing.T) {
	got, err := NormalizePhone("(11) 98765-4321")
	require.NoError(t, err)
	assert.Equal(t, "11987654321", got)

	got, err = NormalizePhone("1134567890")
	require.NoError(t, err)
	assert.Equal(t, "1134567890", got)

	got, err = NormalizePhone("")
	require.NoError(t, err)
	assert.Empty(t, got)

	_, err = NormalizePhone("98765-4321")
	assert.ErrorIs(t, err, ErrInvalidPhone)
}
