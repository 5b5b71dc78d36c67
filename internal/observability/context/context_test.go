package context

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestID(t *testing.T) {
	ctx := WithRequestID(context.Background(), " req-1 ")
	assert.Equal(t, "req-1", RequestIDFromContext(ctx))
	assert.Equal(t, "", RequestIDFromContext(context.Background()))
}

func TestClientIP(t *testing.T) {
	ctx := WithClientIP(context.Background(), "10.0.0.1")
	assert.Equal(t, "10.0.0.1", ClientIPFromContext(ctx))
}
