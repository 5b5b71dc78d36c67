package metrics

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric/noop"
)

func TestFilterAttributesDropsForbiddenLabels(t *testing.T) {
	attrs := FilterAttributes(
		attribute.String("tier", "gold"),
		attribute.String("customer_id", "456"),
		attribute.String("discount_type", "percentage"),
	)
	if assert.Len(t, attrs, 2) {
		assert.Equal(t, attribute.Key("tier"), attrs[0].Key)
		assert.Equal(t, attribute.Key("discount_type"), attrs[1].Key)
	}
}

func TestNilMetricsAreSafe(t *testing.T) {
	var m *Metrics
	ctx := context.Background()
	m.RecordCouponRedemption(ctx, "fixed")
	m.RecordCouponRejection(ctx, "exhausted")
	m.RecordLoyaltyPoints(ctx, "bronze", 10)
	m.RecordOrderCreated(ctx, "pending")
	m.RecordDocumentRejected(ctx, "cpf")
}

func TestNewWithNoopProvider(t *testing.T) {
	m, err := New(Config{}, noop.NewMeterProvider())
	require.NoError(t, err)
	require.NotNil(t, m)
	m.RecordLoyaltyPoints(context.Background(), "gold", 5)
}
