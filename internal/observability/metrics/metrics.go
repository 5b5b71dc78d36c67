package metrics

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes application-level instruments.
type Metrics struct {
	couponRedemptions metric.Int64Counter
	couponRejections  metric.Int64Counter
	loyaltyPoints     metric.Int64Counter
	ordersCreated     metric.Int64Counter
	documentRejects   metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				return provider.Shutdown(ctx)
			},
		})
	}

	if log != nil {
		log.Info("metrics initialized",
			zap.String("endpoint", cfg.ExporterEndpoint),
			zap.String("protocol", cfg.ExporterProtocol),
		)
	}

	return provider, nil
}

// New configures the domain metrics instruments.
func New(cfg Config, provider metric.MeterProvider) (*Metrics, error) {
	name := strings.TrimSpace(cfg.ServiceName)
	if name == "" {
		name = "varejo"
	}
	meter := provider.Meter(name)

	couponRedemptions, err := meter.Int64Counter("varejo_coupon_redemptions_total")
	if err != nil {
		return nil, err
	}
	couponRejections, err := meter.Int64Counter("varejo_coupon_rejections_total")
	if err != nil {
		return nil, err
	}
	loyaltyPoints, err := meter.Int64Counter("varejo_loyalty_points_awarded_total")
	if err != nil {
		return nil, err
	}
	ordersCreated, err := meter.Int64Counter("varejo_orders_created_total")
	if err != nil {
		return nil, err
	}
	documentRejects, err := meter.Int64Counter("varejo_document_rejections_total")
	if err != nil {
		return nil, err
	}

	return &Metrics{
		couponRedemptions: couponRedemptions,
		couponRejections:  couponRejections,
		loyaltyPoints:     loyaltyPoints,
		ordersCreated:     ordersCreated,
		documentRejects:   documentRejects,
	}, nil
}

// RecordCouponRedemption increments successful coupon redemptions.
func (m *Metrics) RecordCouponRedemption(ctx context.Context, discountType string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("discount_type", strings.TrimSpace(discountType)))
	m.couponRedemptions.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordCouponRejection increments redemptions refused by the validity rules.
func (m *Metrics) RecordCouponRejection(ctx context.Context, reason string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("reason", strings.TrimSpace(reason)))
	m.couponRejections.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordLoyaltyPoints adds awarded points.
func (m *Metrics) RecordLoyaltyPoints(ctx context.Context, tier string, points int64) {
	if m == nil || points <= 0 {
		return
	}
	attrs := FilterAttributes(attribute.String("tier", strings.TrimSpace(tier)))
	m.loyaltyPoints.Add(ctx, points, metric.WithAttributes(attrs...))
}

// RecordOrderCreated increments created orders.
func (m *Metrics) RecordOrderCreated(ctx context.Context, status string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("status", strings.TrimSpace(status)))
	m.ordersCreated.Add(ctx, 1, metric.WithAttributes(attrs...))
}

// RecordDocumentRejected increments customer documents refused by normalization.
func (m *Metrics) RecordDocumentRejected(ctx context.Context, documentType string) {
	if m == nil {
		return
	}
	attrs := FilterAttributes(attribute.String("document_type", strings.TrimSpace(documentType)))
	m.documentRejects.Add(ctx, 1, metric.WithAttributes(attrs...))
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	protocol = strings.ToLower(strings.TrimSpace(protocol))
	switch protocol {
	case "http", "http/protobuf":
		opts := []otlpmetrichttp.Option{}
		if endpoint != "" {
			opts = append(opts, otlpmetrichttp.WithEndpoint(endpoint))
		}
		return otlpmetrichttp.New(context.Background(), opts...)
	case "grpc", "grpc/protobuf", "":
		opts := []otlpmetricgrpc.Option{otlpmetricgrpc.WithInsecure()}
		if endpoint != "" {
			opts = append(opts, otlpmetricgrpc.WithEndpoint(endpoint))
		}
		return otlpmetricgrpc.New(context.Background(), opts...)
	default:
		return nil, fmt.Errorf("unsupported OTLP protocol %q", protocol)
	}
}

var allowedLabelKeys = map[attribute.Key]struct{}{
	"discount_type": {},
	"document_type": {},
	"reason":        {},
	"status":        {},
	"tier":          {},
	"route":         {},
	"method":        {},
	"status_code":   {},
}

// FilterAttributes strips disallowed labels to keep metrics low-cardinality.
func FilterAttributes(attrs ...attribute.KeyValue) []attribute.KeyValue {
	filtered := make([]attribute.KeyValue, 0, len(attrs))
	for _, attr := range attrs {
		if _, ok := allowedLabelKeys[attr.Key]; !ok {
			continue
		}
		filtered = append(filtered, attr)
	}
	return filtered
}
