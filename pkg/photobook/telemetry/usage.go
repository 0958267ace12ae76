package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const meterName = "github.com/photobook/photobook/pkg/photobook/vision"

// Usage records content analysis usage as OpenTelemetry metrics and
// implements photobook.UsageSink.
type Usage struct {
	payloadBytes metric.Int64Counter
	requests     metric.Int64Counter
	confidence   metric.Float64Histogram
}

// NewUsage creates the analysis usage instruments on the global meter
// provider.
func NewUsage() (*Usage, error) {
	meter := otel.Meter(meterName)

	payloadBytes, err := meter.Int64Counter("photobook.analysis.payload_bytes",
		metric.WithDescription("Total bytes submitted for image analysis"),
		metric.WithUnit("By"))
	if err != nil {
		return nil, fmt.Errorf("failed to create payload counter: %w", err)
	}

	requests, err := meter.Int64Counter("photobook.analysis.requests",
		metric.WithDescription("Number of image analysis requests"))
	if err != nil {
		return nil, fmt.Errorf("failed to create request counter: %w", err)
	}

	confidence, err := meter.Float64Histogram("photobook.analysis.caption_confidence",
		metric.WithDescription("Confidence of captions produced by image analysis"))
	if err != nil {
		return nil, fmt.Errorf("failed to create confidence histogram: %w", err)
	}

	return &Usage{
		payloadBytes: payloadBytes,
		requests:     requests,
		confidence:   confidence,
	}, nil
}

func (u *Usage) AnalysisRequested(ctx context.Context, payloadBytes int64) {
	u.requests.Add(ctx, 1)
	u.payloadBytes.Add(ctx, payloadBytes)
}

func (u *Usage) CaptionProduced(ctx context.Context, confidence float64) {
	u.confidence.Record(ctx, confidence)
}
