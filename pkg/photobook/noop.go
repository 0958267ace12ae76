package photobook

import "context"

// NoopUsageSink is a no-operation implementation of UsageSink.
// Useful when no metrics pipeline is configured and for testing.
type NoopUsageSink struct{}

// NewNoopUsageSink creates a new no-operation usage sink
func NewNoopUsageSink() UsageSink {
	return &NoopUsageSink{}
}

// AnalysisRequested does nothing
func (n *NoopUsageSink) AnalysisRequested(ctx context.Context, payloadBytes int64) {}

// CaptionProduced does nothing
func (n *NoopUsageSink) CaptionProduced(ctx context.Context, confidence float64) {}
