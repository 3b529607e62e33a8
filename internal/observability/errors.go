package observability

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// RecordError centralises handling of recovered errors: records the error on
// the span, increments the provided error counter and logs it with the
// session and trace context. Writing a message to the user is left to the
// caller.
func RecordError(ctx context.Context, span trace.Span, logger *zap.Logger, counter metric.Int64Counter, opName, kind string, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, kind)

	counter.Add(ctx, 1, metric.WithAttributes(
		attribute.String("operation", opName),
		attribute.String("kind", kind),
	))

	logger.Warn("operation failed",
		zap.String("operation", opName),
		zap.String("kind", kind),
		zap.Error(err),
		zap.String("session_id", SessionIDFromContext(ctx)),
	)
}
