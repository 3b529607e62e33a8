package observability

import (
	"context"
	"errors"
	"fmt"
)

// ShutdownFunc flushes and stops a telemetry provider.
type ShutdownFunc func(context.Context) error

// telemetryStep installs one OTLP pipeline.
type telemetryStep struct {
	name string
	init func(context.Context) (func(context.Context) error, error)
}

var telemetrySteps = []telemetryStep{
	{"tracing", InitTracing},
	{"metrics", InitMetrics},
	{"logging", InitLogging},
}

// SetupTelemetry installs the OTLP trace, metric and log pipelines. When
// enabled is false nothing is installed and the global no-op providers stay
// in place. The returned function shuts down whatever was started, in
// reverse order.
func SetupTelemetry(ctx context.Context, enabled bool) (ShutdownFunc, error) {
	if !enabled {
		return func(context.Context) error { return nil }, nil
	}
	return setupTelemetry(ctx, telemetrySteps)
}

// setupTelemetry runs steps in order. If one fails, the pipelines already
// started are shut down before the error is returned.
func setupTelemetry(ctx context.Context, steps []telemetryStep) (ShutdownFunc, error) {
	var shutdowns []ShutdownFunc
	shutdown := func(ctx context.Context) error {
		var errs []error
		for i := len(shutdowns) - 1; i >= 0; i-- {
			errs = append(errs, shutdowns[i](ctx))
		}
		return errors.Join(errs...)
	}

	for _, step := range steps {
		fn, err := step.init(ctx)
		if err != nil {
			return nil, errors.Join(fmt.Errorf("init %s: %w", step.name, err), shutdown(ctx))
		}
		shutdowns = append(shutdowns, fn)
	}

	return shutdown, nil
}
