package calculator

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// OTel instruments, created once by InitMetrics.
var (
	opsCounter   metric.Int64Counter
	opsHistogram metric.Float64Histogram
	errorCounter metric.Int64Counter
	resultGauge  metric.Float64Gauge

	metricsOnce sync.Once
	metricsErr  error
)

// Prometheus collectors exposed on the status server's /metrics endpoint.
var (
	promOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calculator_operations_total",
		Help: "Total number of successful calculator operations.",
	}, []string{"operation"})

	promErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "calculator_errors_total",
		Help: "Total number of recovered calculator errors.",
	}, []string{"kind"})

	promLastResult = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "calculator_last_result",
		Help: "Result of the last successful calculator operation.",
	})
)

// InitMetrics registers the calculator's OTel instruments against the global
// meter provider. Instruments created before a provider is installed are
// delegated to it once it is, so calling this early is safe. Subsequent
// calls are no-ops.
func InitMetrics() error {
	metricsOnce.Do(func() {
		metricsErr = initMetrics()
	})
	return metricsErr
}

func initMetrics() error {
	meter := otel.Meter("calculator")

	var err error

	opsCounter, err = meter.Int64Counter("calculator.operations.total",
		metric.WithDescription("Total number of calculator operations performed"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return fmt.Errorf("creating ops counter: %w", err)
	}

	opsHistogram, err = meter.Float64Histogram("calculator.operation.duration",
		metric.WithDescription("Duration of calculator operations in milliseconds"),
		metric.WithUnit("ms"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.5, 1, 5, 10),
	)
	if err != nil {
		return fmt.Errorf("creating ops histogram: %w", err)
	}

	errorCounter, err = meter.Int64Counter("calculator.errors.total",
		metric.WithDescription("Total number of recovered calculator errors"),
		metric.WithUnit("{error}"),
	)
	if err != nil {
		return fmt.Errorf("creating error counter: %w", err)
	}

	resultGauge, err = meter.Float64Gauge("calculator.last_result",
		metric.WithDescription("The result of the last calculator operation"),
		metric.WithUnit("1"),
	)
	if err != nil {
		return fmt.Errorf("creating result gauge: %w", err)
	}

	return nil
}
