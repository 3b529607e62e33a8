package calculator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"interactive-calculator/internal/observability"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// tracer is the calculator's dedicated OpenTelemetry tracer.
var tracer = otel.Tracer("calculator")

// Session is one run of the interactive loop. It owns the calculator state
// for its whole lifetime.
type Session struct {
	id     string
	in     *tokenReader
	out    io.Writer
	state  *State
	banner bool
	tracer trace.Tracer
}

// Option configures a Session.
type Option func(*Session)

// WithBanner controls whether the welcome banner is printed when Run starts.
func WithBanner(show bool) Option {
	return func(s *Session) { s.banner = show }
}

// WithSessionID overrides the generated session ID.
func WithSessionID(id string) Option {
	return func(s *Session) { s.id = id }
}

// WithTracerProvider records the session's spans on tp instead of the
// global provider.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(s *Session) { s.tracer = tp.Tracer("calculator") }
}

// NewSession creates a session reading from in and writing to out.
func NewSession(in io.Reader, out io.Writer, opts ...Option) (*Session, error) {
	if err := InitMetrics(); err != nil {
		return nil, err
	}

	s := &Session{
		id:     observability.NewID(),
		in:     newTokenReader(in),
		out:    out,
		state:  &State{},
		tracer: tracer,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Session) State() *State { return s.state }

// Status reports the session's current counters.
func (s *Session) Status() Status {
	return Status{
		SessionID:      s.id,
		OperationCount: s.state.OperationCount(),
		LastResult:     s.state.LastResult(),
	}
}

// Run drives the read/dispatch loop until the user quits or the input is
// exhausted, both of which return nil. Malformed operands, unknown
// operators and division by zero are reported to the user and the loop
// continues. Once ctx is done Run returns ctx.Err(), including when the
// cancellation surfaces as a failed or closed read.
func (s *Session) Run(ctx context.Context) error {
	ctx = observability.ContextWithSessionID(ctx, s.id)
	logger := observability.LoggerWithTrace(ctx)

	if s.banner {
		fmt.Fprintln(s.out, Banner)
	}

	logger.Debug("session started", zap.String("session_id", s.id))

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		req, err := s.readRequest()
		if err != nil && ctx.Err() != nil {
			return ctx.Err()
		}

		switch {
		case errors.Is(err, io.EOF):
			logger.Debug("end of input", zap.String("session_id", s.id))
			return nil
		case errors.Is(err, ErrInvalidInput):
			s.recordInvalidInput(ctx, err)
			fmt.Fprintln(s.out, MsgInvalidInput)
			continue
		case err != nil:
			return fmt.Errorf("read input: %w", err)
		}

		if req.Operator == OpQuit {
			logger.Debug("quit requested", zap.String("session_id", s.id))
			return nil
		}

		s.dispatch(ctx, req)
	}
}

// recordInvalidInput traces a rejected operand token on its own short span.
func (s *Session) recordInvalidInput(ctx context.Context, err error) {
	ctx, span := s.tracer.Start(ctx, "calculator.read",
		trace.WithAttributes(attribute.String("session.id", s.id)),
	)
	defer span.End()

	kind := errorKind(err)
	observability.RecordError(ctx, span, observability.LoggerWithTrace(ctx), errorCounter, "read", kind, err)
	promErrors.WithLabelValues(kind).Inc()
}

// readRequest prompts for and reads one operation. An invalid operand is
// returned as ErrInvalidInput after its token has been consumed.
func (s *Session) readRequest() (Request, error) {
	var req Request

	fmt.Fprintln(s.out)
	fmt.Fprintln(s.out, PromptOperand1)
	a, err := s.readOperand()
	if err != nil {
		return req, err
	}

	fmt.Fprintln(s.out, PromptOperand2)
	b, err := s.readOperand()
	if err != nil {
		return req, err
	}

	if err := s.in.DiscardLine(); err != nil {
		return req, err
	}

	fmt.Fprintln(s.out, PromptOperator)
	op, err := s.in.Line()
	if err != nil {
		return req, err
	}

	return Request{Operand1: a, Operand2: b, Operator: Operator(op)}, nil
}

func (s *Session) readOperand() (float64, error) {
	token, err := s.in.Token()
	if err != nil {
		return 0, err
	}
	return ParseOperand(token)
}

// dispatch applies req and, on success, updates the state and prints the
// result. Failures leave the state untouched.
func (s *Session) dispatch(ctx context.Context, req Request) {
	opName := req.Operator.Name()

	ctx, span := s.tracer.Start(ctx, fmt.Sprintf("calculator.%s", opName),
		trace.WithAttributes(
			attribute.String("calculator.operation", opName),
			attribute.String("calculator.operator", string(req.Operator)),
			attribute.Float64("calculator.operand.a", req.Operand1),
			attribute.Float64("calculator.operand.b", req.Operand2),
			attribute.String("session.id", s.id),
		),
	)
	defer span.End()

	logger := observability.LoggerWithTrace(ctx)

	start := time.Now()
	result, err := Apply(req.Operator, req.Operand1, req.Operand2)
	elapsed := float64(time.Since(start).Microseconds()) / 1000.0 // ms

	if err != nil {
		kind := errorKind(err)
		observability.RecordError(ctx, span, logger, errorCounter, opName, kind, err)
		promErrors.WithLabelValues(kind).Inc()
		fmt.Fprintln(s.out, userMessage(err))
		return
	}

	fmt.Fprintf(s.out, resultFormat, formatValue(req.Operand1), req.Operator, formatValue(req.Operand2), formatValue(result))
	count := s.state.Record(result)
	fmt.Fprintf(s.out, countFormat, count)

	attrs := metric.WithAttributes(attribute.String("operation", opName))
	opsCounter.Add(ctx, 1, attrs)
	opsHistogram.Record(ctx, elapsed, attrs)
	resultGauge.Record(ctx, result, attrs)
	promOperations.WithLabelValues(opName).Inc()
	promLastResult.Set(result)

	span.AddEvent("computation.complete", trace.WithAttributes(
		attribute.Float64("result", result),
		attribute.Float64("duration_ms", elapsed),
	))
	span.SetAttributes(
		attribute.Float64("calculator.result", result),
		attribute.Int64("calculator.operation_count", int64(count)),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("calculator operation completed",
		zap.String("operation", opName),
		zap.Float64("a", req.Operand1),
		zap.Float64("b", req.Operand2),
		zap.Float64("result", result),
		zap.Uint64("operation_count", count),
		zap.Float64("duration_ms", elapsed),
		zap.String("session_id", s.id),
	)
}
