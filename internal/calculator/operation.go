package calculator

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

var (
	// ErrInvalidInput is returned when an operand token is not a finite number.
	ErrInvalidInput = errors.New("invalid input")
	// ErrUnknownOperator is returned for operator tokens outside + - * /.
	ErrUnknownOperator = errors.New("unknown operator")
	// ErrDivisionByZero is returned when dividing by exactly 0.0.
	ErrDivisionByZero = errors.New("division by zero")
)

// ParseOperand parses a single operand token.
func ParseOperand(token string) (float64, error) {
	if isHexLiteral(token) {
		return 0, fmt.Errorf("%w: %q is not a decimal number", ErrInvalidInput, token)
	}

	v, err := strconv.ParseFloat(token, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidInput, token)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", ErrInvalidInput, token)
	}
	return v, nil
}

// isHexLiteral reports whether token is a hexadecimal float such as 0x1p4,
// which strconv accepts but is not valid operand syntax.
func isHexLiteral(token string) bool {
	t := strings.TrimLeft(token, "+-")
	return strings.HasPrefix(t, "0x") || strings.HasPrefix(t, "0X")
}

// Apply performs the arithmetic operation selected by op.
func Apply(op Operator, a, b float64) (float64, error) {
	switch op {
	case OpAdd:
		return a + b, nil
	case OpSubtract:
		return a - b, nil
	case OpMultiply:
		return a * b, nil
	case OpDivide:
		if b == 0 {
			return 0, fmt.Errorf("%w: %g / %g", ErrDivisionByZero, a, b)
		}
		return a / b, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, string(op))
	}
}

// errorKind classifies err for the errors metric.
func errorKind(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return "invalid_input"
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrUnknownOperator):
		return "unknown_operator"
	default:
		return "internal"
	}
}

// userMessage maps err to the line printed to the user.
func userMessage(err error) string {
	switch {
	case errors.Is(err, ErrInvalidInput):
		return MsgInvalidInput
	case errors.Is(err, ErrDivisionByZero):
		return MsgDivisionByZero
	default:
		return MsgInvalidOperation
	}
}
