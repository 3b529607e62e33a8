package calculator

import "sync"

// Operator is the token that selects an arithmetic operation, or the quit sentinel.
type Operator string

const (
	OpAdd      Operator = "+"
	OpSubtract Operator = "-"
	OpMultiply Operator = "*"
	OpDivide   Operator = "/"
	OpQuit     Operator = "q"
)

// Name returns the operation name used for spans, metrics and logs.
func (o Operator) Name() string {
	switch o {
	case OpAdd:
		return "add"
	case OpSubtract:
		return "subtract"
	case OpMultiply:
		return "multiply"
	case OpDivide:
		return "divide"
	case OpQuit:
		return "quit"
	default:
		return "unknown"
	}
}

// Request is one binary operation read from the input stream.
type Request struct {
	Operand1 float64
	Operand2 float64
	Operator Operator
}

// State is the running result and operation counter of a session.
// It is only mutated after a successful operation.
type State struct {
	mu             sync.RWMutex
	lastResult     float64
	operationCount uint64
}

// Record stores result as the last result and returns the incremented counter.
func (s *State) Record(result float64) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.lastResult = result
	s.operationCount++
	return s.operationCount
}

// LastResult returns the result of the most recent successful operation.
func (s *State) LastResult() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastResult
}

// OperationCount returns how many operations have succeeded so far.
func (s *State) OperationCount() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.operationCount
}

// Status is the JSON view of a session served by the status endpoint.
type Status struct {
	SessionID      string  `json:"session_id"`
	OperationCount uint64  `json:"operation_count"`
	LastResult     float64 `json:"last_result"`
}
