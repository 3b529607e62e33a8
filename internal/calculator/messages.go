package calculator

// Lines written to the session's output stream.
const (
	Banner = "Welcome to Interactive Calculator!"

	PromptOperand1 = "Enter first number:"
	PromptOperand2 = "Enter second number:"
	PromptOperator = "Enter operation (+, -, *, /) or 'q' to quit:"

	MsgInvalidInput     = "Invalid input! Please enter a number."
	MsgDivisionByZero   = "Error: Division by zero!"
	MsgInvalidOperation = "Invalid operation!"

	resultFormat = "Result: %s %s %s = %s\n"
	countFormat  = "Operations performed: %d\n"
)
