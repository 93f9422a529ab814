package calculator

import (
	"errors"
	"strconv"
)

// ErrorCode identifies a calculation failure category. The numeric values
// are stable: they are stored, serialized, and reported to clients
// unchanged.
type ErrorCode int

const (
	Success ErrorCode = iota
	DivisionByZero
	InvalidOperator
	StackUnderflow
	MemoryError
	UndefinedVariable
	StackMaximum
	ExprLengthMaximum
	FactorialError
	SquareRootInvalidOperator
	LogError
	LnError
	TanInvalidOperator
	InvalidTrigOperator
)

// String returns the human-readable message for the code.
func (c ErrorCode) String() string {
	switch c {
	case Success:
		return "Success"
	case DivisionByZero:
		return "Division by zero"
	case InvalidOperator:
		return "Invalid operator"
	case StackUnderflow:
		return "Stack underflow - invalid expression"
	case MemoryError:
		return "Memory error"
	case UndefinedVariable:
		return "Undefined variable in expression"
	case StackMaximum:
		return "Stack maximum exceeded"
	case ExprLengthMaximum:
		return "Expression length maximum exceeded"
	case FactorialError:
		return "Factorial error"
	case SquareRootInvalidOperator:
		return "Square root error"
	case LogError:
		return "Log error"
	case LnError:
		return "Natural logarithm error"
	case TanInvalidOperator:
		return "Invalid operator for tangent"
	case InvalidTrigOperator:
		return "Invalid trigonometric operator"
	}
	return "Unknown error"
}

// Error is the interface satisfied by every error this package produces.
type Error interface {
	error
	// Code returns the category of the error.
	Code() ErrorCode
}

// CodeOf returns the category of an error from this package. It returns
// Success for nil and -1 for errors from elsewhere.
func CodeOf(err error) ErrorCode {
	if err == nil {
		return Success
	}
	var known Error
	if errors.As(err, &known) {
		return known.Code()
	}
	return -1
}

// OperatorError is an error from a token dispatched as an operator that
// the engine does not implement.
type OperatorError struct {
	// Operator is the text of the operator.
	Operator string
}

func (err *OperatorError) Error() string {
	return "unknown operator " + strconv.Quote(err.Operator)
}

// Code returns InvalidOperator.
func (err *OperatorError) Code() ErrorCode {
	return InvalidOperator
}

// CallError is an error from applying an operator to the wrong number of
// operands.
type CallError struct {
	// Func is the name of the operator.
	Func string
	// Len is the number of operands it was given.
	Len int
}

func (err *CallError) Error() string {
	return "cannot apply " + strconv.Quote(err.Func) + " to " + strconv.Itoa(err.Len) + " operands"
}

// Code returns InvalidOperator.
func (err *CallError) Code() ErrorCode {
	return InvalidOperator
}

// UnderflowError is an error from an expression exhausting the operand
// stack, or finishing with it unbalanced.
type UnderflowError struct {
	// Op is the binary operator that wanted two operands. It is empty
	// when the expression finished with the stack unbalanced.
	Op string
	// Left is the number of values that were on the stack.
	Left int
}

func (err *UnderflowError) Error() string {
	if err.Op != "" {
		return "not enough operands for " + strconv.Quote(err.Op)
	}
	if err.Left == 0 {
		return "empty expression"
	}
	return "unbalanced expression: " + strconv.Itoa(err.Left) + " values left"
}

// Code returns StackUnderflow.
func (err *UnderflowError) Code() ErrorCode {
	return StackUnderflow
}

// OverflowError is an error from pushing past the operand stack bound.
type OverflowError struct {
	// Limit is the stack bound.
	Limit int
}

func (err *OverflowError) Error() string {
	return "stack limit of " + strconv.Itoa(err.Limit) + " values exceeded"
}

// Code returns StackMaximum.
func (err *OverflowError) Code() ErrorCode {
	return StackMaximum
}

// LengthError is an error from an expression with too many tokens.
type LengthError struct {
	// Length is the number of tokens in the expression.
	Length int
	// Limit is the configured bound.
	Limit int
}

func (err *LengthError) Error() string {
	return "expression length " + strconv.Itoa(err.Length) + " exceeds " + strconv.Itoa(err.Limit)
}

// Code returns ExprLengthMaximum.
func (err *LengthError) Code() ErrorCode {
	return ExprLengthMaximum
}

// NameError is an error from an undefined variable in an expression.
type NameError struct {
	// Name is the name of the variable.
	Name string
}

func (err *NameError) Error() string {
	return "undefined variable: " + strconv.Quote(err.Name)
}

// Code returns UndefinedVariable.
func (err *NameError) Code() ErrorCode {
	return UndefinedVariable
}

// NoExpressionError is an error from evaluating or converting a nil token
// sequence.
type NoExpressionError struct{}

func (err *NoExpressionError) Error() string {
	return "no expression"
}

// Code returns MemoryError.
func (err *NoExpressionError) Code() ErrorCode {
	return MemoryError
}

// DomainError is an error from attempting to evaluate a function outside
// its domain.
type DomainError struct {
	// X is the operand.
	X float64
	// Func is the name of the function or operator.
	Func string
}

func (err *DomainError) Error() string {
	return strconv.FormatFloat(err.X, 'g', -1, 64) + " outside domain of " + err.Func
}

// Code returns the category matching the function: DivisionByZero for /,
// FactorialError for !, and so on through the named functions.
func (err *DomainError) Code() ErrorCode {
	switch err.Func {
	case "/":
		return DivisionByZero
	case "!":
		return FactorialError
	case "sqrt":
		return SquareRootInvalidOperator
	case "log":
		return LogError
	case "ln":
		return LnError
	case "tan":
		return TanInvalidOperator
	case "arcsin", "arccos":
		return InvalidTrigOperator
	}
	return InvalidOperator
}

var (
	_ Error = (*OperatorError)(nil)
	_ Error = (*CallError)(nil)
	_ Error = (*UnderflowError)(nil)
	_ Error = (*OverflowError)(nil)
	_ Error = (*LengthError)(nil)
	_ Error = (*NameError)(nil)
	_ Error = (*NoExpressionError)(nil)
	_ Error = (*DomainError)(nil)
)
