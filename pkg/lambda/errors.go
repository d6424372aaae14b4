package lambda

import (
	"errors"
	"fmt"
)

// Parse error kinds.
var (
	ErrEmptyInput           = errors.New("unexpected end of input")
	ErrMalformedBinder      = errors.New("malformed binder")
	ErrUnmatchedParen       = errors.New("expected ')'")
	ErrUnexpectedCloseParen = errors.New("unexpected ')'")
	ErrMalformedAddition    = errors.New("malformed addition")
)

// Evaluation error kinds.
var (
	ErrUnboundVariable = errors.New("unbound variable")
	ErrNotAFunction    = errors.New("not a function")
	ErrNotANumber      = errors.New("not a number")
	ErrUnsupportedTerm = errors.New("unsupported term")
	ErrStepLimit       = errors.New("step limit exceeded")
)

// ParseError reports where in the input the grammar stopped matching.
// Pos counts characters (runes) from the start of Input.
type ParseError struct {
	Kind  error
	Pos   int
	Input string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error at %d: %v", e.Pos, e.Kind)
}

func (e *ParseError) Unwrap() error {
	return e.Kind
}

// EvalError is returned by the evaluators. Name is set for unbound
// variables, Term holds the offending subterm when there is one.
type EvalError struct {
	Kind error
	Name string
	Term Term
}

func (e *EvalError) Error() string {
	switch {
	case e.Name != "":
		return fmt.Sprintf("%v %s", e.Kind, e.Name)
	case e.Term != nil:
		return fmt.Sprintf("%v: %s", e.Kind, e.Term)
	default:
		return e.Kind.Error()
	}
}

func (e *EvalError) Unwrap() error {
	return e.Kind
}
