package lambda

import (
	"fmt"
	"strconv"
)

// Term represents a lambda calculus term extended with integers and addition.
// The set of implementations is closed: Var, Abs, App, Num and Add.
type Term interface {
	String() string
	term()
}

// Var represents a variable usage. Name is always a single character.
type Var struct {
	Name string
}

func (v Var) String() string {
	return v.Name
}

// Abs represents an abstraction (lambda).
type Abs struct {
	Arg  string
	Body Term
}

func (a Abs) String() string {
	return fmt.Sprintf("λ%s.%s", a.Arg, a.Body)
}

// App represents an application.
type App struct {
	Fun Term
	Arg Term
}

func (a App) String() string {
	return fmt.Sprintf("(%s) (%s)", a.Fun, a.Arg)
}

// Num is an integer literal.
type Num struct {
	Value int64
}

func (n Num) String() string {
	return strconv.FormatInt(n.Value, 10)
}

// Add is the binary addition primitive.
type Add struct {
	Left  Term
	Right Term
}

func (a Add) String() string {
	return fmt.Sprintf("+ (%s) (%s)", a.Left, a.Right)
}

func (Var) term() {}
func (Abs) term() {}
func (App) term() {}
func (Num) term() {}
func (Add) term() {}

// Display renders a term in its canonical textual form. Terms built by the
// parser render to text that parses back into an equal term. Numbers of
// two or more digits, which only arise from addition, do not: the grammar
// reads one digit per literal.
func Display(t Term) string {
	switch t := t.(type) {
	case Var, Abs, App, Num, Add:
		return t.String()
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}
