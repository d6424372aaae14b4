package lambda

import (
	"fmt"
	"os"
)

var lambdaDebug = os.Getenv("LAMBDA_DEBUG") != ""

// Stats holds reduction statistics.
type Stats struct {
	TotalReductions uint64
	Beta            uint64
	Additions       uint64
	Lookups         uint64
}

// Reducer runs the evaluators and keeps statistics about the reductions it
// performs. The zero value is ready to use and never stops on its own.
//
// None of the strategies has a termination guarantee: a term without a
// normal form recurses until the stack is exhausted unless MaxSteps is set.
type Reducer struct {
	// MaxSteps bounds the number of reductions; 0 means unbounded.
	MaxSteps uint64

	stats Stats

	traceBuf []TraceEvent
	traceOn  bool
}

func NewReducer() *Reducer {
	return &Reducer{}
}

func (r *Reducer) GetStats() Stats {
	return r.stats
}

// step accounts for one reduction of redex by rule.
func (r *Reducer) step(rule RuleKind, redex Term) error {
	if r.MaxSteps > 0 && r.stats.TotalReductions >= r.MaxSteps {
		return &EvalError{Kind: ErrStepLimit, Term: redex}
	}
	r.stats.TotalReductions++
	switch rule {
	case RuleBeta:
		r.stats.Beta++
	case RuleAdd:
		r.stats.Additions++
	case RuleLookup:
		r.stats.Lookups++
	}
	r.recordTrace(rule, redex)
	if lambdaDebug {
		fmt.Fprintf(os.Stderr, "step %d: %v %s\n", r.stats.TotalReductions, rule, redex)
	}
	return nil
}

func (r *Reducer) subst(body Term, name string, arg Term) Term {
	if lambdaDebug {
		if captured := Captures(body, name, arg); len(captured) > 0 {
			fmt.Fprintf(os.Stderr, "subst %s: captures %v in %s\n", name, captured, body)
		}
	}
	return Subst(body, name, arg)
}

// EvalEnv evaluates t call-by-value, binding parameters in env. The
// argument of an application is evaluated before the function. Functions
// are values and do not capture their environment.
//
// The returned environment is the one the caller's scope ends up with;
// bindings made for a function body do not leak out of it.
func (r *Reducer) EvalEnv(t Term, env *Env) (Term, *Env, error) {
	switch t := t.(type) {
	case Var:
		v, ok := env.Lookup(t.Name)
		if !ok {
			return nil, env, &EvalError{Kind: ErrUnboundVariable, Name: t.Name}
		}
		if err := r.step(RuleLookup, t); err != nil {
			return nil, env, err
		}
		return v, env, nil

	case Abs:
		return t, env, nil

	case App:
		arg, env, err := r.EvalEnv(t.Arg, env)
		if err != nil {
			return nil, env, err
		}
		fun, env, err := r.EvalEnv(t.Fun, env)
		if err != nil {
			return nil, env, err
		}
		abs, ok := fun.(Abs)
		if !ok {
			return nil, env, &EvalError{Kind: ErrNotAFunction, Term: fun}
		}
		if err := r.step(RuleBeta, t); err != nil {
			return nil, env, err
		}
		res, _, err := r.EvalEnv(abs.Body, env.Extend(abs.Arg, arg))
		if err != nil {
			return nil, env, err
		}
		return res, env, nil

	case Num, Add:
		return nil, env, &EvalError{Kind: ErrUnsupportedTerm, Term: t}

	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}

// EvalSubst reduces t to weak head normal form in normal order: arguments
// are substituted unevaluated. Addition evaluates both operands.
func (r *Reducer) EvalSubst(t Term) (Term, error) {
	switch t := t.(type) {
	case Var:
		// every bound variable has been substituted away by now
		return nil, &EvalError{Kind: ErrUnboundVariable, Name: t.Name}

	case Abs, Num:
		return t, nil

	case App:
		fun, err := r.EvalSubst(t.Fun)
		if err != nil {
			return nil, err
		}
		abs, ok := fun.(Abs)
		if !ok {
			return nil, &EvalError{Kind: ErrNotAFunction, Term: fun}
		}
		if err := r.step(RuleBeta, t); err != nil {
			return nil, err
		}
		return r.EvalSubst(r.subst(abs.Body, abs.Arg, t.Arg))

	case Add:
		left, err := r.EvalSubst(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.EvalSubst(t.Right)
		if err != nil {
			return nil, err
		}
		l, ok := left.(Num)
		if !ok {
			return nil, &EvalError{Kind: ErrNotANumber, Term: left}
		}
		rn, ok := right.(Num)
		if !ok {
			return nil, &EvalError{Kind: ErrNotANumber, Term: right}
		}
		if err := r.step(RuleAdd, t); err != nil {
			return nil, err
		}
		return Num{Value: l.Value + rn.Value}, nil

	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}

// Simplify reduces every redex in t, including those under binders and in
// argument position. Stuck applications and additions are rebuilt from
// their simplified parts. The only error it returns is ErrStepLimit.
func (r *Reducer) Simplify(t Term) (Term, error) {
	switch t := t.(type) {
	case Var, Num:
		return t, nil

	case Abs:
		body, err := r.Simplify(t.Body)
		if err != nil {
			return nil, err
		}
		return Abs{Arg: t.Arg, Body: body}, nil

	case App:
		fun, err := r.Simplify(t.Fun)
		if err != nil {
			return nil, err
		}
		arg, err := r.Simplify(t.Arg)
		if err != nil {
			return nil, err
		}
		abs, ok := fun.(Abs)
		if !ok {
			return App{Fun: fun, Arg: arg}, nil
		}
		if err := r.step(RuleBeta, App{Fun: fun, Arg: arg}); err != nil {
			return nil, err
		}
		return r.Simplify(r.subst(abs.Body, abs.Arg, arg))

	case Add:
		left, err := r.Simplify(t.Left)
		if err != nil {
			return nil, err
		}
		right, err := r.Simplify(t.Right)
		if err != nil {
			return nil, err
		}
		l, lok := left.(Num)
		rn, rok := right.(Num)
		if !lok || !rok {
			return Add{Left: left, Right: right}, nil
		}
		if err := r.step(RuleAdd, Add{Left: left, Right: right}); err != nil {
			return nil, err
		}
		return Num{Value: l.Value + rn.Value}, nil

	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}

// EvalEnv evaluates t with an unbounded reducer.
func EvalEnv(t Term, env *Env) (Term, *Env, error) {
	return NewReducer().EvalEnv(t, env)
}

// EvalSubst evaluates t with an unbounded reducer.
func EvalSubst(t Term) (Term, error) {
	return NewReducer().EvalSubst(t)
}

// Simplify fully normalizes t. It does not return for terms without a
// normal form.
func Simplify(t Term) Term {
	res, err := NewReducer().Simplify(t)
	if err != nil {
		// unreachable without a step limit
		panic(err)
	}
	return res
}
