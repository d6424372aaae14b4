package lambda

import "fmt"

// Strategy selects how Run reduces a parsed term.
type Strategy int

const (
	// StrategySubst is normal-order evaluation by substitution (EvalSubst).
	StrategySubst Strategy = iota
	// StrategyEnv is call-by-value evaluation with an environment (EvalEnv).
	StrategyEnv
	// StrategySimplify skips evaluation and fully normalizes the term.
	StrategySimplify
)

func (s Strategy) String() string {
	switch s {
	case StrategySubst:
		return "subst"
	case StrategyEnv:
		return "env"
	case StrategySimplify:
		return "simplify"
	default:
		return fmt.Sprintf("Strategy(%d)", int(s))
	}
}

func ParseStrategy(name string) (Strategy, error) {
	switch name {
	case "", "subst":
		return StrategySubst, nil
	case "env":
		return StrategyEnv, nil
	case "simplify":
		return StrategySimplify, nil
	default:
		return 0, fmt.Errorf("unknown strategy %q", name)
	}
}

// Run parses src, reduces it with s and, when simplify is set, fully
// normalizes the result. Any error stops the pipeline.
func (r *Reducer) Run(src string, s Strategy, simplify bool) (Term, error) {
	term, err := Parse(src)
	if err != nil {
		return nil, err
	}

	switch s {
	case StrategySubst:
		term, err = r.EvalSubst(term)
	case StrategyEnv:
		term, _, err = r.EvalEnv(term, nil)
	case StrategySimplify:
		return r.Simplify(term)
	default:
		return nil, fmt.Errorf("unknown strategy %v", s)
	}
	if err != nil {
		return nil, err
	}

	if simplify {
		return r.Simplify(term)
	}
	return term, nil
}

// EvalString evaluates src by substitution and renders the result,
// simplifying it first when simplify is set.
func EvalString(src string, simplify bool) (string, error) {
	res, err := NewReducer().Run(src, StrategySubst, simplify)
	if err != nil {
		return "", err
	}
	return Display(res), nil
}
