package lambda

import (
	"errors"
	"testing"
)

func mustParse(t *testing.T, input string) Term {
	t.Helper()
	term, err := Parse(input)
	if err != nil {
		t.Fatalf("Parse(%q) error: %v", input, err)
	}
	return term
}

const (
	churchZero  = "λf.λx.x"
	churchSucc  = "λn.λf.λx.f (n f x)"
	churchPlus  = "λm.λn.((m (λn.(λf.(λy.f ((n f) y))))) n)"
	churchMul   = "λm.λn.λf.m (n f)"
	churchToInt = "λn.n (λn.(+ n 1)) 0"
)

// TestIdentityApplication: (λx.x) (λy.y) → λy.y
func TestIdentityApplication(t *testing.T) {
	got, err := EvalString("(λx.x) (λy.y)", true)
	if err != nil {
		t.Fatalf("EvalString error: %v", err)
	}
	if got != "λy.y" {
		t.Errorf("got %q, want %q", got, "λy.y")
	}
}

// TestArithmeticInBinder: (λx.+ x 5) 3 → 8
func TestArithmeticInBinder(t *testing.T) {
	got, err := EvalString("(λx.+ x 5) 3", true)
	if err != nil {
		t.Fatalf("EvalString error: %v", err)
	}
	if got != "8" {
		t.Errorf("got %q, want %q", got, "8")
	}
}

// TestSimplifyAddition: + 2 3 simplifies to 5.
func TestSimplifyAddition(t *testing.T) {
	if got := Display(Simplify(mustParse(t, "+ 2 3"))); got != "5" {
		t.Errorf("got %q, want %q", got, "5")
	}
}

// TestChurchMultiplication multiplies Church two by itself and converts
// the product to a native number.
func TestChurchMultiplication(t *testing.T) {
	one := "(" + churchSucc + ") (" + churchZero + ")"
	two := "(" + churchPlus + ") (" + one + ") (" + one + ")"
	product := "(" + churchMul + ") (" + two + ") (" + two + ")"
	src := "(" + churchToInt + ") (" + product + ")"

	got, err := EvalString(src, true)
	if err != nil {
		t.Fatalf("EvalString error: %v", err)
	}
	if got != "4" {
		t.Errorf("got %q, want %q", got, "4")
	}
}

// TestEvalSubstIsCallByName: a diverging argument that is never used does
// not prevent evaluation.
func TestEvalSubstIsCallByName(t *testing.T) {
	term := mustParse(t, "(λx.λy.y) ((λx.x x) (λx.x x))")
	got, err := EvalSubst(term)
	if err != nil {
		t.Fatalf("EvalSubst error: %v", err)
	}
	if want := (Abs{Arg: "y", Body: Var{Name: "y"}}); got != want {
		t.Errorf("got %v, want %v", got, want)
	}
}

// TestEvalSubstStopsAtHead: bodies of functions are left alone.
func TestEvalSubstStopsAtHead(t *testing.T) {
	term := mustParse(t, "λx.(λy.y) x")
	got, err := EvalSubst(term)
	if err != nil {
		t.Fatalf("EvalSubst error: %v", err)
	}
	if got != term {
		t.Errorf("got %v, want %v unchanged", got, term)
	}
}

// TestEvalSubstMatchesSubst: applying a function is the same as
// evaluating its body with the argument substituted.
func TestEvalSubstMatchesSubst(t *testing.T) {
	fn := Abs{Arg: "x", Body: Add{Left: Var{Name: "x"}, Right: Num{Value: 1}}}
	arg := Add{Left: Num{Value: 2}, Right: Num{Value: 3}}

	direct, err := EvalSubst(App{Fun: fn, Arg: arg})
	if err != nil {
		t.Fatalf("EvalSubst error: %v", err)
	}
	viaSubst, err := EvalSubst(Subst(fn.Body, fn.Arg, arg))
	if err != nil {
		t.Fatalf("EvalSubst error: %v", err)
	}
	if direct != viaSubst || direct != (Num{Value: 6}) {
		t.Errorf("direct %v, via subst %v, want 6", direct, viaSubst)
	}
}

// TestEvalSubstErrors covers the three evaluation failures.
func TestEvalSubstErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
	}{
		{"x", ErrUnboundVariable},
		{"(λx.y) 1", ErrUnboundVariable},
		{"5 5", ErrNotAFunction},
		{"(+ 1 2) 3", ErrNotAFunction},
		{"+ (λx.x) 1", ErrNotANumber},
		{"+ 1 (λx.x)", ErrNotANumber},
	}
	for _, tt := range tests {
		_, err := EvalSubst(mustParse(t, tt.input))
		if !errors.Is(err, tt.kind) {
			t.Errorf("EvalSubst(%q) error = %v, want %v", tt.input, err, tt.kind)
		}
	}
}

// TestUnboundVariableName: the error names the free variable.
func TestUnboundVariableName(t *testing.T) {
	_, err := EvalSubst(mustParse(t, "x"))
	var eerr *EvalError
	if !errors.As(err, &eerr) {
		t.Fatalf("error %v is not an *EvalError", err)
	}
	if eerr.Name != "x" {
		t.Errorf("Name = %q, want %q", eerr.Name, "x")
	}
	if eerr.Error() != "unbound variable x" {
		t.Errorf("Error() = %q", eerr.Error())
	}
}

// TestEvalEnv covers the call-by-value evaluator.
func TestEvalEnv(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"(λx.x) (λy.y)", "λy.y"},
		{"(λx.λy.y) (λa.a) (λb.b)", "λb.b"},
		{"λx.x", "λx.x"},
		{"(λf.f) (λx.λy.x)", "λx.λy.x"},
	}
	for _, tt := range tests {
		got, env, err := EvalEnv(mustParse(t, tt.input), nil)
		if err != nil {
			t.Errorf("EvalEnv(%q) error: %v", tt.input, err)
			continue
		}
		if Display(got) != tt.want {
			t.Errorf("EvalEnv(%q) = %s, want %s", tt.input, got, tt.want)
		}
		if env != nil {
			t.Errorf("EvalEnv(%q) leaked bindings %v", tt.input, env.Names())
		}
	}
}

// TestEvalEnvUsesEnvironment: free variables resolve through env.
func TestEvalEnvUsesEnvironment(t *testing.T) {
	id := Abs{Arg: "i", Body: Var{Name: "i"}}
	env := (*Env)(nil).Extend("y", id)

	got, out, err := EvalEnv(mustParse(t, "(λx.x) y"), env)
	if err != nil {
		t.Fatalf("EvalEnv error: %v", err)
	}
	if got != id {
		t.Errorf("got %v, want %v", got, id)
	}
	if out != env {
		t.Errorf("returned environment differs from the caller's")
	}
}

// TestEvalEnvHasNoClosures: functions do not remember their defining
// environment, so an outer parameter is gone once the inner function is
// applied.
func TestEvalEnvHasNoClosures(t *testing.T) {
	_, _, err := EvalEnv(mustParse(t, "(λx.λy.x) (λa.a) (λb.b)"), nil)
	if !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("error = %v, want %v", err, ErrUnboundVariable)
	}
}

// TestEvalEnvIsCallByValue: the argument is evaluated even when unused.
func TestEvalEnvIsCallByValue(t *testing.T) {
	_, _, err := EvalEnv(mustParse(t, "(λx.λy.y) z"), nil)
	if !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("error = %v, want %v", err, ErrUnboundVariable)
	}
}

// TestEvalEnvArgumentFirst: the argument of an application is evaluated
// before the function, so its failure is the one reported.
func TestEvalEnvArgumentFirst(t *testing.T) {
	_, _, err := EvalEnv(mustParse(t, "y z"), nil)
	var eerr *EvalError
	if !errors.As(err, &eerr) {
		t.Fatalf("error %v is not an *EvalError", err)
	}
	if eerr.Name != "z" {
		t.Errorf("unbound %q reported, want %q", eerr.Name, "z")
	}

	_, _, err = EvalEnv(mustParse(t, "5 x"), nil)
	if !errors.Is(err, ErrUnboundVariable) {
		t.Errorf("error = %v, want %v", err, ErrUnboundVariable)
	}
}

// TestEvalEnvErrors covers the remaining failures.
func TestEvalEnvErrors(t *testing.T) {
	tests := []struct {
		input string
		kind  error
	}{
		{"x", ErrUnboundVariable},
		{"+ 1 2", ErrUnsupportedTerm},
		{"(λx.x) 1", ErrUnsupportedTerm},
	}
	for _, tt := range tests {
		_, _, err := EvalEnv(mustParse(t, tt.input), nil)
		if !errors.Is(err, tt.kind) {
			t.Errorf("EvalEnv(%q) error = %v, want %v", tt.input, err, tt.kind)
		}
	}

	y := Var{Name: "y"}
	env := (*Env)(nil).Extend("y", y)
	if _, _, err := EvalEnv(mustParse(t, "y y"), env); !errors.Is(err, ErrNotAFunction) {
		t.Errorf("error = %v, want %v", err, ErrNotAFunction)
	}
}

// TestSimplify checks full normalization, including stuck terms.
func TestSimplify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"x", "x"},
		{"3", "3"},
		{"λz.(λx.x) z", "λz.z"},
		{"f ((λx.x) a)", "(f) (a)"},
		{"+ x 1", "+ (x) (1)"},
		{"+ (+ 1 2) (+ 3 4)", "10"},
		{"(λx.λy.x) a b", "a"},
		{"λf.(λx.f x) 2", "λf.(f) (2)"},
	}
	for _, tt := range tests {
		if got := Display(Simplify(mustParse(t, tt.input))); got != tt.want {
			t.Errorf("Simplify(%q) = %s, want %s", tt.input, got, tt.want)
		}
	}
}

// TestStepLimit: a reducer with MaxSteps stops on a term without normal
// form instead of recursing forever.
func TestStepLimit(t *testing.T) {
	omega := mustParse(t, "(λx.x x) (λx.x x)")

	r := NewReducer()
	r.MaxSteps = 50
	if _, err := r.EvalSubst(omega); !errors.Is(err, ErrStepLimit) {
		t.Errorf("EvalSubst error = %v, want %v", err, ErrStepLimit)
	}
	if got := r.GetStats().TotalReductions; got != 50 {
		t.Errorf("TotalReductions = %d, want 50", got)
	}

	r = NewReducer()
	r.MaxSteps = 50
	if _, err := r.Simplify(omega); !errors.Is(err, ErrStepLimit) {
		t.Errorf("Simplify error = %v, want %v", err, ErrStepLimit)
	}
}

// TestStats counts beta reductions and additions.
func TestStats(t *testing.T) {
	r := NewReducer()
	res, err := r.EvalSubst(mustParse(t, "(λx.+ x 5) 3"))
	if err != nil {
		t.Fatalf("EvalSubst error: %v", err)
	}
	if res != (Num{Value: 8}) {
		t.Errorf("got %v", res)
	}
	want := Stats{TotalReductions: 2, Beta: 1, Additions: 1}
	if got := r.GetStats(); got != want {
		t.Errorf("stats = %+v, want %+v", got, want)
	}
}

// TestTrace records reductions in order and respects the capacity.
func TestTrace(t *testing.T) {
	r := NewReducer()
	if r.TraceSnapshot() != nil {
		t.Errorf("trace recorded while disabled")
	}
	r.EnableTrace(1)
	if _, err := r.EvalSubst(mustParse(t, "(λx.+ x 5) 3")); err != nil {
		t.Fatalf("EvalSubst error: %v", err)
	}

	events := r.TraceSnapshot()
	if len(events) != 1 {
		t.Fatalf("got %d events, want 1", len(events))
	}
	if events[0].Rule != RuleBeta || events[0].Step != 0 || events[0].Redex != "(λx.+ (x) (5)) (3)" {
		t.Errorf("event = %+v", events[0])
	}

	r.DisableTrace()
	if r.TraceSnapshot() != nil {
		t.Errorf("trace returned after DisableTrace")
	}
}

// TestRunStrategies drives the pipeline with each strategy.
func TestRunStrategies(t *testing.T) {
	tests := []struct {
		src      string
		strategy Strategy
		simplify bool
		want     string
	}{
		{"(λx.λy.(λz.z) y) a", StrategySubst, false, "λy.(λz.z) (y)"},
		{"(λx.λy.(λz.z) y) a", StrategySubst, true, "λy.y"},
		{"(λx.λy.(λz.z) y) (λa.a)", StrategyEnv, false, "λy.(λz.z) (y)"},
		{"(λx.λy.(λz.z) y) (λa.a)", StrategyEnv, true, "λy.y"},
		{"λy.(λz.z) y", StrategySimplify, false, "λy.y"},
	}
	for _, tt := range tests {
		res, err := NewReducer().Run(tt.src, tt.strategy, tt.simplify)
		if err != nil {
			t.Errorf("Run(%q, %v) error: %v", tt.src, tt.strategy, err)
			continue
		}
		if got := Display(res); got != tt.want {
			t.Errorf("Run(%q, %v, %v) = %s, want %s", tt.src, tt.strategy, tt.simplify, got, tt.want)
		}
	}
}

func TestParseStrategy(t *testing.T) {
	for _, s := range []Strategy{StrategySubst, StrategyEnv, StrategySimplify} {
		got, err := ParseStrategy(s.String())
		if err != nil || got != s {
			t.Errorf("ParseStrategy(%q) = %v, %v", s.String(), got, err)
		}
	}
	if _, err := ParseStrategy("lazy"); err == nil {
		t.Errorf("expected error for unknown strategy")
	}
}
