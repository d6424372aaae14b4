// Package casefile loads reduction cases from YAML and checks them
// against the evaluators.
package casefile

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"

	"github.com/vic/lambdacalc/pkg/lambda"
	"github.com/vic/lambdacalc/pkg/prelude"
)

// errorKinds maps the names usable in a case's `error` field.
var errorKinds = map[string]error{
	"empty_input":            lambda.ErrEmptyInput,
	"malformed_binder":       lambda.ErrMalformedBinder,
	"unmatched_paren":        lambda.ErrUnmatchedParen,
	"unexpected_close_paren": lambda.ErrUnexpectedCloseParen,
	"malformed_addition":     lambda.ErrMalformedAddition,
	"unbound_variable":       lambda.ErrUnboundVariable,
	"not_a_function":         lambda.ErrNotAFunction,
	"not_a_number":           lambda.ErrNotANumber,
	"unsupported_term":       lambda.ErrUnsupportedTerm,
	"step_limit":             lambda.ErrStepLimit,
}

// Case is one input together with its expected rendering or error kind.
// A missing Simplify means true.
type Case struct {
	Name     string `yaml:"name"`
	Input    string `yaml:"input"`
	Strategy string `yaml:"strategy"`
	Simplify *bool  `yaml:"simplify"`
	MaxSteps uint64 `yaml:"max_steps"`
	Output   string `yaml:"output"`
	Error    string `yaml:"error"`
}

type document struct {
	Cases []Case `yaml:"cases"`
}

// ValidationError aggregates problems found while loading a case file.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	b.WriteString("casefile validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n  - ")
		b.WriteString(issue)
	}
	return b.String()
}

func Load(r io.Reader) ([]Case, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("casefile: %w", err)
	}

	var issues []string
	for i, tc := range doc.Cases {
		label := tc.Name
		if label == "" {
			label = fmt.Sprintf("case %d", i)
		}
		if _, err := lambda.ParseStrategy(tc.Strategy); err != nil {
			issues = append(issues, fmt.Sprintf("%s: %v", label, err))
		}
		if tc.Error != "" {
			if _, ok := errorKinds[tc.Error]; !ok {
				issues = append(issues, fmt.Sprintf("%s: unknown error kind %q (want one of %s)", label, tc.Error, strings.Join(ErrorKinds(), ", ")))
			}
		}
		if tc.Error != "" && tc.Output != "" {
			issues = append(issues, fmt.Sprintf("%s: output and error are mutually exclusive", label))
		}
	}
	names := lo.FilterMap(doc.Cases, func(tc Case, _ int) (string, bool) { return tc.Name, tc.Name != "" })
	for _, dup := range lo.FindDuplicates(names) {
		issues = append(issues, fmt.Sprintf("duplicate case name %q", dup))
	}
	if len(issues) > 0 {
		return nil, &ValidationError{Issues: issues}
	}
	return doc.Cases, nil
}

func LoadFile(path string) ([]Case, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// ErrorKinds lists the accepted values of a case's error field.
func ErrorKinds() []string {
	kinds := lo.Keys(errorKinds)
	slices.Sort(kinds)
	return kinds
}

// Result is the outcome of checking one case.
type Result struct {
	Case  Case
	Got   string
	Err   error
	Stats lambda.Stats
	Pass  bool
}

// Checker runs cases, expanding prelude references in their input first.
type Checker struct {
	Prelude *prelude.Prelude
}

func (c *Checker) Check(tc Case) Result {
	res := Result{Case: tc}

	src := tc.Input
	if c.Prelude != nil {
		expanded, err := c.Prelude.Expand(src)
		if err != nil {
			res.Err = err
			return res
		}
		src = expanded
	}

	strategy, err := lambda.ParseStrategy(tc.Strategy)
	if err != nil {
		res.Err = err
		return res
	}
	simplify := tc.Simplify == nil || *tc.Simplify

	r := lambda.NewReducer()
	r.MaxSteps = tc.MaxSteps
	term, err := r.Run(src, strategy, simplify)
	res.Stats = r.GetStats()
	res.Err = err
	if err == nil {
		res.Got = lambda.Display(term)
	}

	if tc.Error != "" {
		res.Pass = err != nil && errors.Is(err, errorKinds[tc.Error])
	} else {
		res.Pass = err == nil && res.Got == tc.Output
	}
	return res
}

func (c *Checker) CheckAll(cases []Case) []Result {
	return lo.Map(cases, func(tc Case, _ int) Result {
		return c.Check(tc)
	})
}
