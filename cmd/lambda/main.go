package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/vic/lambdacalc/pkg/casefile"
	"github.com/vic/lambdacalc/pkg/lambda"
	"github.com/vic/lambdacalc/pkg/prelude"
)

var (
	expr        = flag.String("e", "", "evaluate `term` instead of reading a file or stdin")
	strategy    = flag.String("strategy", "subst", "reduction strategy: subst, env or simplify")
	noSimplify  = flag.Bool("no-simplify", false, "print the evaluator's result without normalizing it")
	maxSteps    = flag.Uint64("max-steps", 0, "stop after this many reductions (0 = unbounded)")
	preludeFile = flag.String("prelude", "", "YAML file with extra {name} definitions")
	showStats   = flag.Bool("stats", false, "print reduction statistics to stderr")
	traceLen    = flag.Int("trace", 0, "print the first `n` reductions to stderr")
	checkFile   = flag.String("check", "", "run the cases of a YAML case file and exit")
)

func usage() {
	fmt.Fprint(os.Stderr, "usage: lambda [flags] [file]\n\n")
	fmt.Fprint(os.Stderr, "lambda evaluates a term of the untyped lambda calculus with integers and addition.\n\n")
	flag.PrintDefaults()
}

func main() {
	flag.Usage = usage
	flag.Parse()

	defs := prelude.Default()
	if *preludeFile != "" {
		extra, err := prelude.LoadFile(*preludeFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading prelude: %v\n", err)
			os.Exit(1)
		}
		defs = defs.Merge(extra)
	}

	if *checkFile != "" {
		os.Exit(runCheck(*checkFile, defs))
	}

	s, err := lambda.ParseStrategy(*strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(2)
	}

	src, err := readInput()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading input: %v\n", err)
		os.Exit(1)
	}

	src, err = defs.Expand(src)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if rest := trailingInput(src); rest != "" {
		fmt.Fprintf(os.Stderr, "Warning: ignoring input after the term: %q\n", rest)
	}

	r := lambda.NewReducer()
	r.MaxSteps = *maxSteps
	if *traceLen > 0 {
		r.EnableTrace(*traceLen)
	}

	start := time.Now()
	res, err := r.Run(src, s, !*noSimplify)
	elapsed := time.Since(start)

	if *traceLen > 0 {
		for _, ev := range r.TraceSnapshot() {
			fmt.Fprintf(os.Stderr, "%6d %-6v %s\n", ev.Step, ev.Rule, ev.Redex)
		}
	}
	if *showStats {
		printStats(r.GetStats(), elapsed)
	}

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(lambda.Display(res))
}

func readInput() (string, error) {
	if *expr != "" {
		return *expr, nil
	}

	var input []byte
	var err error
	if flag.NArg() > 0 {
		input, err = os.ReadFile(flag.Arg(0))
	} else {
		input, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		return "", err
	}
	// a trailing newline from a file or a shell pipe is not part of the term
	for len(input) > 0 && (input[len(input)-1] == '\n' || input[len(input)-1] == '\r') {
		input = input[:len(input)-1]
	}
	return string(input), nil
}

// trailingInput returns what the parser leaves unconsumed after the first
// term of src. Parse errors are left for Run to report.
func trailingInput(src string) string {
	_, rest, err := lambda.ParsePrefix(src, 0)
	if err != nil {
		return ""
	}
	return rest
}

func runCheck(path string, defs *prelude.Prelude) int {
	cases, err := casefile.LoadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	c := &casefile.Checker{Prelude: defs}
	failed := 0
	for _, res := range c.CheckAll(cases) {
		if res.Pass {
			fmt.Printf("ok   %s\n", res.Case.Name)
			continue
		}
		failed++
		fmt.Printf("FAIL %s\n", res.Case.Name)
		if res.Err != nil {
			fmt.Printf("     error: %v\n", res.Err)
		} else {
			fmt.Printf("     got:   %s\n", res.Got)
		}
		if res.Case.Error != "" {
			fmt.Printf("     want error: %s\n", res.Case.Error)
		} else {
			fmt.Printf("     want:  %s\n", res.Case.Output)
		}
	}
	fmt.Printf("%d/%d passed\n", len(cases)-failed, len(cases))
	if failed > 0 {
		return 1
	}
	return 0
}

func printStats(stats lambda.Stats, elapsed time.Duration) {
	seconds := elapsed.Seconds()

	fmt.Fprintf(os.Stderr, "\nStats:\n")
	fmt.Fprintf(os.Stderr, "Time: %v\n", elapsed)
	fmt.Fprintf(os.Stderr, "Total Reductions: %d", stats.TotalReductions)
	if seconds > 0 {
		fmt.Fprintf(os.Stderr, " (%.2f ops/sec)", float64(stats.TotalReductions)/seconds)
	}
	fmt.Fprintf(os.Stderr, "\n")

	fmt.Fprintf(os.Stderr, "\nBreakdown:\n")
	fmt.Fprintf(os.Stderr, "  Beta:      %6d\n", stats.Beta)
	fmt.Fprintf(os.Stderr, "  Additions: %6d\n", stats.Additions)
	if stats.Lookups > 0 {
		fmt.Fprintf(os.Stderr, "  Lookups:   %6d\n", stats.Lookups)
	}
}
