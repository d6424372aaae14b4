// Package prelude holds named lambda terms and expands references to them.
//
// A reference is written {name} inside source text and expands to the
// definition wrapped in parentheses, so definitions compose the way the
// grammar requires compound operands to be written.
package prelude

import (
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
	"gopkg.in/yaml.v3"
)

var (
	ErrUnknownName = errors.New("prelude: unknown name")
	ErrCycle       = errors.New("prelude: definition refers to itself")
	ErrBadName     = errors.New("prelude: invalid name")
)

//go:embed prelude.yaml
var defaultSource string

var (
	refPattern  = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)
	namePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)
)

// Prelude is a set of named definitions.
type Prelude struct {
	Definitions map[string]string `yaml:"definitions"`
}

// Load decodes a YAML document of the form `definitions: {name: source}`.
func Load(r io.Reader) (*Prelude, error) {
	var p Prelude
	if err := yaml.NewDecoder(r).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("prelude: %w", err)
	}
	if p.Definitions == nil {
		p.Definitions = make(map[string]string)
	}
	for name := range p.Definitions {
		if !namePattern.MatchString(name) {
			return nil, fmt.Errorf("%w: %q", ErrBadName, name)
		}
	}
	return &p, nil
}

func LoadFile(path string) (*Prelude, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Load(f)
}

// Default returns the embedded prelude.
func Default() *Prelude {
	p, err := Load(strings.NewReader(defaultSource))
	if err != nil {
		panic(err)
	}
	return p
}

// Names returns the defined names in sorted order.
func (p *Prelude) Names() []string {
	names := lo.Keys(p.Definitions)
	slices.Sort(names)
	return names
}

func (p *Prelude) Lookup(name string) (string, bool) {
	src, ok := p.Definitions[name]
	return src, ok
}

// Merge returns a prelude with the definitions of p and other; other wins
// on conflicts. A nil other contributes nothing.
func (p *Prelude) Merge(other *Prelude) *Prelude {
	if other == nil {
		return &Prelude{Definitions: lo.Assign(p.Definitions)}
	}
	return &Prelude{Definitions: lo.Assign(p.Definitions, other.Definitions)}
}

// Expand replaces every {name} in src by its expanded definition.
func (p *Prelude) Expand(src string) (string, error) {
	return p.expand(src, nil)
}

func (p *Prelude) expand(src string, stack []string) (string, error) {
	var firstErr error
	out := refPattern.ReplaceAllStringFunc(src, func(ref string) string {
		if firstErr != nil {
			return ref
		}
		name := ref[1 : len(ref)-1]
		if slices.Contains(stack, name) {
			firstErr = fmt.Errorf("%w: %s", ErrCycle, strings.Join(append(stack, name), " -> "))
			return ref
		}
		def, ok := p.Definitions[name]
		if !ok {
			firstErr = fmt.Errorf("%w: %s", ErrUnknownName, name)
			return ref
		}
		expanded, err := p.expand(def, append(slices.Clone(stack), name))
		if err != nil {
			firstErr = err
			return ref
		}
		return "(" + expanded + ")"
	})
	if firstErr != nil {
		return "", firstErr
	}
	return out, nil
}
