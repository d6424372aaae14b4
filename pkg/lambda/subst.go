package lambda

import (
	"fmt"

	"github.com/samber/lo"
	"golang.org/x/exp/slices"
)

// Subst replaces the free occurrences of name in t with replacement.
//
// Bound variables are not renamed: a free variable of replacement that
// meets a binder of the same name inside t gets captured by it. Captures
// reports when that happens.
func Subst(t Term, name string, replacement Term) Term {
	switch t := t.(type) {
	case Var:
		if t.Name == name {
			return replacement
		}
		return t
	case Num:
		return t
	case Abs:
		if t.Arg == name {
			// shadowed
			return t
		}
		return Abs{Arg: t.Arg, Body: Subst(t.Body, name, replacement)}
	case App:
		return App{Fun: Subst(t.Fun, name, replacement), Arg: Subst(t.Arg, name, replacement)}
	case Add:
		return Add{Left: Subst(t.Left, name, replacement), Right: Subst(t.Right, name, replacement)}
	default:
		panic(fmt.Sprintf("lambda: unknown term type %T", t))
	}
}

// FreeVars returns the sorted names occurring free in t.
func FreeVars(t Term) []string {
	var names []string
	var walk func(t Term, bound []string)
	walk = func(t Term, bound []string) {
		switch t := t.(type) {
		case Var:
			if !slices.Contains(bound, t.Name) {
				names = append(names, t.Name)
			}
		case Num:
		case Abs:
			walk(t.Body, append(slices.Clone(bound), t.Arg))
		case App:
			walk(t.Fun, bound)
			walk(t.Arg, bound)
		case Add:
			walk(t.Left, bound)
			walk(t.Right, bound)
		default:
			panic(fmt.Sprintf("lambda: unknown term type %T", t))
		}
	}
	walk(t, nil)

	names = lo.Uniq(names)
	slices.Sort(names)
	return names
}

// Captures returns the free variables of replacement that Subst(t, name,
// replacement) would bind to a binder of t.
func Captures(t Term, name string, replacement Term) []string {
	free := FreeVars(replacement)
	if len(free) == 0 {
		return nil
	}

	var binders []string
	var walk func(t Term, scope []string)
	walk = func(t Term, scope []string) {
		switch t := t.(type) {
		case Var:
			if t.Name == name {
				binders = append(binders, scope...)
			}
		case Num:
		case Abs:
			if t.Arg == name {
				return
			}
			walk(t.Body, append(slices.Clone(scope), t.Arg))
		case App:
			walk(t.Fun, scope)
			walk(t.Arg, scope)
		case Add:
			walk(t.Left, scope)
			walk(t.Right, scope)
		default:
			panic(fmt.Sprintf("lambda: unknown term type %T", t))
		}
	}
	walk(t, nil)

	captured := lo.Uniq(lo.Intersect(free, binders))
	slices.Sort(captured)
	return captured
}
