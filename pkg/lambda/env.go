package lambda

import "github.com/samber/lo"

// Env is a persistent environment for the environment-passing evaluator.
// Extend never modifies the receiver, so several evaluation branches can
// share the same outer environment. The nil *Env is the empty environment.
type Env struct {
	name  string
	value Term
	next  *Env
}

// Extend returns a new environment in which name is bound to value.
func (e *Env) Extend(name string, value Term) *Env {
	return &Env{name: name, value: value, next: e}
}

// Lookup finds the innermost binding of name.
func (e *Env) Lookup(name string) (Term, bool) {
	for cur := e; cur != nil; cur = cur.next {
		if cur.name == name {
			return cur.value, true
		}
	}
	return nil, false
}

// Names lists the visible names, innermost first.
func (e *Env) Names() []string {
	var names []string
	for cur := e; cur != nil; cur = cur.next {
		names = append(names, cur.name)
	}
	return lo.Uniq(names)
}
