// Package expr compiles JavaScript predicate expressions for grid queries.
// An expression is evaluated once per candidate entity with the entity bound
// to a single variable (for example `machine.current_jobs < machine.max_jobs`
// with binding "machine") and must yield a boolean.
package expr

import (
	"fmt"

	"github.com/dop251/goja"
)

// Predicate is a compiled query expression. A Predicate owns one JavaScript
// runtime and is not safe for concurrent use; compile one per query.
type Predicate struct {
	binding string
	prog    *goja.Program
	vm      *goja.Runtime
}

// Compile parses src as a JavaScript expression whose entity variable is
// named binding. Compilation errors are reported up front, before any
// entity is evaluated.
func Compile(binding, src string) (*Predicate, error) {
	if src == "" {
		return nil, fmt.Errorf("expr: empty expression")
	}
	// Wrapped in parens so object literals and other statement-ambiguous
	// forms parse as an expression.
	prog, err := goja.Compile("query", "("+src+")", true)
	if err != nil {
		return nil, fmt.Errorf("expr: compile %q: %w", src, err)
	}
	return &Predicate{
		binding: binding,
		prog:    prog,
		vm:      goja.New(),
	}, nil
}

// Match evaluates the predicate against one entity, exposed to the
// expression as the binding variable. A runtime error or a non-boolean
// result is an explicit failure, never a silent non-match.
func (p *Predicate) Match(entity map[string]any) (bool, error) {
	if err := p.vm.Set(p.binding, entity); err != nil {
		return false, fmt.Errorf("expr: bind %s: %w", p.binding, err)
	}
	v, err := p.vm.RunProgram(p.prog)
	if err != nil {
		return false, fmt.Errorf("expr: evaluate: %w", err)
	}
	b, ok := v.Export().(bool)
	if !ok {
		return false, fmt.Errorf("expr: expression yielded %v, want boolean", v.ExportType())
	}
	return b, nil
}
