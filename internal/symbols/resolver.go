package symbols

import (
	"fmt"

	"jsmin/internal/diag"
	"jsmin/internal/source"
)

// ResolverOptions configures resolver construction.
type ResolverOptions struct {
	Reporter diag.Reporter
	// Prelude names are installed in the global scope as predefined fields.
	// Nil installs DefaultPrelude.
	Prelude []string
}

// Resolver drives scope management and declaration/lookup routines.
type Resolver struct {
	table                 *Table
	reporter              diag.Reporter
	stack                 []*Scope
	scopeMismatchReported map[ScopeID]bool
}

// NewResolver wires a resolver to a table. The global scope becomes current
// and receives the prelude.
func NewResolver(table *Table, owner any, opts ResolverOptions) *Resolver {
	r := &Resolver{
		table:                 table,
		reporter:              opts.Reporter,
		stack:                 make([]*Scope, 0, 8),
		scopeMismatchReported: make(map[ScopeID]bool),
	}
	global := table.Global(owner)
	r.stack = append(r.stack, global)
	prelude := opts.Prelude
	if prelude == nil {
		prelude = DefaultPrelude()
	}
	r.installPrelude(global, prelude)
	return r
}

// Table returns the backing table.
func (r *Resolver) Table() *Table { return r.table }

// CurrentScope returns the scope at the top of the stack.
func (r *Resolver) CurrentScope() *Scope {
	if len(r.stack) == 0 {
		return nil
	}
	return r.stack[len(r.stack)-1]
}

// Depth reports how many scopes are open.
func (r *Resolver) Depth() int { return len(r.stack) }

// Enter creates a child scope, pushes it onto the stack, and returns it.
func (r *Resolver) Enter(kind ScopeKind, owner any) *Scope {
	scope := r.table.Scopes.New(kind, r.CurrentScope(), owner)
	r.stack = append(r.stack, scope)
	return scope
}

// Push re-enters an existing scope (second pass over a function body).
func (r *Resolver) Push(scope *Scope) {
	r.stack = append(r.stack, scope)
}

// Leave pops the current scope, validating against the expected one. A
// mismatch emits a warning diagnostic once per scope.
func (r *Resolver) Leave(expected *Scope) {
	if len(r.stack) == 0 {
		return
	}
	top := r.stack[len(r.stack)-1]
	if expected != nil && top != expected {
		r.reportScopeMismatch(expected, top)
	}
	r.stack = r.stack[:len(r.stack)-1]
}

// Declare installs a new root field into scope. If the name already exists
// there the existing field is returned with ok=false.
func (r *Resolver) Declare(scope *Scope, ft FieldType, name string, ctx *source.Context) (*Field, bool) {
	if scope == nil {
		return nil, false
	}
	if existing := scope.Lookup(name); existing != nil {
		return existing, false
	}
	f := r.table.NewField(ft, name, 0, nil)
	f.OriginalContext = ctx
	scope.Declare(f)
	return f, true
}

// DeclareAlias installs an alias of outer into scope.
func (r *Resolver) DeclareAlias(scope *Scope, ft FieldType, outer *Field, ctx *source.Context) *Field {
	f := r.table.NewAlias(ft, outer)
	f.OriginalContext = ctx
	scope.Declare(f)
	return f
}

// Lookup walks the scope chain from the current scope.
func (r *Resolver) Lookup(name string) (*Field, *Scope) {
	cur := r.CurrentScope()
	if cur == nil {
		return nil, nil
	}
	return cur.Resolve(name)
}

func (r *Resolver) reportScopeMismatch(expected, actual *Scope) {
	if r.reporter == nil || actual == nil {
		return
	}
	if r.scopeMismatchReported[actual.ID] {
		return
	}
	r.scopeMismatchReported[actual.ID] = true

	msg := fmt.Sprintf("scope stack mismatch: closing %s scope #%d while expecting %s scope #%d",
		actual.Kind, actual.ID, expected.Kind, expected.ID)
	r.reporter.Report(diag.New(diag.UnknownCode, diag.Location{}, msg))
}

// installPrelude declares predefined globals into scope.
func (r *Resolver) installPrelude(scope *Scope, names []string) {
	for _, name := range names {
		if scope.Lookup(name) != nil {
			continue
		}
		f := r.table.NewField(FieldPredefined, name, AttrBuiltin, nil)
		scope.Declare(f)
	}
}
