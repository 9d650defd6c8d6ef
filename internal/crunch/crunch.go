package crunch

import (
	"cmp"
	"slices"

	"jsmin/internal/symbols"
)

// Options configures the renaming pass.
type Options struct {
	// Reserved names are kept out of the generated pool.
	Reserved []string
}

// Run assigns short names to every crunchable binding of table. Scopes are
// handled parent first, so names of outer bindings captured by a scope are
// already final when that scope picks its own names.
func Run(table *symbols.Table, opts Options) *Report {
	extra := make(map[string]struct{}, len(opts.Reserved))
	for _, name := range opts.Reserved {
		extra[name] = struct{}{}
	}

	rep := &Report{}
	for _, scope := range table.Scopes.Data() {
		crunchScope(scope, extra, rep)
	}
	return rep
}

func crunchScope(scope *symbols.Scope, extra map[string]struct{}, rep *Report) {
	var own []*symbols.Field
	avoid := make(map[string]struct{})
	for _, f := range scope.Fields() {
		if candidate(f, scope) {
			own = append(own, f)
			continue
		}
		// aliases and pinned names stay visible in this scope as they are
		avoid[f.Ultimate().String()] = struct{}{}
	}
	if !scope.IsKnownAtCompileTime() {
		for _, f := range own {
			rep.add(scope, f, false)
		}
		return
	}

	slices.SortStableFunc(own, func(a, b *symbols.Field) int {
		if c := cmp.Compare(b.RefCount(), a.RefCount()); c != 0 {
			return c
		}
		return cmp.Compare(a.Position, b.Position)
	})

	g := generator{extra: extra}
	for _, f := range own {
		name := g.take(avoid)
		f.SetCrunchedName(name)
		avoid[name] = struct{}{}
		rep.add(scope, f, true)
	}
}

// candidate reports whether f is a binding this scope owns and may rename.
func candidate(f *symbols.Field, scope *symbols.Scope) bool {
	return f.OuterField() == nil && f.CanCrunch() && f.OwningScope() == scope
}
