package symbols

import (
	"errors"
	"fmt"
)

// Validate walks the table arenas checking structural invariants. Returns nil
// if everything is consistent; otherwise aggregates all detected issues.
func (t *Table) Validate() error {
	var errs []error

	for _, scope := range t.Scopes.Data() {
		if scope.Kind == ScopeInvalid {
			errs = append(errs, fmt.Errorf("scope %d has invalid kind", scope.ID))
		}
		if scope.Parent != nil {
			if scope.Parent == scope {
				errs = append(errs, fmt.Errorf("scope %d is its own parent", scope.ID))
				continue
			}
			found := false
			for _, child := range scope.Parent.Children {
				if child == scope {
					found = true
					break
				}
			}
			if !found {
				errs = append(errs, fmt.Errorf("scope %d parent %d missing backlink", scope.ID, scope.Parent.ID))
			}
		}
		for _, child := range scope.Children {
			if child.Parent != scope {
				errs = append(errs, fmt.Errorf("scope %d child %d missing parent backlink", scope.ID, child.ID))
			}
		}
		for name, f := range scope.names {
			if f.Name() != name {
				errs = append(errs, fmt.Errorf("scope %d indexes field %q under %q", scope.ID, f.Name(), name))
			}
		}
	}

	for _, f := range t.Fields.Data() {
		if hasCycle(f) {
			errs = append(errs, fmt.Errorf("field %d (%s) outer chain cycles", f.ID, f.Name()))
		}
	}

	return errors.Join(errs...)
}

// hasCycle runs Floyd's tortoise and hare over the outer chain.
func hasCycle(f *Field) bool {
	slow, fast := f, f
	for fast != nil && fast.outer != nil {
		slow = slow.outer
		fast = fast.outer.outer
		if slow == fast {
			return true
		}
	}
	return false
}
