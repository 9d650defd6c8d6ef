package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Hints provide optional capacity suggestions for the table arenas.
type Hints struct{ Scopes, Fields uint }

// Table aggregates the scopes and fields of one unit.
type Table struct {
	Scopes *Scopes
	Fields *Fields
	global *Scope
}

// NewTable builds a fresh table with optional capacity hints.
func NewTable(h Hints) *Table {
	scopeCap, err := safecast.Conv[uint32](h.Scopes)
	if err != nil {
		panic(fmt.Errorf("scope capacity overflow: %w", err))
	}
	fieldCap, err := safecast.Conv[uint32](h.Fields)
	if err != nil {
		panic(fmt.Errorf("field capacity overflow: %w", err))
	}
	return &Table{
		Scopes: NewScopes(scopeCap),
		Fields: NewFields(fieldCap),
	}
}

// Global returns (and creates if needed) the program scope.
func (t *Table) Global(owner any) *Scope {
	if t.global == nil {
		t.global = t.Scopes.New(ScopeGlobal, nil, owner)
	}
	return t.global
}

// NewField creates and registers a root field.
func (t *Table) NewField(ft FieldType, name string, attrs Attributes, value any) *Field {
	return t.Fields.Add(NewField(ft, name, attrs, value))
}

// NewAlias creates and registers an alias of outer. The alias inherits outer's
// crunch eligibility.
func (t *Table) NewAlias(ft FieldType, outer *Field) *Field {
	f := NewAliasField(ft, outer)
	f.SetCanCrunch(outer.CanCrunch())
	return t.Fields.Add(f)
}
