package symbols

import (
	"errors"

	"jsmin/internal/source"
)

// ErrFieldCycle is returned when linking a field would make its outer chain cycle.
var ErrFieldCycle = errors.New("outer field chain would cycle")

// Field is one binding's identity. A Field may be an alias of an outer field
// (closure capture, catch ghost, block function ghost); aliases forward
// declaration state, the crunched name and the owning scope to the end of
// their outer chain.
type Field struct {
	ID FieldID

	Type       FieldType
	Attributes Attributes
	Value      any

	OriginalContext *source.Context
	GhostedField    *Field

	IsFunction    bool
	IsAmbiguous   bool
	IsPlaceholder bool
	WasRemoved    bool
	// Position is the declaration order inside the owning scope.
	Position int

	name         string
	outer        *Field
	owningScope  *Scope
	canCrunch    bool
	isDeclared   bool
	isGenerated  bool
	crunchedName string

	refs  orderedSet[NameReference]
	decls orderedSet[NameDeclaration]
}

// NewField creates a root binding of the given type.
func NewField(ft FieldType, name string, attrs Attributes, value any) *Field {
	f := &Field{
		name:       name,
		Attributes: attrs,
		Value:      value,
	}
	f.applyTypeDefaults(ft)
	return f
}

// NewAliasField creates a field of type ft forwarding to outer. Name,
// attributes, value and generated flag are snapshotted from outer.
func NewAliasField(ft FieldType, outer *Field) *Field {
	if outer == nil {
		panic("symbols.NewAliasField: nil outer field")
	}
	f := &Field{
		outer:      outer,
		name:       outer.name,
		Attributes: outer.Attributes,
		Value:      outer.Value,
	}
	f.SetIsGenerated(outer.IsGenerated())
	f.applyTypeDefaults(ft)
	return f
}

func (f *Field) applyTypeDefaults(ft FieldType) {
	f.Type = ft
	switch ft {
	case FieldArgument, FieldCatchError:
		f.SetIsDeclared(true)
		f.SetCanCrunch(true)
	case FieldArguments, FieldPredefined:
		f.SetIsDeclared(false)
		f.SetCanCrunch(false)
	case FieldGlobal, FieldWithField, FieldUndefinedGlobal:
		f.SetCanCrunch(false)
	case FieldLocal:
		f.SetCanCrunch(true)
	case FieldGhostCatch:
		f.SetCanCrunch(true)
		f.IsPlaceholder = true
	case FieldGhostFunction:
		f.SetCanCrunch(f.outer == nil || f.outer.CanCrunch())
		f.IsFunction = true
		f.IsPlaceholder = true
	default:
		panic("symbols: invalid field type " + ft.String())
	}
}

// Name returns the source name of the binding.
func (f *Field) Name() string { return f.name }

// OuterField returns the next field in the alias chain, or nil.
func (f *Field) OuterField() *Field { return f.outer }

// SetOuterField links f to outer. Linking is refused if outer's chain already
// reaches f.
func (f *Field) SetOuterField(outer *Field) error {
	for cur := outer; cur != nil; cur = cur.outer {
		if cur == f {
			return ErrFieldCycle
		}
	}
	f.outer = outer
	return nil
}

// Detach cuts f loose from its outer chain.
func (f *Field) Detach() { f.outer = nil }

// Ultimate returns the field at the end of the outer chain (f itself if unlinked).
func (f *Field) Ultimate() *Field {
	cur := f
	for cur.outer != nil {
		cur = cur.outer
	}
	return cur
}

// CanCrunch reports this field's own crunch eligibility.
func (f *Field) CanCrunch() bool { return f.canCrunch }

// SetCanCrunch sets eligibility; false also disables every outer field.
func (f *Field) SetCanCrunch(v bool) {
	f.canCrunch = v
	if !v && f.outer != nil {
		f.outer.SetCanCrunch(false)
	}
}

// IsDeclared reports this field's own declared flag.
func (f *Field) IsDeclared() bool { return f.isDeclared }

// SetIsDeclared sets the flag here and on every outer field.
func (f *Field) SetIsDeclared(v bool) {
	f.isDeclared = v
	if f.outer != nil {
		f.outer.SetIsDeclared(v)
	}
}

// IsGenerated mirrors the outer field when linked.
func (f *Field) IsGenerated() bool {
	if f.outer != nil {
		return f.outer.IsGenerated()
	}
	return f.isGenerated
}

func (f *Field) SetIsGenerated(v bool) {
	f.isGenerated = v
	if f.outer != nil {
		f.outer.SetIsGenerated(v)
	}
}

// CrunchedName is the assigned short name read from the end of the chain.
func (f *Field) CrunchedName() string {
	if f.outer != nil {
		return f.outer.CrunchedName()
	}
	return f.crunchedName
}

// SetCrunchedName is ignored unless this field itself may be crunched; the
// name is stored at the end of the chain.
func (f *Field) SetCrunchedName(name string) {
	if !f.canCrunch {
		return
	}
	if f.outer != nil {
		f.outer.SetCrunchedName(name)
		return
	}
	f.crunchedName = name
}

// OwningScope is the scope that declared the ultimate binding.
func (f *Field) OwningScope() *Scope {
	if f.outer != nil {
		return f.outer.OwningScope()
	}
	return f.owningScope
}

func (f *Field) SetOwningScope(s *Scope) { f.owningScope = s }

// IsLiteral reports whether the field holds a compile-time constant.
func (f *Field) IsLiteral() bool { return f.Attributes&AttrLiteral != 0 }

// AddReference records ref here and on every outer field.
func (f *Field) AddReference(ref NameReference) {
	if ref == nil {
		return
	}
	f.refs.add(ref)
	if f.outer != nil {
		f.outer.AddReference(ref)
	}
}

// AddReferences records every reference in refs.
func (f *Field) AddReferences(refs []NameReference) {
	for _, ref := range refs {
		f.AddReference(ref)
	}
}

// RemoveReference drops ref from this field only.
func (f *Field) RemoveReference(ref NameReference) bool {
	return f.refs.remove(ref)
}

// References returns the local reference sites in insertion order.
func (f *Field) References() []NameReference { return f.refs.items }

// RefCount is the number of local reference sites.
func (f *Field) RefCount() int { return f.refs.len() }

// OnlyReference returns the reference when exactly one exists, else nil.
func (f *Field) OnlyReference() NameReference { return f.refs.only() }

// AddDeclaration records a declaring site of this field.
func (f *Field) AddDeclaration(decl NameDeclaration) {
	if decl != nil {
		f.decls.add(decl)
	}
}

// RemoveDeclaration drops decl from this field.
func (f *Field) RemoveDeclaration(decl NameDeclaration) bool {
	return f.decls.remove(decl)
}

// Declarations returns the declaring sites in insertion order.
func (f *Field) Declarations() []NameDeclaration { return f.decls.items }

// OnlyDeclaration returns the declaration when exactly one exists, else nil.
func (f *Field) OnlyDeclaration() NameDeclaration { return f.decls.only() }

// IsReferenced reports whether the binding is used. A function value also
// has to be referenced itself.
func (f *Field) IsReferenced() bool {
	if f.RefCount() == 0 {
		return false
	}
	if fn, ok := f.Value.(FunctionValue); ok && fn != nil {
		return fn.IsReferenced()
	}
	return true
}

// IsOuterReference reports whether a concrete (non-placeholder) binding
// exists somewhere up the chain.
func (f *Field) IsOuterReference() bool {
	for cur := f.outer; cur != nil; cur = cur.outer {
		if !cur.IsPlaceholder {
			return true
		}
	}
	return false
}

// IsReferencedInnerScope reports whether any reference site resolves through
// an alias.
func (f *Field) IsReferencedInnerScope() bool {
	for _, ref := range f.refs.items {
		if rf := ref.VariableField(); rf != nil && rf.outer != nil {
			return true
		}
	}
	return false
}

// IsSameField compares the ultimate bindings of f and other.
func (f *Field) IsSameField(other *Field) bool {
	if f == other {
		return true
	}
	if f == nil || other == nil {
		return false
	}
	return f.Ultimate() == other.Ultimate()
}

// String returns the crunched name if one was assigned, else the source name.
func (f *Field) String() string {
	if name := f.CrunchedName(); name != "" {
		return name
	}
	return f.name
}
