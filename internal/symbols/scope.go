package symbols

// ScopeKind enumerates supported scope categories.
type ScopeKind uint8

const (
	ScopeInvalid  ScopeKind = iota
	ScopeGlobal             // program root
	ScopeFunction           // function body scope, owns var declarations
	ScopeBlock              // lexical block, never owns vars
	ScopeCatch              // catch clause binding
	ScopeWith               // with-statement object scope
)

func (k ScopeKind) String() string {
	switch k {
	case ScopeGlobal:
		return "global"
	case ScopeFunction:
		return "function"
	case ScopeBlock:
		return "block"
	case ScopeCatch:
		return "catch"
	case ScopeWith:
		return "with"
	default:
		return "invalid"
	}
}

// IsVariableScope reports whether var declarations land in this kind.
func (k ScopeKind) IsVariableScope() bool {
	return k == ScopeGlobal || k == ScopeFunction
}

// Scope models a lexical scope with a parent-child hierarchy.
type Scope struct {
	ID       ScopeID
	Kind     ScopeKind
	Parent   *Scope
	Children []*Scope
	// Owner is the tree node that opened the scope (program, function, block...).
	Owner any

	// UseStrict is set when the scope body starts with a "use strict" directive.
	UseStrict bool

	names   map[string]*Field
	fields  []*Field
	unknown bool
}

func newScope(kind ScopeKind, parent *Scope, owner any) *Scope {
	s := &Scope{
		Kind:   kind,
		Parent: parent,
		Owner:  owner,
		names:  make(map[string]*Field),
	}
	if parent != nil {
		parent.Children = append(parent.Children, s)
		s.UseStrict = parent.UseStrict
	}
	return s
}

// Declare installs f under its name. When the name already exists the
// existing field is returned with ok=false and f is not installed.
func (s *Scope) Declare(f *Field) (existing *Field, ok bool) {
	if prev, found := s.names[f.Name()]; found {
		return prev, false
	}
	f.Position = len(s.fields)
	if f.OuterField() == nil {
		f.SetOwningScope(s)
	}
	s.names[f.Name()] = f
	s.fields = append(s.fields, f)
	return f, true
}

// Remove drops the named field from this scope.
func (s *Scope) Remove(name string) *Field {
	f, ok := s.names[name]
	if !ok {
		return nil
	}
	delete(s.names, name)
	for i, cur := range s.fields {
		if cur == f {
			s.fields = append(s.fields[:i], s.fields[i+1:]...)
			break
		}
	}
	return f
}

// Lookup finds a field declared directly in this scope.
func (s *Scope) Lookup(name string) *Field {
	return s.names[name]
}

// Resolve walks the scope chain outward and returns the first match and the
// scope that holds it.
func (s *Scope) Resolve(name string) (*Field, *Scope) {
	for cur := s; cur != nil; cur = cur.Parent {
		if f := cur.names[name]; f != nil {
			return f, cur
		}
	}
	return nil, nil
}

// Fields returns the fields in declaration order.
func (s *Scope) Fields() []*Field { return s.fields }

// Len reports the number of declared fields.
func (s *Scope) Len() int { return len(s.fields) }

// VariableScope returns the nearest enclosing function or global scope.
func (s *Scope) VariableScope() *Scope {
	cur := s
	for cur != nil && !cur.Kind.IsVariableScope() {
		cur = cur.Parent
	}
	return cur
}

// Global returns the root scope.
func (s *Scope) Global() *Scope {
	cur := s
	for cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}

// IsKnownAtCompileTime is false once an eval call was seen in this scope or
// any scope nested in it.
func (s *Scope) IsKnownAtCompileTime() bool { return !s.unknown }

// MarkUnknown makes this scope and all its ancestors unknown at compile time.
// Every field they declare loses crunch eligibility.
func (s *Scope) MarkUnknown() {
	for cur := s; cur != nil; cur = cur.Parent {
		cur.unknown = true
		for _, f := range cur.fields {
			f.SetCanCrunch(false)
		}
	}
}

// IsAncestorOf reports whether s encloses other (or is other).
func (s *Scope) IsAncestorOf(other *Scope) bool {
	for cur := other; cur != nil; cur = cur.Parent {
		if cur == s {
			return true
		}
	}
	return false
}
