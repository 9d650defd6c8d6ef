package symbols

import (
	"fmt"

	"fortio.org/safecast"
)

// Scopes stores all allocated scopes in a slice-based arena.
type Scopes struct {
	data []*Scope
}

// NewScopes creates an arena with optional capacity hint.
func NewScopes(capacity uint32) *Scopes {
	if capacity == 0 {
		capacity = 32
	}
	return &Scopes{
		data: make([]*Scope, 1, capacity+1), // index 0 reserved for NoScopeID
	}
}

// New allocates a new scope under parent and returns it.
func (s *Scopes) New(kind ScopeKind, parent *Scope, owner any) *Scope {
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("scopes arena overflow: %w", err))
	}
	scope := newScope(kind, parent, owner)
	scope.ID = ScopeID(value)
	s.data = append(s.data, scope)
	return scope
}

// Get returns the scope or nil if ID is invalid.
func (s *Scopes) Get(id ScopeID) *Scope {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return s.data[id]
}

// Len reports total number of scopes excluding the sentinel.
func (s *Scopes) Len() int { return len(s.data) - 1 }

// Data exposes the arena without the sentinel.
func (s *Scopes) Data() []*Scope {
	if len(s.data) <= 1 {
		return nil
	}
	return s.data[1:]
}

// Fields stores every field created for a unit, aliases included.
type Fields struct {
	data []*Field
}

// NewFields creates a field arena with optional capacity hint.
func NewFields(capacity uint32) *Fields {
	if capacity == 0 {
		capacity = 64
	}
	return &Fields{
		data: make([]*Field, 1, capacity+1), // index 0 reserved for NoFieldID
	}
}

// Add registers f and assigns its ID.
func (s *Fields) Add(f *Field) *Field {
	if f == nil {
		panic("symbols.Fields.Add: nil field")
	}
	value, err := safecast.Conv[uint32](len(s.data))
	if err != nil {
		panic(fmt.Errorf("fields arena overflow: %w", err))
	}
	f.ID = FieldID(value)
	s.data = append(s.data, f)
	return f
}

// Get returns a field or nil for invalid ID.
func (s *Fields) Get(id FieldID) *Field {
	if !id.IsValid() || int(id) >= len(s.data) {
		return nil
	}
	return s.data[id]
}

// Len reports number of stored fields excluding sentinel.
func (s *Fields) Len() int { return len(s.data) - 1 }

// Data exposes the arena storage without the sentinel.
func (s *Fields) Data() []*Field {
	if len(s.data) <= 1 {
		return nil
	}
	return s.data[1:]
}
