package symbols

// ScopeID identifies a scope in the table arena.
type ScopeID uint32

const (
	// NoScopeID marks the absence of a scope reference.
	NoScopeID ScopeID = 0
)

// IsValid reports whether the scope ID refers to an allocated scope.
func (id ScopeID) IsValid() bool { return id != NoScopeID }

// FieldID identifies a variable field inside the table arena.
type FieldID uint32

const (
	// NoFieldID marks a field that was never registered in a table.
	NoFieldID FieldID = 0
)

// IsValid reports whether the field ID refers to a registered field.
func (id FieldID) IsValid() bool { return id != NoFieldID }
