package symbols

import "jsmin/internal/source"

// NameReference is a use site of a binding (an identifier lookup).
type NameReference interface {
	VariableField() *Field
	Name() string
	Context() *source.Context
}

// NameDeclaration is a declaring site of a binding (var, parameter, function name).
type NameDeclaration interface {
	VariableField() *Field
	Name() string
	Context() *source.Context
}

// FunctionValue is implemented by function nodes stored as a field value.
// IsReferenced reports whether the function itself is ever invoked or escapes.
type FunctionValue interface {
	IsReferenced() bool
}
