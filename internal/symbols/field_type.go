package symbols

// FieldType classifies how a binding came into existence.
type FieldType uint8

const (
	// FieldLocal is a var/function declared in a function or global body.
	FieldLocal FieldType = iota
	// FieldPredefined is a host-provided global (window, Math, ...).
	FieldPredefined
	// FieldGlobal is declared at the top level of the program.
	FieldGlobal
	// FieldArguments is the implicit `arguments` object of a function.
	FieldArguments
	// FieldArgument is a formal parameter.
	FieldArgument
	// FieldWithField is a name that may resolve to a property of a with-object.
	FieldWithField
	// FieldCatchError is the identifier bound by a catch clause.
	FieldCatchError
	// FieldGhostCatch stands in the variable scope for a catch binding.
	FieldGhostCatch
	// FieldGhostFunction stands in the variable scope for a block-nested function.
	FieldGhostFunction
	// FieldUndefinedGlobal is referenced but never declared anywhere.
	FieldUndefinedGlobal
)

var fieldTypeNames = [...]string{
	FieldLocal:           "local",
	FieldPredefined:      "predefined",
	FieldGlobal:          "global",
	FieldArguments:       "arguments",
	FieldArgument:        "argument",
	FieldWithField:       "with",
	FieldCatchError:      "catch",
	FieldGhostCatch:      "ghost-catch",
	FieldGhostFunction:   "ghost-function",
	FieldUndefinedGlobal: "undefined-global",
}

func (t FieldType) String() string {
	if int(t) < len(fieldTypeNames) {
		return fieldTypeNames[t]
	}
	return "invalid"
}

// IsGhost reports whether the type only stands in for a binding declared elsewhere.
func (t FieldType) IsGhost() bool {
	return t == FieldGhostCatch || t == FieldGhostFunction
}

// Attributes encode misc field flags for quick checks.
type Attributes uint8

const (
	// AttrLiteral marks a field whose value is a compile-time constant.
	AttrLiteral Attributes = 1 << iota
	// AttrReadOnly marks a binding that may not be reassigned (const).
	AttrReadOnly
	// AttrBuiltin marks fields installed from the predefined globals list.
	AttrBuiltin
)

// Strings returns a slice of textual flag labels.
func (a Attributes) Strings() []string {
	if a == 0 {
		return nil
	}
	labels := make([]string, 0, 3)
	if a&AttrLiteral != 0 {
		labels = append(labels, "literal")
	}
	if a&AttrReadOnly != 0 {
		labels = append(labels, "readonly")
	}
	if a&AttrBuiltin != 0 {
		labels = append(labels, "builtin")
	}
	return labels
}
