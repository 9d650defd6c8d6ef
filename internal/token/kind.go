package token

// Kind represents the category of a JavaScript token.
type Kind uint8

const (
	// None marks a context with no associated token.
	None Kind = iota
	// EndOfFile marks the end of the source input.
	EndOfFile

	// Identifier represents an identifier token.
	Identifier
	// StringLiteral represents a quoted string.
	StringLiteral
	// NumericLiteral represents a number.
	NumericLiteral
	// RegularExpression represents a regexp literal.
	RegularExpression
	True
	False
	Null
	This

	// Keywords

	Var
	Function
	Return
	If
	Else
	For
	In
	While
	Do
	Break
	Continue
	Throw
	Try
	Catch
	Finally
	With
	New
	Delete
	TypeOf
	Void
	InstanceOf
	Debugger
	Switch
	Case
	Default

	// Unary operators

	Increment // ++
	Decrement // --
	LogicalNot
	BitwiseNot

	// Binary operators

	Plus  // +
	Minus // -
	Multiply
	Divide
	Modulo
	BitwiseAnd
	BitwiseOr
	BitwiseXor
	LeftShift
	RightShift
	UnsignedRightShift
	Equal
	NotEqual
	StrictEqual
	StrictNotEqual
	LessThan
	LessThanEqual
	GreaterThan
	GreaterThanEqual
	LogicalAnd
	LogicalOr
	Comma

	// Assignment operators

	Assign // =
	PlusAssign
	MinusAssign
	MultiplyAssign
	DivideAssign
	ModuloAssign
	BitwiseAndAssign
	BitwiseOrAssign
	BitwiseXorAssign
	LeftShiftAssign
	RightShiftAssign
	UnsignedRightShiftAssign

	// Punctuation

	Semicolon
	Colon
	ConditionalIf // ?
	AccessField   // .
	LeftParenthesis
	RightParenthesis
	LeftBracket
	RightBracket
	LeftCurly
	RightCurly

	// ConditionalCommentStart is the /*@ opener of a conditional-compilation comment.
	ConditionalCommentStart
	ConditionalCommentEnd
	ConditionalCompilationOn

	kindCount
)

var kindNames = [...]string{
	None:                     "none",
	EndOfFile:                "EOF",
	Identifier:               "identifier",
	StringLiteral:            "string",
	NumericLiteral:           "number",
	RegularExpression:        "regexp",
	True:                     "true",
	False:                    "false",
	Null:                     "null",
	This:                     "this",
	Var:                      "var",
	Function:                 "function",
	Return:                   "return",
	If:                       "if",
	Else:                     "else",
	For:                      "for",
	In:                       "in",
	While:                    "while",
	Do:                       "do",
	Break:                    "break",
	Continue:                 "continue",
	Throw:                    "throw",
	Try:                      "try",
	Catch:                    "catch",
	Finally:                  "finally",
	With:                     "with",
	New:                      "new",
	Delete:                   "delete",
	TypeOf:                   "typeof",
	Void:                     "void",
	InstanceOf:               "instanceof",
	Debugger:                 "debugger",
	Switch:                   "switch",
	Case:                     "case",
	Default:                  "default",
	Increment:                "++",
	Decrement:                "--",
	LogicalNot:               "!",
	BitwiseNot:               "~",
	Plus:                     "+",
	Minus:                    "-",
	Multiply:                 "*",
	Divide:                   "/",
	Modulo:                   "%",
	BitwiseAnd:               "&",
	BitwiseOr:                "|",
	BitwiseXor:               "^",
	LeftShift:                "<<",
	RightShift:               ">>",
	UnsignedRightShift:       ">>>",
	Equal:                    "==",
	NotEqual:                 "!=",
	StrictEqual:              "===",
	StrictNotEqual:           "!==",
	LessThan:                 "<",
	LessThanEqual:            "<=",
	GreaterThan:              ">",
	GreaterThanEqual:         ">=",
	LogicalAnd:               "&&",
	LogicalOr:                "||",
	Comma:                    ",",
	Assign:                   "=",
	PlusAssign:               "+=",
	MinusAssign:              "-=",
	MultiplyAssign:           "*=",
	DivideAssign:             "/=",
	ModuloAssign:             "%=",
	BitwiseAndAssign:         "&=",
	BitwiseOrAssign:          "|=",
	BitwiseXorAssign:         "^=",
	LeftShiftAssign:          "<<=",
	RightShiftAssign:         ">>=",
	UnsignedRightShiftAssign: ">>>=",
	Semicolon:                ";",
	Colon:                    ":",
	ConditionalIf:            "?",
	AccessField:              ".",
	LeftParenthesis:          "(",
	RightParenthesis:         ")",
	LeftBracket:              "[",
	RightBracket:             "]",
	LeftCurly:                "{",
	RightCurly:               "}",
	ConditionalCommentStart:  "/*@",
	ConditionalCommentEnd:    "@*/",
	ConditionalCompilationOn: "@cc_on",
}

// String returns the source spelling of operators and keywords.
func (k Kind) String() string {
	if k < kindCount && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown"
}

// IsAssign reports whether the kind is any assignment operator, plain or compound.
func (k Kind) IsAssign() bool {
	return k >= Assign && k <= UnsignedRightShiftAssign
}

// IsUnaryUpdate reports whether the kind is ++ or --.
func (k Kind) IsUnaryUpdate() bool {
	return k == Increment || k == Decrement
}

// IsKeyword reports whether the kind is a reserved word.
func (k Kind) IsKeyword() bool {
	return (k >= Var && k <= Default) || k == True || k == False || k == Null || k == This
}

// CompoundBase returns the binary operator a compound assignment applies,
// and false for plain assignment or non-assignment kinds.
func (k Kind) CompoundBase() (Kind, bool) {
	switch k {
	case PlusAssign:
		return Plus, true
	case MinusAssign:
		return Minus, true
	case MultiplyAssign:
		return Multiply, true
	case DivideAssign:
		return Divide, true
	case ModuloAssign:
		return Modulo, true
	case BitwiseAndAssign:
		return BitwiseAnd, true
	case BitwiseOrAssign:
		return BitwiseOr, true
	case BitwiseXorAssign:
		return BitwiseXor, true
	case LeftShiftAssign:
		return LeftShift, true
	case RightShiftAssign:
		return RightShift, true
	case UnsignedRightShiftAssign:
		return UnsignedRightShift, true
	}
	return None, false
}

var operators map[string]Kind

func init() {
	operators = make(map[string]Kind, int(kindCount))
	for k := Increment; k <= UnsignedRightShiftAssign; k++ {
		operators[kindNames[k]] = k
	}
	for _, k := range []Kind{Delete, TypeOf, Void, InstanceOf, In} {
		operators[kindNames[k]] = k
	}
}

// LookupOperator maps operator spelling ("+=", "typeof", ...) to its Kind.
func LookupOperator(text string) (Kind, bool) {
	k, ok := operators[text]
	return k, ok
}
