package diag

import (
	"fmt"
)

type Code uint16

const (
	// Неизвестная ошибка - на первое время
	UnknownCode Code = 0

	// Синтаксис (сообщает фронтенд)
	SyntaxError             Code = 1002
	NoCatchOrFinally        Code = 1003
	UnsupportedSyntax       Code = 1004
	UnclosedComment         Code = 1010
	BadNumericLiteral       Code = 1011
	KeywordUsedAsIdentifier Code = 1012

	// Анализ областей видимости
	UndeclaredVariable        Code = 1135
	UndeclaredFunction        Code = 1136
	DuplicateName             Code = 1137
	AmbiguousCatchVariable    Code = 1138
	ArgumentsShadowed         Code = 1139
	WithNotRecommended        Code = 1143
	EvalPreventsCrunch        Code = 1144
	VariableNotReferenced     Code = 1263
	FunctionNotReferenced     Code = 1264
	IdentifierNotNormalized   Code = 1270
	NestingTooDeep            Code = 1280
	DebugStatementRemoved     Code = 1290
	ObjectLiteralKeyDuplicate Code = 1300

	// Вывод
	JSONNotRepresentable Code = 2001

	// I/O и конфигурация
	IOLoadFileError Code = 4001
	ConfigError     Code = 5001
)

type codeInfo struct {
	title string
	level Level
}

var codeTable = map[Code]codeInfo{
	UnknownCode:               {"unknown error", 0},
	SyntaxError:               {"syntax error", 0},
	NoCatchOrFinally:          {"try statement needs catch or finally", 0},
	UnsupportedSyntax:         {"construct is not supported by the minifier", 1},
	UnclosedComment:           {"unterminated comment", 0},
	BadNumericLiteral:         {"malformed numeric literal", 0},
	KeywordUsedAsIdentifier:   {"reserved word used as an identifier", 1},
	UndeclaredVariable:        {"undefined variable", 3},
	UndeclaredFunction:        {"undefined function", 3},
	DuplicateName:             {"duplicate declaration", 1},
	AmbiguousCatchVariable:    {"catch variable shares a name with an outer binding", 4},
	ArgumentsShadowed:         {"'arguments' is redeclared", 3},
	WithNotRecommended:        {"'with' statement prevents renaming", 4},
	EvalPreventsCrunch:        {"'eval' prevents renaming in enclosing scopes", 4},
	VariableNotReferenced:     {"variable is declared but never referenced", 4},
	FunctionNotReferenced:     {"function is declared but never referenced", 4},
	IdentifierNotNormalized:   {"identifier is not in Unicode normalization form C", 3},
	NestingTooDeep:            {"nesting exceeds the configured depth limit", 1},
	DebugStatementRemoved:     {"debug statement removed", 4},
	ObjectLiteralKeyDuplicate: {"duplicate key in object literal", 2},
	JSONNotRepresentable:      {"input cannot be represented as JSON", 2},
	IOLoadFileError:           {"I/O load file error", 0},
	ConfigError:               {"configuration error", 0},
}

// ID returns the stable short identifier of the code, e.g. JS1135.
func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("JS%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("OUT%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("CFG%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	info, ok := codeTable[c]
	if !ok {
		return codeTable[UnknownCode].title
	}
	return info.title
}

// DefaultLevel returns the severity level a code is reported with unless overridden.
func (c Code) DefaultLevel() Level {
	info, ok := codeTable[c]
	if !ok {
		return 0
	}
	return info.level
}

// IsUndeclared reports whether the code belongs to the undeclared-symbol class
// that is reported only once per source text within a document.
func (c Code) IsUndeclared() bool {
	return c == UndeclaredVariable || c == UndeclaredFunction
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
