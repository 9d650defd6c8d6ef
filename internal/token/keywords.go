package token

var keywords = map[string]Kind{
	"var":        Var,
	"function":   Function,
	"return":     Return,
	"if":         If,
	"else":       Else,
	"for":        For,
	"in":         In,
	"while":      While,
	"do":         Do,
	"break":      Break,
	"continue":   Continue,
	"throw":      Throw,
	"try":        Try,
	"catch":      Catch,
	"finally":    Finally,
	"with":       With,
	"new":        New,
	"delete":     Delete,
	"typeof":     TypeOf,
	"void":       Void,
	"instanceof": InstanceOf,
	"debugger":   Debugger,
	"switch":     Switch,
	"case":       Case,
	"default":    Default,
	"true":       True,
	"false":      False,
	"null":       Null,
	"this":       This,
}

// futureReserved не являются токенами, но занимать их именами нельзя.
var futureReserved = map[string]struct{}{
	"class": {}, "const": {}, "enum": {}, "export": {}, "extends": {},
	"import": {}, "super": {}, "implements": {}, "interface": {}, "let": {},
	"package": {}, "private": {}, "protected": {}, "public": {}, "static": {},
	"yield": {}, "await": {},
}

// LookupKeyword returns the keyword kind for ident.
// Keywords are case-sensitive: only lowercase spellings are recognized.
func LookupKeyword(ident string) (Kind, bool) {
	k, ok := keywords[ident]
	return k, ok
}

// IsReserved reports whether ident can never be used as a binding name.
func IsReserved(ident string) bool {
	if _, ok := keywords[ident]; ok {
		return true
	}
	_, ok := futureReserved[ident]
	return ok
}
