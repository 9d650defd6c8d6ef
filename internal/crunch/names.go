package crunch

import "strings"

const (
	firstChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ_$"
	restChars  = firstChars + "0123456789"
)

// reservedWords are never handed out as short names.
var reservedWords = map[string]struct{}{}

func init() {
	for w := range strings.FieldsSeq(`
		break case catch class const continue debugger default delete do
		else enum export extends false finally for function if implements
		import in instanceof interface let new null package private
		protected public return static super switch this throw true try
		typeof var void while with yield arguments eval undefined NaN
		Infinity`) {
		reservedWords[w] = struct{}{}
	}
}

// IsReserved reports whether name can never be used as a crunched name.
func IsReserved(name string) bool {
	_, ok := reservedWords[name]
	return ok
}

// nameAt maps a sequence number to an identifier: a..$, then aa, ab, ...
func nameAt(n int) string {
	var b []byte
	b = append(b, firstChars[n%len(firstChars)])
	n /= len(firstChars)
	for n > 0 {
		n--
		b = append(b, restChars[n%len(restChars)])
		n /= len(restChars)
	}
	return string(b)
}

// generator hands out candidate names in order, skipping reserved ones.
type generator struct {
	next  int
	extra map[string]struct{}
}

func (g *generator) take(avoid map[string]struct{}) string {
	for {
		name := nameAt(g.next)
		g.next++
		if IsReserved(name) {
			continue
		}
		if _, ok := g.extra[name]; ok {
			continue
		}
		if _, ok := avoid[name]; ok {
			continue
		}
		return name
	}
}
