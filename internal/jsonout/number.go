package jsonout

import (
	"math"
	"regexp"
	"strconv"
	"strings"

	"jsmin/internal/ast"
	"jsmin/internal/symbols"
)

// decimalFormat splits a decimal number into sign, significant integer
// digits, trailing integer zeros, fractional digits and exponent.
var decimalFormat = regexp.MustCompile(
	`^\s*\+?(?P<neg>-)?0*(?P<mag>(?P<sig>\d*[1-9])(?P<zer>0*))?(?:\.(?P<man>\d*[1-9])?0*)?(?P<exp>[eE]\+?(?P<eng>-?)0*(?P<pow>[1-9]\d*))?$`)

var (
	groupNeg = decimalFormat.SubexpIndex("neg")
	groupMag = decimalFormat.SubexpIndex("mag")
	groupSig = decimalFormat.SubexpIndex("sig")
	groupZer = decimalFormat.SubexpIndex("zer")
	groupMan = decimalFormat.SubexpIndex("man")
	groupExp = decimalFormat.SubexpIndex("exp")
	groupEng = decimalFormat.SubexpIndex("eng")
	groupPow = decimalFormat.SubexpIndex("pow")
)

// FormatNumber returns the shortest decimal text that reads back as v.
// NaN and the infinities come out as the global names.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	case v == 0:
		if math.Signbit(v) {
			return "-0"
		}
		return "0"
	}
	return smallest(roundTrip(v))
}

// roundTrip renders v exactly, in plain notation for decimal exponents in
// (-5, 15) and scientific notation otherwise.
func roundTrip(v float64) string {
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])
	if err == nil && exp > -5 && exp < 15 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	return sci
}

func smallest(number string) string {
	m := decimalFormat.FindStringSubmatch(number)
	if m == nil {
		return number
	}
	neg, mag, man := m[groupNeg], m[groupMag], m[groupMan]

	switch {
	case m[groupExp] == "" && man == "":
		if m[groupSig] == "" {
			return neg + "0"
		}
		if zeros := len(m[groupZer]); zeros > 2 {
			return neg + m[groupSig] + "e" + strconv.Itoa(zeros)
		}
		return neg + mag

	case m[groupExp] == "":
		// a zero magnitude is dropped: 0.5 -> .5
		return neg + mag + "." + man

	case man == "":
		return neg + mag + "e" + m[groupEng] + m[groupPow]

	default:
		exp, err := strconv.Atoi(m[groupEng] + m[groupPow])
		if err != nil {
			return neg + mag + "." + man + "e" + m[groupEng] + m[groupPow]
		}
		// 1.5e-7 -> 15e-8
		return neg + mag + man + "e" + strconv.Itoa(exp-len(man))
	}
}

// number renders v for the node at. Non-finite values keep their source
// text when there is one; otherwise the global names are used, or division
// forms when a local binding shadows them.
func (v *visitor) number(value float64, at ast.Node) string {
	if !math.IsNaN(value) && !math.IsInf(value, 0) {
		return FormatNumber(value)
	}
	if ctx := at.Context(); ctx != nil && ctx.HasCode() {
		return ctx.Code()
	}

	name := "Infinity"
	if math.IsNaN(value) {
		name = "NaN"
	}
	if v.shadowed(name, at) {
		switch {
		case math.IsNaN(value):
			return "0/0"
		case value < 0:
			return "-1/0"
		default:
			return "1/0"
		}
	}
	return FormatNumber(value)
}

func (v *visitor) shadowed(name string, at ast.Node) bool {
	scope := ast.EnclosingScope(at)
	if scope == nil {
		scope = v.opts.GlobalScope
	}
	if scope == nil {
		return false
	}
	f, _ := scope.Resolve(name)
	return f != nil && f.Ultimate().Type != symbols.FieldPredefined
}
