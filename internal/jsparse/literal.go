package jsparse

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

var errBigInt = errors.New("bigint literals are not supported")

// parseNumber converts numeric literal text. legacy is set for old-style
// octal literals such as 017.
func parseNumber(text string) (value float64, legacy bool, err error) {
	text = strings.ReplaceAll(text, "_", "")
	if strings.HasSuffix(text, "n") {
		return 0, false, errBigInt
	}
	if len(text) > 1 && text[0] == '0' {
		switch text[1] {
		case 'x', 'X':
			return parseRadix(text[2:], 16)
		case 'o', 'O':
			return parseRadix(text[2:], 8)
		case 'b', 'B':
			return parseRadix(text[2:], 2)
		}
		if isOctalDigits(text[1:]) {
			v, _, err := parseRadix(text[1:], 8)
			return v, true, err
		}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) {
			// overflow reads as Infinity, underflow as zero
			return v, false, nil
		}
		return 0, false, err
	}
	return v, false, nil
}

func isOctalDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '7' {
			return false
		}
	}
	return s != ""
}

// parseRadix accumulates in float64 so values past 2^64 degrade the way
// JavaScript numbers do instead of failing.
func parseRadix(digits string, base int) (float64, bool, error) {
	if digits == "" {
		return 0, false, strconv.ErrSyntax
	}
	if u, err := strconv.ParseUint(digits, base, 64); err == nil {
		return float64(u), false, nil
	}
	v := 0.0
	for _, r := range digits {
		d, ok := digitValue(r)
		if !ok || d >= base {
			return 0, false, strconv.ErrSyntax
		}
		v = v*float64(base) + float64(d)
	}
	return v, false, nil
}

func digitValue(r rune) (int, bool) {
	switch {
	case r >= '0' && r <= '9':
		return int(r - '0'), true
	case r >= 'a' && r <= 'f':
		return int(r-'a') + 10, true
	case r >= 'A' && r <= 'F':
		return int(r-'A') + 10, true
	}
	return 0, false
}

// unquote decodes a quoted JavaScript string literal. odd is set when the
// literal used escapes whose meaning varies between engines (\v, octal).
func unquote(lit string) (s string, odd bool, err error) {
	if len(lit) < 2 || (lit[0] != '"' && lit[0] != '\'') || lit[len(lit)-1] != lit[0] {
		return "", false, strconv.ErrSyntax
	}
	body := lit[1 : len(lit)-1]
	if !strings.ContainsRune(body, '\\') {
		return body, false, nil
	}

	var b strings.Builder
	b.Grow(len(body))
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			r, size := utf8.DecodeRuneInString(body[i:])
			b.WriteRune(r)
			i += size
			continue
		}
		i++
		if i >= len(body) {
			return "", odd, strconv.ErrSyntax
		}
		c = body[i]
		i++
		switch c {
		case 'n':
			b.WriteByte('\n')
		case 't':
			b.WriteByte('\t')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
			odd = true
		case '\r':
			// line continuation, \r\n included
			if i < len(body) && body[i] == '\n' {
				i++
			}
		case '\n':
		case 'x':
			if i+2 > len(body) {
				return "", odd, strconv.ErrSyntax
			}
			v, err := strconv.ParseUint(body[i:i+2], 16, 8)
			if err != nil {
				return "", odd, strconv.ErrSyntax
			}
			b.WriteRune(rune(v))
			i += 2
		case 'u':
			r, n, err := unicodeEscape(body[i:])
			if err != nil {
				return "", odd, err
			}
			i += n
			if utf16.IsSurrogate(r) && strings.HasPrefix(body[i:], `\u`) {
				if lo, m, err := unicodeEscape(body[i+2:]); err == nil {
					if pair := utf16.DecodeRune(r, lo); pair != utf8.RuneError {
						r = pair
						i += 2 + m
					}
				}
			}
			if utf16.IsSurrogate(r) {
				writeSurrogate(&b, r)
				continue
			}
			b.WriteRune(r)
		default:
			if c >= '0' && c <= '7' {
				// \0 alone is NUL; anything longer is a legacy octal escape.
				// Only a 0-3 lead takes two more digits, so the value stays under \400.
				more := 1
				if c <= '3' {
					more = 2
				}
				j := i
				for j < len(body) && j-i < more && body[j] >= '0' && body[j] <= '7' {
					j++
				}
				v, _ := strconv.ParseUint(body[i-1:j], 8, 16)
				if j > i || c != '0' {
					odd = true
				}
				b.WriteRune(rune(v))
				i = j
				continue
			}
			r, size := utf8.DecodeRuneInString(body[i-1:])
			b.WriteRune(r)
			i += size - 1
		}
	}
	return b.String(), odd, nil
}

// writeSurrogate keeps an unpaired surrogate as its generalized UTF-8
// encoding (ED A0..BF xx) so the code unit survives to the output.
func writeSurrogate(b *strings.Builder, r rune) {
	b.WriteByte(byte(0xE0 | r>>12))
	b.WriteByte(byte(0x80 | (r>>6)&0x3F))
	b.WriteByte(byte(0x80 | r&0x3F))
}

// unicodeEscape decodes XXXX or {X...} after \u and returns the number of
// bytes consumed.
func unicodeEscape(s string) (rune, int, error) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 2 {
			return 0, 0, strconv.ErrSyntax
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil || v > utf8.MaxRune {
			return 0, 0, strconv.ErrSyntax
		}
		return rune(v), end + 1, nil
	}
	if len(s) < 4 {
		return 0, 0, strconv.ErrSyntax
	}
	v, err := strconv.ParseUint(s[:4], 16, 32)
	if err != nil {
		return 0, 0, strconv.ErrSyntax
	}
	return rune(v), 4, nil
}
