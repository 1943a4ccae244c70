package scan

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/net/html"
)

// Expand resolves a character reference token, the text between & and ;,
// to its expansion. Numeric references (#8212, #x2014) yield exactly the
// referenced scalar value. Named references use the HTML5 table and are
// case-sensitive. A few HTML5 names expand to two codepoints.
func Expand(token string) (string, bool) {
	if token == "" {
		return "", false
	}
	if token[0] == '#' {
		return expandNumeric(token[1:])
	}
	ref := "&" + token + ";"
	exp := html.UnescapeString(ref)
	if exp == ref {
		return "", false
	}
	// a partial match leaves the unconsumed tail, ending in our
	// semicolon, in place. The one expansion that is itself a semicolon
	// comes from &semi;.
	if strings.HasSuffix(exp, ";") && exp != ";" {
		return "", false
	}
	return exp, true
}

func expandNumeric(num string) (string, bool) {
	base := 10
	if len(num) > 0 && (num[0] == 'x' || num[0] == 'X') {
		num = num[1:]
		base = 16
	}
	n, err := strconv.ParseUint(num, base, 32)
	if err != nil {
		return "", false
	}
	cp := rune(n)
	if n > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
		return "", false
	}
	return string(cp), true
}

// Resolve maps a character reference token to a single codepoint. The
// rare named references that expand to more than one codepoint do not
// resolve here; the scanner still counts every codepoint of their
// expansion.
func Resolve(token string) (rune, bool) {
	exp, ok := Expand(token)
	if !ok {
		return 0, false
	}
	if utf8.RuneCountInString(exp) != 1 {
		return 0, false
	}
	cp, _ := utf8.DecodeRuneInString(exp)
	return cp, true
}

// referenceToken reads a character reference at the start of s (which
// begins with &). It reports the token between & and ; and the total
// width including both delimiters.
func referenceToken(s string) (string, int, bool) {
	j := 1
	for j < len(s) {
		c := s[j]
		if c == ';' {
			if j == 1 {
				return "", 0, false
			}
			return s[1:j], j + 1, true
		}
		if c == '#' || c >= '0' && c <= '9' || c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' {
			j++
			continue
		}
		return "", 0, false
	}
	return "", 0, false
}
