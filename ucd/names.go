package ucd

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/unicode/runenames"
)

// The character database has no names for control characters, they are
// reported as <control>. These aliases make listings readable.
var controlNames = map[rune]string{
	0x00: "NULL",
	0x01: "START OF HEADING",
	0x02: "START OF TEXT",
	0x03: "END OF TEXT",
	0x04: "END OF TRANSMISSION",
	0x05: "ENQUIRY",
	0x06: "ACKNOWLEDGE",
	0x07: "BELL",
	0x08: "BACKSPACE",
	0x09: "CHARACTER TABULATION",
	0x0A: "LINE FEED",
	0x0B: "LINE TABULATION",
	0x0C: "FORM FEED",
	0x0D: "CARRIAGE RETURN",
	0x0E: "SHIFT OUT",
	0x0F: "SHIFT IN",
	0x10: "DATA LINK ESCAPE",
	0x11: "DEVICE CONTROL ONE",
	0x12: "DEVICE CONTROL TWO",
	0x13: "DEVICE CONTROL THREE",
	0x14: "DEVICE CONTROL FOUR",
	0x15: "NEGATIVE ACKNOWLEDGE",
	0x16: "SYNCHRONOUS IDLE",
	0x17: "END OF TRANSMISSION BLOCK",
	0x18: "CANCEL",
	0x19: "END OF MEDIUM",
	0x1A: "SUBSTITUTE",
	0x1B: "ESCAPE",
	0x1C: "INFORMATION SEPARATOR FOUR",
	0x1D: "INFORMATION SEPARATOR THREE",
	0x1E: "INFORMATION SEPARATOR TWO",
	0x1F: "INFORMATION SEPARATOR ONE",
	0x7F: "DELETE",
}

// Name returns the Unicode character name for cp, or the empty string if
// the character has none.
func Name(cp rune) string {
	if n, ok := controlNames[cp]; ok {
		return n
	}
	return runenames.Name(cp)
}

// Symbol returns cp as a printable string. Control characters, surrogates
// and invalid scalars yield the empty string.
func Symbol(cp rune) string {
	if cp < 0x20 || (cp >= 0x7F && cp <= 0x9F) {
		return ""
	}
	if !utf8.ValidRune(cp) {
		return ""
	}
	return string(cp)
}

// Lookup finds a single character. The query is either a literal
// character, d<decimal>, x<hex> or an exact character name
// (case-insensitive).
func Lookup(query string) (rune, bool) {
	if utf8.RuneCountInString(query) == 1 {
		cp, _ := utf8.DecodeRuneInString(query)
		return cp, true
	}
	if len(query) > 1 {
		switch query[0] {
		case 'd':
			if n, err := strconv.ParseUint(query[1:], 10, 32); err == nil {
				return scalar(rune(n))
			}
		case 'x':
			if n, err := strconv.ParseUint(query[1:], 16, 32); err == nil {
				return scalar(rune(n))
			}
		}
	}
	for cp := rune(0); cp <= 0x10FFFF; cp++ {
		if cp == 0xD800 {
			cp = 0xE000
		}
		if n := Name(cp); n != "" && strings.EqualFold(n, query) {
			return cp, true
		}
	}
	return 0, false
}

// Search returns all codepoints whose character name contains every
// whitespace-separated word of query, in ascending order. This walks the
// whole character database and is slow.
func Search(query string) []rune {
	words := strings.Fields(strings.ToUpper(query))
	if len(words) == 0 {
		return nil
	}
	var found []rune
	for cp := rune(0); cp <= 0x10FFFF; cp++ {
		if cp == 0xD800 {
			cp = 0xE000
		}
		name := Name(cp)
		if name == "" {
			continue
		}
		all := true
		for _, w := range words {
			if !strings.Contains(name, w) {
				all = false
				break
			}
		}
		if all {
			found = append(found, cp)
		}
	}
	return found
}

func scalar(cp rune) (rune, bool) {
	if cp > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
		return 0, false
	}
	return cp, true
}
