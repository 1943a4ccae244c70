package scan

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/speedata/css/scanner"
)

// countCSS tokenizes a stylesheet and counts the character content of its
// string tokens. Generated content (content: "…") is the one way a
// stylesheet injects characters into rendered text, so the css option
// adds those to the histogram.
func (s *Scanner) countCSS(text string) {
	sc := scanner.New(text)
	for {
		tok := sc.Next()
		if tok.Type == scanner.EOF || tok.Type == scanner.Error {
			break
		}
		if tok.Type != scanner.String {
			continue
		}
		// the token value keeps its surrounding quotes
		v := strings.Trim(tok.Value, `'"`)
		s.countLiteral(cssUnescape(v))
	}
}

// cssUnescape decodes backslash escapes in a CSS string: up to six hex
// digits followed by an optional space, or a single escaped character.
func cssUnescape(v string) string {
	if !strings.Contains(v, `\`) {
		return v
	}
	var b strings.Builder
	i := 0
	for i < len(v) {
		if v[i] != '\\' {
			b.WriteByte(v[i])
			i++
			continue
		}
		i++
		if i >= len(v) {
			break
		}
		j := i
		for j < len(v) && j-i < 6 && isHexByte(v[j]) {
			j++
		}
		if j > i {
			n, _ := strconv.ParseUint(v[i:j], 16, 32)
			cp := rune(n)
			if n == 0 || n > 0x10FFFF || (cp >= 0xD800 && cp <= 0xDFFF) {
				cp = utf8.RuneError
			}
			b.WriteRune(cp)
			i = j
			if i < len(v) && (v[i] == ' ' || v[i] == '\t' || v[i] == '\n') {
				i++
			}
			continue
		}
		cp, size := utf8.DecodeRuneInString(v[i:])
		b.WriteRune(cp)
		i += size
	}
	return b.String()
}

func isHexByte(c byte) bool {
	return c >= '0' && c <= '9' || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}
