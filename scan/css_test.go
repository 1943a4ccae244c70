package scan

import (
	"testing"
)

func TestCSSUnescape(t *testing.T) {
	testdata := []struct {
		input string
		want  string
	}{
		{"plain", "plain"},
		{`a\62 c`, "abc"},
		{`\2022`, "•"},
		{`\2022 x`, "•x"},
		{`\"`, `"`},
		{`\\`, `\`},
		{`\110000`, "�"},
		{`\0`, "�"},
		{`tail\`, "tail"},
	}
	for _, td := range testdata {
		if got := cssUnescape(td.input); got != td.want {
			t.Errorf("cssUnescape(%q) = %q, want %q", td.input, got, td.want)
		}
	}
}

func TestCountCSS(t *testing.T) {
	s, err := New(Options{CSS: true})
	if err != nil {
		t.Fatal(err)
	}
	s.countCSS(`/* comment ☄ */
.chapter::after { content: "\2042"; }
li::marker { content: "→ "; }`)
	h := s.Histogram()
	if got, want := h[0x2042], uint64(1); got != want {
		t.Errorf("h[asterism] = %d, want %d", got, want)
	}
	if got, want := h[0x2192], uint64(1); got != want {
		t.Errorf("h[arrow] = %d, want %d", got, want)
	}
	if got := h[0x2604]; got != 0 {
		t.Errorf("h[comet] = %d, want 0 (comments are not content)", got)
	}
	if got := h['c']; got != 0 {
		t.Errorf("h['c'] = %d, want 0 (identifiers are not content)", got)
	}
}
