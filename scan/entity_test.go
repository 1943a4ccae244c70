package scan

import (
	"testing"
)

func TestExpandNumeric(t *testing.T) {
	testdata := []struct {
		token string
		want  string
		ok    bool
	}{
		{"#65", "A", true},
		{"#x41", "A", true},
		{"#X41", "A", true},
		{"#8212", "—", true},
		{"#x2014", "—", true},
		{"#x10FFFF", string(rune(0x10FFFF)), true},
		{"#0", "\x00", true},
		{"#", "", false},
		{"#x", "", false},
		{"#xD800", "", false},
		{"#55296", "", false},
		{"#1114112", "", false},
		{"#x2g", "", false},
	}
	for _, td := range testdata {
		got, ok := Expand(td.token)
		if ok != td.ok {
			t.Errorf("Expand(%q) ok = %v, want %v", td.token, ok, td.ok)
			continue
		}
		if ok && got != td.want {
			t.Errorf("Expand(%q) = %q, want %q", td.token, got, td.want)
		}
	}
}

func TestExpandNamed(t *testing.T) {
	testdata := []struct {
		token string
		want  string
		ok    bool
	}{
		{"amp", "&", true},
		{"lt", "<", true},
		{"gt", ">", true},
		{"quot", "\"", true},
		{"semi", ";", true},
		{"mdash", "—", true},
		{"auml", "ä", true},
		{"Auml", "Ä", true},
		{"nbsp", " ", true},
		{"eacute", "é", true},
		{"", "", false},
		{"bogus", "", false},
		{"aumlx", "", false},
		{"AUML", "", false},
	}
	for _, td := range testdata {
		got, ok := Expand(td.token)
		if ok != td.ok {
			t.Errorf("Expand(%q) ok = %v, want %v", td.token, ok, td.ok)
			continue
		}
		if ok && got != td.want {
			t.Errorf("Expand(%q) = %q, want %q", td.token, got, td.want)
		}
	}
}

func TestExpandTwoCodepoints(t *testing.T) {
	got, ok := Expand("NotEqualTilde")
	if !ok {
		t.Fatal("Expand(NotEqualTilde) ok = false, want true")
	}
	if want := "≂̸"; got != want {
		t.Errorf("Expand(NotEqualTilde) = %q, want %q", got, want)
	}
	if _, ok := Resolve("NotEqualTilde"); ok {
		t.Error("Resolve(NotEqualTilde) ok = true, want false (two codepoints)")
	}
}

func TestResolve(t *testing.T) {
	testdata := []struct {
		token string
		cp    rune
		ok    bool
	}{
		{"amp", '&', true},
		{"#x20ac", 0x20AC, true},
		{"euro", 0x20AC, true},
		{"bogus", 0, false},
		{"#xD800", 0, false},
	}
	for _, td := range testdata {
		cp, ok := Resolve(td.token)
		if ok != td.ok {
			t.Errorf("Resolve(%q) ok = %v, want %v", td.token, ok, td.ok)
			continue
		}
		if ok && cp != td.cp {
			t.Errorf("Resolve(%q) = %#x, want %#x", td.token, cp, td.cp)
		}
	}
}

func TestReferenceToken(t *testing.T) {
	testdata := []struct {
		input string
		token string
		width int
		ok    bool
	}{
		{"&amp; rest", "amp", 5, true},
		{"&#x41;x", "#x41", 6, true},
		{"&;", "", 0, false},
		{"& amp;", "", 0, false},
		{"&unclosed", "", 0, false},
		{"&a-b;", "", 0, false},
	}
	for _, td := range testdata {
		token, width, ok := referenceToken(td.input)
		if ok != td.ok {
			t.Errorf("referenceToken(%q) ok = %v, want %v", td.input, ok, td.ok)
			continue
		}
		if token != td.token || width != td.width {
			t.Errorf("referenceToken(%q) = %q, %d, want %q, %d", td.input, token, width, td.token, td.width)
		}
	}
}
