package coverage

import (
	"errors"
	"strings"
	"testing"
)

func TestLoadList(t *testing.T) {
	ls, err := LoadList(strings.NewReader("65\n66\n8364\n65\n"), "glyphs.txt")
	if err != nil {
		t.Fatal(err)
	}
	inv, err := ls.Inventory()
	if err != nil {
		t.Fatal(err)
	}
	if got, want := len(inv), 3; got != want {
		t.Errorf("len(inv) = %d, want %d", got, want)
	}
	for _, cp := range []rune{'A', 'B', 0x20AC} {
		if !inv.Has(cp) {
			t.Errorf("inv.Has(%#x) = false, want true", cp)
		}
	}
	if got, want := ls.Name(), "glyphs.txt"; got != want {
		t.Errorf("ls.Name() = %s, want %s", got, want)
	}
}

func TestLoadListCRLF(t *testing.T) {
	ls, err := LoadList(strings.NewReader("65\r\n66\r\n"), "glyphs.txt")
	if err != nil {
		t.Fatal(err)
	}
	inv, _ := ls.Inventory()
	if got, want := len(inv), 2; got != want {
		t.Errorf("len(inv) = %d, want %d", got, want)
	}
}

func TestLoadListErrors(t *testing.T) {
	testdata := []struct {
		input string
		line  string
	}{
		{"65\n\n66\n", "line 2"},
		{"65\n0x41\n", "line 2"},
		{"# comment\n65\n", "line 1"},
		{"65\n-3\n", "line 2"},
		{"65\n66 67\n", "line 2"},
		{"65\n4294967295\n", "line 2"},
	}
	for _, td := range testdata {
		_, err := LoadList(strings.NewReader(td.input), "glyphs.txt")
		if !errors.Is(err, ErrMalformedList) {
			t.Errorf("LoadList(%q) err = %v, want ErrMalformedList", td.input, err)
			continue
		}
		if !strings.Contains(err.Error(), td.line) {
			t.Errorf("LoadList(%q) err = %q, want it to name %s", td.input, err, td.line)
		}
	}
}
