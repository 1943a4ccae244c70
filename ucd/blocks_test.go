package ucd

import (
	"errors"
	"testing"
)

func TestResolveBlockName(t *testing.T) {
	testdata := []struct {
		token string
		low   rune
		high  rune
	}{
		{"Basic Latin", 0x0000, 0x007F},
		{"basic latin", 0x0000, 0x007F},
		{"CYRILLIC", 0x0400, 0x04FF},
		{"Hiragana", 0x3040, 0x309F},
		{"latin extended-a", 0x0100, 0x017F},
		{"CJK Unified Ideographs", 0x4E00, 0x9FFF},
	}
	for _, td := range testdata {
		b, err := Resolve(td.token)
		if err != nil {
			t.Fatalf("Resolve(%q): %s", td.token, err)
		}
		if b.Low != td.low || b.High != td.high {
			t.Errorf("Resolve(%q) = %04X-%04X, want %04X-%04X", td.token, b.Low, b.High, td.low, td.high)
		}
	}
}

func TestResolvePair(t *testing.T) {
	testdata := []struct {
		token string
		low   rune
		high  rune
	}{
		{"97-122", 97, 122},
		{"0x61-0x7a", 97, 122},
		{"0X61-0X7A", 97, 122},
		{"65-0x5A", 65, 90},
		{"0-0", 0, 0},
	}
	for _, td := range testdata {
		b, err := Resolve(td.token)
		if err != nil {
			t.Fatalf("Resolve(%q): %s", td.token, err)
		}
		if b.Low != td.low || b.High != td.high {
			t.Errorf("Resolve(%q) = %d-%d, want %d-%d", td.token, b.Low, b.High, td.low, td.high)
		}
		if b.Name != "" {
			t.Errorf("Resolve(%q).Name = %q, want empty", td.token, b.Name)
		}
	}
}

func TestResolveErrors(t *testing.T) {
	testdata := []struct {
		token string
		want  error
	}{
		{"", ErrInvalidRange},
		{"122-97", ErrInvalidRange},
		{"12-", ErrInvalidRange},
		{"12", ErrInvalidRange},
		{"12x-15", ErrInvalidRange},
		{"97-122-200", ErrInvalidRange},
		{"0x110000-0x110001", ErrInvalidRange},
		{"no such block", ErrUnknownBlock},
		{"basic latin ", ErrUnknownBlock},
	}
	for _, td := range testdata {
		_, err := Resolve(td.token)
		if !errors.Is(err, td.want) {
			t.Errorf("Resolve(%q) err = %v, want %v", td.token, err, td.want)
		}
	}
}

func TestCatalogOrdered(t *testing.T) {
	blocks := Blocks()
	if len(blocks) == 0 {
		t.Fatal("empty catalog")
	}
	seen := map[string]bool{}
	for i, b := range blocks {
		if b.Low > b.High {
			t.Errorf("block %s: low above high", b.Name)
		}
		if b.Name == "" {
			t.Errorf("block %d has no name", i)
		}
		if seen[b.Name] {
			t.Errorf("duplicate block name %s", b.Name)
		}
		seen[b.Name] = true
		if i > 0 && blocks[i-1].High >= b.Low {
			t.Errorf("block %s overlaps %s", blocks[i-1].Name, b.Name)
		}
	}
}

func TestContains(t *testing.T) {
	b, err := Resolve("Greek and Coptic")
	if err != nil {
		t.Fatal(err)
	}
	if !b.Contains(0x03B1) {
		t.Error("Contains(U+03B1) = false, want true")
	}
	if b.Contains(0x0061) {
		t.Error("Contains(U+0061) = true, want false")
	}
}
