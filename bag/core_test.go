package bag

import (
	"testing"
)

func TestHistogramAdd(t *testing.T) {
	h := make(Histogram)
	for _, cp := range "abca" {
		h.Add(cp)
	}
	h.AddN('z', 5)
	if got, want := h['a'], uint64(2); got != want {
		t.Errorf("h['a'] = %d, want %d", got, want)
	}
	if got, want := h['z'], uint64(5); got != want {
		t.Errorf("h['z'] = %d, want %d", got, want)
	}
	if got, want := h.Total(), uint64(9); got != want {
		t.Errorf("h.Total() = %d, want %d", got, want)
	}
}

func TestHistogramMerge(t *testing.T) {
	a := Histogram{'x': 1, 'y': 2}
	b := Histogram{'y': 3, 'z': 4}
	a.Merge(b)
	if got, want := a['y'], uint64(5); got != want {
		t.Errorf("a['y'] = %d, want %d", got, want)
	}
	if got, want := len(a), 3; got != want {
		t.Errorf("len(a) = %d, want %d", got, want)
	}
}

func TestRecordsByCodepoint(t *testing.T) {
	h := Histogram{'b': 1, 'a': 3, 'c': 2}
	recs := h.Records(ByCodepoint)
	want := []rune{'a', 'b', 'c'}
	for i, rec := range recs {
		if rec.Codepoint != want[i] {
			t.Errorf("recs[%d].Codepoint = %c, want %c", i, rec.Codepoint, want[i])
		}
	}
}

func TestRecordsByCount(t *testing.T) {
	h := Histogram{'b': 2, 'a': 2, 'z': 9, 'q': 1}
	recs := h.Records(ByCount)
	want := []Record{{'z', 9}, {'a', 2}, {'b', 2}, {'q', 1}}
	if got := len(recs); got != len(want) {
		t.Fatalf("len(recs) = %d, want %d", got, len(want))
	}
	for i, rec := range recs {
		if rec != want[i] {
			t.Errorf("recs[%d] = %v, want %v", i, rec, want[i])
		}
	}
}

func TestSet(t *testing.T) {
	s := NewSet('k', 'a', 0x20AC)
	if !s.Has('a') {
		t.Error("s.Has('a') = false, want true")
	}
	if s.Has('b') {
		t.Error("s.Has('b') = true, want false")
	}
	s.Add('b')
	if got, want := len(s.Sorted()), 4; got != want {
		t.Errorf("len(s.Sorted()) = %d, want %d", got, want)
	}
	sorted := s.Sorted()
	for i := 1; i < len(sorted); i++ {
		if sorted[i-1] >= sorted[i] {
			t.Errorf("Sorted() not ascending at %d: %v", i, sorted)
		}
	}
}

func TestCodepoints(t *testing.T) {
	h := Histogram{'a': 1, 'b': 2}
	s := h.Codepoints()
	if got, want := len(s), 2; got != want {
		t.Errorf("len(s) = %d, want %d", got, want)
	}
	if !s.Has('a') || !s.Has('b') {
		t.Error("Codepoints() lost an entry")
	}
}
