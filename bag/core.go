package bag

import (
	"sort"
)

// A Record is one codepoint together with the number of times it occurs in
// the scanned text.
type Record struct {
	Codepoint rune
	Count     uint64
}

// Order selects how records are sorted in reports.
type Order int

const (
	// ByCodepoint sorts by ascending codepoint.
	ByCodepoint Order = iota
	// ByCount sorts by descending count, ties by ascending codepoint.
	ByCount
)

// SortRecords sorts recs in place.
func SortRecords(recs []Record, ord Order) {
	switch ord {
	case ByCount:
		sort.Slice(recs, func(i, j int) bool {
			if recs[i].Count != recs[j].Count {
				return recs[i].Count > recs[j].Count
			}
			return recs[i].Codepoint < recs[j].Codepoint
		})
	default:
		sort.Slice(recs, func(i, j int) bool {
			return recs[i].Codepoint < recs[j].Codepoint
		})
	}
}

// A Histogram counts how often each codepoint occurs.
type Histogram map[rune]uint64

// Add counts one occurrence of cp.
func (h Histogram) Add(cp rune) {
	h[cp]++
}

// AddN counts n occurrences of cp.
func (h Histogram) AddN(cp rune, n uint64) {
	h[cp] += n
}

// Merge adds all counts from other to h.
func (h Histogram) Merge(other Histogram) {
	for cp, n := range other {
		h[cp] += n
	}
}

// Total returns the sum of all counts.
func (h Histogram) Total() uint64 {
	var n uint64
	for _, c := range h {
		n += c
	}
	return n
}

// Codepoints returns the set of codepoints with a nonzero count.
func (h Histogram) Codepoints() Set {
	s := make(Set, len(h))
	for cp := range h {
		s[cp] = struct{}{}
	}
	return s
}

// Records returns all histogram entries, sorted.
func (h Histogram) Records(ord Order) []Record {
	recs := make([]Record, 0, len(h))
	for cp, n := range h {
		recs = append(recs, Record{Codepoint: cp, Count: n})
	}
	SortRecords(recs, ord)
	return recs
}

// A Set is an unordered set of codepoints.
type Set map[rune]struct{}

// NewSet returns a set containing the given codepoints.
func NewSet(cps ...rune) Set {
	s := make(Set, len(cps))
	for _, cp := range cps {
		s[cp] = struct{}{}
	}
	return s
}

// Add puts cp into the set.
func (s Set) Add(cp rune) {
	s[cp] = struct{}{}
}

// Has reports whether cp is in the set.
func (s Set) Has(cp rune) bool {
	_, ok := s[cp]
	return ok
}

// Sorted returns the codepoints in ascending order.
func (s Set) Sorted() []rune {
	cps := make([]rune, 0, len(s))
	for cp := range s {
		cps = append(cps, cp)
	}
	sort.Slice(cps, func(i, j int) bool { return cps[i] < cps[j] })
	return cps
}
