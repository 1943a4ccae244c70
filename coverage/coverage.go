package coverage

import (
	"errors"

	"github.com/speedata/glyphbag/bag"
)

// A Source yields the glyph inventory to check text against. Font files
// and codepoint list files both act as sources.
type Source interface {
	// Inventory returns the set of codepoints the source provides.
	Inventory() (bag.Set, error)
	// Name describes the source in reports and error messages.
	Name() string
}

// ErrConflictingSource signals that not exactly one glyph source was
// supplied.
var ErrConflictingSource = errors.New("exactly one glyph source (font or codepoint list) required")

// Select picks the single configured source. Passing both a font and a
// list, or neither, is an error.
func Select(font Source, list Source) (Source, error) {
	switch {
	case font != nil && list != nil:
		return nil, ErrConflictingSource
	case font != nil:
		return font, nil
	case list != nil:
		return list, nil
	default:
		return nil, ErrConflictingSource
	}
}

// Missing returns a record for every scanned codepoint the inventory does
// not provide, sorted by ord. Control characters count like everything
// else, so the missing records and the keep set together cover the whole
// histogram.
func Missing(h bag.Histogram, inv bag.Set, ord bag.Order) []bag.Record {
	var recs []bag.Record
	for cp, n := range h {
		if !inv.Has(cp) {
			recs = append(recs, bag.Record{Codepoint: cp, Count: n})
		}
	}
	bag.SortRecords(recs, ord)
	return recs
}

// Keep returns the part of the inventory that the scanned text uses.
func Keep(h bag.Histogram, inv bag.Set) bag.Set {
	keep := make(bag.Set)
	for cp := range inv {
		if _, ok := h[cp]; ok {
			keep.Add(cp)
		}
	}
	return keep
}

// Drop returns the part of the inventory that the scanned text never
// uses.
func Drop(h bag.Histogram, inv bag.Set) bag.Set {
	drop := make(bag.Set)
	for cp := range inv {
		if _, ok := h[cp]; !ok {
			drop.Add(cp)
		}
	}
	return drop
}
