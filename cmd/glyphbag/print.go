package main

import (
	"fmt"
	"io"
	"strings"
	"unicode"

	"github.com/speedata/glyphbag/bag"
	"github.com/speedata/glyphbag/ucd"
	"golang.org/x/text/unicode/norm"
)

// escapes for characters that would wreck the tab separated output
var charEscapes = map[rune]string{
	'\a': `\a`,
	'\b': `\b`,
	'\t': `\t`,
	'\n': `\n`,
	'\v': `\v`,
	'\f': `\f`,
	'\r': `\r`,
}

// displayChar returns a printable form of cp for one table cell. Control
// characters come out as escapes or empty, never raw.
func displayChar(cp rune) string {
	if esc, ok := charEscapes[cp]; ok {
		return esc
	}
	return ucd.Symbol(cp)
}

// printRecords writes one line per record: just the decimal codepoint, or
// with verbose the character, decimal and hex codepoints, name and count.
func printRecords(w io.Writer, recs []bag.Record, verbose bool, withCount bool) {
	for _, rec := range recs {
		if !verbose {
			fmt.Fprintf(w, "%d\n", rec.Codepoint)
			continue
		}
		if withCount {
			fmt.Fprintf(w, "'%s'\t%d\t%#x\t%s\t%d\n", displayChar(rec.Codepoint), rec.Codepoint, rec.Codepoint, ucd.Name(rec.Codepoint), rec.Count)
		} else {
			fmt.Fprintf(w, "'%s'\t%d\t%#x\t%s\n", displayChar(rec.Codepoint), rec.Codepoint, rec.Codepoint, ucd.Name(rec.Codepoint))
		}
	}
}

// setRecords turns a codepoint set into records in codepoint order.
func setRecords(set bag.Set) []bag.Record {
	recs := make([]bag.Record, 0, len(set))
	for _, cp := range set.Sorted() {
		recs = append(recs, bag.Record{Codepoint: cp})
	}
	return recs
}

// rangeRecords filters recs to the codepoints inside the block.
func rangeRecords(recs []bag.Record, b ucd.Block) []bag.Record {
	var kept []bag.Record
	for _, rec := range recs {
		if b.Contains(rec.Codepoint) {
			kept = append(kept, rec)
		}
	}
	return kept
}

// blockRecords lists every scalar value of the block. Surrogates have no
// character and are left out.
func blockRecords(b ucd.Block) []bag.Record {
	var recs []bag.Record
	for cp := b.Low; cp <= b.High; cp++ {
		if cp >= 0xD800 && cp <= 0xDFFF {
			continue
		}
		recs = append(recs, bag.Record{Codepoint: cp})
	}
	return recs
}

// category returns the two letter Unicode general category of cp.
func category(cp rune) string {
	for name, table := range unicode.Categories {
		if len(name) == 2 && unicode.Is(table, cp) {
			return name
		}
	}
	return "Cn"
}

// printCharacterInfo writes the long form lookup record for one character.
func printCharacterInfo(w io.Writer, cp rune) {
	s := string(cp)
	fmt.Fprintf(w, "Name          %s\n", ucd.Name(cp))
	fmt.Fprintf(w, "Character     %s\n", displayChar(cp))
	fmt.Fprintf(w, "Dec Codepoint %d\n", cp)
	fmt.Fprintf(w, "Hex Codepoint %#x\n", cp)
	fmt.Fprintf(w, "Lowercase     %s\n", strings.ToLower(s))
	fmt.Fprintf(w, "Uppercase     %s\n", strings.ToUpper(s))
	fmt.Fprintf(w, "Category      %s\n", category(cp))
	fmt.Fprintf(w, "NFC           %s\n", norm.NFC.String(s))
	fmt.Fprintf(w, "NFD           %s\n", norm.NFD.String(s))
}
