package coverage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/speedata/glyphbag/bag"
)

// ErrMalformedList signals a codepoint list line that is not a bare
// decimal integer.
var ErrMalformedList = errors.New("malformed codepoint list entry")

// A ListSource is a glyph inventory read from a codepoint list file with
// one decimal codepoint per line.
type ListSource struct {
	name string
	set  bag.Set
}

// LoadList reads a codepoint list from r. Every line must hold exactly
// one decimal codepoint. Blank lines, comments, hex numbers or any other
// content abort the load with the offending line number.
func LoadList(r io.Reader, name string) (*ListSource, error) {
	set := make(bag.Set)
	lineno := 0
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		lineno++
		line := sc.Text()
		// ParseUint tolerates a leading +, a list line may not
		if line == "" || line[0] < '0' || line[0] > '9' {
			return nil, fmt.Errorf("%w: %s line %d: %q", ErrMalformedList, name, lineno, line)
		}
		n, err := strconv.ParseUint(line, 10, 31)
		if err != nil {
			return nil, fmt.Errorf("%w: %s line %d: %q", ErrMalformedList, name, lineno, line)
		}
		set.Add(rune(n))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	bag.Logger.Debugf("codepoint list %s: %d entries", name, len(set))
	return &ListSource{name: name, set: set}, nil
}

// LoadListFile opens filename and loads the codepoint list from it.
func LoadListFile(filename string) (*ListSource, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	ls, err := LoadList(r, filename)
	if err != nil {
		r.Close()
		return nil, err
	}
	if err = r.Close(); err != nil {
		return nil, err
	}
	return ls, nil
}

// Inventory returns the codepoints listed in the file.
func (ls *ListSource) Inventory() (bag.Set, error) {
	return ls.set, nil
}

// Name returns the file name the list was read from.
func (ls *ListSource) Name() string {
	return ls.name
}
