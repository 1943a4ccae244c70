// Package scan builds codepoint usage histograms from plain text, markup
// files and EPUB containers. Markup scanning deliberately over-counts: a
// character that a renderer might display is never missed, even when it
// hides in a comment or an attribute value.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/speedata/glyphbag/bag"
	"github.com/speedata/glyphbag/epub"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
)

// ErrDecode signals input that cannot be decoded under the selected
// encoding.
var ErrDecode = errors.New("cannot decode")

// Options control how sources are scanned.
type Options struct {
	// Preserve scans markup sources raw, tag names and all, instead of
	// stripping markup syntax.
	Preserve bool
	// Encoding is the IANA name of the source encoding. Empty means
	// UTF-8.
	Encoding string
	// Lenient skips undecodable archive members with a warning instead
	// of aborting the scan.
	Lenient bool
	// CSS also counts the string token content of .css archive members.
	CSS bool
}

// A Scanner accumulates one histogram over any number of sources.
type Scanner struct {
	opts Options
	enc  encoding.Encoding
	hist bag.Histogram
}

// New creates a Scanner. The encoding name is resolved once, up front.
func New(opts Options) (*Scanner, error) {
	s := &Scanner{opts: opts, hist: make(bag.Histogram)}
	name := opts.Encoding
	if name != "" && !strings.EqualFold(name, "utf-8") && !strings.EqualFold(name, "utf8") {
		e, err := htmlindex.Get(name)
		if err != nil {
			return nil, fmt.Errorf("unknown encoding %q", name)
		}
		s.enc = e
	}
	return s, nil
}

// Histogram returns the accumulated counts.
func (s *Scanner) Histogram() bag.Histogram {
	return s.hist
}

// Bytes scans one source blob under the given name.
func (s *Scanner) Bytes(data []byte, name string) error {
	text, err := s.decode(data, name)
	if err != nil {
		return err
	}
	if s.opts.Preserve {
		s.countText(text)
	} else {
		s.stripMarkup(text)
	}
	return nil
}

// File scans a single file.
func (s *Scanner) File(filename string) error {
	bag.Logger.Debugf("scan file %s", filename)
	data, err := os.ReadFile(filename)
	if err != nil {
		return err
	}
	return s.Bytes(data, filename)
}

// Dir scans an unpacked publication: every file below dirname whose
// relative path passes the archive member filter contributes.
func (s *Scanner) Dir(dirname string) error {
	return filepath.WalkDir(dirname, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(dirname, path)
		if err != nil {
			rel = path
		}
		if !epub.ContentName(filepath.ToSlash(rel)) {
			return nil
		}
		if err := s.File(path); err != nil {
			if s.opts.Lenient && errors.Is(err, ErrDecode) {
				bag.Logger.Warnf("skipping %s: %s", path, err)
				return nil
			}
			return err
		}
		return nil
	})
}

// EPUB scans the content members of an EPUB or ZIP archive, plus the
// stylesheet members when the CSS option is on.
func (s *Scanner) EPUB(filename string) error {
	r, err := epub.Open(filename)
	if err != nil {
		return err
	}
	defer r.Close()
	for _, name := range r.ContentMembers() {
		data, err := r.ReadMember(name)
		if err != nil {
			return err
		}
		if err := s.Bytes(data, filename+":"+name); err != nil {
			if s.opts.Lenient && errors.Is(err, ErrDecode) {
				bag.Logger.Warnf("skipping %s: %s", name, err)
				continue
			}
			return err
		}
	}
	if !s.opts.CSS {
		return nil
	}
	for _, name := range r.StyleMembers() {
		data, err := r.ReadMember(name)
		if err != nil {
			return err
		}
		text, err := s.decode(data, filename+":"+name)
		if err != nil {
			if s.opts.Lenient {
				bag.Logger.Warnf("skipping %s: %s", name, err)
				continue
			}
			return err
		}
		s.countCSS(text)
	}
	return nil
}

// decode turns raw bytes into text. UTF-8 input is validated, anything
// else goes through the decoder for the configured encoding. Undecodable
// input is a hard error, never silently replaced.
func (s *Scanner) decode(data []byte, name string) (string, error) {
	if s.enc == nil {
		if !utf8.Valid(data) {
			return "", fmt.Errorf("%w: %s: invalid UTF-8", ErrDecode, name)
		}
		return string(data), nil
	}
	decoded, err := s.enc.NewDecoder().Bytes(data)
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s", ErrDecode, name, err)
	}
	text := string(decoded)
	// the decoders substitute U+FFFD for bytes they cannot map
	if strings.ContainsRune(text, utf8.RuneError) {
		return "", fmt.Errorf("%w: %s: undecodable input for encoding %s", ErrDecode, name, s.opts.Encoding)
	}
	return text, nil
}

// countText counts every codepoint of text, expanding character
// references.
func (s *Scanner) countText(text string) {
	i := 0
	for i < len(text) {
		if text[i] == '&' {
			if tok, width, ok := referenceToken(text[i:]); ok {
				if exp, ok := Expand(tok); ok {
					for _, cp := range exp {
						s.hist.Add(cp)
					}
					i += width
					continue
				}
			}
		}
		cp, size := utf8.DecodeRuneInString(text[i:])
		s.hist.Add(cp)
		i += size
	}
}

// countLiteral counts every codepoint of text as-is.
func (s *Scanner) countLiteral(text string) {
	for _, cp := range text {
		s.hist.Add(cp)
	}
}

// stripMarkup scans markup without building a document tree. Character
// data and attribute values are counted with references expanded, comment
// interiors are counted literally, tag and attribute names and the markup
// delimiters themselves are not counted. A < that opens no parseable tag
// stays literal text.
func (s *Scanner) stripMarkup(text string) {
	runStart := 0
	i := 0
	for i < len(text) {
		if text[i] != '<' {
			i++
			continue
		}
		if strings.HasPrefix(text[i:], "<!--") {
			if idx := strings.Index(text[i+4:], "-->"); idx >= 0 {
				s.countText(text[runStart:i])
				s.countLiteral(text[i+4 : i+4+idx])
				i += 4 + idx + 3
				runStart = i
				continue
			}
		} else if end, ok := findTagEnd(text, i); ok {
			s.countText(text[runStart:i])
			s.scanTag(text[i+1 : end])
			i = end + 1
			runStart = i
			continue
		}
		i++
	}
	s.countText(text[runStart:])
}

// findTagEnd locates the closing > of a tag opened at text[i]. It reports
// false when the < does not start a tag: the next byte must be a letter,
// /, ! or ?, and an unquoted > must follow before the end of input.
func findTagEnd(text string, i int) (int, bool) {
	if i+1 >= len(text) {
		return 0, false
	}
	c := text[i+1]
	letter := c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
	if !letter && c != '/' && c != '!' && c != '?' {
		return 0, false
	}
	var quote byte
	for j := i + 1; j < len(text); j++ {
		switch {
		case quote != 0:
			if text[j] == quote {
				quote = 0
			}
		case text[j] == '"' || text[j] == '\'':
			quote = text[j]
		case text[j] == '>':
			return j, true
		}
	}
	return 0, false
}

// scanTag walks the region between < and >, skipping the tag name and
// attribute names but counting attribute values. Values may be displayed
// (alt, title), names never are.
func (s *Scanner) scanTag(inner string) {
	j := 0
	if j < len(inner) && inner[j] == '/' {
		j++
	}
	for j < len(inner) && !isTagSpace(inner[j]) {
		j++
	}
	for j < len(inner) {
		if isTagSpace(inner[j]) {
			j++
			continue
		}
		// attribute name
		for j < len(inner) && !isTagSpace(inner[j]) && inner[j] != '=' {
			j++
		}
		for j < len(inner) && isTagSpace(inner[j]) {
			j++
		}
		if j >= len(inner) || inner[j] != '=' {
			continue
		}
		j++
		for j < len(inner) && isTagSpace(inner[j]) {
			j++
		}
		if j < len(inner) && (inner[j] == '"' || inner[j] == '\'') {
			quote := inner[j]
			j++
			end := strings.IndexByte(inner[j:], quote)
			if end < 0 {
				s.countText(inner[j:])
				return
			}
			s.countText(inner[j : j+end])
			j += end + 1
		} else {
			start := j
			for j < len(inner) && !isTagSpace(inner[j]) {
				j++
			}
			s.countText(inner[start:j])
		}
	}
}

func isTagSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}
