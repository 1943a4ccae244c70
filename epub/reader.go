package epub

import (
	"archive/zip"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/speedata/glyphbag/bag"
)

// ErrArchive signals a container that cannot be opened or read.
var ErrArchive = errors.New("cannot read archive")

// A Reader is an opened EPUB (or plain ZIP) container.
type Reader struct {
	filename string
	zr       *zip.ReadCloser
}

// Open opens the container at filename.
func Open(filename string) (*Reader, error) {
	zr, err := zip.OpenReader(filename)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %s", ErrArchive, filename, err)
	}
	bag.Logger.Debugf("open archive %s (%d members)", filename, len(zr.File))
	return &Reader{filename: filename, zr: zr}, nil
}

// Close releases the underlying file.
func (r *Reader) Close() error {
	return r.zr.Close()
}

// Filename returns the path the container was opened from.
func (r *Reader) Filename() string {
	return r.filename
}

// ContentName reports whether a member name counts as scannable markup:
// it ends in .xhtml, .html or .xml (case-insensitive) and does not live
// under META-INF.
func ContentName(name string) bool {
	return nameWithSuffix(name, ".xhtml", ".html", ".xml")
}

// StyleName reports whether a member name is a stylesheet outside
// META-INF.
func StyleName(name string) bool {
	return nameWithSuffix(name, ".css")
}

func nameWithSuffix(name string, suffixes ...string) bool {
	lower := strings.ToLower(name)
	if strings.HasPrefix(lower, "meta-inf/") {
		return false
	}
	for _, suffix := range suffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}

// ContentMembers returns the markup members that contribute text, in
// archive order.
func (r *Reader) ContentMembers() []string {
	return r.members(ContentName)
}

// StyleMembers returns the stylesheet members, in archive order.
func (r *Reader) StyleMembers() []string {
	return r.members(StyleName)
}

func (r *Reader) members(keep func(string) bool) []string {
	var names []string
	for _, f := range r.zr.File {
		if keep(f.Name) {
			names = append(names, f.Name)
		}
	}
	return names
}

// ReadMember returns the contents of the named member.
func (r *Reader) ReadMember(name string) ([]byte, error) {
	for _, f := range r.zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s: %s", ErrArchive, r.filename, name, err)
		}
		data, err := io.ReadAll(rc)
		if cerr := rc.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %s: %s", ErrArchive, r.filename, name, err)
		}
		return data, nil
	}
	return nil, fmt.Errorf("%w: %s: no member %s", ErrArchive, r.filename, name)
}

// Identifier returns the publication identifier. META-INF/container.xml
// names the package document, whose unique-identifier attribute points at
// the dc:identifier element holding the id. This is the string the
// obfuscation key is derived from.
func (r *Reader) Identifier() (string, error) {
	data, err := r.ReadMember("META-INF/container.xml")
	if err != nil {
		return "", err
	}
	container, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %s: container.xml: %s", ErrArchive, r.filename, err)
	}
	opfName, _ := container.Find("rootfile").First().Attr("full-path")
	if opfName == "" {
		return "", fmt.Errorf("%w: %s: container.xml names no rootfile", ErrArchive, r.filename)
	}
	data, err = r.ReadMember(opfName)
	if err != nil {
		return "", err
	}
	opf, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("%w: %s: %s: %s", ErrArchive, r.filename, opfName, err)
	}
	uid, _ := opf.Find("package").First().Attr("unique-identifier")

	var first, matched string
	opf.Find("*").Each(func(_ int, sel *goquery.Selection) {
		name := goquery.NodeName(sel)
		if name != "dc:identifier" && name != "identifier" {
			return
		}
		id := strings.TrimSpace(sel.Text())
		if id == "" {
			return
		}
		if first == "" {
			first = id
		}
		if v, ok := sel.Attr("id"); ok && v == uid && matched == "" {
			matched = id
		}
	})
	if matched != "" {
		return matched, nil
	}
	if first != "" {
		return first, nil
	}
	return "", fmt.Errorf("%w: %s: %s has no identifier", ErrArchive, r.filename, opfName)
}
