package font

import (
	"bytes"
	"fmt"
	"os"

	"github.com/speedata/glyphbag/bag"
	"github.com/speedata/textlayout/fonts"
	"github.com/speedata/textlayout/fonts/truetype"
	"github.com/speedata/textlayout/harfbuzz"
)

// Face represents a loaded font face. All font parsing is done by the
// textlayout library, this type only asks the character map questions.
type Face struct {
	Filename   string
	Index      int
	UnitsPerEM int32
	fnt        harfbuzz.Face
	cmap       fonts.Cmap
}

// LoadFace loads a font face from disk. The index selects the sub font
// for TrueType collections and is 0 for plain font files.
func LoadFace(filename string, index int) (*Face, error) {
	r, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	bag.Logger.Infof("load font %s", filename)
	fnt, err := truetype.Load(r)
	if err != nil {
		r.Close()
		return nil, fmt.Errorf("parse %s: %w", filename, err)
	}
	if err = r.Close(); err != nil {
		return nil, err
	}
	if index < 0 || index >= len(fnt) {
		return nil, fmt.Errorf("%s holds %d faces, index %d does not exist", filename, len(fnt), index)
	}
	return fillFace(filename, index, fnt[index])
}

// NewFaceFromData parses an in-memory font file. The name shows up in
// reports and error messages.
func NewFaceFromData(name string, data []byte) (*Face, error) {
	fnt, err := truetype.Load(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", name, err)
	}
	return fillFace(name, 0, fnt[0])
}

func fillFace(filename string, index int, fnt harfbuzz.Face) (*Face, error) {
	cm, _ := fnt.Cmap()
	if cm == nil {
		return nil, fmt.Errorf("%s has no usable character map", filename)
	}
	return &Face{
		Filename:   filename,
		Index:      index,
		UnitsPerEM: int32(fnt.Upem()),
		fnt:        fnt,
		cmap:       cm,
	}, nil
}

// Inventory returns every codepoint the character map provides.
func (f *Face) Inventory() (bag.Set, error) {
	set := make(bag.Set)
	iter := f.cmap.Iter()
	for iter.Next() {
		cp, _ := iter.Char()
		set.Add(cp)
	}
	bag.Logger.Debugf("%s maps %d codepoints", f.Filename, len(set))
	return set, nil
}

// Name returns the file name the face was loaded from.
func (f *Face) Name() string {
	return f.Filename
}

// GID returns the glyph index for cp.
func (f *Face) GID(cp rune) (fonts.GID, bool) {
	return f.cmap.Lookup(cp)
}

// IsCFF reports whether the face carries PostScript outlines.
func (f *Face) IsCFF() bool {
	if otf, ok := f.fnt.(*truetype.Font); ok {
		return otf.Type == truetype.TypeOpenType
	}
	return false
}

// Subset reduces the face to the glyphs for the codepoints in keep and
// returns the packed font file. Glyph 0 always stays. The face is
// modified in place, so subset last.
func (f *Face) Subset(keep bag.Set) ([]byte, error) {
	gids := make([]fonts.GID, 0, len(keep)+1)
	gids = append(gids, 0)
	seen := map[fonts.GID]bool{0: true}
	for cp := range keep {
		gid, ok := f.cmap.Lookup(cp)
		if !ok || seen[gid] {
			continue
		}
		seen[gid] = true
		gids = append(gids, gid)
	}
	if err := f.fnt.Subset(gids); err != nil {
		return nil, fmt.Errorf("subset %s: %w", f.Filename, err)
	}
	var buf bytes.Buffer
	if err := f.fnt.WriteSubset(&buf); err != nil {
		return nil, fmt.Errorf("write subset %s: %w", f.Filename, err)
	}
	bag.Logger.Infof("subset %s: %d glyphs, %d bytes", f.Filename, len(gids), buf.Len())
	return buf.Bytes(), nil
}
