package font

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"io"
	"testing"
)

type sfntTable struct {
	tag      string
	checksum uint32
	data     []byte
}

// buildSfnt assembles a minimal font file with the given tables.
func buildSfnt(tables []sfntTable) []byte {
	var buf bytes.Buffer
	binary.Write(&buf, binary.BigEndian, uint32(0x00010000))
	binary.Write(&buf, binary.BigEndian, uint16(len(tables)))
	binary.Write(&buf, binary.BigEndian, [3]uint16{}) // searchRange etc.
	offset := 12 + 16*len(tables)
	for _, tab := range tables {
		buf.WriteString(tab.tag)
		binary.Write(&buf, binary.BigEndian, tab.checksum)
		binary.Write(&buf, binary.BigEndian, uint32(offset))
		binary.Write(&buf, binary.BigEndian, uint32(len(tab.data)))
		offset += (len(tab.data) + 3) &^ 3
	}
	for _, tab := range tables {
		buf.Write(tab.data)
		for buf.Len()%4 != 0 {
			buf.WriteByte(0)
		}
	}
	return buf.Bytes()
}

func TestToWOFF(t *testing.T) {
	long := bytes.Repeat([]byte{'A'}, 128)
	short := []byte{'Q', 'z', 'X', '!', 0x37, 0x02}
	sfnt := buildSfnt([]sfntTable{
		{tag: "glyf", checksum: 0x11111111, data: long},
		{tag: "name", checksum: 0x22222222, data: short},
	})

	woff, err := ToWOFF(sfnt)
	if err != nil {
		t.Fatal(err)
	}
	if got, want := string(woff[0:4]), "wOFF"; got != want {
		t.Errorf("signature = %q, want %q", got, want)
	}
	if got, want := binary.BigEndian.Uint32(woff[4:]), uint32(0x00010000); got != want {
		t.Errorf("flavor = %#08x, want %#08x", got, want)
	}
	if got, want := binary.BigEndian.Uint32(woff[8:]), uint32(len(woff)); got != want {
		t.Errorf("length field = %d, file has %d bytes", got, want)
	}
	if got, want := binary.BigEndian.Uint16(woff[12:]), uint16(2); got != want {
		t.Errorf("numTables = %d, want %d", got, want)
	}
	// 12 + 2*16 header bytes, 128 for glyf, 6 padded to 8 for name
	if got, want := binary.BigEndian.Uint32(woff[16:]), uint32(12+32+128+8); got != want {
		t.Errorf("totalSfntSize = %d, want %d", got, want)
	}

	type entry struct {
		tag                            string
		offset, compLen, origLen, csum uint32
	}
	readEntry := func(i int) entry {
		rec := woff[44+20*i:]
		return entry{
			tag:     string(rec[0:4]),
			offset:  binary.BigEndian.Uint32(rec[4:]),
			compLen: binary.BigEndian.Uint32(rec[8:]),
			origLen: binary.BigEndian.Uint32(rec[12:]),
			csum:    binary.BigEndian.Uint32(rec[16:]),
		}
	}

	glyf := readEntry(0)
	if glyf.tag != "glyf" || glyf.origLen != 128 || glyf.csum != 0x11111111 {
		t.Errorf("unexpected glyf entry %+v", glyf)
	}
	if glyf.offset%4 != 0 {
		t.Errorf("glyf offset %d not aligned", glyf.offset)
	}
	if glyf.compLen >= glyf.origLen {
		t.Errorf("glyf not compressed: %d >= %d", glyf.compLen, glyf.origLen)
	}
	zr, err := zlib.NewReader(bytes.NewReader(woff[glyf.offset : glyf.offset+glyf.compLen]))
	if err != nil {
		t.Fatal(err)
	}
	unpacked, err := io.ReadAll(zr)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(unpacked, long) {
		t.Error("glyf table does not round trip through zlib")
	}

	name := readEntry(1)
	if name.tag != "name" || name.csum != 0x22222222 {
		t.Errorf("unexpected name entry %+v", name)
	}
	if got, want := name.compLen, uint32(len(short)); got != want {
		t.Errorf("name compLength = %d, want %d (stored raw)", got, want)
	}
	if !bytes.Equal(woff[name.offset:name.offset+name.compLen], short) {
		t.Error("name table not stored verbatim")
	}
}

func TestToWOFFErrors(t *testing.T) {
	if _, err := ToWOFF([]byte{0, 1}); err == nil {
		t.Error("no error for a 2 byte font")
	}
	if _, err := ToWOFF([]byte("LOLZ too short to be real")); err == nil {
		t.Error("no error for a bad magic number")
	}
	// directory entry points past the end of the file
	broken := buildSfnt([]sfntTable{{tag: "cmap", data: []byte("abcd")}})
	binary.BigEndian.PutUint32(broken[12+12:], 4000)
	if _, err := ToWOFF(broken); err == nil {
		t.Error("no error for an out of bounds table")
	}
}
