package font

import (
	"bytes"
	"compress/zlib"
	"encoding/binary"
	"fmt"

	"github.com/speedata/glyphbag/bag"
)

const woffSignature = 0x774f4646 // "wOFF"

// woffHeader is the 44 byte file header from the WOFF 1.0 specification.
type woffHeader struct {
	Signature      uint32
	Flavor         uint32
	Length         uint32
	NumTables      uint16
	Reserved       uint16
	TotalSfntSize  uint32
	MajorVersion   uint16
	MinorVersion   uint16
	MetaOffset     uint32
	MetaLength     uint32
	MetaOrigLength uint32
	PrivOffset     uint32
	PrivLength     uint32
}

type woffTableEntry struct {
	Tag          uint32
	Offset       uint32
	CompLength   uint32
	OrigLength   uint32
	OrigChecksum uint32
}

// ToWOFF wraps an sfnt flavored font (TrueType or OpenType) in a WOFF
// container. Each table is zlib compressed on its own, tables that do
// not shrink stay uncompressed.
func ToWOFF(data []byte) ([]byte, error) {
	if len(data) < 12 {
		return nil, fmt.Errorf("font file too short (%d bytes)", len(data))
	}
	flavor := binary.BigEndian.Uint32(data)
	switch flavor {
	case 0x00010000, 0x4f54544f, 0x74727565: // TrueType, OTTO, Apple true
	default:
		return nil, fmt.Errorf("not an sfnt font (version %#08x)", flavor)
	}
	numTables := int(binary.BigEndian.Uint16(data[4:]))
	if len(data) < 12+16*numTables {
		return nil, fmt.Errorf("truncated table directory (%d tables)", numTables)
	}

	entries := make([]woffTableEntry, numTables)
	compressed := make([][]byte, numTables)
	offset := uint32(44 + 20*numTables)
	sfntSize := uint32(12 + 16*numTables)
	for i := 0; i < numTables; i++ {
		rec := data[12+16*i:]
		tag := binary.BigEndian.Uint32(rec)
		checksum := binary.BigEndian.Uint32(rec[4:])
		tabOffset := binary.BigEndian.Uint32(rec[8:])
		tabLength := binary.BigEndian.Uint32(rec[12:])
		if int64(tabOffset)+int64(tabLength) > int64(len(data)) {
			return nil, fmt.Errorf("table %s extends past the end of the file", tagString(tag))
		}
		raw := data[tabOffset : tabOffset+tabLength]
		var zbuf bytes.Buffer
		zw := zlib.NewWriter(&zbuf)
		zw.Write(raw)
		zw.Close()
		comp := zbuf.Bytes()
		if len(comp) >= len(raw) {
			comp = raw
		}
		compressed[i] = comp
		entries[i] = woffTableEntry{
			Tag:          tag,
			Offset:       offset,
			CompLength:   uint32(len(comp)),
			OrigLength:   tabLength,
			OrigChecksum: checksum,
		}
		offset += align4(uint32(len(comp)))
		sfntSize += align4(tabLength)
	}

	var out bytes.Buffer
	hdr := woffHeader{
		Signature:     woffSignature,
		Flavor:        flavor,
		Length:        offset,
		NumTables:     uint16(numTables),
		TotalSfntSize: sfntSize,
		MajorVersion:  1,
	}
	binary.Write(&out, binary.BigEndian, hdr)
	binary.Write(&out, binary.BigEndian, entries)
	for _, comp := range compressed {
		out.Write(comp)
		for out.Len()%4 != 0 {
			out.WriteByte(0)
		}
	}
	bag.Logger.Infof("woff: %d tables, %d -> %d bytes", numTables, len(data), out.Len())
	return out.Bytes(), nil
}

func align4(n uint32) uint32 {
	return (n + 3) &^ 3
}

func tagString(tag uint32) string {
	return string([]byte{byte(tag >> 24), byte(tag >> 16), byte(tag >> 8), byte(tag)})
}
