package epub

import (
	"archive/zip"
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
	"github.com/speedata/glyphbag/bag"
	"github.com/speedata/glyphbag/ucd"
	"golang.org/x/net/html"
)

const containerXML = `<?xml version="1.0" encoding="UTF-8"?>
<container version="1.0" xmlns="urn:oasis:names:tc:opendocument:xmlns:container">
 <rootfiles>
  <rootfile full-path="OEBPS/content.opf" media-type="application/oebps-package+xml"/>
 </rootfiles>
</container>
`

const styleCSS = `table { border-collapse: collapse; }
td, th { border: 1px solid #888888; padding: 0.2em 0.5em; font-family: monospace; }
`

// WriteReport writes a minimal EPUB to filename holding one page that
// tables the given codepoints: symbol, decimal and hexadecimal value and
// character name per row. Control characters get a name but no symbol.
func WriteReport(filename string, title string, recs []bag.Record) error {
	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	zw := zip.NewWriter(f)
	id := uuid.New().String()
	bag.Logger.Infof("write EPUB %s (%d rows)", filename, len(recs))

	members := []struct {
		name   string
		stored bool
		body   string
	}{
		// the mimetype member must come first and stay uncompressed
		{"mimetype", true, "application/epub+zip"},
		{"META-INF/container.xml", false, containerXML},
		{"OEBPS/content.opf", false, contentOPF(id, title)},
		{"OEBPS/toc.ncx", false, tocNCX(id, title)},
		{"OEBPS/style.css", false, styleCSS},
		{"OEBPS/index.xhtml", false, indexXHTML(title, recs)},
	}
	for _, m := range members {
		hdr := &zip.FileHeader{Name: m.name, Method: zip.Deflate}
		if m.stored {
			hdr.Method = zip.Store
		}
		w, err := zw.CreateHeader(hdr)
		if err == nil {
			_, err = w.Write([]byte(m.body))
		}
		if err != nil {
			zw.Close()
			f.Close()
			return fmt.Errorf("write %s: %s: %w", filename, m.name, err)
		}
	}
	if err = zw.Close(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func contentOPF(id, title string) string {
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<package xmlns="http://www.idpf.org/2007/opf" unique-identifier="BookId" version="2.0">
 <metadata xmlns:dc="http://purl.org/dc/elements/1.1/" xmlns:opf="http://www.idpf.org/2007/opf">
  <dc:identifier id="BookId" opf:scheme="UUID">%s</dc:identifier>
  <dc:language>en</dc:language>
  <dc:title>%s</dc:title>
  <dc:creator opf:role="aut">glyphbag</dc:creator>
 </metadata>
 <manifest>
  <item href="toc.ncx" id="ncx" media-type="application/x-dtbncx+xml"/>
  <item href="style.css" id="css" media-type="text/css"/>
  <item href="index.xhtml" id="index" media-type="application/xhtml+xml"/>
 </manifest>
 <spine toc="ncx">
  <itemref idref="index"/>
 </spine>
</package>
`, id, html.EscapeString(title))
}

func tocNCX(id, title string) string {
	t := html.EscapeString(title)
	return fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<ncx xmlns="http://www.daisy.org/z3986/2005/ncx/" version="2005-1">
 <head>
  <meta name="dtb:uid" content="%s"/>
  <meta name="dtb:depth" content="1"/>
  <meta name="dtb:totalPageCount" content="0"/>
  <meta name="dtb:maxPageNumber" content="0"/>
 </head>
 <docTitle><text>%s</text></docTitle>
 <navMap>
  <navPoint id="navpoint-1" playOrder="1">
   <navLabel><text>%s</text></navLabel>
   <content src="index.xhtml"/>
  </navPoint>
 </navMap>
</ncx>
`, id, t, t)
}

func indexXHTML(title string, recs []bag.Record) string {
	var b strings.Builder
	fmt.Fprintf(&b, `<?xml version="1.0" encoding="UTF-8"?>
<!DOCTYPE html PUBLIC "-//W3C//DTD XHTML 1.1//EN" "http://www.w3.org/TR/xhtml11/DTD/xhtml11.dtd">
<html xmlns="http://www.w3.org/1999/xhtml">
<head>
 <title>%s</title>
 <link rel="stylesheet" type="text/css" href="style.css"/>
</head>
<body>
<h1>%s</h1>
<table>
<tr><th>Symbol</th><th>Decimal</th><th>Hexadecimal</th><th>Name</th></tr>
`, html.EscapeString(title), html.EscapeString(title))
	for _, rec := range recs {
		fmt.Fprintf(&b, "<tr><td>%s</td><td>%d</td><td>U+%04X</td><td>%s</td></tr>\n",
			html.EscapeString(ucd.Symbol(rec.Codepoint)), rec.Codepoint, rec.Codepoint,
			html.EscapeString(ucd.Name(rec.Codepoint)))
	}
	b.WriteString("</table>\n</body>\n</html>\n")
	return b.String()
}
