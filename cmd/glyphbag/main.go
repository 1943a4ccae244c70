package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/speedata/glyphbag/bag"
	"github.com/speedata/glyphbag/coverage"
	"github.com/speedata/glyphbag/epub"
	"github.com/speedata/glyphbag/font"
	"github.com/speedata/glyphbag/obfuscate"
	"github.com/speedata/glyphbag/scan"
	"github.com/speedata/glyphbag/ucd"
	"github.com/speedata/optionparser"
	"go.uber.org/zap/zapcore"
)

// Exit codes, stable for scripting.
const (
	exitOK      = 0
	exitUsage   = 1
	exitMissing = 2
	exitFont    = 4
	exitLookup  = 8
)

type cliOptions struct {
	font      string
	glyphs    string
	ebook     string
	plain     string
	output    string
	encoding  string
	id        string
	rangeTok  string
	sortCount bool
	preserve  bool
	css       bool
	lenient   bool
	epubOut   bool
	drop      bool
	adobe     bool
	fuzzy     bool
	quiet     bool
	verbose   bool
}

func (o *cliOptions) order() bag.Order {
	if o.sortCount {
		return bag.ByCount
	}
	return bag.ByCodepoint
}

func dothings() (int, error) {
	opts := &cliOptions{}
	op := optionparser.NewOptionParser()
	op.Banner = "Usage: glyphbag COMMAND [options]"
	op.On("-f", "--font FILE", "Font file (TTF or OTF)", &opts.font)
	op.On("-g", "--glyphs FILE", "Codepoint list file, one decimal number per line", &opts.glyphs)
	op.On("-e", "--ebook FILE", "EPUB (or ZIP) archive", &opts.ebook)
	op.On("-p", "--plain FILE", "Text or markup file, or a directory of such files", &opts.plain)
	op.On("-o", "--output FILE", "Output file name", &opts.output)
	op.On("-r", "--range TOKEN", "Limit listings to a codepoint range (low-high) or a named Unicode block", &opts.rangeTok)
	op.On("-s", "--sort", "Sort reports by character count instead of codepoint", &opts.sortCount)
	op.On("-u", "--epub", "Also write the printed character list as an EPUB file", &opts.epubOut)
	op.On("--encoding NAME", "Source text encoding (default UTF-8)", &opts.encoding)
	op.On("--preserve", "Count markup syntax instead of stripping it", &opts.preserve)
	op.On("--css", "Also count string tokens of CSS archive members", &opts.css)
	op.On("--lenient", "Skip undecodable archive members instead of aborting", &opts.lenient)
	op.On("--drop", "Subset to the unused glyphs instead of the used ones", &opts.drop)
	op.On("--id IDENTIFIER", "Publication identifier for the obfuscation key", &opts.id)
	op.On("--adobe", "Use the Adobe obfuscation scheme instead of IDPF", &opts.adobe)
	op.On("--fuzzy", "Match all query words against character names", &opts.fuzzy)
	op.On("-q", "--quiet", "Log errors only", &opts.quiet)
	op.On("-v", "--verbose", "Verbose listings and debug logging", &opts.verbose)
	op.Command("list", "Print the characters of a font, glyph list, ebook or text file")
	op.Command("check", "Check whether a font provides all characters of a text")
	op.Command("count", "Count the characters in an ebook or text file")
	op.Command("subset", "Write a minimized font containing only the needed glyphs")
	op.Command("convert", "Convert an sfnt font (TTF or OTF) to WOFF")
	op.Command("obfuscate", "Obfuscate or deobfuscate a font for EPUB embedding")
	op.Command("lookup", "Look up Unicode characters by codepoint or name")
	op.Command("blocks", "List named Unicode blocks or resolve range tokens")
	if err := op.Parse(); err != nil {
		return exitUsage, err
	}

	level := zapcore.InfoLevel
	if opts.quiet {
		level = zapcore.ErrorLevel
	}
	if opts.verbose {
		level = zapcore.DebugLevel
	}
	bag.Logger = bag.NewLogger(os.Stderr, level)

	if len(op.Extra) == 0 {
		op.Help()
		return exitOK, nil
	}
	args := op.Extra[1:]
	switch op.Extra[0] {
	case "list":
		return cmdList(opts)
	case "check":
		return cmdCheck(opts)
	case "count":
		return cmdCount(opts)
	case "subset":
		return cmdSubset(opts)
	case "convert":
		return cmdConvert(opts)
	case "obfuscate":
		return cmdObfuscate(opts)
	case "lookup":
		return cmdLookup(opts, args)
	case "blocks":
		return cmdBlocks(args)
	}
	op.Help()
	return exitUsage, fmt.Errorf("unknown command %q", op.Extra[0])
}

// scanHistogram scans the configured text source (ebook archive, single
// file or directory) into a histogram.
func scanHistogram(opts *cliOptions) (bag.Histogram, string, error) {
	if opts.ebook != "" && opts.plain != "" {
		return nil, "", fmt.Errorf("supply either an ebook or a plain text file, not both")
	}
	sc, err := scan.New(scan.Options{
		Preserve: opts.preserve,
		Encoding: opts.encoding,
		Lenient:  opts.lenient,
		CSS:      opts.css,
	})
	if err != nil {
		return nil, "", err
	}
	switch {
	case opts.ebook != "":
		bag.Logger.Infof("reading characters from %s", opts.ebook)
		if err = sc.EPUB(opts.ebook); err != nil {
			return nil, "", err
		}
		return sc.Histogram(), opts.ebook, nil
	case opts.plain != "":
		bag.Logger.Infof("reading characters from %s", opts.plain)
		fi, err := os.Stat(opts.plain)
		if err != nil {
			return nil, "", err
		}
		if fi.IsDir() {
			err = sc.Dir(opts.plain)
		} else {
			err = sc.File(opts.plain)
		}
		if err != nil {
			return nil, "", err
		}
		return sc.Histogram(), opts.plain, nil
	}
	return nil, "", fmt.Errorf("no text source, supply --ebook or --plain")
}

// glyphSource opens the configured glyph inventory source, either a font
// file or a codepoint list.
func glyphSource(opts *cliOptions) (coverage.Source, error) {
	var fontSrc, listSrc coverage.Source
	if opts.font != "" {
		face, err := font.LoadFace(opts.font, 0)
		if err != nil {
			return nil, err
		}
		fontSrc = face
	}
	if opts.glyphs != "" {
		list, err := coverage.LoadListFile(opts.glyphs)
		if err != nil {
			return nil, err
		}
		listSrc = list
	}
	return coverage.Select(fontSrc, listSrc)
}

func writeReport(filename, title string, recs []bag.Record) (int, error) {
	bag.Logger.Infof("writing %s", filename)
	if err := epub.WriteReport(filename, title, recs); err != nil {
		return exitUsage, err
	}
	return exitOK, nil
}

func cmdList(opts *cliOptions) (int, error) {
	var block ucd.Block
	haveRange := opts.rangeTok != ""
	if haveRange {
		var err error
		if block, err = ucd.Resolve(opts.rangeTok); err != nil {
			return exitUsage, err
		}
	}
	hasInventory := opts.font != "" || opts.glyphs != ""
	hasText := opts.ebook != "" || opts.plain != ""
	switch {
	case hasInventory && hasText:
		return exitUsage, fmt.Errorf("list takes one source, either a font/glyph list or a text")
	case hasInventory:
		src, err := glyphSource(opts)
		if err != nil {
			return exitUsage, err
		}
		inv, err := src.Inventory()
		if err != nil {
			return exitUsage, err
		}
		recs := setRecords(inv)
		if haveRange {
			recs = rangeRecords(recs, block)
		}
		printRecords(os.Stdout, recs, opts.verbose, false)
		if opts.epubOut {
			title := fmt.Sprintf("List of Unicode characters in %s", src.Name())
			return writeReport(src.Name()+".epub", title, recs)
		}
		return exitOK, nil
	case hasText:
		hist, name, err := scanHistogram(opts)
		if err != nil {
			return exitUsage, err
		}
		recs := hist.Records(opts.order())
		if haveRange {
			recs = rangeRecords(recs, block)
		}
		printRecords(os.Stdout, recs, opts.verbose, true)
		if opts.epubOut {
			title := fmt.Sprintf("List of Unicode characters in %s", name)
			return writeReport(name+".epub", title, recs)
		}
		return exitOK, nil
	case haveRange:
		// no source: list every codepoint of the range
		recs := blockRecords(block)
		printRecords(os.Stdout, recs, opts.verbose, false)
		if opts.epubOut {
			title := fmt.Sprintf("List of Unicode characters in %s", block)
			return writeReport("range.epub", title, recs)
		}
		return exitOK, nil
	}
	return exitUsage, fmt.Errorf("nothing to list, supply --font, --glyphs, --ebook, --plain or --range")
}

func cmdCheck(opts *cliOptions) (int, error) {
	src, err := glyphSource(opts)
	if err != nil {
		return exitUsage, err
	}
	inv, err := src.Inventory()
	if err != nil {
		return exitUsage, err
	}
	hist, name, err := scanHistogram(opts)
	if err != nil {
		return exitUsage, err
	}
	missing := coverage.Missing(hist, inv, opts.order())
	if len(missing) == 0 {
		bag.Logger.Infof("%s provides all %d distinct characters of %s", src.Name(), len(hist), name)
		return exitOK, nil
	}
	bag.Logger.Infof("%s lacks %d of the %d distinct characters of %s", src.Name(), len(missing), len(hist), name)
	printRecords(os.Stdout, missing, opts.verbose, true)
	if opts.epubOut {
		title := fmt.Sprintf("List of Unicode characters of %s missing in %s", name, src.Name())
		if code, err := writeReport("missing.epub", title, missing); err != nil {
			return code, err
		}
	}
	return exitMissing, nil
}

func cmdCount(opts *cliOptions) (int, error) {
	hist, _, err := scanHistogram(opts)
	if err != nil {
		return exitUsage, err
	}
	fmt.Println(hist.Total())
	return exitOK, nil
}

func cmdSubset(opts *cliOptions) (int, error) {
	if opts.font == "" {
		return exitUsage, fmt.Errorf("subset needs a font file, supply --font")
	}
	face, err := font.LoadFace(opts.font, 0)
	if err != nil {
		return exitUsage, err
	}
	hist, name, err := scanHistogram(opts)
	if err != nil {
		return exitUsage, err
	}
	inv, err := face.Inventory()
	if err != nil {
		return exitUsage, err
	}
	keep := coverage.Keep(hist, inv)
	if opts.drop {
		keep = coverage.Drop(hist, inv)
	}
	bag.Logger.Infof("minimizing %s to %d characters for %s", opts.font, len(keep), name)
	data, err := face.Subset(keep)
	if err != nil {
		return exitFont, err
	}
	outname := opts.output
	if outname == "" {
		outname = minimizedName(opts.font, face.IsCFF())
	}
	if err := os.WriteFile(outname, data, 0644); err != nil {
		return exitFont, err
	}
	bag.Logger.Infof("wrote %s", outname)
	if opts.epubOut {
		title := fmt.Sprintf("List of Unicode characters in %s", outname)
		return writeReport(outname+".epub", title, setRecords(keep))
	}
	return exitOK, nil
}

// minimizedName places the subset font next to the input file.
func minimizedName(path string, cff bool) string {
	ext := ".ttf"
	if cff {
		ext = ".otf"
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + ".minimized" + ext
}

func cmdConvert(opts *cliOptions) (int, error) {
	if opts.font == "" {
		return exitUsage, fmt.Errorf("convert needs a font file, supply --font")
	}
	data, err := os.ReadFile(opts.font)
	if err != nil {
		return exitUsage, err
	}
	woff, err := font.ToWOFF(data)
	if err != nil {
		return exitFont, err
	}
	outname := opts.output
	if outname == "" {
		outname = strings.TrimSuffix(opts.font, filepath.Ext(opts.font)) + ".woff"
	}
	if err := os.WriteFile(outname, woff, 0644); err != nil {
		return exitFont, err
	}
	bag.Logger.Infof("wrote %s", outname)
	return exitOK, nil
}

func cmdObfuscate(opts *cliOptions) (int, error) {
	if opts.font == "" {
		return exitUsage, fmt.Errorf("obfuscate needs a font file, supply --font")
	}
	id, err := publicationID(opts)
	if err != nil {
		return exitUsage, err
	}
	scheme := obfuscate.IDPF
	if opts.adobe {
		scheme = obfuscate.Adobe
	}
	data, err := os.ReadFile(opts.font)
	if err != nil {
		return exitUsage, err
	}
	out, err := obfuscate.Transform(data, id, scheme)
	if err != nil {
		return exitUsage, err
	}
	outname := opts.output
	if outname == "" {
		ext := filepath.Ext(opts.font)
		outname = strings.TrimSuffix(opts.font, ext) + ".obfuscated" + ext
	}
	if err := os.WriteFile(outname, out, 0644); err != nil {
		return exitFont, err
	}
	bag.Logger.Infof("wrote %s (%s scheme)", outname, scheme)
	return exitOK, nil
}

// publicationID returns the identifier the obfuscation key is derived
// from, given literally or read from the ebook metadata.
func publicationID(opts *cliOptions) (string, error) {
	if opts.id != "" {
		return opts.id, nil
	}
	if opts.ebook == "" {
		return "", fmt.Errorf("obfuscation needs --id or --ebook to derive the key")
	}
	r, err := epub.Open(opts.ebook)
	if err != nil {
		return "", err
	}
	defer r.Close()
	return r.Identifier()
}

func cmdLookup(opts *cliOptions, args []string) (int, error) {
	query := strings.TrimSpace(strings.Join(args, " "))
	if query == "" {
		return exitUsage, fmt.Errorf("lookup needs a query: a character, d<decimal>, x<hex> or a character name")
	}
	if opts.fuzzy {
		matches := ucd.Search(query)
		if len(matches) == 0 {
			bag.Logger.Infof("no character name matches %q", query)
			return exitLookup, nil
		}
		for _, cp := range matches {
			fmt.Printf("%s\t%s (U+%04X)\n", displayChar(cp), ucd.Name(cp), cp)
		}
		return exitOK, nil
	}
	cp, ok := ucd.Lookup(query)
	if !ok {
		bag.Logger.Infof("lookup for %q failed", query)
		return exitLookup, nil
	}
	printCharacterInfo(os.Stdout, cp)
	return exitOK, nil
}

func cmdBlocks(args []string) (int, error) {
	if len(args) == 0 {
		for _, b := range ucd.Blocks() {
			fmt.Println(b)
		}
		return exitOK, nil
	}
	for _, tok := range args {
		b, err := ucd.Resolve(tok)
		if err != nil {
			return exitUsage, err
		}
		fmt.Println(b)
	}
	return exitOK, nil
}

func main() {
	code, err := dothings()
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
	}
	os.Exit(code)
}
