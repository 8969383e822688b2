// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gabriel-vasile/mimetype"
	"github.com/ledongthuc/pdf"
	"golang.org/x/text/encoding/charmap"
	xunicode "golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

var formatsByExt = map[string]Format{
	".txt":      FormatText,
	".text":     FormatText,
	".md":       FormatText,
	".markdown": FormatText,
	".csv":      FormatText,
	".pdf":      FormatPDF,
	".docx":     FormatDOCX,
	".pptx":     FormatPPTX,
	".xlsx":     FormatXLSX,
	".doc":      FormatDOC,
	".ppt":      FormatPPT,
}

func formatForName(name string) Format {
	if f, ok := formatsByExt[strings.ToLower(filepath.Ext(name))]; ok {
		return f
	}
	return FormatUnknown
}

// sniff detects the format of data from its content.
func sniff(data []byte) Format {
	mt := mimetype.Detect(data)
	if f, ok := formatsByExt[mt.Extension()]; ok {
		return f
	}
	for m := mt; m != nil; m = m.Parent() {
		if m.Is("text/plain") {
			return FormatText
		}
	}
	return FormatUnknown
}

// decodeText returns data as UTF-8. A byte-order mark selects UTF-8 or
// UTF-16; BOM-less input that is not valid UTF-8 is read as Windows-1254,
// the legacy Turkish code page.
func decodeText(data []byte) string {
	switch {
	case bytes.HasPrefix(data, bomUTF8):
		data = data[len(bomUTF8):]
	case bytes.HasPrefix(data, bomUTF16LE), bytes.HasPrefix(data, bomUTF16BE):
		out, err := xunicode.UTF16(xunicode.BigEndian, xunicode.ExpectBOM).NewDecoder().Bytes(data)
		if err == nil {
			return string(out)
		}
	}
	if utf8.Valid(data) {
		return string(data)
	}
	out, err := charmap.Windows1254.NewDecoder().Bytes(data)
	if err != nil {
		return strings.ToValidUTF8(string(data), "")
	}
	return string(out)
}

// decodePDF returns the plain text layer of a PDF. The parser panics on
// some malformed files; those are reported as errors.
func decodePDF(data []byte) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("malformed pdf: %v", p)
		}
	}()

	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("pdf reader: %w", err)
	}
	plain, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdf plaintext: %w", err)
	}
	b, err := io.ReadAll(plain)
	if err != nil {
		return "", fmt.Errorf("pdf read: %w", err)
	}
	return string(b), nil
}

// salvage recovers text from office formats without a converter.
func salvage(f Format, data []byte) (string, error) {
	switch f {
	case FormatDOCX:
		return salvageOOXML(data, func(name string) bool { return name == "word/document.xml" })
	case FormatPPTX:
		return salvageOOXML(data, func(name string) bool {
			return strings.HasPrefix(name, "ppt/slides/slide") && strings.HasSuffix(name, ".xml")
		})
	case FormatXLSX:
		return salvageOOXML(data, func(name string) bool { return name == "xl/sharedStrings.xml" })
	case FormatDOC, FormatPPT:
		return salvagePrintable(data), nil
	default:
		return "", fmt.Errorf("no salvage for %s", f)
	}
}

// salvageOOXML collects the text runs of the matching zip parts, one line
// per paragraph. Parts are visited in natural order so slide10 follows
// slide9.
func salvageOOXML(data []byte, want func(string) bool) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("not a valid office container: %w", err)
	}

	var parts []*zip.File
	for _, f := range zr.File {
		if want(f.Name) {
			parts = append(parts, f)
		}
	}
	if len(parts) == 0 {
		return "", errors.New("office container has no text parts")
	}
	sort.Slice(parts, func(i, j int) bool { return naturalLess(parts[i].Name, parts[j].Name) })

	var out strings.Builder
	for _, f := range parts {
		rc, err := f.Open()
		if err != nil {
			return "", fmt.Errorf("opening %s: %w", f.Name, err)
		}
		b, err := io.ReadAll(rc)
		_ = rc.Close()
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", f.Name, err)
		}
		writeXMLText(&out, b)
	}
	return strings.TrimSpace(out.String()), nil
}

// writeXMLText writes the character data of <t> elements, ending a line
// at each paragraph (<p>) or shared string (<si>).
func writeXMLText(out *strings.Builder, xmlBytes []byte) {
	dec := xml.NewDecoder(bytes.NewReader(xmlBytes))
	var line strings.Builder
	flush := func() {
		if s := strings.Join(strings.Fields(line.String()), " "); s != "" {
			out.WriteString(s)
			out.WriteByte('\n')
		}
		line.Reset()
	}
	for {
		tok, err := dec.Token()
		if err != nil {
			break
		}
		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "t":
				var v string
				if dec.DecodeElement(&v, &el) == nil {
					line.WriteString(v)
				}
			case "tab", "br":
				line.WriteByte(' ')
			}
		case xml.EndElement:
			if el.Name.Local == "p" || el.Name.Local == "si" {
				flush()
			}
		}
	}
	flush()
}

// naturalLess orders names by their text with embedded numbers compared
// numerically.
func naturalLess(a, b string) bool {
	ta, na := splitTrailingNumber(a)
	tb, nb := splitTrailingNumber(b)
	if ta != tb {
		return ta < tb
	}
	return na < nb
}

func splitTrailingNumber(name string) (string, int) {
	base := strings.TrimSuffix(name, filepath.Ext(name))
	i := len(base)
	for i > 0 && base[i-1] >= '0' && base[i-1] <= '9' {
		i--
	}
	n, _ := strconv.Atoi(base[i:])
	return base[:i], n
}

const (
	minRunRunes   = 5
	minRunLetters = 3
)

// salvagePrintable pulls readable runs out of a legacy binary office file.
// Text in those files is stored either as UTF-16LE or in an 8-bit code
// page, so both readings are tried and the one with more letters wins.
func salvagePrintable(data []byte) string {
	wide, err := xunicode.UTF16(xunicode.LittleEndian, xunicode.IgnoreBOM).NewDecoder().Bytes(data)
	if err != nil {
		wide = nil
	}
	narrow, err := charmap.Windows1254.NewDecoder().Bytes(data)
	if err != nil {
		narrow = nil
	}

	a := printableRuns(string(wide))
	b := printableRuns(string(narrow))
	if letterCount(a) >= letterCount(b) {
		return a
	}
	return b
}

// isRunLetter accepts Latin letters only; wide decoding of 8-bit text
// turns byte pairs into CJK letters that must not count.
func isRunLetter(r rune) bool {
	return unicode.In(r, unicode.Latin)
}

func isRunRune(r rune) bool {
	return isRunLetter(r) || unicode.IsDigit(r) || r == ' ' || strings.ContainsRune(".,;:!?()-'\"%/", r)
}

// printableRuns keeps maximal runs of text-like runes that are long enough
// and mostly letters, one run per line.
func printableRuns(s string) string {
	var out strings.Builder
	var run []rune
	letters := 0
	flush := func() {
		text := strings.TrimSpace(string(run))
		if utf8.RuneCountInString(text) >= minRunRunes && letters >= minRunLetters && letters*2 >= len(run) {
			out.WriteString(text)
			out.WriteByte('\n')
		}
		run = run[:0]
		letters = 0
	}
	for _, r := range s {
		if !isRunRune(r) {
			flush()
			continue
		}
		if isRunLetter(r) {
			letters++
		}
		run = append(run, r)
	}
	flush()
	return strings.TrimSpace(out.String())
}

func letterCount(s string) int {
	n := 0
	for _, r := range s {
		if unicode.IsLetter(r) {
			n++
		}
	}
	return n
}
