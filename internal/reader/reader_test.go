// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package reader

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/study-engine/pkg/types"
)

const lecture = "Homeostaz: Vücudun iç dengesini koruma mekanizmasıdır.\nKalp dört odacıktan oluşan kaslı bir yapıdır."

var ctx = context.Background()

func newTestReader(conv Converter) *Reader {
	return New(Options{Config: types.DefaultReaderConfig(), Converter: conv})
}

func writeFile(t *testing.T, dir, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(p, data, 0o644))
	return p
}

// zipParts builds an office container holding the given parts.
func zipParts(t *testing.T, parts map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, body := range parts {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = io.WriteString(w, body)
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const docxBody = `<?xml version="1.0" encoding="UTF-8"?>
<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>
<w:p><w:r><w:t>Homeostaz: Vücudun iç dengesini </w:t></w:r><w:r><w:t>koruma mekanizmasıdır.</w:t></w:r></w:p>
<w:p><w:r><w:t>Kalp dört odacıktan oluşan kaslı bir yapıdır.</w:t></w:r></w:p>
</w:body></w:document>`

func slide(text string) string {
	return `<p:sld xmlns:p="p" xmlns:a="a"><p:cSld><p:spTree><p:sp><p:txBody><a:p><a:r><a:t>` +
		text + `</a:t></a:r></a:p></p:txBody></p:sp></p:spTree></p:cSld></p:sld>`
}

// fakeConverter returns canned output or an error.
type fakeConverter struct {
	output string
	err    error
	calls  int
}

func (f *fakeConverter) Convert(_ context.Context, _ string, r io.Reader) (string, error) {
	f.calls++
	if _, err := io.ReadAll(r); err != nil {
		return "", err
	}
	return f.output, f.err
}

func TestReadText(t *testing.T) {
	dir := t.TempDir()
	tests := []struct {
		name string
		file string
		data []byte
		want string
	}{
		{name: "utf-8", file: "a.txt", data: []byte(lecture), want: lecture},
		{name: "utf-8 bom", file: "b.md", data: append([]byte{0xEF, 0xBB, 0xBF}, lecture...), want: lecture},
		{name: "windows-1254", file: "c.txt", data: []byte{'K', 'a', 0xFE, 'e', 'r', ' ', 'a', 0xF0, 'a', 0xE7, 0xFD}, want: "Kaşer ağaçı"},
		{name: "utf-16le bom", file: "d.txt", data: []byte{0xFF, 0xFE, 'K', 0, 'a', 0, 'l', 0, 'p', 0}, want: "Kalp"},
	}
	r := newTestReader(nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := r.Read(ctx, writeFile(t, dir, tt.file, tt.data))
			assert.Equal(t, StatusDecoded, doc.Status)
			assert.Equal(t, FormatText, doc.Format)
			assert.Equal(t, tt.want, doc.Text)
			assert.Equal(t, tt.file, doc.Name)
			assert.Equal(t, int64(len(tt.data)), doc.Size)
		})
	}
}

func TestReadSniffsUnknownExtension(t *testing.T) {
	dir := t.TempDir()
	r := newTestReader(nil)

	doc := r.Read(ctx, writeFile(t, dir, "notlar", []byte(lecture)))
	assert.Equal(t, StatusDecoded, doc.Status)
	assert.Equal(t, FormatText, doc.Format)
	assert.Equal(t, lecture, doc.Text)

	doc = r.Read(ctx, writeFile(t, dir, "blob.bin", []byte{0x00, 0x01, 0x02, 0x03, 0xFF, 0x00, 0x10}))
	assert.Equal(t, StatusUnsupported, doc.Status)
	assert.Empty(t, doc.Text)
}

func TestReadDOCXSalvage(t *testing.T) {
	dir := t.TempDir()
	r := newTestReader(nil)
	data := zipParts(t, map[string]string{"word/document.xml": docxBody, "[Content_Types].xml": "<Types/>"})

	doc := r.Read(ctx, writeFile(t, dir, "ders.docx", data))
	require.Equal(t, StatusSalvaged, doc.Status, doc.Detail)
	assert.Equal(t, FormatDOCX, doc.Format)
	assert.Equal(t, lecture, doc.Text)
}

func TestReadPPTXSlidesInOrder(t *testing.T) {
	dir := t.TempDir()
	r := newTestReader(nil)
	data := zipParts(t, map[string]string{
		"ppt/slides/slide10.xml": slide("Onuncu slayt: kalp kapakçıkları ve işlevleri"),
		"ppt/slides/slide2.xml":  slide("İkinci slayt: kalbin odacıkları ve duvar yapısı"),
		"ppt/slides/slide1.xml":  slide("Birinci slayt: dolaşım sistemine genel bakış"),
	})

	doc := r.Read(ctx, writeFile(t, dir, "sunum.pptx", data))
	require.Equal(t, StatusSalvaged, doc.Status, doc.Detail)
	lines := strings.Split(doc.Text, "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "Birinci"))
	assert.True(t, strings.HasPrefix(lines[1], "İkinci"))
	assert.True(t, strings.HasPrefix(lines[2], "Onuncu"))
}

func TestReadOfficeRejectsThinSalvage(t *testing.T) {
	dir := t.TempDir()
	r := newTestReader(nil)

	short := zipParts(t, map[string]string{"word/document.xml": `<w:document xmlns:w="w"><w:body><w:p><w:r><w:t>Kısa</w:t></w:r></w:p></w:body></w:document>`})
	doc := r.Read(ctx, writeFile(t, dir, "kisa.docx", short))
	assert.Equal(t, StatusUnsupported, doc.Status)
	assert.Contains(t, doc.Detail, "letters")

	doc = r.Read(ctx, writeFile(t, dir, "bozuk.docx", []byte("not a zip at all")))
	assert.Equal(t, StatusUnsupported, doc.Status)
	assert.Empty(t, doc.Text)
}

func TestReadLegacyDocPrintableRuns(t *testing.T) {
	dir := t.TempDir()
	r := newTestReader(nil)

	var data []byte
	data = append(data, 0xD0, 0xCF, 0x11, 0xE0, 0x00, 0x00, 0x01, 0x02)
	for _, c := range "Kalp dört odacıktan oluşan kaslı bir yapıdır ve kanı pompalar" {
		data = append(data, byte(c), byte(c>>8))
	}
	data = append(data, 0x00, 0x00, 0x03, 0x00)

	doc := r.Read(ctx, writeFile(t, dir, "eski.doc", data))
	require.Equal(t, StatusSalvaged, doc.Status, doc.Detail)
	assert.Contains(t, doc.Text, "Kalp dört odacıktan oluşan kaslı bir yapıdır")
}

func TestReadInvalidPDF(t *testing.T) {
	dir := t.TempDir()
	r := newTestReader(nil)

	doc := r.Read(ctx, writeFile(t, dir, "bozuk.pdf", []byte("%PDF-1.4 truncated")))
	assert.Equal(t, StatusUnsupported, doc.Status)
	assert.Equal(t, FormatPDF, doc.Format)
	assert.NotEmpty(t, doc.Detail)
}

func TestReadUsesConverterFirst(t *testing.T) {
	dir := t.TempDir()
	data := zipParts(t, map[string]string{"word/document.xml": docxBody})
	path := writeFile(t, dir, "ders.docx", data)

	conv := &fakeConverter{output: "# Ders\n\nHomeostaz: iç denge."}
	doc := newTestReader(conv).Read(ctx, path)
	assert.Equal(t, StatusDecoded, doc.Status)
	assert.Equal(t, conv.output, doc.Text)
	assert.Equal(t, 1, conv.calls)

	failing := &fakeConverter{err: errors.New("container exited with code 1")}
	doc = newTestReader(failing).Read(ctx, path)
	assert.Equal(t, StatusSalvaged, doc.Status, "converter errors fall back to salvage")
	assert.Equal(t, lecture, doc.Text)

	doc = newTestReader(conv).Read(ctx, writeFile(t, dir, "a.txt", []byte(lecture)))
	assert.Equal(t, 1, conv.calls, "text files bypass the converter")
	assert.Equal(t, StatusDecoded, doc.Status)
}

func TestReadFailures(t *testing.T) {
	dir := t.TempDir()
	cfg := types.DefaultReaderConfig()
	cfg.MaxFileSize = 8
	r := New(Options{Config: cfg})

	doc := r.Read(ctx, filepath.Join(dir, "missing.txt"))
	assert.Equal(t, StatusFailed, doc.Status)
	assert.True(t, doc.Missing)

	doc = r.Read(ctx, dir)
	assert.Equal(t, StatusFailed, doc.Status)
	assert.False(t, doc.Missing, "an existing path that cannot be read is not missing")
	assert.Empty(t, doc.Text)
	assert.Equal(t, filepath.Base(dir), doc.Input().SourceLabel)

	doc = r.Read(ctx, writeFile(t, dir, "big.txt", []byte(lecture)))
	assert.Equal(t, StatusUnsupported, doc.Status)
	assert.Contains(t, doc.Detail, "larger than")
}

func TestReadBytes(t *testing.T) {
	r := newTestReader(nil)

	doc := r.ReadBytes(ctx, "stdin", []byte(lecture))
	assert.Equal(t, StatusDecoded, doc.Status)
	assert.Equal(t, "stdin", doc.Name)
	assert.Empty(t, doc.Path)
	assert.Equal(t, lecture, doc.Text)
	assert.True(t, doc.Usable())

	empty := r.ReadBytes(ctx, "stdin", nil)
	assert.Equal(t, StatusDecoded, empty.Status)
	assert.False(t, empty.Usable())
}

func TestReadAll(t *testing.T) {
	dir := t.TempDir()
	r := newTestReader(nil)
	paths := []string{
		writeFile(t, dir, "a.txt", []byte(lecture)),
		writeFile(t, dir, "b.docx", []byte("broken")),
		filepath.Join(dir, "c.txt"),
	}

	var log bytes.Buffer
	docs, result := r.ReadAll(ctx, paths, &log)

	require.Len(t, docs, 3)
	assert.Equal(t, BatchResult{Decoded: 1, Unsupported: 1, Failed: 1, Missing: 1}, result)
	assert.Equal(t, 3, result.Total())
	assert.True(t, result.HasFailures())

	out := log.String()
	assert.Contains(t, out, "decoded:     a.txt")
	assert.Contains(t, out, "unsupported: b.docx")
	assert.Contains(t, out, "failed:      c.txt")
	assert.Contains(t, out, "Batch summary: 1 decoded, 0 salvaged, 1 unsupported, 1 failed (total: 3)")
}

func TestConcatenate(t *testing.T) {
	docs := []Document{
		{Name: "a.txt", Size: 10, Status: StatusDecoded, Text: "Birinci satır metni\n"},
		{Name: "b.pptx", Size: 20, Status: StatusUnsupported},
		{Name: "c.md", Size: 5, Status: StatusSalvaged, Text: "Üçüncü belge"},
	}

	in := Concatenate(docs)
	assert.Equal(t, "=== a.txt ===\nBirinci satır metni\n=== b.pptx ===\n=== c.md ===\nÜçüncü belge\n", in.Text)
	assert.Equal(t, "a.txt, b.pptx, c.md", in.SourceLabel)
	assert.Equal(t, int64(35), in.SizeHint)

	sections := types.SplitBoundaries(in.Text)
	require.Len(t, sections, 3)
	assert.Equal(t, "b.pptx", sections[1].Name)
	assert.Empty(t, sections[1].Text)
	assert.Equal(t, []string{"a.txt", "b.pptx", "c.md"}, in.Sources())
}
