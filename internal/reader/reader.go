// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package reader turns study files into plain text for the extraction
// core. Every file yields a Document with an explicit status; a file that
// cannot be decoded becomes an "unsupported" or "failed" Document with
// empty text rather than an error, so one bad file never aborts a batch.
package reader

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/pkg/types"
)

// Status is the outcome of reading one file.
type Status string

const (
	// StatusDecoded means the text was read faithfully.
	StatusDecoded Status = "decoded"
	// StatusSalvaged means text was recovered on a best-effort basis from a
	// binary or container format.
	StatusSalvaged Status = "salvaged"
	// StatusUnsupported means the format yields no usable text.
	StatusUnsupported Status = "unsupported"
	// StatusFailed means the file could not be read at all.
	StatusFailed Status = "failed"
)

// Format identifies how a file's bytes are decoded.
type Format string

const (
	FormatText    Format = "text"
	FormatPDF     Format = "pdf"
	FormatDOCX    Format = "docx"
	FormatPPTX    Format = "pptx"
	FormatXLSX    Format = "xlsx"
	FormatDOC     Format = "doc"
	FormatPPT     Format = "ppt"
	FormatUnknown Format = "unknown"
)

// Document is one file turned into text.
type Document struct {
	Name   string `json:"name" yaml:"name"`
	Path   string `json:"path,omitempty" yaml:"path,omitempty"`
	Size   int64  `json:"size" yaml:"size"`
	Format Format `json:"format" yaml:"format"`
	Status Status `json:"status" yaml:"status"`
	Text   string `json:"-" yaml:"-"`
	// Detail explains a salvaged, unsupported, or failed status.
	Detail string `json:"detail,omitempty" yaml:"detail,omitempty"`
	// Missing is set on a failed document whose path does not exist.
	Missing bool `json:"missing,omitempty" yaml:"missing,omitempty"`
}

// Usable reports whether the document contributed any text.
func (d Document) Usable() bool {
	return (d.Status == StatusDecoded || d.Status == StatusSalvaged) && strings.TrimSpace(d.Text) != ""
}

// Input returns the document as a single extraction input.
func (d Document) Input() types.ExtractionInput {
	return types.ExtractionInput{Text: d.Text, SourceLabel: d.Name, SizeHint: d.Size}
}

// Converter turns an office document into text. The markitdown container
// backend implements it.
type Converter interface {
	Convert(ctx context.Context, name string, r io.Reader) (string, error)
}

// Options configures a Reader.
type Options struct {
	Config types.ReaderConfig
	// Converter, when set, is tried first for office formats.
	Converter Converter
	Logger    *zap.Logger
}

// Reader decodes files by format.
type Reader struct {
	cfg  types.ReaderConfig
	conv Converter
	log  *zap.Logger
}

// New returns a Reader for opts.
func New(opts Options) *Reader {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Reader{cfg: opts.Config, conv: opts.Converter, log: opts.Logger}
}

// Read decodes the file at path.
func (r *Reader) Read(ctx context.Context, path string) Document {
	doc := Document{Name: filepath.Base(path), Path: path, Format: formatForName(path)}

	info, err := os.Stat(path)
	if err != nil {
		doc.Missing = errors.Is(err, fs.ErrNotExist)
		return r.finish(doc, StatusFailed, "", err.Error())
	}
	doc.Size = info.Size()
	if info.IsDir() {
		return r.finish(doc, StatusFailed, "", "is a directory")
	}
	if r.cfg.MaxFileSize > 0 && doc.Size > r.cfg.MaxFileSize {
		return r.finish(doc, StatusUnsupported, "", fmt.Sprintf("larger than %d bytes", r.cfg.MaxFileSize))
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return r.finish(doc, StatusFailed, "", err.Error())
	}
	return r.decode(ctx, doc, data)
}

// ReadBytes decodes data already in memory, such as standard input. name
// selects the decoder by extension and labels the document.
func (r *Reader) ReadBytes(ctx context.Context, name string, data []byte) Document {
	doc := Document{Name: name, Size: int64(len(data)), Format: formatForName(name)}
	if r.cfg.MaxFileSize > 0 && doc.Size > r.cfg.MaxFileSize {
		return r.finish(doc, StatusUnsupported, "", fmt.Sprintf("larger than %d bytes", r.cfg.MaxFileSize))
	}
	return r.decode(ctx, doc, data)
}

func (r *Reader) decode(ctx context.Context, doc Document, data []byte) Document {
	if len(data) == 0 {
		return r.finish(doc, StatusDecoded, "", "empty file")
	}
	if doc.Format == FormatUnknown {
		doc.Format = sniff(data)
	}

	switch doc.Format {
	case FormatText:
		return r.finish(doc, StatusDecoded, decodeText(data), "")

	case FormatPDF:
		text, err := decodePDF(data)
		if err != nil {
			return r.finish(doc, StatusUnsupported, "", err.Error())
		}
		if letterCount(text) == 0 {
			return r.finish(doc, StatusUnsupported, "", "no text layer")
		}
		return r.finish(doc, StatusDecoded, text, "")

	case FormatDOCX, FormatPPTX, FormatXLSX, FormatDOC, FormatPPT:
		if text, ok := r.convert(ctx, doc, data); ok {
			return r.finish(doc, StatusDecoded, text, "")
		}
		if ctx.Err() != nil {
			return r.finish(doc, StatusFailed, "", ctx.Err().Error())
		}
		text, err := salvage(doc.Format, data)
		if err != nil {
			return r.finish(doc, StatusUnsupported, "", err.Error())
		}
		if n := letterCount(text); n < r.cfg.MinSalvageLetters {
			return r.finish(doc, StatusUnsupported, "", fmt.Sprintf("only %d letters recovered", n))
		}
		return r.finish(doc, StatusSalvaged, text, "text recovered without layout")

	default:
		return r.finish(doc, StatusUnsupported, "", "unrecognized format")
	}
}

// convert runs the optional converter, bounded by the configured timeout.
func (r *Reader) convert(ctx context.Context, doc Document, data []byte) (string, bool) {
	if r.conv == nil {
		return "", false
	}
	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}
	text, err := r.conv.Convert(ctx, doc.Name, bytes.NewReader(data))
	if err != nil {
		r.log.Warn("converter failed, salvaging text", zap.String("file", doc.Name), zap.Error(err))
		return "", false
	}
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	return text, true
}

func (r *Reader) finish(doc Document, status Status, text, detail string) Document {
	doc.Status = status
	doc.Text = text
	doc.Detail = detail
	r.log.Debug("read document",
		zap.String("file", doc.Name),
		zap.String("format", string(doc.Format)),
		zap.String("status", string(status)),
		zap.Int("chars", len(text)),
	)
	return doc
}

// BatchResult holds the outcome of a batch read.
type BatchResult struct {
	Decoded     int
	Salvaged    int
	Unsupported int
	Failed      int
	// Missing counts the failed files whose path does not exist.
	Missing int
}

// Total returns the total number of files processed.
func (b BatchResult) Total() int {
	return b.Decoded + b.Salvaged + b.Unsupported + b.Failed
}

// HasFailures reports whether any file could not be read.
func (b BatchResult) HasFailures() bool {
	return b.Failed > 0
}

// ReadAll reads paths in order, printing one status line per file to w.
func (r *Reader) ReadAll(ctx context.Context, paths []string, w io.Writer) ([]Document, BatchResult) {
	docs := make([]Document, 0, len(paths))
	var result BatchResult
	for _, p := range paths {
		doc := r.Read(ctx, p)
		docs = append(docs, doc)
		switch doc.Status {
		case StatusDecoded:
			result.Decoded++
			fmt.Fprintf(w, "decoded:     %s\n", doc.Name)
		case StatusSalvaged:
			result.Salvaged++
			fmt.Fprintf(w, "salvaged:    %s (%s)\n", doc.Name, doc.Detail)
		case StatusUnsupported:
			result.Unsupported++
			fmt.Fprintf(w, "unsupported: %s (%s)\n", doc.Name, doc.Detail)
		case StatusFailed:
			result.Failed++
			if doc.Missing {
				result.Missing++
			}
			fmt.Fprintf(w, "failed:      %s (%s)\n", doc.Name, doc.Detail)
		}
	}
	if len(paths) > 1 {
		fmt.Fprintf(w, "\nBatch summary: %d decoded, %d salvaged, %d unsupported, %d failed (total: %d)\n",
			result.Decoded, result.Salvaged, result.Unsupported, result.Failed, result.Total())
	}
	return docs, result
}

// Concatenate joins documents in order into one extraction input. Each
// document is preceded by its boundary marker, so documents that produced
// no text still appear as empty sections. The label hint is the
// comma-joined document names and the size hint their total size.
func Concatenate(docs []Document) types.ExtractionInput {
	var b strings.Builder
	names := make([]string, 0, len(docs))
	var size int64
	for _, d := range docs {
		names = append(names, d.Name)
		size += d.Size
		b.WriteString(types.BoundaryMarker(d.Name))
		b.WriteByte('\n')
		if d.Usable() {
			b.WriteString(strings.TrimRight(d.Text, "\n"))
			b.WriteByte('\n')
		}
	}
	return types.ExtractionInput{
		Text:        b.String(),
		SourceLabel: strings.Join(names, ", "),
		SizeHint:    size,
	}
}
