// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package render writes decks and summary reports as JSON, HTML, Markdown,
// or plain text. All summary formats share one section layout so they list
// the same content in the same order.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/study-engine/pkg/types"
)

// Format names an output format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatText     Format = "text"
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
)

// ParseFormat accepts a format name or a common alias.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "text", "txt":
		return FormatText, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "html", "htm":
		return FormatHTML, nil
	}
	return "", fmt.Errorf("%w: output format %q", types.ErrUnsupported, s)
}

// Ext returns the file extension for f.
func (f Format) Ext() string {
	switch f {
	case FormatMarkdown:
		return ".md"
	case FormatText:
		return ".txt"
	default:
		return "." + string(f)
	}
}

// Summary writes r in format f.
func Summary(w io.Writer, f Format, r types.SummaryReport) error {
	switch f {
	case FormatJSON:
		return writeJSON(w, r)
	case FormatHTML:
		return SummaryHTML(w, r)
	case FormatMarkdown:
		return SummaryMarkdown(w, r)
	case FormatText:
		return SummaryText(w, r)
	}
	return fmt.Errorf("%w: summary format %q", types.ErrUnsupported, f)
}

// Deck writes cards in format f. Only JSON and text apply to decks.
func Deck(w io.Writer, f Format, subject string, cards []types.Flashcard) error {
	switch f {
	case FormatJSON:
		return DeckJSON(w, cards)
	case FormatText:
		return DeckText(w, subject, cards)
	}
	return fmt.Errorf("%w: deck format %q", types.ErrUnsupported, f)
}

// DeckJSON writes cards as an indented JSON array. Unrated difficulties are
// written as null.
func DeckJSON(w io.Writer, cards []types.Flashcard) error {
	if cards == nil {
		cards = []types.Flashcard{}
	}
	return writeJSON(w, cards)
}

// DeckText writes cards as a numbered question and answer list.
func DeckText(w io.Writer, subject string, cards []types.Flashcard) error {
	var b strings.Builder
	fmt.Fprintf(&b, "Konu: %s (%d kart)\n", subject, len(cards))
	for _, c := range cards {
		fmt.Fprintf(&b, "\n%d. [%s] %s\n   %s\n", c.ID, c.Category, c.Question, c.Answer)
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}
