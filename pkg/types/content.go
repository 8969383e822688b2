// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"strings"
)

// ExtractionInput is the text handed to the extraction core.
type ExtractionInput struct {
	// Text is the raw UTF-8 text. It may be empty.
	Text string `json:"text" yaml:"text"`

	// SourceLabel is an optional file name or title used as a subject hint.
	SourceLabel string `json:"source_label,omitempty" yaml:"source_label,omitempty"`

	// SizeHint is the original byte size of the source, when known.
	SizeHint int64 `json:"size_hint,omitempty" yaml:"size_hint,omitempty"`
}

// Sources lists the documents named by boundary markers in Text, or the
// trimmed SourceLabel when there are none.
func (in ExtractionInput) Sources() []string {
	var names []string
	text := strings.ReplaceAll(in.Text, "\r\n", "\n")
	for _, sec := range SplitBoundaries(text) {
		if sec.Name != "" {
			names = append(names, sec.Name)
		}
	}
	if len(names) == 0 {
		if label := strings.TrimSpace(in.SourceLabel); label != "" {
			names = []string{label}
		}
	}
	return names
}

// DefinitionPair is a term and its definition found in one line of text.
type DefinitionPair struct {
	// Term is the defined concept, 3 to 50 characters.
	Term string `json:"term" yaml:"term"`

	// Definition is the explanatory text, 10 to 300 characters.
	Definition string `json:"definition" yaml:"definition"`
}

// Extraction is the combined output of the pattern extractors.
type Extraction struct {
	// Headings holds section titles in source order.
	Headings []string `json:"headings" yaml:"headings"`

	// KeyPoints holds salient lines with list markers stripped.
	KeyPoints []string `json:"key_points" yaml:"key_points"`

	// Definitions holds term/definition pairs in source order.
	Definitions []DefinitionPair `json:"definitions" yaml:"definitions"`
}

// IsEmpty reports whether no extractor produced anything.
func (e Extraction) IsEmpty() bool {
	return len(e.Headings) == 0 && len(e.KeyPoints) == 0 && len(e.Definitions) == 0
}

// ClassificationSource tells which rule decided the subject.
type ClassificationSource string

const (
	SourceLabel    ClassificationSource = "label"
	SourceText     ClassificationSource = "text"
	SourceKeywords ClassificationSource = "keywords"
	SourceDefault  ClassificationSource = "default"
)

// Classification is the result of subject detection.
type Classification struct {
	// Subject is the display name of the chosen subject (e.g. "Anatomi").
	Subject string `json:"subject" yaml:"subject"`

	// Category is the vocabulary category key behind Subject, empty for
	// the default subject.
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// Source records which rule produced Subject.
	Source ClassificationSource `json:"source" yaml:"source"`

	// Scores counts distinct keyword hits per category key.
	Scores map[string]int `json:"scores" yaml:"scores"`

	// DetectedTerms lists the keywords found per category key, in
	// vocabulary order.
	DetectedTerms map[string][]string `json:"detected_terms" yaml:"detected_terms"`
}

const (
	boundaryPrefix = "=== "
	boundarySuffix = " ==="
)

// BoundaryMarker returns the line that separates concatenated documents.
func BoundaryMarker(name string) string {
	return boundaryPrefix + name + boundarySuffix
}

// ParseBoundary reports whether line is a document boundary marker and
// returns the document name it carries.
func ParseBoundary(line string) (string, bool) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, boundaryPrefix) || !strings.HasSuffix(line, boundarySuffix) {
		return "", false
	}
	if len(line) < len(boundaryPrefix)+len(boundarySuffix) {
		return "", false
	}
	name := strings.TrimSpace(line[len(boundaryPrefix) : len(line)-len(boundarySuffix)])
	if name == "" {
		return "", false
	}
	return name, true
}

// Section is one document recovered from concatenated text.
type Section struct {
	Name string
	Text string
}

// SplitBoundaries splits concatenated text at boundary markers. Text
// before the first marker is returned as a section with an empty name.
func SplitBoundaries(text string) []Section {
	var sections []Section
	var cur *Section
	var body []string

	flush := func() {
		joined := strings.Join(body, "\n")
		if cur != nil {
			cur.Text = joined
			sections = append(sections, *cur)
		} else if strings.TrimSpace(joined) != "" {
			sections = append(sections, Section{Text: joined})
		}
		body = nil
	}

	for _, line := range strings.Split(text, "\n") {
		if name, ok := ParseBoundary(line); ok {
			flush()
			cur = &Section{Name: name}
			continue
		}
		body = append(body, line)
	}
	flush()
	return sections
}
