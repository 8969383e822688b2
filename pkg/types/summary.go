// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// DetailLevel grades the amount of source material behind a summary.
type DetailLevel string

const (
	DetailBasic    DetailLevel = "Temel"
	DetailMedium   DetailLevel = "Orta"
	DetailDetailed DetailLevel = "Detaylı"
)

// DetailLevelForSize maps a byte size to a detail level. A non-positive
// size yields the empty level.
func DetailLevelForSize(size int64) DetailLevel {
	switch {
	case size <= 0:
		return ""
	case size > 1_000_000:
		return DetailDetailed
	case size > 100_000:
		return DetailMedium
	default:
		return DetailBasic
	}
}

// TermNote pairs a detected term with a subject-specific study note.
type TermNote struct {
	Term string `json:"term" yaml:"term"`
	Note string `json:"note" yaml:"note"`
}

// SubjectEvaluation is the subject-specific commentary block of a summary.
type SubjectEvaluation struct {
	// Intro opens the block.
	Intro string `json:"intro" yaml:"intro"`

	// Notes holds one entry per detected term of the subject's category.
	Notes []TermNote `json:"notes,omitempty" yaml:"notes,omitempty"`

	// Advice closes the block.
	Advice string `json:"advice,omitempty" yaml:"advice,omitempty"`
}

// SummaryReport is the structured summary of a text. Rendering to HTML,
// Markdown, or plain text happens elsewhere.
type SummaryReport struct {
	// Subject is the classified subject.
	Subject string `json:"subject" yaml:"subject"`

	// Sources lists document names found in boundary markers, or the
	// source label when there are none.
	Sources []string `json:"sources,omitempty" yaml:"sources,omitempty"`

	// LineCount is the number of content lines after normalization.
	LineCount int `json:"line_count" yaml:"line_count"`

	// WordCount is the number of whitespace-separated words.
	WordCount int `json:"word_count" yaml:"word_count"`

	// DetailLevel is derived from the size hint, empty when none was given.
	DetailLevel DetailLevel `json:"detail_level,omitempty" yaml:"detail_level,omitempty"`

	// Headings holds at most the configured heading cap.
	Headings []string `json:"headings" yaml:"headings"`

	// KeyPoints holds at most the configured key-point cap.
	KeyPoints []string `json:"key_points" yaml:"key_points"`

	// Definitions holds at most the configured definition cap.
	Definitions []DefinitionPair `json:"definitions" yaml:"definitions"`

	// DetectedTerms lists keywords found per category key.
	DetectedTerms map[string][]string `json:"detected_terms" yaml:"detected_terms"`

	// TermHighlights is the first run of detected terms across categories.
	TermHighlights []string `json:"term_highlights,omitempty" yaml:"term_highlights,omitempty"`

	// Evaluation is the subject-specific commentary.
	Evaluation SubjectEvaluation `json:"evaluation" yaml:"evaluation"`

	// Recommendations is the subject's study advice list.
	Recommendations []string `json:"recommendations" yaml:"recommendations"`

	// Topics holds fallback topics when nothing could be extracted.
	Topics []string `json:"topics,omitempty" yaml:"topics,omitempty"`

	// Fallback is true when the report was filled from the fallback library.
	Fallback bool `json:"fallback" yaml:"fallback"`
}
