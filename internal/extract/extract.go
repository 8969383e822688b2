// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package extract finds headings, key points, and term definitions in
// normalized lines. Each extractor is an ordered table of rules, so adding a
// pattern means adding a table entry rather than another branch.
package extract

import (
	"github.com/pdiddy/study-engine/internal/normalize"
	"github.com/pdiddy/study-engine/internal/vocab"
	"github.com/pdiddy/study-engine/pkg/types"
)

// DefinitionMatch is a definition together with where it was found.
type DefinitionMatch struct {
	Pair types.DefinitionPair
	// Line is the index of the source line in the input slice.
	Line int
	// Rule names the rule that matched.
	Rule string
}

// Extractor applies the heading, key-point, and definition tables. It is
// immutable after construction and safe for concurrent use.
type Extractor struct {
	cfg         types.ExtractionConfig
	headings    []Rule[string]
	keyPoints   []Rule[string]
	definitions []Rule[types.DefinitionPair]
}

// New builds an Extractor from thresholds and a vocabulary. A nil
// vocabulary selects the built-in one.
func New(cfg types.ExtractionConfig, v *vocab.Vocabulary) *Extractor {
	if v == nil {
		v = vocab.Default()
	}
	return &Extractor{
		cfg:         cfg,
		headings:    HeadingRules(v),
		keyPoints:   KeyPointRules(v),
		definitions: DefinitionRules(cfg),
	}
}

// Extract normalizes text and runs all three extractors with the
// configured caps.
func (e *Extractor) Extract(text string) types.Extraction {
	lines := normalize.Lines(text, e.cfg.MinLineLength)
	return types.Extraction{
		Headings:    e.Headings(lines, e.cfg.MaxHeadings),
		KeyPoints:   e.KeyPoints(lines, e.cfg.MaxKeyPoints),
		Definitions: e.Definitions(lines, e.cfg.MaxDefinitions),
	}
}

// Heading reports whether line is a heading.
func (e *Extractor) Heading(line string) (string, bool) {
	if normalize.RuneLen(line) >= e.cfg.HeadingMaxLength {
		return "", false
	}
	h, _, ok := firstMatch(e.headings, line)
	return h, ok
}

// KeyPoint reports whether line is a key point and returns it with any
// list marker removed.
func (e *Extractor) KeyPoint(line string) (string, bool) {
	n := normalize.RuneLen(line)
	if n < e.cfg.KeyPointMinLength || n > e.cfg.KeyPointMaxLength {
		return "", false
	}
	p, _, ok := firstMatch(e.keyPoints, line)
	return p, ok
}

// Definition reports whether line defines a term.
func (e *Extractor) Definition(line string) (types.DefinitionPair, string, bool) {
	return firstMatch(e.definitions, line)
}

// Headings returns up to limit distinct headings in source order. A
// non-positive limit means no cap.
func (e *Extractor) Headings(lines []string, limit int) []string {
	return collect(lines, limit, e.Heading)
}

// KeyPoints returns up to limit distinct key points in source order. A
// non-positive limit means no cap.
func (e *Extractor) KeyPoints(lines []string, limit int) []string {
	return collect(lines, limit, e.KeyPoint)
}

// Definitions returns up to limit distinct definitions in source order. A
// non-positive limit means no cap.
func (e *Extractor) Definitions(lines []string, limit int) []types.DefinitionPair {
	matches := e.DefinitionMatches(lines, limit)
	out := make([]types.DefinitionPair, len(matches))
	for i, m := range matches {
		out[i] = m.Pair
	}
	return out
}

// DefinitionMatches is Definitions with source positions attached.
func (e *Extractor) DefinitionMatches(lines []string, limit int) []DefinitionMatch {
	var out []DefinitionMatch
	seen := make(map[types.DefinitionPair]bool)
	for i, line := range lines {
		if limit > 0 && len(out) == limit {
			break
		}
		pair, rule, ok := e.Definition(line)
		if !ok || seen[pair] {
			continue
		}
		seen[pair] = true
		out = append(out, DefinitionMatch{Pair: pair, Line: i, Rule: rule})
	}
	return out
}

func collect(lines []string, limit int, match func(string) (string, bool)) []string {
	var out []string
	seen := make(map[string]bool)
	for _, line := range lines {
		if limit > 0 && len(out) == limit {
			break
		}
		v, ok := match(line)
		if !ok || seen[v] {
			continue
		}
		seen[v] = true
		out = append(out, v)
	}
	return out
}
