// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify decides the subject of a text.
//
// The rules apply in order and the first one that fires wins:
//  1. a subject alias in the source label,
//  2. a subject alias in the text body,
//  3. the category with the most distinct keywords present,
//  4. the vocabulary's default subject.
//
// Ties are broken by category order in the vocabulary.
package classify

import (
	"strings"

	"github.com/pdiddy/study-engine/internal/normalize"
	"github.com/pdiddy/study-engine/internal/vocab"
	"github.com/pdiddy/study-engine/pkg/types"
)

// Classifier detects subjects against a fixed vocabulary. It holds no
// mutable state and is safe for concurrent use.
type Classifier struct {
	vocab *vocab.Vocabulary
}

// New returns a Classifier for v. A nil vocabulary selects the built-in one.
func New(v *vocab.Vocabulary) *Classifier {
	if v == nil {
		v = vocab.Default()
	}
	return &Classifier{vocab: v}
}

// Classify returns the subject of text, using label as a hint.
func (c *Classifier) Classify(text, label string) types.Classification {
	lowerText := normalize.Lower(normalize.Text(text))
	terms := c.detect(lowerText)

	result := types.Classification{
		Scores:        make(map[string]int, len(c.vocab.Categories)),
		DetectedTerms: terms,
	}
	for _, cat := range c.vocab.Categories {
		result.Scores[cat.Key] = len(terms[cat.Key])
	}

	if cat, ok := c.aliasIn(normalize.Lower(label)); ok {
		return c.decide(result, cat, types.SourceLabel)
	}
	if cat, ok := c.aliasIn(lowerText); ok {
		return c.decide(result, cat, types.SourceText)
	}

	best := -1
	bestScore := 0
	for i, cat := range c.vocab.Categories {
		if s := result.Scores[cat.Key]; s > bestScore {
			best, bestScore = i, s
		}
	}
	if best >= 0 {
		return c.decide(result, c.vocab.Categories[best], types.SourceKeywords)
	}

	result.Subject = c.vocab.DefaultSubject
	result.Source = types.SourceDefault
	return result
}

func (c *Classifier) decide(r types.Classification, cat vocab.Category, src types.ClassificationSource) types.Classification {
	r.Subject = cat.Subject
	r.Category = cat.Key
	r.Source = src
	return r
}

// aliasIn returns the first category, in vocabulary order, with an alias
// contained in lower.
func (c *Classifier) aliasIn(lower string) (vocab.Category, bool) {
	if strings.TrimSpace(lower) == "" {
		return vocab.Category{}, false
	}
	for _, cat := range c.vocab.Categories {
		for _, alias := range cat.Aliases {
			if strings.Contains(lower, alias) {
				return cat, true
			}
		}
	}
	return vocab.Category{}, false
}

// DetectTerms returns the keywords of each category that occur in text.
// Categories without hits are omitted.
func (c *Classifier) DetectTerms(text string) map[string][]string {
	return c.detect(normalize.Lower(normalize.Text(text)))
}

func (c *Classifier) detect(lower string) map[string][]string {
	terms := make(map[string][]string)
	if lower == "" {
		return terms
	}
	for _, cat := range c.vocab.Categories {
		for _, kw := range cat.Keywords {
			if strings.Contains(lower, kw) {
				terms[cat.Key] = append(terms[cat.Key], kw)
			}
		}
	}
	return terms
}

// Highlights flattens detected terms in category order, keeping at most
// limit entries. A non-positive limit keeps all of them.
func (c *Classifier) Highlights(terms map[string][]string, limit int) []string {
	var out []string
	for _, cat := range c.vocab.Categories {
		for _, t := range terms[cat.Key] {
			if limit > 0 && len(out) == limit {
				return out
			}
			out = append(out, t)
		}
	}
	return out
}
