// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vocab loads the domain vocabulary: the ordered subject categories
// with their keywords and aliases, the anchor terms used for flashcard
// questions, and the marker words the extractors look for.
//
// A built-in vocabulary is embedded in the binary. An edited copy can be
// loaded from disk without recompiling.
package vocab

import (
	_ "embed"
	"fmt"
	"os"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/study-engine/internal/normalize"
	"github.com/pdiddy/study-engine/pkg/types"
)

//go:embed vocabulary.yaml
var builtin []byte

// Category is one subject area of the vocabulary.
type Category struct {
	// Key is the stable identifier used in score and term maps.
	Key string `yaml:"key"`

	// Subject is the display name reported by classification.
	Subject string `yaml:"subject"`

	// Aliases are literal subject names; finding one in a label or text
	// selects the subject outright.
	Aliases []string `yaml:"aliases"`

	// Keywords are counted for keyword-density scoring.
	Keywords []string `yaml:"keywords"`
}

// Markers holds the word lists used by the heading and key-point rules.
type Markers struct {
	Headings   []string `yaml:"headings"`
	Importance []string `yaml:"importance"`
	Questions  []string `yaml:"questions"`
}

// Vocabulary is the read-only domain vocabulary. All keyword, alias, and
// anchor lists are lower-cased with Turkish rules when loaded.
type Vocabulary struct {
	Version        int        `yaml:"version"`
	DefaultSubject string     `yaml:"default_subject"`
	Categories     []Category `yaml:"categories"`
	AnchorTerms    []string   `yaml:"anchor_terms"`
	Markers        Markers    `yaml:"markers"`
}

var (
	defaultOnce  sync.Once
	defaultVocab *Vocabulary
)

// Default returns the built-in vocabulary. It panics if the embedded file
// is malformed, which the package tests rule out.
func Default() *Vocabulary {
	defaultOnce.Do(func() {
		v, err := Parse(builtin)
		if err != nil {
			panic(fmt.Sprintf("vocab: built-in vocabulary: %v", err))
		}
		defaultVocab = v
	})
	return defaultVocab
}

// Load reads a vocabulary from a YAML file. An empty path returns the
// built-in vocabulary.
func Load(path string) (*Vocabulary, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading vocabulary %s: %w", path, err)
	}
	v, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing vocabulary %s: %w", path, err)
	}
	return v, nil
}

// Parse decodes and validates vocabulary YAML.
func Parse(data []byte) (*Vocabulary, error) {
	var v Vocabulary
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}
	if strings.TrimSpace(v.DefaultSubject) == "" {
		return nil, fmt.Errorf("%w: default_subject is required", types.ErrInvalidConfig)
	}

	seen := make(map[string]bool, len(v.Categories))
	for i := range v.Categories {
		c := &v.Categories[i]
		c.Key = strings.TrimSpace(c.Key)
		c.Subject = strings.TrimSpace(c.Subject)
		if c.Key == "" || c.Subject == "" {
			return nil, fmt.Errorf("%w: category %d needs key and subject", types.ErrInvalidConfig, i)
		}
		if seen[c.Key] {
			return nil, fmt.Errorf("%w: duplicate category %q", types.ErrInvalidConfig, c.Key)
		}
		seen[c.Key] = true
		c.Aliases = lowerAll(c.Aliases)
		c.Keywords = lowerAll(c.Keywords)
	}
	v.AnchorTerms = lowerAll(v.AnchorTerms)
	v.Markers.Headings = lowerAll(v.Markers.Headings)
	v.Markers.Importance = lowerAll(v.Markers.Importance)
	v.Markers.Questions = lowerAll(v.Markers.Questions)
	return &v, nil
}

// lowerAll trims, lower-cases, and de-duplicates words, keeping the first
// occurrence of each.
func lowerAll(words []string) []string {
	out := make([]string, 0, len(words))
	seen := make(map[string]bool, len(words))
	for _, w := range words {
		w = normalize.Lower(strings.TrimSpace(w))
		if w == "" || seen[w] {
			continue
		}
		seen[w] = true
		out = append(out, w)
	}
	return out
}

// Category returns the category with the given key.
func (v *Vocabulary) Category(key string) (Category, bool) {
	for _, c := range v.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return Category{}, false
}

// CategoryForSubject returns the category whose display name is subject.
func (v *Vocabulary) CategoryForSubject(subject string) (Category, bool) {
	for _, c := range v.Categories {
		if c.Subject == subject {
			return c, true
		}
	}
	return Category{}, false
}

// Subjects returns the display names in category order followed by the
// default subject.
func (v *Vocabulary) Subjects() []string {
	out := make([]string, 0, len(v.Categories)+1)
	for _, c := range v.Categories {
		out = append(out, c.Subject)
	}
	return append(out, v.DefaultSubject)
}

// AnchorTerm returns the anchor term that occurs earliest in text. A term
// matches only at the start of a word, so "kanın" matches "kan" but
// "mekanizma" does not. When two terms start at the same position the
// longer one wins.
func (v *Vocabulary) AnchorTerm(text string) (string, bool) {
	lower := normalize.Lower(text)
	best, bestAt := "", -1
	for _, term := range v.AnchorTerms {
		at := wordPrefixIndex(lower, term)
		if at < 0 {
			continue
		}
		if bestAt < 0 || at < bestAt || (at == bestAt && len(term) > len(best)) {
			best, bestAt = term, at
		}
	}
	return best, bestAt >= 0
}

// wordPrefixIndex returns the byte offset of the first occurrence of term
// in s that starts a word, or -1.
func wordPrefixIndex(s, term string) int {
	if term == "" {
		return -1
	}
	for from := 0; from < len(s); {
		i := strings.Index(s[from:], term)
		if i < 0 {
			return -1
		}
		at := from + i
		prev, _ := utf8.DecodeLastRuneInString(s[:at])
		if at == 0 || !(unicode.IsLetter(prev) || unicode.IsDigit(prev)) {
			return at
		}
		_, size := utf8.DecodeRuneInString(s[at:])
		from = at + size
	}
	return -1
}
