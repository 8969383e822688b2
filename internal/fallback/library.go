// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fallback holds the canned study content used when a text yields
// nothing extractable: per-subject flashcard decks, topic lists, summary
// commentary, study recommendations, question templates, and the course
// curriculum. The content is versioned YAML; a built-in copy is embedded and
// an edited copy can be loaded from disk.
package fallback

import (
	_ "embed"
	"fmt"
	"math/rand/v2"
	"os"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/study-engine/internal/normalize"
	"github.com/pdiddy/study-engine/pkg/types"
)

//go:embed library.yaml
var builtin []byte

const termPlaceholder = "{term}"

// Card is a canned flashcard.
type Card struct {
	Question string `yaml:"question" json:"question"`
	Answer   string `yaml:"answer" json:"answer"`
	Category string `yaml:"category" json:"category"`
}

// Evaluation is the subject commentary block used by summaries.
type Evaluation struct {
	Intro  string `yaml:"intro" json:"intro"`
	Note   string `yaml:"note,omitempty" json:"note,omitempty"`
	Advice string `yaml:"advice,omitempty" json:"advice,omitempty"`
}

// Subject is the content kept for one subject.
type Subject struct {
	Name            string      `yaml:"name" json:"name"`
	Topics          []string    `yaml:"topics" json:"topics"`
	Evaluation      *Evaluation `yaml:"evaluation,omitempty" json:"evaluation,omitempty"`
	Recommendations []string    `yaml:"recommendations,omitempty" json:"recommendations,omitempty"`
	Deck            []Card      `yaml:"deck,omitempty" json:"deck,omitempty"`
}

// Templates are the question formats used by the flashcard synthesizer.
// {term} is replaced by the capitalized term.
type Templates struct {
	DefinitionQuestion string   `yaml:"definition_question"`
	TermQuestion       string   `yaml:"term_question"`
	GenericQuestions   []string `yaml:"generic_questions"`
}

// Course is one course of a curriculum term.
type Course struct {
	Key    string   `yaml:"key" json:"key"`
	Title  string   `yaml:"title" json:"title"`
	Topics []string `yaml:"topics" json:"topics"`
}

// Term groups the courses taught in one academic term (dönem).
type Term struct {
	Term    int      `yaml:"term" json:"term"`
	Courses []Course `yaml:"courses" json:"courses"`
}

// Library is the read-only fallback content.
type Library struct {
	Version        int       `yaml:"version"`
	DefaultSubject string    `yaml:"default_subject"`
	Templates      Templates `yaml:"templates"`
	Subjects       []Subject `yaml:"subjects"`
	Curriculum     []Term    `yaml:"curriculum"`

	index map[string]int
}

var (
	defaultOnce sync.Once
	defaultLib  *Library
)

// Default returns the built-in library. It panics if the embedded file is
// malformed, which the package tests rule out.
func Default() *Library {
	defaultOnce.Do(func() {
		l, err := Parse(builtin)
		if err != nil {
			panic(fmt.Sprintf("fallback: built-in library: %v", err))
		}
		defaultLib = l
	})
	return defaultLib
}

// Load reads a library from a YAML file. An empty path returns the
// built-in library.
func Load(path string) (*Library, error) {
	if path == "" {
		return Default(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading fallback library %s: %w", path, err)
	}
	l, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing fallback library %s: %w", path, err)
	}
	return l, nil
}

// Parse decodes and validates library YAML. The default subject must exist
// and carry a non-empty deck, since every other subject can inherit it.
func Parse(data []byte) (*Library, error) {
	var l Library
	if err := yaml.Unmarshal(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %v", types.ErrInvalidConfig, err)
	}

	l.index = make(map[string]int, len(l.Subjects))
	for i, s := range l.Subjects {
		key := subjectKey(s.Name)
		if key == "" {
			return nil, fmt.Errorf("%w: subject %d has no name", types.ErrInvalidConfig, i)
		}
		if _, dup := l.index[key]; dup {
			return nil, fmt.Errorf("%w: duplicate subject %q", types.ErrInvalidConfig, s.Name)
		}
		l.index[key] = i
	}

	def, ok := l.lookup(l.DefaultSubject)
	if !ok {
		return nil, fmt.Errorf("%w: default subject %q has no entry", types.ErrInvalidConfig, l.DefaultSubject)
	}
	if len(def.Deck) == 0 {
		return nil, fmt.Errorf("%w: default subject %q needs a deck", types.ErrInvalidConfig, l.DefaultSubject)
	}
	if def.Evaluation == nil {
		return nil, fmt.Errorf("%w: default subject %q needs an evaluation", types.ErrInvalidConfig, l.DefaultSubject)
	}
	for _, tmpl := range []string{l.Templates.DefinitionQuestion, l.Templates.TermQuestion} {
		if !strings.Contains(tmpl, termPlaceholder) {
			return nil, fmt.Errorf("%w: question template %q lacks %s", types.ErrInvalidConfig, tmpl, termPlaceholder)
		}
	}
	return &l, nil
}

func subjectKey(name string) string {
	return normalize.Lower(strings.TrimSpace(name))
}

func (l *Library) lookup(name string) (Subject, bool) {
	i, ok := l.index[subjectKey(name)]
	if !ok {
		return Subject{}, false
	}
	return l.Subjects[i], true
}

func (l *Library) defaultSubject() Subject {
	s, _ := l.lookup(l.DefaultSubject)
	return s
}

// Has reports whether the library has an entry for subject.
func (l *Library) Has(subject string) bool {
	_, ok := l.lookup(subject)
	return ok
}

// Subject returns the entry for name with missing parts filled from the
// default subject. Unknown names resolve to the default subject.
func (l *Library) Subject(name string) Subject {
	def := l.defaultSubject()
	s, ok := l.lookup(name)
	if !ok {
		return def
	}
	if len(s.Topics) == 0 {
		s.Topics = def.Topics
	}
	if s.Evaluation == nil {
		s.Evaluation = def.Evaluation
	}
	if len(s.Recommendations) == 0 {
		s.Recommendations = def.Recommendations
	}
	if len(s.Deck) == 0 {
		s.Deck = def.Deck
	}
	return s
}

// Deck returns a fresh copy of the canonical deck for subject. IDs are
// left zero for the caller to assign.
func (l *Library) Deck(subject string) []types.Flashcard {
	cards := l.Subject(subject).Deck
	out := make([]types.Flashcard, len(cards))
	for i, c := range cards {
		out[i] = types.Flashcard{Question: c.Question, Answer: c.Answer, Category: c.Category}
	}
	return out
}

// Topics returns up to n topics for subject. With a nil rng the first n
// topics are returned in library order; otherwise a seeded sample is drawn.
// A non-positive n returns all topics.
func (l *Library) Topics(subject string, n int, rng *rand.Rand) []string {
	topics := l.Subject(subject).Topics
	if n <= 0 || n > len(topics) {
		n = len(topics)
	}
	if rng == nil {
		return append([]string(nil), topics[:n]...)
	}
	out := make([]string, 0, n)
	for _, i := range rng.Perm(len(topics))[:n] {
		out = append(out, topics[i])
	}
	return out
}

// Evaluation returns the commentary block for subject.
func (l *Library) Evaluation(subject string) Evaluation {
	return *l.Subject(subject).Evaluation
}

// Recommendations returns a copy of the study advice for subject.
func (l *Library) Recommendations(subject string) []string {
	return append([]string(nil), l.Subject(subject).Recommendations...)
}

// DefinitionQuestion formats the question for a defined term.
func (l *Library) DefinitionQuestion(term string) string {
	return strings.ReplaceAll(l.Templates.DefinitionQuestion, termPlaceholder, term)
}

// TermQuestion formats the question for a sentence anchored on term.
func (l *Library) TermQuestion(term string) string {
	return strings.ReplaceAll(l.Templates.TermQuestion, termPlaceholder, normalize.UpperFirst(term))
}

// GenericQuestion picks a question for a sentence without an anchor term.
// It returns false when no generic questions are configured.
func (l *Library) GenericQuestion(rng *rand.Rand) (string, bool) {
	qs := l.Templates.GenericQuestions
	switch {
	case len(qs) == 0:
		return "", false
	case rng == nil:
		return qs[0], true
	default:
		return qs[rng.IntN(len(qs))], true
	}
}

// Course returns a course of the curriculum by term number and key.
func (l *Library) Course(term int, key string) (Course, error) {
	for _, t := range l.Curriculum {
		if t.Term != term {
			continue
		}
		for _, c := range t.Courses {
			if c.Key == key {
				return c, nil
			}
		}
	}
	return Course{}, fmt.Errorf("course %q in term %d: %w", key, term, types.ErrNotFound)
}

// Term returns the courses of one curriculum term.
func (l *Library) Term(term int) (Term, error) {
	for _, t := range l.Curriculum {
		if t.Term == term {
			return t, nil
		}
	}
	return Term{}, fmt.Errorf("term %d: %w", term, types.ErrNotFound)
}
