// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package flashcard turns text into a capped, de-duplicated deck of
// question/answer cards.
//
// Definitions become cards first. When they yield fewer cards than the
// sufficiency minimum, sentences from the remaining lines are added, each
// anchored on a domain term when one is present. An empty result is replaced
// by the fallback deck of the subject. IDs are assigned last, so they always
// run 1..n over the final deck.
package flashcard

import (
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/extract"
	"github.com/pdiddy/study-engine/internal/fallback"
	"github.com/pdiddy/study-engine/internal/normalize"
	"github.com/pdiddy/study-engine/internal/vocab"
	"github.com/pdiddy/study-engine/pkg/types"
)

// Options configures a Synthesizer. Nil fields select built-in defaults.
type Options struct {
	Config     types.ExtractionConfig
	Vocabulary *vocab.Vocabulary
	Library    *fallback.Library
	Logger     *zap.Logger
}

// Synthesizer builds flashcard decks. It is safe for concurrent use as long
// as callers do not share a *rand.Rand between goroutines.
type Synthesizer struct {
	cfg   types.ExtractionConfig
	vocab *vocab.Vocabulary
	lib   *fallback.Library
	ext   *extract.Extractor
	log   *zap.Logger
}

// New returns a Synthesizer for opts.
func New(opts Options) *Synthesizer {
	if opts.Vocabulary == nil {
		opts.Vocabulary = vocab.Default()
	}
	if opts.Library == nil {
		opts.Library = fallback.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Synthesizer{
		cfg:   opts.Config,
		vocab: opts.Vocabulary,
		lib:   opts.Library,
		ext:   extract.New(opts.Config, opts.Vocabulary),
		log:   opts.Logger,
	}
}

// Result is a synthesized deck with provenance counts.
type Result struct {
	Cards []types.Flashcard
	// FromDefinitions and FromSentences count cards by origin.
	FromDefinitions int
	FromSentences   int
	// Fallback is true when Cards is the subject's canned deck.
	Fallback bool
}

// ResolveCap validates a requested cap. Zero selects the configured
// default and values above the configured maximum are clamped to it.
func (s *Synthesizer) ResolveCap(limit int) (int, error) {
	switch {
	case limit < 0:
		return 0, fmt.Errorf("%w: flashcard cap must not be negative, got %d", types.ErrPrecondition, limit)
	case limit == 0:
		return s.cfg.DefaultCap, nil
	case limit > s.cfg.MaxCap:
		return s.cfg.MaxCap, nil
	default:
		return limit, nil
	}
}

// Synthesize builds a deck from text. subject selects the fallback deck.
// rng picks among generic question templates; nil always picks the first.
func (s *Synthesizer) Synthesize(text, subject string, limit int, rng *rand.Rand) (Result, error) {
	limit, err := s.ResolveCap(limit)
	if err != nil {
		return Result{}, err
	}

	lines := normalize.Lines(text, s.cfg.MinLineLength)
	matches := s.ext.DefinitionMatches(lines, 0)

	d := newDeck(limit)
	var res Result

	consumed := make(map[int]bool, len(matches))
	for _, m := range matches {
		consumed[m.Line] = true
	}
	for _, m := range matches {
		if d.full() {
			break
		}
		if d.add(types.Flashcard{
			Question: s.lib.DefinitionQuestion(m.Pair.Term),
			Answer:   m.Pair.Definition,
			Category: types.CategoryDefinition,
		}) {
			res.FromDefinitions++
		}
	}

	if d.size() < s.cfg.MinSufficientCards {
		res.FromSentences = s.addSentences(d, lines, consumed, rng)
	}

	res.Cards = d.cards
	if len(res.Cards) == 0 {
		res.Cards = truncate(s.lib.Deck(subject), limit)
		res.Fallback = true
	}
	for i := range res.Cards {
		res.Cards[i].ID = i + 1
		res.Cards[i].Difficulty = types.DifficultyUnset
		res.Cards[i].Studied = false
	}

	s.log.Debug("synthesized flashcards",
		zap.String("subject", subject),
		zap.Int("cap", limit),
		zap.Int("cards", len(res.Cards)),
		zap.Int("from_definitions", res.FromDefinitions),
		zap.Int("from_sentences", res.FromSentences),
		zap.Bool("fallback", res.Fallback),
	)
	return res, nil
}

// addSentences adds sentence cards from lines that did not yield a
// definition and returns how many were added. A sentence already used as
// an answer is skipped before a question is chosen for it.
func (s *Synthesizer) addSentences(d *deck, lines []string, consumed map[int]bool, rng *rand.Rand) int {
	added := 0
	used := make(map[string]bool)
	for i, line := range lines {
		if consumed[i] {
			continue
		}
		for _, sentence := range normalize.SplitSentences(line) {
			if d.full() {
				return added
			}
			n := normalize.RuneLen(sentence)
			if n < s.cfg.SentenceCardMinLength || n > s.cfg.SentenceCardMaxLength || used[sentence] {
				continue
			}
			used[sentence] = true
			q, ok := s.sentenceQuestion(sentence, rng)
			if !ok {
				continue
			}
			if d.add(types.Flashcard{Question: q, Answer: sentence, Category: types.CategoryGeneral}) {
				added++
			}
		}
	}
	return added
}

func (s *Synthesizer) sentenceQuestion(sentence string, rng *rand.Rand) (string, bool) {
	if term, ok := s.vocab.AnchorTerm(sentence); ok {
		return s.lib.TermQuestion(term), true
	}
	return s.lib.GenericQuestion(rng)
}

func truncate(cards []types.Flashcard, limit int) []types.Flashcard {
	if len(cards) > limit {
		return cards[:limit]
	}
	return cards
}

// deck accumulates unique cards up to a cap.
type deck struct {
	limit int
	cards []types.Flashcard
	seen  map[[2]string]bool
}

func newDeck(limit int) *deck {
	return &deck{limit: limit, seen: make(map[[2]string]bool)}
}

func (d *deck) size() int { return len(d.cards) }

func (d *deck) full() bool { return len(d.cards) >= d.limit }

// add appends c unless the deck is full or already holds the same
// question and answer.
func (d *deck) add(c types.Flashcard) bool {
	if d.full() || c.Question == "" || c.Answer == "" || d.seen[c.Key()] {
		return false
	}
	d.seen[c.Key()] = true
	d.cards = append(d.cards, c)
	return true
}
