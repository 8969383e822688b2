// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine is the public entry point of the study pipeline. It wires
// the classifier, extractors, flashcard synthesizer, and summary composer to
// one vocabulary, one fallback library, and one set of thresholds.
//
// Every method is a pure function of its arguments and the tables the
// Engine was built with. Randomness comes only from the *rand.Rand passed
// in, so a fixed seed reproduces a result exactly.
package engine

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/classify"
	"github.com/pdiddy/study-engine/internal/extract"
	"github.com/pdiddy/study-engine/internal/fallback"
	"github.com/pdiddy/study-engine/internal/flashcard"
	"github.com/pdiddy/study-engine/internal/summary"
	"github.com/pdiddy/study-engine/internal/vocab"
	"github.com/pdiddy/study-engine/pkg/types"
)

var validate = validator.New()

// Options configures an Engine. Zero values select the built-in tables and
// the stock thresholds.
type Options struct {
	Vocabulary *vocab.Vocabulary
	Library    *fallback.Library
	Config     *types.ExtractionConfig
	Logger     *zap.Logger
}

// Engine runs the pipeline. It is immutable and safe for concurrent use.
type Engine struct {
	cfg        types.ExtractionConfig
	vocab      *vocab.Vocabulary
	lib        *fallback.Library
	classifier *classify.Classifier
	extractor  *extract.Extractor
	cards      *flashcard.Synthesizer
	summaries  *summary.Composer
	log        *zap.Logger
}

// New validates opts and builds an Engine.
func New(opts Options) (*Engine, error) {
	cfg := types.DefaultExtractionConfig()
	if opts.Config != nil {
		cfg = *opts.Config
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("%w: extraction: %v", types.ErrInvalidConfig, err)
	}
	if opts.Vocabulary == nil {
		opts.Vocabulary = vocab.Default()
	}
	if opts.Library == nil {
		opts.Library = fallback.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}

	return &Engine{
		cfg:        cfg,
		vocab:      opts.Vocabulary,
		lib:        opts.Library,
		classifier: classify.New(opts.Vocabulary),
		extractor:  extract.New(cfg, opts.Vocabulary),
		cards: flashcard.New(flashcard.Options{
			Config:     cfg,
			Vocabulary: opts.Vocabulary,
			Library:    opts.Library,
			Logger:     opts.Logger,
		}),
		summaries: summary.New(summary.Options{
			Config:     cfg,
			Vocabulary: opts.Vocabulary,
			Library:    opts.Library,
			Logger:     opts.Logger,
		}),
		log: opts.Logger,
	}, nil
}

// Config returns the thresholds in use.
func (e *Engine) Config() types.ExtractionConfig { return e.cfg }

// Vocabulary returns the vocabulary in use.
func (e *Engine) Vocabulary() *vocab.Vocabulary { return e.vocab }

// Library returns the fallback library in use.
func (e *Engine) Library() *fallback.Library { return e.lib }

// ClassifySubject returns the subject of text, with labelHint (usually a
// file name) taking precedence when it names a subject.
func (e *Engine) ClassifySubject(text, labelHint string) types.Classification {
	return e.classifier.Classify(text, labelHint)
}

// Extract returns the capped headings, key points, and definitions of text.
func (e *Engine) Extract(text string) types.Extraction {
	return e.extractor.Extract(text)
}

// Batch is one synthesized set of flashcards.
type Batch struct {
	Classification types.Classification
	Cards          []types.Flashcard
	// Fallback is true when no card could be built from the text and the
	// subject's canned deck was used instead.
	Fallback bool
}

// SynthesizeFlashcards classifies in and builds at most limit cards from
// it. A zero limit selects the configured default. A negative limit fails
// with types.ErrPrecondition; missing content never fails.
func (e *Engine) SynthesizeFlashcards(in types.ExtractionInput, limit int, rng *rand.Rand) (Batch, error) {
	cls := e.classifier.Classify(in.Text, in.SourceLabel)
	res, err := e.cards.Synthesize(in.Text, cls.Subject, limit, rng)
	if err != nil {
		return Batch{}, err
	}
	return Batch{Classification: cls, Cards: res.Cards, Fallback: res.Fallback}, nil
}

// ComposeSummary builds the structured summary of in.
func (e *Engine) ComposeSummary(in types.ExtractionInput, rng *rand.Rand) types.SummaryReport {
	return e.summaries.Compose(in, rng)
}

// NewDeck synthesizes flashcards and wraps them in a Deck ready to be
// stored. The deck ID is a ULID drawn from the current time and rng, or
// from the default entropy source when rng is nil.
func (e *Engine) NewDeck(in types.ExtractionInput, limit int, rng *rand.Rand) (types.Deck, error) {
	batch, err := e.SynthesizeFlashcards(in, limit, rng)
	if err != nil {
		return types.Deck{}, err
	}
	now := time.Now().UTC()
	var id ulid.ULID
	if rng != nil {
		id = ulid.MustNew(ulid.Timestamp(now), rngReader{rng})
	} else {
		id = ulid.Make()
	}
	return types.Deck{
		ID:        id.String(),
		Subject:   batch.Classification.Subject,
		Sources:   in.Sources(),
		Fallback:  batch.Fallback,
		CreatedAt: now,
		Cards:     batch.Cards,
	}, nil
}

// rngReader adapts a *rand.Rand to io.Reader for ULID entropy.
type rngReader struct{ r *rand.Rand }

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.r.Uint32())
	}
	return len(p), nil
}
