// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package summary composes a structured study summary of a text: subject,
// headings, key points, definitions, detected terms, subject commentary, and
// study recommendations. Rendering lives in package render.
package summary

import (
	"math/rand/v2"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/classify"
	"github.com/pdiddy/study-engine/internal/extract"
	"github.com/pdiddy/study-engine/internal/fallback"
	"github.com/pdiddy/study-engine/internal/normalize"
	"github.com/pdiddy/study-engine/internal/vocab"
	"github.com/pdiddy/study-engine/pkg/types"
)

// Options configures a Composer. Nil fields select built-in defaults.
type Options struct {
	Config     types.ExtractionConfig
	Vocabulary *vocab.Vocabulary
	Library    *fallback.Library
	Logger     *zap.Logger
}

// Composer builds SummaryReports.
type Composer struct {
	cfg        types.ExtractionConfig
	classifier *classify.Classifier
	extractor  *extract.Extractor
	lib        *fallback.Library
	log        *zap.Logger
}

// New returns a Composer for opts.
func New(opts Options) *Composer {
	if opts.Vocabulary == nil {
		opts.Vocabulary = vocab.Default()
	}
	if opts.Library == nil {
		opts.Library = fallback.Default()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	return &Composer{
		cfg:        opts.Config,
		classifier: classify.New(opts.Vocabulary),
		extractor:  extract.New(opts.Config, opts.Vocabulary),
		lib:        opts.Library,
		log:        opts.Logger,
	}
}

// Compose summarizes in. When nothing can be extracted the report is filled
// with fallback topics for the subject; rng samples them, nil takes the
// first ones in library order.
func (c *Composer) Compose(in types.ExtractionInput, rng *rand.Rand) types.SummaryReport {
	cls := c.classifier.Classify(in.Text, in.SourceLabel)
	ext := c.extractor.Extract(in.Text)
	raw := normalize.RawLines(in.Text)

	report := types.SummaryReport{
		Subject:         cls.Subject,
		Sources:         in.Sources(),
		LineCount:       len(normalize.Lines(in.Text, c.cfg.MinLineLength)),
		WordCount:       normalize.WordCount(strings.Join(raw, "\n")),
		DetailLevel:     types.DetailLevelForSize(in.SizeHint),
		Headings:        orEmpty(ext.Headings),
		KeyPoints:       orEmpty(ext.KeyPoints),
		Definitions:     ext.Definitions,
		DetectedTerms:   cls.DetectedTerms,
		TermHighlights:  c.classifier.Highlights(cls.DetectedTerms, c.cfg.MaxTermHighlights),
		Evaluation:      c.evaluation(cls),
		Recommendations: c.lib.Recommendations(cls.Subject),
	}
	if report.Definitions == nil {
		report.Definitions = []types.DefinitionPair{}
	}
	if ext.IsEmpty() {
		report.Topics = c.lib.Topics(cls.Subject, c.cfg.FallbackTopics, rng)
		report.Fallback = true
	}

	c.log.Debug("composed summary",
		zap.String("subject", report.Subject),
		zap.String("classified_by", string(cls.Source)),
		zap.Int("headings", len(report.Headings)),
		zap.Int("key_points", len(report.KeyPoints)),
		zap.Int("definitions", len(report.Definitions)),
		zap.Bool("fallback", report.Fallback),
	)
	return report
}

// evaluation builds the commentary block. Term notes are listed only for
// terms of the subject's own category.
func (c *Composer) evaluation(cls types.Classification) types.SubjectEvaluation {
	ev := c.lib.Evaluation(cls.Subject)
	out := types.SubjectEvaluation{Intro: ev.Intro, Advice: ev.Advice}
	if ev.Note == "" || cls.Category == "" {
		return out
	}
	for _, term := range cls.DetectedTerms[cls.Category] {
		out.Notes = append(out.Notes, types.TermNote{Term: normalize.UpperFirst(term), Note: ev.Note})
	}
	return out
}

func orEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
