// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/container"
	"github.com/pdiddy/study-engine/internal/deckstore"
	"github.com/pdiddy/study-engine/internal/fallback"
	"github.com/pdiddy/study-engine/internal/reader"
	"github.com/pdiddy/study-engine/internal/vocab"
	"github.com/pdiddy/study-engine/pkg/engine"
	"github.com/pdiddy/study-engine/pkg/types"
)

// stdinName labels a document read from standard input.
const stdinName = "stdin"

var (
	header = color.New(color.FgCyan, color.Bold)
	faint  = color.New(color.Faint)
)

// newEngine builds the pipeline from the loaded configuration, reading
// the vocabulary and fallback library overrides when configured.
func newEngine() (*engine.Engine, error) {
	opts := engine.Options{Config: &cfg.Extraction, Logger: logger}
	if p := cfg.Library.VocabularyPath; p != "" {
		v, err := vocab.Load(p)
		if err != nil {
			return nil, err
		}
		opts.Vocabulary = v
	}
	if p := cfg.Library.FallbackPath; p != "" {
		lib, err := fallback.Load(p)
		if err != nil {
			return nil, err
		}
		opts.Library = lib
	}
	return engine.New(opts)
}

// newReader builds a file reader. With reader.markitdown enabled it also
// sets up the container converter; an unavailable runtime or image only
// disables the converter.
func newReader(ctx context.Context) *reader.Reader {
	opts := reader.Options{Config: cfg.Reader, Logger: logger}
	if cfg.Reader.Markitdown {
		rt, err := container.DetectRuntime(ctx, cfg.Reader.Runtime)
		if err == nil {
			var conv *reader.MarkitdownConverter
			conv, err = reader.NewMarkitdownConverter(ctx, rt, cfg.Reader.Image)
			if err == nil {
				opts.Converter = conv
			}
		}
		if err != nil {
			logger.Warn("markitdown converter disabled", zap.Error(err))
		}
	}
	return reader.New(opts)
}

// readInput reads the argument files, or standard input when there are
// none, into one extraction input. Per-file status lines go to stderr. A
// file that exists but cannot be read contributes no text and its name
// still labels the input; only paths that do not exist are an error. The
// --label flag, when set, replaces the derived source label.
func readInput(cmd *cobra.Command, args []string) (types.ExtractionInput, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	r := newReader(ctx)

	var docs []reader.Document
	if len(args) == 0 {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return types.ExtractionInput{}, fmt.Errorf("reading standard input: %w", err)
		}
		docs = []reader.Document{r.ReadBytes(ctx, stdinName, data)}
	} else {
		var res reader.BatchResult
		docs, res = r.ReadAll(ctx, args, cmd.ErrOrStderr())
		if res.Missing == res.Total() {
			return types.ExtractionInput{}, fmt.Errorf("no input file exists")
		}
	}

	var in types.ExtractionInput
	if len(docs) == 1 {
		in = docs[0].Input()
	} else {
		in = reader.Concatenate(docs)
	}
	if label, _ := cmd.Flags().GetString("label"); label != "" {
		in.SourceLabel = label
	}
	logger.Debug("input ready",
		zap.Int("documents", len(docs)),
		zap.String("label", in.SourceLabel),
		zap.Int("bytes", len(in.Text)))
	return in, nil
}

// rngFromFlags returns a generator seeded by --seed, or a randomly seeded
// one when the flag is not set.
func rngFromFlags(cmd *cobra.Command) *rand.Rand {
	if cmd.Flags().Changed("seed") {
		seed, _ := cmd.Flags().GetUint64("seed")
		return rand.New(rand.NewPCG(seed, seed))
	}
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}

// openOutput returns the --out file, or stdout when the flag is empty.
func openOutput(cmd *cobra.Command) (io.Writer, func() error, error) {
	path, _ := cmd.Flags().GetString("out")
	if path == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, fmt.Errorf("creating %s: %w", path, err)
	}
	return f, f.Close, nil
}

// openStore opens the deck database under the configured store directory.
func openStore() (*deckstore.Store, error) {
	return deckstore.NewStore(cfg.Store)
}
