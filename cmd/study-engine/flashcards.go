// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/render"
)

var flashcardsCmd = &cobra.Command{
	Use:   "flashcards [files...]",
	Short: "Generate question/answer flashcards from lecture notes",
	Long: `Flashcards classifies the input by medical subject and turns its
definitions ("Term: definition") into "Term nedir?" cards. When there are too
few definitions, sentences naming a known medical term become cards too. If
nothing usable is found, the subject's canned deck is returned instead.

Use --save to store the deck for later study with "study-engine study".`,
	RunE: runFlashcards,
}

func runFlashcards(cmd *cobra.Command, args []string) error {
	limit, _ := cmd.Flags().GetInt("cap")
	formatName, _ := cmd.Flags().GetString("format")
	save, _ := cmd.Flags().GetBool("save")

	format, err := render.ParseFormat(formatName)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}
	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	deck, err := eng.NewDeck(in, limit, rngFromFlags(cmd))
	if err != nil {
		return err
	}
	logger.Debug("flashcards generated",
		zap.String("subject", deck.Subject),
		zap.Int("cards", len(deck.Cards)),
		zap.Bool("fallback", deck.Fallback))

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	if err := render.Deck(w, format, deck.Subject, deck.Cards); err != nil {
		closeOut()
		return err
	}
	if err := closeOut(); err != nil {
		return err
	}

	if deck.Fallback {
		faint.Fprintf(cmd.ErrOrStderr(), "no cards could be built from the text; using the %s fallback deck\n", deck.Subject)
	}
	if save {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()
		if err := store.SaveDeck(cmd.Context(), deck); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "saved deck %s (%s, %d cards)\n", deck.ID, deck.Subject, len(deck.Cards))
	}
	return nil
}

func init() {
	flashcardsCmd.Flags().Int("cap", 0, "maximum number of cards (0 = configured default)")
	flashcardsCmd.Flags().Uint64("seed", 0, "seed for question templates and deck id (default: random)")
	flashcardsCmd.Flags().String("label", "", "source label used as a subject hint (default: file names)")
	flashcardsCmd.Flags().String("format", "json", "output format: json or text")
	flashcardsCmd.Flags().String("out", "", "write output to a file instead of stdout")
	flashcardsCmd.Flags().Bool("save", false, "save the deck to the store")

	rootCmd.AddCommand(flashcardsCmd)
}
