// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/study-engine/internal/study"
	"github.com/pdiddy/study-engine/pkg/types"
)

var studyCmd = &cobra.Command{
	Use:   "study <deck-id>",
	Short: "Study a saved deck interactively",
	Long: `Study walks through a saved deck one card at a time. Flip a card to
see its answer; in study mode rate it easy, medium, or hard to mark it
studied and move on. Progress is saved after every rating and on exit.

Commands: f (flip, also Enter), n (next), p (previous), s (toggle study
mode), e/m/h (rate), x (shuffle), r (reset progress), t (statistics),
? (help), q (quit).`,
	Args: cobra.ExactArgs(1),
	RunE: runStudy,
}

func runStudy(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	ctx := cmd.Context()
	deck, err := store.LoadDeck(ctx, args[0])
	if err != nil {
		return err
	}
	progress, err := store.LoadProgress(ctx, deck.ID)
	if err != nil {
		return err
	}

	s := study.New(deck.Cards, progress)
	if on, _ := cmd.Flags().GetBool("rate"); on {
		s.ToggleStudyMode()
	}
	rng := rngFromFlags(cmd)
	if shuffle, _ := cmd.Flags().GetBool("shuffle"); shuffle {
		s.Shuffle(rng)
	}

	save := func(p types.Progress) error { return store.SaveProgress(ctx, deck.ID, p) }
	header.Fprintf(cmd.OutOrStdout(), "%s (%d kart)\n", deck.Subject, s.Len())
	return studyLoop(s, cmd.InOrStdin(), cmd.OutOrStdout(), save, rng)
}

// studyLoop reads one command per line from in until q or end of input,
// saving progress after each change and once more on exit.
func studyLoop(s *study.Session, in io.Reader, out io.Writer, save func(types.Progress) error, rng *rand.Rand) error {
	if s.Len() == 0 {
		fmt.Fprintln(out, "Deck is empty.")
		return nil
	}

	showCard(out, s)
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		command := strings.ToLower(strings.TrimSpace(scanner.Text()))
		switch command {
		case "q", "quit":
			return save(s.Progress())
		case "", "f", "flip":
			s.Flip()
		case "n", "next":
			if !s.Next() {
				fmt.Fprintln(out, "Son karttasınız.")
				continue
			}
		case "p", "prev", "previous":
			if !s.Previous() {
				fmt.Fprintln(out, "İlk karttasınız.")
				continue
			}
		case "s", "study":
			if s.ToggleStudyMode() {
				fmt.Fprintln(out, "Çalışma modu açık: cevabı görünce e/m/h ile değerlendirin.")
			} else {
				fmt.Fprintln(out, "Çalışma modu kapalı.")
			}
			continue
		case "x", "shuffle":
			s.Shuffle(rng)
			fmt.Fprintln(out, "Kartlar karıştırıldı.")
		case "r", "reset":
			s.Reset()
			if err := save(s.Progress()); err != nil {
				return err
			}
			fmt.Fprintln(out, "İlerleme sıfırlandı.")
		case "t", "stats":
			showStats(out, s.Stats())
			continue
		case "?", "help":
			fmt.Fprintln(out, "f: çevir  n: sonraki  p: önceki  s: çalışma modu  e/m/h: değerlendir  x: karıştır  r: sıfırla  t: istatistik  q: çıkış")
			continue
		default:
			d, err := types.ParseDifficulty(command)
			if err != nil {
				fmt.Fprintf(out, "Bilinmeyen komut %q (yardım için ?)\n", command)
				continue
			}
			complete, err := s.Mark(d)
			if errors.Is(err, types.ErrPrecondition) {
				fmt.Fprintln(out, err)
				continue
			}
			if err != nil {
				return err
			}
			if err := save(s.Progress()); err != nil {
				return err
			}
			if complete {
				fmt.Fprintln(out, "Tüm kartlar tamamlandı!")
				showStats(out, s.Stats())
				continue
			}
		}
		showCard(out, s)
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading commands: %w", err)
	}
	return save(s.Progress())
}

func showCard(out io.Writer, s *study.Session) {
	c, ok := s.Current()
	if !ok {
		return
	}
	fmt.Fprintf(out, "\n[%d/%d] ", s.Position()+1, s.Len())
	header.Fprintln(out, c.Question)
	if s.Flipped() {
		fmt.Fprintf(out, "  %s\n", c.Answer)
	}
	if c.Studied {
		faint.Fprintf(out, "  (%s)\n", c.Difficulty)
	}
}

func showStats(out io.Writer, st study.Stats) {
	fmt.Fprintf(out, "Toplam: %d  Çalışılan: %d  Kolay: %d  Orta: %d  Zor: %d\n",
		st.Total, st.Studied, st.Easy, st.Medium, st.Hard)
}

func init() {
	studyCmd.Flags().Bool("rate", false, "start with study mode on")
	studyCmd.Flags().Bool("shuffle", false, "shuffle the cards before starting")
	studyCmd.Flags().Uint64("seed", 0, "seed for shuffling (default: random)")

	rootCmd.AddCommand(studyCmd)
}
