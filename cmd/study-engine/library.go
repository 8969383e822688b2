// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/study-engine/internal/fallback"
	"github.com/pdiddy/study-engine/internal/render"
)

var libraryCmd = &cobra.Command{
	Use:   "library",
	Short: "Browse the built-in fallback content",
	Long: `Library shows the content used when lecture notes yield nothing:
the known subjects with their topic lists, the canned flashcard decks, and
the medical school curriculum by term (dönem 1-6).`,
}

var librarySubjectsCmd = &cobra.Command{
	Use:   "subjects",
	Short: "List subjects and their topics",
	RunE: func(cmd *cobra.Command, args []string) error {
		eng, err := newEngine()
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		lib := eng.Library()
		for _, entry := range lib.Subjects {
			s := lib.Subject(entry.Name)
			header.Fprintln(out, s.Name)
			fmt.Fprintf(out, "  %d cards, topics: %s\n", len(s.Deck), strings.Join(s.Topics, ", "))
		}
		return nil
	},
}

var libraryDeckCmd = &cobra.Command{
	Use:   "deck <subject>",
	Short: "Print the fallback deck of a subject",
	Long: `Deck prints the canned flashcards of a subject. Subjects without a
deck of their own get the default subject's deck.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := render.ParseFormat(formatName)
		if err != nil {
			return err
		}
		eng, err := newEngine()
		if err != nil {
			return err
		}
		lib := eng.Library()
		cards := lib.Deck(args[0])
		for i := range cards {
			cards[i].ID = i + 1
		}
		return render.Deck(cmd.OutOrStdout(), format, lib.Subject(args[0]).Name, cards)
	},
}

var libraryCurriculumCmd = &cobra.Command{
	Use:   "curriculum",
	Short: "List the curriculum courses by term",
	RunE: func(cmd *cobra.Command, args []string) error {
		term, _ := cmd.Flags().GetInt("term")
		course, _ := cmd.Flags().GetString("course")

		eng, err := newEngine()
		if err != nil {
			return err
		}
		lib := eng.Library()
		out := cmd.OutOrStdout()

		if course != "" {
			if term == 0 {
				return fmt.Errorf("--course requires --term")
			}
			c, err := lib.Course(term, course)
			if err != nil {
				return err
			}
			header.Fprintln(out, c.Title)
			for i, t := range c.Topics {
				fmt.Fprintf(out, "  %d. %s\n", i+1, t)
			}
			return nil
		}

		terms := lib.Curriculum
		if term != 0 {
			t, err := lib.Term(term)
			if err != nil {
				return err
			}
			terms = []fallback.Term{t}
		}
		for _, t := range terms {
			header.Fprintf(out, "%d. Dönem\n", t.Term)
			for _, c := range t.Courses {
				fmt.Fprintf(out, "  %-12s %s (%d konu)\n", c.Key, c.Title, len(c.Topics))
			}
		}
		return nil
	},
}

func init() {
	libraryDeckCmd.Flags().String("format", "text", "output format: json or text")
	libraryCurriculumCmd.Flags().Int("term", 0, "show only this term (1-6)")
	libraryCurriculumCmd.Flags().String("course", "", "show the topics of one course (requires --term)")

	libraryCmd.AddCommand(librarySubjectsCmd)
	libraryCmd.AddCommand(libraryDeckCmd)
	libraryCmd.AddCommand(libraryCurriculumCmd)

	rootCmd.AddCommand(libraryCmd)
}
