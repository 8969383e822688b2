// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/study-engine/internal/deckstore"
	"github.com/pdiddy/study-engine/internal/render"
)

var deckCmd = &cobra.Command{
	Use:   "deck",
	Short: "Manage saved decks (list, show, search, export, delete)",
	Long: `Deck manages the local SQLite store of flashcard decks saved with
"flashcards --save". Cards are indexed with FTS5 full-text search.`,
}

// --- list subcommand ---

var deckListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved decks, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject, _ := cmd.Flags().GetString("subject")
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		decks, err := store.ListDecks(cmd.Context(), deckstore.ListOptions{Subject: subject, MaxResults: limit})
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(decks)
		}
		if len(decks) == 0 {
			fmt.Fprintln(out, "No decks saved.")
			return nil
		}

		fmt.Fprintf(out, "%-26s  %-16s  %-7s  %-16s  %s\n", "ID", "Subject", "Studied", "Created", "Sources")
		fmt.Fprintln(out, strings.Repeat("-", 100))
		for _, d := range decks {
			sources := strings.Join(d.Sources, ", ")
			if len(sources) > 30 {
				sources = sources[:27] + "..."
			}
			fmt.Fprintf(out, "%-26s  %-16s  %3d/%-3d  %-16s  %s\n",
				d.ID, d.Subject, d.Studied, d.Cards, d.CreatedAt.Local().Format("2006-01-02 15:04"), sources)
		}
		fmt.Fprintf(out, "\n%d decks\n", len(decks))
		return nil
	},
}

// --- show subcommand ---

var deckShowCmd = &cobra.Command{
	Use:   "show <deck-id>",
	Short: "Print a saved deck with its study progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		formatName, _ := cmd.Flags().GetString("format")
		format, err := render.ParseFormat(formatName)
		if err != nil {
			return err
		}

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		d, err := store.LoadDeck(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		return render.Deck(cmd.OutOrStdout(), format, d.Subject, d.Cards)
	},
}

// --- search subcommand ---

var deckSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over saved cards",
	Long: `Search matches the query against card questions and answers using
SQLite FTS5 syntax (words, "phrases", prefix*, AND/OR/NOT).`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		results, err := store.SearchCards(cmd.Context(), strings.Join(args, " "), limit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(results)
		}
		if len(results) == 0 {
			fmt.Fprintln(out, "No results found.")
			return nil
		}
		for i, r := range results {
			header.Fprintf(out, "%d. %s", i+1, r.Question)
			faint.Fprintf(out, "  [%s #%d, %s]\n", r.Subject, r.CardID, r.DeckID)
			fmt.Fprintf(out, "   %s\n", r.Answer)
		}
		fmt.Fprintf(out, "\n%d results\n", len(results))
		return nil
	},
}

// --- export subcommand ---

var deckExportCmd = &cobra.Command{
	Use:   "export [deck-ids...]",
	Short: "Export saved decks to YAML or JSON",
	Long: `Export writes the given decks, or every deck when none is named, with
their study progress to <store-dir>/export/decks.yaml or decks.json.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")

		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		var path string
		switch format {
		case "yaml", "":
			path, err = store.ExportYAML(cmd.Context(), args...)
		case "json":
			path, err = store.ExportJSON(cmd.Context(), args...)
		default:
			return fmt.Errorf("unsupported format %q: use yaml or json", format)
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Exported to %s\n", path)
		return nil
	},
}

// --- delete subcommand ---

var deckDeleteCmd = &cobra.Command{
	Use:   "delete <deck-id>",
	Short: "Delete a saved deck and its progress",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openStore()
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.DeleteDeck(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
		return nil
	},
}

func init() {
	deckListCmd.Flags().String("subject", "", "only decks of this subject")
	deckListCmd.Flags().Int("limit", 0, "maximum decks to list (0 = all)")
	deckListCmd.Flags().Bool("json", false, "output as JSON")

	deckShowCmd.Flags().String("format", "text", "output format: json or text")

	deckSearchCmd.Flags().Int("limit", 0, "maximum results (0 = store.max_results)")
	deckSearchCmd.Flags().Bool("json", false, "output results as JSON")

	deckExportCmd.Flags().String("format", "yaml", "export format: yaml or json")

	deckCmd.AddCommand(deckListCmd)
	deckCmd.AddCommand(deckShowCmd)
	deckCmd.AddCommand(deckSearchCmd)
	deckCmd.AddCommand(deckExportCmd)
	deckCmd.AddCommand(deckDeleteCmd)

	rootCmd.AddCommand(deckCmd)
}
