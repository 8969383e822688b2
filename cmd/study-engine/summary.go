// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/render"
)

var summaryCmd = &cobra.Command{
	Use:   "summary [files...]",
	Short: "Compose a structured lecture summary",
	Long: `Summary lists the headings, key points, definitions, and detected
medical terms of the input, followed by a subject-specific evaluation and
study recommendations. Unreadable input gets the subject's topic list.

Output formats: text (clipboard friendly), markdown, html (standalone
document), and json.`,
	RunE: runSummary,
}

func runSummary(cmd *cobra.Command, args []string) error {
	formatName, _ := cmd.Flags().GetString("format")
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

	report := eng.ComposeSummary(in, rngFromFlags(cmd))
	logger.Debug("summary composed",
		zap.String("subject", report.Subject),
		zap.Int("headings", len(report.Headings)),
		zap.Int("definitions", len(report.Definitions)),
		zap.Bool("fallback", report.Fallback))

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	if err := render.Summary(w, format, report); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func init() {
	summaryCmd.Flags().String("format", "text", "output format: text, markdown, html, or json")
	summaryCmd.Flags().String("out", "", "write output to a file instead of stdout")
	summaryCmd.Flags().Uint64("seed", 0, "seed for fallback topic sampling (default: random)")
	summaryCmd.Flags().String("label", "", "source label used as a subject hint (default: file names)")

	rootCmd.AddCommand(summaryCmd)
}
