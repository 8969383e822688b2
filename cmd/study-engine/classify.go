// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var classifyCmd = &cobra.Command{
	Use:   "classify [files...]",
	Short: "Detect the medical subject of lecture notes",
	Long: `Classify reports the subject of the input and the rule that chose it:
a subject named in the file name, a subject named in the text, the category
with the most distinct keywords, or the default subject. Keyword scores and
the detected terms of each category are listed too.`,
	RunE: runClassify,
}

func runClassify(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}
	cls := eng.ClassifySubject(in.Text, in.SourceLabel)

	out := cmd.OutOrStdout()
	if jsonOutput, _ := cmd.Flags().GetBool("json"); jsonOutput {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(cls)
	}

	header.Fprintf(out, "%s", cls.Subject)
	fmt.Fprintf(out, " (%s)\n", cls.Source)
	for _, cat := range eng.Vocabulary().Categories {
		score := cls.Scores[cat.Key]
		if score == 0 {
			continue
		}
		fmt.Fprintf(out, "  %-14s %2d  %s\n", cat.Key, score, strings.Join(cls.DetectedTerms[cat.Key], ", "))
	}
	return nil
}

func init() {
	classifyCmd.Flags().String("label", "", "source label used as a subject hint (default: file names)")
	classifyCmd.Flags().Bool("json", false, "output the classification as JSON")

	rootCmd.AddCommand(classifyCmd)
}
