// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/study-engine/pkg/types"
)

var extractCmd = &cobra.Command{
	Use:   "extract [files...]",
	Short: "Extract headings, key points, and definitions as YAML",
	Long: `Extract runs the pattern extractors over the input and writes the
classification together with the headings, key points, and definitions it
found. The output is YAML so it can be reviewed or edited by hand.`,
	RunE: runExtract,
}

// extractionOutput is the YAML document written by the extract command.
type extractionOutput struct {
	Subject    string           `yaml:"subject"`
	Source     string           `yaml:"source"`
	Sources    []string         `yaml:"sources,omitempty"`
	Extraction types.Extraction `yaml:"extraction"`
}

func runExtract(cmd *cobra.Command, args []string) error {
	eng, err := newEngine()
	if err != nil {
		return err
	}
	in, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	cls := eng.ClassifySubject(in.Text, in.SourceLabel)
	doc := extractionOutput{
		Subject:    cls.Subject,
		Source:     string(cls.Source),
		Sources:    in.Sources(),
		Extraction: eng.Extract(in.Text),
	}

	w, closeOut, err := openOutput(cmd)
	if err != nil {
		return err
	}
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		closeOut()
		return err
	}
	if err := enc.Close(); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func init() {
	extractCmd.Flags().String("label", "", "source label used as a subject hint (default: file names)")
	extractCmd.Flags().String("out", "", "write YAML to a file instead of stdout")

	rootCmd.AddCommand(extractCmd)
}
