package main

import (
	"github.com/spf13/cobra"

	"github.com/screenplaykit/screenplay/internal/output"
	"github.com/screenplaykit/screenplay/internal/version"
)

var (
	cfgFile      string
	outputFormat string
)

var rootCmd = &cobra.Command{
	Use:   "screenplay",
	Short: "Classify a screenplay PDF's text spans into typed structural elements",
	Long: `screenplay turns positioned PDF text spans into typed screenplay
elements: title, author, scene headings, character cues, dialogue, action,
parentheticals, and transitions.

Classification is a deterministic, pattern- and geometry-driven pass over
extracted text positions -- no OCR, no LLM calls.`,
	Version: version.GitRelease,
}

func init() {
	rootCmd.PersistentFlags().StringVar(
		&cfgFile, "config", "", "config file (default: ./config.yaml or ~/.screenplay/config.yaml)",
	)
	rootCmd.PersistentFlags().StringVarP(
		&outputFormat, "output", "o", "text", "output format: text|json|json-pretty|structured",
	)

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {
		output.SetFormat(outputFormat)
	}

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(parsePDFCmd)
	rootCmd.AddCommand(parseDebugCmd)
}
