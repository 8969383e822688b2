// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the study-engine CLI. Each pipeline
// operation is a subcommand: flashcards, summary, classify, extract, deck,
// study, and library.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/pdiddy/study-engine/internal/config"
	"github.com/pdiddy/study-engine/internal/logging"
	"github.com/pdiddy/study-engine/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

var (
	// cfg holds the settings loaded before any subcommand runs.
	cfg *types.Config

	logger = zap.NewNop()
)

// rootCmd is the base command for the study-engine CLI.
var rootCmd = &cobra.Command{
	Use:   "study-engine",
	Short: "Turn Turkish medical lecture notes into flashcards and summaries",
	Long: `study-engine reads lecture notes (text, PDF, or Office files), detects
the medical subject, and produces question/answer flashcards or a structured
summary. When a file yields no usable text, subject-specific fallback content
is used so every run produces study material.

Files are read from the arguments; with none, standard input is read as a
single document. Generated decks can be saved to a local SQLite store and
studied interactively.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loaded, err := config.Load(viper.GetViper())
		if err != nil {
			return err
		}
		cfg = loaded

		if v, _ := cmd.Flags().GetBool("verbose"); v {
			cfg.Log.Level = "debug"
		}
		l, err := logging.New(cfg.Log)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./study-engine.yaml or ~/.config/study-engine/study-engine.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "log debug details to stderr")
	rootCmd.PersistentFlags().String("store-dir", "", "directory of the deck database (overrides store.dir)")
	viper.BindPFlag("store.dir", rootCmd.PersistentFlags().Lookup("store-dir"))
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("study-engine")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "study-engine"))
		}
	}

	config.BindEnv(viper.GetViper())

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
