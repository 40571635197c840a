// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the papershelf CLI: PubMed search,
// a local bookmark shelf, and a terminal UI over both.
package main

import (
	"context"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the papershelf CLI.
var rootCmd = &cobra.Command{
	Use:   "papershelf",
	Short: "Search PubMed and keep a shelf of saved papers",
	Long: `papershelf searches PubMed through the NCBI E-utilities and keeps the
papers you bookmark in a local store.

Run "papershelf tui" for the interactive interface, or use the search and
saved subcommands from scripts.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadApp,
}

func init() {
	pf := rootCmd.PersistentFlags()
	pf.String("config", "", "config file (default: ./papershelf.yaml or ~/.config/papershelf/papershelf.yaml)")
	pf.String("log-level", "", "log level: trace, debug, info, warn, error")
	pf.String("log-format", "", "log format: console or json")
	pf.String("locale", "", "message language: en or ko")
	pf.String("store-backend", "", "saved-papers backend: sqlite or leveldb")
	pf.String("store-path", "", "saved-papers data directory")
	pf.String("secrets-dir", ".secrets", "directory holding ncbi-api-key and ncbi-email")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	closeApp()
	if err != nil {
		os.Exit(1)
	}
}
