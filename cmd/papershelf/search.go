// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/papershelf/internal/controller"
	"github.com/pdiddy/papershelf/internal/search"
	"github.com/pdiddy/papershelf/pkg/types"
)

var searchCmd = &cobra.Command{
	Use:   "search [term...]",
	Short: "Search PubMed for recent papers",
	Long: `Search sends the term to PubMed esearch, restricted to papers published in
the last --days days, and prints up to 20 matching records fetched with efetch.

Use --preset N to run the Nth recommended term instead (see "papershelf presets").`,
	RunE: runSearch,
}

func init() {
	searchCmd.Flags().String("days", "", "lookback window in days (default from search.default_days)")
	searchCmd.Flags().String("sort", "", "sort order: pub+date, relevance, author, journal")
	searchCmd.Flags().Int("preset", 0, "run recommended term N (1-based) instead of a term")
	searchCmd.Flags().String("format", "table", "output format: table, json, csl")

	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := checkFormat(format, "table", "json", "csl"); err != nil {
		return err
	}

	ctrl, err := current.controller()
	if err != nil {
		return err
	}

	days, _ := cmd.Flags().GetString("days")
	sortKey, _ := cmd.Flags().GetString("sort")
	in := controller.SearchInput{Term: strings.Join(args, " "), DaysBack: days, Sort: sortKey}

	var out controller.Outcome
	if preset, _ := cmd.Flags().GetInt("preset"); preset > 0 {
		out, err = ctrl.Preset(cmd.Context(), preset-1, in)
		if err != nil {
			return err
		}
	} else {
		out = ctrl.Search(cmd.Context(), in)
	}

	switch out.Status {
	case controller.StatusEmptyQuery:
		return errors.New(out.Message)
	case controller.StatusFailed:
		fmt.Fprintln(os.Stderr, out.Message)
		return out.Err
	}

	fmt.Fprintln(os.Stderr, out.Message)
	return writeRecords(os.Stdout, out.Records, format)
}

func writeRecords(w io.Writer, records []types.Record, format string) error {
	switch format {
	case "json":
		return search.FormatJSON(records, w)
	case "csl":
		return search.FormatCSL(records, current.catalog.Placeholders, w)
	default:
		search.FormatTable(records, w)
		return nil
	}
}

func checkFormat(format string, allowed ...string) error {
	for _, a := range allowed {
		if format == a {
			return nil
		}
	}
	return fmt.Errorf("unknown format %q (want one of %s)", format, strings.Join(allowed, ", "))
}

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List the recommended search terms",
	RunE: func(cmd *cobra.Command, args []string) error {
		for i, term := range current.cfg.UI.RecommendedTerms {
			fmt.Fprintf(os.Stdout, "%d  %s\n", i+1, term)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(presetsCmd)
}
