// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/papershelf/internal/saved"
)

var savedCmd = &cobra.Command{
	Use:   "saved",
	Short: "Manage saved papers (list, add, remove, find, export, import)",
	Long: `Saved manages the local shelf of bookmarked papers. The shelf is stored as
a single JSON array in the configured backend (SQLite by default) and is
rewritten on every change.`,
}

// --- list subcommand ---

var savedListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved papers, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format, "table", "json", "csl"); err != nil {
			return err
		}
		store, err := current.openStore()
		if err != nil {
			return err
		}
		if format == "table" {
			fmt.Fprintln(os.Stderr, current.catalog.SavedCount(store.Len()))
		}
		return writeRecords(os.Stdout, store.All(), format)
	},
}

// --- add subcommand ---

var savedAddCmd = &cobra.Command{
	Use:   "add <pmid>...",
	Short: "Fetch papers by PMID and save them",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctrl, err := current.controller()
		if err != nil {
			return err
		}
		added, err := ctrl.Bookmark(cmd.Context(), args)
		for _, r := range added {
			fmt.Fprintf(os.Stdout, "saved   %s  %s\n", r.ID, r.Title)
		}
		if err != nil {
			return err
		}
		if len(added) < len(args) {
			fmt.Fprintf(os.Stderr, "%d of %d already saved or not found\n", len(args)-len(added), len(args))
		}
		return nil
	},
}

// --- remove subcommand ---

var savedRemoveCmd = &cobra.Command{
	Use:   "remove <pmid>...",
	Short: "Remove saved papers by PMID",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := current.openStore()
		if err != nil {
			return err
		}
		for _, id := range args {
			removed, err := store.Remove(id)
			if err != nil {
				return err
			}
			if removed {
				fmt.Fprintf(os.Stdout, "removed %s\n", id)
			} else {
				fmt.Fprintf(os.Stderr, "not saved: %s\n", id)
			}
		}
		return nil
	},
}

// --- find subcommand ---

var savedFindCmd = &cobra.Command{
	Use:   "find <word>...",
	Short: "Find saved papers whose title or abstract match every word (stemmed)",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if err := checkFormat(format, "table", "json", "csl"); err != nil {
			return err
		}
		store, err := current.openStore()
		if err != nil {
			return err
		}
		return writeRecords(os.Stdout, store.Find(strings.Join(args, " ")), format)
	},
}

// --- export subcommand ---

var savedExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export saved papers as JSON, YAML, or CSL-YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		outPath, _ := cmd.Flags().GetString("out")

		store, err := current.openStore()
		if err != nil {
			return err
		}

		w := os.Stdout
		if outPath != "" {
			f, err := os.Create(outPath)
			if err != nil {
				return fmt.Errorf("creating %s: %w", outPath, err)
			}
			defer f.Close()
			w = f
		}
		if err := saved.Export(store.All(), format, current.catalog.Placeholders, w); err != nil {
			return err
		}
		if outPath != "" {
			fmt.Fprintf(os.Stderr, "exported %d papers to %s\n", store.Len(), outPath)
		}
		return nil
	},
}

// --- import subcommand ---

var savedImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import saved papers from a JSON array (pmid, title, authors, journal, year, abstract)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		f, err := os.Open(args[0])
		if err != nil {
			return err
		}
		defer f.Close()

		records, err := saved.Import(f)
		if err != nil {
			return fmt.Errorf("importing %s: %w", args[0], err)
		}

		store, err := current.openStore()
		if err != nil {
			return err
		}
		n, err := store.Merge(records)
		if err != nil {
			return err
		}
		fmt.Fprintf(os.Stdout, "imported %d of %d papers\n", n, len(records))
		return nil
	},
}

func init() {
	savedListCmd.Flags().String("format", "table", "output format: table, json, csl")
	savedFindCmd.Flags().String("format", "table", "output format: table, json, csl")
	savedExportCmd.Flags().String("format", saved.FormatJSON, "export format: json, yaml, csl")
	savedExportCmd.Flags().String("out", "", "output file (default: stdout)")

	savedCmd.AddCommand(savedListCmd, savedAddCmd, savedRemoveCmd, savedFindCmd, savedExportCmd, savedImportCmd)
	rootCmd.AddCommand(savedCmd)
}
