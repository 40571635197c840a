// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package search

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/pdiddy/papershelf/pkg/types"
)

// FormatTable writes records as a human-readable table to w.
func FormatTable(records []types.Record, w io.Writer) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-10s  %-60s  %-20s  %-4s  %s\n",
		"#", "PMID", "Title", "Authors", "Year", "Journal")
	fmt.Fprintln(w, strings.Repeat("-", 120))

	for i, r := range records {
		fmt.Fprintf(w, "%-4d  %-10s  %-60s  %-20s  %-4s  %s\n",
			i+1, r.ID, truncate(r.Title, 60), formatAuthors(r.Authors), truncate(r.Year, 4), truncate(r.Journal, 30))
	}

	fmt.Fprintf(w, "\n%d results\n", len(records))
}

// FormatJSON writes records as indented JSON to w.
func FormatJSON(records []types.Record, w io.Writer) error {
	if records == nil {
		records = []types.Record{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(records)
}

// formatAuthors shortens a comma-joined author line to its first entry.
func formatAuthors(authors string) string {
	names := strings.Split(authors, ", ")
	if len(names) == 1 {
		return truncate(names[0], 20)
	}
	return truncate(names[0], 14) + " et al."
}

// truncate shortens s to max runes, marking the cut with "...".
func truncate(s string, max int) string {
	if utf8.RuneCountInString(s) <= max {
		return s
	}
	r := []rune(s)
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
