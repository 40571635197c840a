// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/pdiddy/papershelf/internal/observability"
	"github.com/pdiddy/papershelf/internal/search"
	"github.com/pdiddy/papershelf/internal/ui/tui"
)

// tuiLogName is the log file the TUI writes to under store.path, since
// stderr belongs to the alternate screen while the program runs.
const tuiLogName = "papershelf.log"

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Open the interactive search and saved-papers interface",
	RunE:  runTUI,
}

func init() {
	tuiCmd.Flags().String("metrics-addr", "", "serve Prometheus metrics on this address while the TUI runs")
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	if err := os.MkdirAll(current.cfg.Store.Path, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", current.cfg.Store.Path, err)
	}
	logPath := filepath.Join(current.cfg.Store.Path, tuiLogName)
	f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", logPath, err)
	}
	defer f.Close()
	current.log = observability.NewLoggerTo(current.cfg.Logging, f)

	ctrl, err := current.controller()
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	addr, _ := cmd.Flags().GetString("metrics-addr")
	if addr == "" {
		addr = current.cfg.Metrics.Addr
	}
	if addr != "" {
		go func() {
			if err := observability.Serve(ctx, addr, current.registry, current.log); err != nil {
				current.log.Error().Err(err).Str("addr", addr).Msg("metrics endpoint stopped")
			}
		}()
	}

	model := tui.New(ctx, ctrl, tui.Options{
		DefaultDays: current.cfg.Search.DefaultDays,
		DefaultSort: search.ParseSort(current.cfg.Search.DefaultSort, search.SortPubDate),
	})
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && ctx.Err() == nil {
		return fmt.Errorf("running tui: %w", err)
	}
	return nil
}
