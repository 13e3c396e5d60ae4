// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/resume-tailor/internal/history"
	"github.com/pdiddy/resume-tailor/pkg/types"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List or export past tailoring runs",
	Long: `History reads the SQLite run ledger named by history.db (or --db).
Each run records the source file, output file, strategy, provider, outcome
and, for failures, the stage that failed.`,
}

// --- list subcommand ---

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent runs, newest first",
	RunE:  runHistoryList,
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(context.Background(), historyFilter(cmd))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRuns(os.Stdout, runs, jsonOutput)
}

func formatRuns(w io.Writer, runs []types.Run, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(runs)
	}

	if len(runs) == 0 {
		fmt.Fprintln(w, "No runs recorded.")
		return nil
	}

	fmt.Fprintf(w, "%-20s  %-9s  %-9s  %-7s  %-30s  %s\n",
		"Started", "Status", "Strategy", "Provider", "Source", "Detail")
	fmt.Fprintln(w, strings.Repeat("-", 100))

	for _, r := range runs {
		source := r.SourceName
		if len(source) > 30 {
			source = source[:27] + "..."
		}
		detail := r.OutputName
		if r.Status == types.RunFailed {
			detail = r.ErrorKind
		}
		fmt.Fprintf(w, "%-20s  %-9s  %-9s  %-7s  %-30s  %s\n",
			r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Status, r.Strategy, r.Provider, source, detail)
	}

	fmt.Fprintf(w, "\n%d runs\n", len(runs))
	return nil
}

// --- export subcommand ---

var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export runs to YAML or JSON",
	RunE:  runHistoryExport,
}

func runHistoryExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	output, _ := cmd.Flags().GetString("output")

	store, err := openHistory(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	var w io.Writer = os.Stdout
	if output != "" {
		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("creating %s: %w", output, err)
		}
		defer f.Close()
		w = f
	}

	filter := historyFilter(cmd)
	switch format {
	case "yaml", "":
		err = store.ExportYAML(context.Background(), w, filter)
	case "json":
		err = store.ExportJSON(context.Background(), w, filter)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}
	if err != nil {
		return err
	}
	if output != "" {
		fmt.Fprintf(os.Stderr, "Exported to %s\n", output)
	}
	return nil
}

// --- shared helpers ---

func openHistory(cmd *cobra.Command) (*history.Store, error) {
	bindFlags(cmd, map[string]string{"db": "history.db"})
	cfg := loadConfig()
	if cfg.History.DBPath == "" {
		return nil, fmt.Errorf("no history database: set --db or history.db")
	}
	return history.NewStore(cfg.History)
}

func historyFilter(cmd *cobra.Command) history.Filter {
	status, _ := cmd.Flags().GetString("status")
	limit, _ := cmd.Flags().GetInt("limit")
	return history.Filter{Status: types.RunStatus(status), Limit: limit}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	historyCmd.PersistentFlags().String("db", "", "SQLite history file (default: history.db config key)")
	historyCmd.PersistentFlags().String("status", "", "filter by outcome: succeeded or failed")
	historyCmd.PersistentFlags().Int("limit", 0, "maximum runs (0 = default)")

	historyListCmd.Flags().Bool("json", false, "output runs as JSON")

	historyExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	historyExportCmd.Flags().StringP("output", "o", "", "write to file instead of stdout")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)

	rootCmd.AddCommand(historyCmd)
}
