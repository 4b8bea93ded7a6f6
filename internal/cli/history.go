package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Atiwari330/asana-agent/internal/config"
	"github.com/Atiwari330/asana-agent/internal/ledger"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recently created tasks from the confirmation ledger",
	RunE:  runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "Number of entries to show")
}

func runHistory(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if !cfg.Ledger.Enabled {
		fmt.Println("The confirmation ledger is disabled in config.")
		return nil
	}

	store, err := ledger.NewStorage(cfg.LedgerPath())
	if err != nil {
		return fmt.Errorf("failed to open ledger: %w", err)
	}
	defer store.Close()

	entries, err := store.Recent(historyLimit)
	if err != nil {
		return fmt.Errorf("failed to read ledger: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No tasks created yet.")
		return nil
	}

	for _, e := range entries {
		fmt.Printf("%s  %s\n", e.CreatedAt.Format("2006-01-02 15:04"), e.Title)
		fmt.Printf("  %s → %s, due %s\n", e.Project, e.Assignee, e.DueOn)
		fmt.Printf("  %s\n", e.Permalink)
	}
	return nil
}
