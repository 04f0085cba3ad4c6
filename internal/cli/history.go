package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/ainative/ainative-go/internal/config"
	"github.com/ainative/ainative-go/internal/history"
)

var (
	historyListLimit int
	historyClearYes  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show local command history",
	Long: `Display the locally recorded history of CLI commands.

Examples:
  ainative history list            # Recent commands
  ainative history show <id>       # Full record of one command
  ainative history clear           # Drop all records`,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent commands",
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show one history entry in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all history entries",
	RunE:  runHistoryClear,
}

func init() {
	historyListCmd.Flags().IntVar(&historyListLimit, "limit", 10, "maximum number of entries to show")
	historyClearCmd.Flags().BoolVarP(&historyClearYes, "yes", "y", false, "skip the confirmation prompt")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyClearCmd)
}

// openHistory opens the history store without building an API client; history
// commands are purely local.
func openHistory() (*config.Config, *history.Manager, error) {
	_, cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	mgr, err := history.NewManager(cfg.History.Driver, cfg.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open history: %w", err)
	}
	return cfg, mgr, nil
}

func runHistoryList(cmd *cobra.Command, args []string) error {
	cfg, mgr, err := openHistory()
	if err != nil {
		return err
	}
	defer mgr.Close()

	entries, err := mgr.List(historyListLimit)
	if err != nil {
		return fmt.Errorf("failed to list history: %w", err)
	}

	if cfg.Output == "json" {
		return writeJSON(os.Stdout, entries)
	}

	if len(entries) == 0 {
		fmt.Println("No history found.")
		return nil
	}

	fmt.Println("Recent Commands:")
	fmt.Println("----------------")

	for _, entry := range entries {
		fmt.Printf("%s %s  %s  (%s)\n",
			statusIcon(entry.Status),
			entry.ID[:8],
			entry.Command,
			entry.Status,
		)
		fmt.Printf("   Started: %s\n", entry.StartedAt.Format(time.RFC3339))
		if !entry.CompletedAt.IsZero() {
			fmt.Printf("   Completed: %s (duration: %s)\n",
				entry.CompletedAt.Format(time.RFC3339),
				entry.Duration().Round(time.Millisecond),
			)
		}
		if entry.ResourceID != "" {
			fmt.Printf("   Resource: %s %s\n", entry.Resource, entry.ResourceID)
		}
		if entry.Error != "" {
			fmt.Printf("   Error: %s\n", entry.Error)
		}
		fmt.Println()
	}

	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	cfg, mgr, err := openHistory()
	if err != nil {
		return err
	}
	defer mgr.Close()

	entry, err := mgr.Get(args[0])
	if err != nil {
		return err
	}

	if cfg.Output == "json" {
		return writeJSON(os.Stdout, entry)
	}

	fmt.Printf("ID: %s\n", entry.ID)
	fmt.Printf("Command: %s\n", entry.Command)
	fmt.Printf("Status: %s %s\n", statusIcon(entry.Status), entry.Status)
	if entry.ResourceID != "" {
		fmt.Printf("Resource: %s %s\n", entry.Resource, entry.ResourceID)
	}
	fmt.Printf("Started: %s\n", entry.StartedAt.Format(time.RFC3339))
	if !entry.CompletedAt.IsZero() {
		fmt.Printf("Completed: %s (duration: %s)\n",
			entry.CompletedAt.Format(time.RFC3339),
			entry.Duration().Round(time.Millisecond),
		)
	}
	if entry.Error != "" {
		fmt.Printf("Error: %s\n", entry.Error)
	}
	if len(entry.Params) > 0 {
		fmt.Println("\nParams:")
		if err := writeJSON(os.Stdout, entry.Params); err != nil {
			return err
		}
	}
	if len(entry.Result) > 0 {
		fmt.Println("\nResult:")
		if err := writeJSON(os.Stdout, entry.Result); err != nil {
			return err
		}
	}

	return nil
}

func runHistoryClear(cmd *cobra.Command, args []string) error {
	if !historyClearYes {
		if !confirm("Clear all command history?") {
			fmt.Println("Aborted.")
			return nil
		}
	}

	_, mgr, err := openHistory()
	if err != nil {
		return err
	}
	defer mgr.Close()

	if err := mgr.Clear(); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}

	fmt.Println("History cleared.")
	return nil
}

func statusIcon(status string) string {
	switch status {
	case "running":
		return "◐"
	case "completed":
		return "●"
	case "failed":
		return "✗"
	default:
		return "?"
	}
}
