package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ainative/ainative-go/pkg/zerodb"
)

var (
	memoryProjectID      string
	memoryCreateTitle    string
	memoryCreateTags     []string
	memoryCreatePriority string
	memorySearchLimit    int
	memoryListLimit      int
)

var memoryCmd = &cobra.Command{
	Use:   "memory",
	Short: "Store and search agent memory",
	Long:  `Commands for storing, searching, and listing memory entries.`,
}

var memoryCreateCmd = &cobra.Command{
	Use:   "create <content>",
	Short: "Store a new memory entry",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemoryCreate,
}

var memorySearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search memory entries",
	Args:  cobra.ExactArgs(1),
	RunE:  runMemorySearch,
}

var memoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List memory entries",
	RunE:  runMemoryList,
}

func init() {
	memoryCmd.PersistentFlags().StringVarP(&memoryProjectID, "project-id", "p", "", "scope to a project")

	memoryCreateCmd.Flags().StringVarP(&memoryCreateTitle, "title", "t", "", "memory title")
	memoryCreateCmd.Flags().StringSliceVar(&memoryCreateTags, "tags", nil, "comma-separated tags")
	memoryCreateCmd.Flags().StringVar(&memoryCreatePriority, "priority", "medium", "priority (low, medium, high, critical)")

	memorySearchCmd.Flags().IntVar(&memorySearchLimit, "limit", 5, "maximum number of results")

	memoryListCmd.Flags().IntVar(&memoryListLimit, "limit", 10, "maximum number of entries to return")

	memoryCmd.AddCommand(memoryCreateCmd)
	memoryCmd.AddCommand(memorySearchCmd)
	memoryCmd.AddCommand(memoryListCmd)
}

func runMemoryCreate(cmd *cobra.Command, args []string) error {
	switch memoryCreatePriority {
	case "low", "medium", "high", "critical":
	default:
		return fmt.Errorf("invalid priority %q (valid: low, medium, high, critical)", memoryCreatePriority)
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("memory create", map[string]interface{}{
		"title":    memoryCreateTitle,
		"priority": memoryCreatePriority,
	})

	res, err := a.ZeroDB.Memory.Create(context.Background(), zerodb.CreateMemoryParams{
		Content:   args[0],
		Title:     memoryCreateTitle,
		Tags:      memoryCreateTags,
		Priority:  zerodb.MemoryPriority(memoryCreatePriority),
		ProjectID: memoryProjectID,
	})
	if err != nil {
		return a.Fail(err)
	}

	if id, ok := res["id"].(string); ok {
		a.History.SetResource("memory", id)
	}
	a.Done(res)
	return a.Print(res)
}

func runMemorySearch(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("memory search", map[string]interface{}{
		"query": args[0],
		"limit": memorySearchLimit,
	})

	results, err := a.ZeroDB.Memory.Search(context.Background(), zerodb.SearchMemoriesParams{
		Query:     args[0],
		Limit:     memorySearchLimit,
		ProjectID: memoryProjectID,
	})
	if err != nil {
		return a.Fail(err)
	}

	a.Done(map[string]interface{}{"matches": len(results)})
	return a.PrintList(results, []string{"id", "title", "priority", "score"})
}

func runMemoryList(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("memory list", map[string]interface{}{
		"limit": memoryListLimit,
	})

	res, err := a.ZeroDB.Memory.List(context.Background(), zerodb.ListMemoriesParams{
		Limit:     memoryListLimit,
		ProjectID: memoryProjectID,
	})
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.PrintRows(res, "memories", []string{"id", "title", "priority", "created_at"})
}
