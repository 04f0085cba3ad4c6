package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ainative/ainative-go/pkg/ainative"
	"github.com/ainative/ainative-go/pkg/zerodb"
)

var (
	vectorsNamespace    string
	vectorsSearchTopK   int
	vectorsSearchNoMeta bool
	vectorsUpsertMeta   string
)

var vectorsCmd = &cobra.Command{
	Use:   "vectors",
	Short: "Store and search vectors",
	Long:  `Commands for upserting vectors and running similarity searches.`,
}

var vectorsSearchCmd = &cobra.Command{
	Use:   "search <project-id> <value>...",
	Short: "Search for similar vectors",
	Long: `Run a similarity search against a project's vectors.

The query vector is given as whitespace-separated float values:

  ainative vectors search proj-123 0.1 0.2 0.3 --top-k 5`,
	Args: cobra.MinimumNArgs(2),
	RunE: runVectorsSearch,
}

var vectorsUpsertCmd = &cobra.Command{
	Use:   "upsert <project-id> <file>",
	Short: "Upsert vectors from a JSON file",
	Long: `Insert or update vectors from a JSON file. The file holds an array of
objects with "vector", optional "id", and optional "metadata" fields.`,
	Args: cobra.ExactArgs(2),
	RunE: runVectorsUpsert,
}

var vectorsStatsCmd = &cobra.Command{
	Use:   "stats <project-id>",
	Short: "Show vector index statistics",
	Args:  cobra.ExactArgs(1),
	RunE:  runVectorsStats,
}

func init() {
	vectorsCmd.PersistentFlags().StringVarP(&vectorsNamespace, "namespace", "n", "", "vector namespace (defaults to \"default\")")

	vectorsSearchCmd.Flags().IntVarP(&vectorsSearchTopK, "top-k", "k", 5, "number of results to return")
	vectorsSearchCmd.Flags().BoolVar(&vectorsSearchNoMeta, "no-metadata", false, "omit metadata from results")

	vectorsUpsertCmd.Flags().StringVar(&vectorsUpsertMeta, "metadata", "", "JSON object merged into items without metadata")

	vectorsCmd.AddCommand(vectorsSearchCmd)
	vectorsCmd.AddCommand(vectorsUpsertCmd)
	vectorsCmd.AddCommand(vectorsStatsCmd)
}

func runVectorsSearch(cmd *cobra.Command, args []string) error {
	projectID := args[0]

	vector := make([]float32, 0, len(args)-1)
	for _, raw := range args[1:] {
		f, err := strconv.ParseFloat(raw, 32)
		if err != nil {
			return fmt.Errorf("invalid vector value %q: %w", raw, err)
		}
		vector = append(vector, float32(f))
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("vectors search", map[string]interface{}{
		"project_id": projectID,
		"dimensions": len(vector),
		"top_k":      vectorsSearchTopK,
	})

	results, err := a.ZeroDB.Vectors.Search(context.Background(), zerodb.SearchVectorsParams{
		ProjectID:       projectID,
		Vector:          vector,
		TopK:            vectorsSearchTopK,
		Namespace:       vectorsNamespace,
		IncludeMetadata: ainative.Bool(!vectorsSearchNoMeta),
	})
	if err != nil {
		return a.Fail(err)
	}

	a.Done(map[string]interface{}{"matches": len(results)})
	return a.PrintList(results, []string{"id", "score"})
}

func runVectorsUpsert(cmd *cobra.Command, args []string) error {
	projectID := args[0]

	data, err := os.ReadFile(args[1])
	if err != nil {
		return fmt.Errorf("failed to read vectors file: %w", err)
	}

	var items []zerodb.VectorItem
	if err := json.Unmarshal(data, &items); err != nil {
		return fmt.Errorf("failed to parse vectors file: %w", err)
	}
	if len(items) == 0 {
		return fmt.Errorf("vectors file %s contains no items", args[1])
	}

	shared, err := parseJSONObject("metadata", vectorsUpsertMeta)
	if err != nil {
		return err
	}
	if shared != nil {
		for i := range items {
			if items[i].Metadata == nil {
				items[i].Metadata = shared
			}
		}
	}

	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("vectors upsert", map[string]interface{}{
		"project_id": projectID,
		"count":      len(items),
	})

	res, err := a.ZeroDB.Vectors.Upsert(context.Background(), zerodb.UpsertVectorsParams{
		ProjectID: projectID,
		Namespace: vectorsNamespace,
		Items:     items,
	})
	if err != nil {
		return a.Fail(err)
	}

	a.History.SetResource("project", projectID)
	a.Done(res)
	return a.Print(res)
}

func runVectorsStats(cmd *cobra.Command, args []string) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	a.Begin("vectors stats", map[string]interface{}{"project_id": args[0]})

	res, err := a.ZeroDB.Vectors.Stats(context.Background(), args[0], vectorsNamespace)
	if err != nil {
		return a.Fail(err)
	}

	a.Done(res)
	return a.Print(res)
}
