package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/amilyk/TinyRAG/config"
	"github.com/amilyk/TinyRAG/internal/adapter/store"
	"github.com/amilyk/TinyRAG/internal/domain"
	"github.com/amilyk/TinyRAG/internal/usecase"
)

var (
	queryText string
	queryTopK int
	queryJSON bool
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search the ingested documents",
	Long: `Embed the query and print the chunks most similar to it, without
calling a chat model.

Examples:
  tinyrag query -q "refund policy"
  tinyrag query -q "maintenance window" -k 5 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "search query (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 0, "number of results (default from config)")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st := store.NewMemoryStore()
	if err := st.Load(config.StoreDir(GetRootDir(), cfg)); err != nil {
		return fmt.Errorf("no usable store found, run 'tinyrag ingest' first: %w", err)
	}

	embedder, closeCache, err := newEmbedder(cfg, GetRootDir())
	if err != nil {
		return fmt.Errorf("failed to create embedder: %w", err)
	}
	defer closeCache()

	topK := cfg.Chat.TopK
	if queryTopK > 0 {
		topK = queryTopK
	}

	results, err := usecase.NewRetrieveUseCase(st, embedder).Retrieve(queryText, topK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if queryJSON {
		output, err := formatResultsJSON(results)
		if err != nil {
			return err
		}
		fmt.Println(output)
		return nil
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", len(results), queryText)
	for i, r := range results {
		fmt.Printf("--- [%d] chunk %d (score: %.3f) ---\n", i+1, r.Index, r.Score)
		text := r.Text
		if len(text) > 500 {
			text = text[:500] + "..."
		}
		fmt.Println(text)
		fmt.Println()
	}

	return nil
}

// formatResultsJSON renders results as an indented JSON array. An empty
// result set prints as [] rather than null.
func formatResultsJSON(results []domain.ScoredChunk) (string, error) {
	if results == nil {
		results = []domain.ScoredChunk{}
	}
	output, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode results: %w", err)
	}
	return string(output), nil
}
