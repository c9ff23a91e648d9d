package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"docrag/internal/adapter/vectorstore"
	"docrag/internal/usecase"
)

var (
	queryText       string
	queryTopK       int
	queryJSON       bool
	queryCollection string
)

var queryCmd = &cobra.Command{
	Use:   "query",
	Short: "Search indexed chunks by semantic similarity",
	Long: `Embed the query text and return the most similar indexed chunks with
their document metadata, best first.

Examples:
  docrag query -q "hull corrosion findings"
  docrag query -q "sea trial results" --top-k 10 --json`,
	RunE: runQuery,
}

func init() {
	rootCmd.AddCommand(queryCmd)
	queryCmd.Flags().StringVarP(&queryText, "query", "q", "", "query text (required)")
	queryCmd.Flags().IntVarP(&queryTopK, "top-k", "k", 5, "number of results")
	queryCmd.Flags().BoolVar(&queryJSON, "json", false, "output as JSON")
	queryCmd.Flags().StringVar(&queryCollection, "collection", "", "Qdrant collection (default from config)")
	queryCmd.MarkFlagRequired("query")
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	collection := cfg.Qdrant.Collection
	if queryCollection != "" {
		collection = queryCollection
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	embedder, closeCache, err := newEmbedder(cfg)
	if err != nil {
		return err
	}
	defer closeCache()

	qdrant := vectorstore.New(vectorstore.Config{
		URL:     cfg.Qdrant.URL,
		APIKey:  apiKeyFromEnv(cfg.Qdrant.APIKeyEnv),
		Timeout: cfg.Qdrant.Timeout(),
	})

	hits, err := usecase.NewIndexer(st, embedder, qdrant).Query(collection, queryText, queryTopK)
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	if queryJSON {
		output, _ := json.MarshalIndent(hits, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(hits) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Printf("Found %d results for: %s\n\n", len(hits), queryText)
	for i, hit := range hits {
		p := hit.Payload
		fmt.Printf("--- [%d] %s (chunk %d, score: %.3f) ---\n", i+1, p.FilePath, p.ChunkIdx, hit.Score)
		fmt.Printf("    title: %s  type: %s", p.Title, p.DocType)
		if p.Year != nil {
			fmt.Printf("  year: %d", *p.Year)
		}
		if len(p.Domain) > 0 {
			fmt.Printf("  domains: %v", p.Domain)
		}
		fmt.Println()

		fmt.Println(truncate(p.Text, 500))
		fmt.Println()
	}
	return nil
}

// truncate shortens s to at most max characters for display, cutting on
// a rune boundary so multi-byte text is never split mid-character.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}
