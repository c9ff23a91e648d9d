package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"docrag/internal/adapter/vectorstore"
	"docrag/internal/usecase"
)

var indexCollection string

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Embed stored chunks and upsert them into Qdrant",
	Long: `Stream every stored chunk in batches, embed each batch and upsert the
vectors into the Qdrant collection. Point IDs are derived from the
chunk identity, so re-running refreshes the index in place.

Examples:
  docrag index                           # Use the configured collection
  docrag index --collection my_chunks`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
	indexCmd.Flags().StringVar(&indexCollection, "collection", "", "Qdrant collection (default from config)")
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	collection := cfg.Qdrant.Collection
	if indexCollection != "" {
		collection = indexCollection
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

	fmt.Printf("Indexing chunks into %q with model %s...\n", collection, embedder.ModelName())

	bar := newProgressBar(-1, "Embedding")
	progress := func(done int) {
		bar.Set(done)
	}

	total, err := usecase.NewIndexer(st, embedder, qdrant).EmbedAndUpsert(collection, cfg.Embedding.BatchSize, progress)
	if err != nil {
		return fmt.Errorf("indexing failed: %w", err)
	}

	fmt.Printf("\nIndexed %d chunks into collection %q\n", total, collection)
	return nil
}
