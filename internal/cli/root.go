package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"docrag/config"
	"docrag/internal/logger"
)

var (
	cfgFile string
	cfg     *config.Config
	dbPath  string
)

var rootCmd = &cobra.Command{
	Use:   "docrag",
	Short: "Document ingestion and semantic indexing pipeline",
	Long: `docrag parses documents with a partitioning service, stores them with
derived metadata in SQLite, chunks their text into overlapping windows,
embeds the chunks and indexes them in Qdrant for semantic search.

Example usage:
  docrag ingest ./documents        # Parse and store a document workspace
  docrag chunks                    # Rebuild chunks for all stored documents
  docrag index                     # Embed chunks and upsert into Qdrant
  docrag query -q "hull corrosion" # Search the indexed chunks`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(cfgFile)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}
		if dbPath != "" {
			cfg.Store.Path = dbPath
		}
		logger.SetLevel(cfg.Logging.Level)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "docrag.yaml", "config file")
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "document store path (overrides config)")
}

func GetConfig() *config.Config {
	return cfg
}
