package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"docrag/internal/adapter/fs"
	"docrag/internal/adapter/parser"
	"docrag/internal/usecase"
)

var ingestCmd = &cobra.Command{
	Use:   "ingest [path]",
	Short: "Parse a document workspace and store the results",
	Long: `Parse every matching file under the given directory with the
partitioning service and store one document row per file: title, domain
tags, document type, year and the raw parsed elements.

Examples:
  docrag ingest .                # Ingest the current directory
  docrag ingest ./documents      # Ingest a specific directory`,
	Args: cobra.MaximumNArgs(1),
	RunE: runIngest,
}

func init() {
	rootCmd.AddCommand(ingestCmd)
}

func runIngest(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) > 0 {
		path = args[0]
	}
	path, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("invalid path: %w", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("path does not exist: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("path is not a directory: %s", path)
	}

	cfg := GetConfig()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	client := parser.NewClient(parser.Config{
		BaseURL:   cfg.Parser.BaseURL,
		APIKey:    apiKeyFromEnv(cfg.Parser.APIKeyEnv),
		Languages: cfg.Parser.Languages,
	})
	walker := fs.NewWalker(cfg.Parser.Includes, cfg.Parser.Excludes)

	uc := usecase.NewIngestUseCase(st, client, walker, cfg.Domains)

	fmt.Printf("Ingesting %s...\n", path)
	result, err := uc.Ingest(path)
	if err != nil {
		return fmt.Errorf("ingestion failed: %w", err)
	}

	fmt.Printf("\nIngestion complete:\n")
	fmt.Printf("  Files ingested: %d\n", result.FilesIngested)
	fmt.Printf("  Files skipped:  %d\n", result.FilesSkipped)

	if len(result.Errors) > 0 {
		fmt.Printf("\nWarnings:\n")
		for _, e := range result.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}

	fmt.Printf("\nDocuments stored at: %s\n", cfg.Store.Path)
	return nil
}
