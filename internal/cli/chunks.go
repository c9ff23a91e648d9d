package cli

import (
	"fmt"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
	"docrag/internal/usecase"
)

var (
	chunksMaxChars int
	chunksOverlap  int
)

var chunksCmd = &cobra.Command{
	Use:   "chunks",
	Short: "Rebuild chunks for all stored documents",
	Long: `Split every stored document's full text into overlapping windows and
store them as chunk rows. Rebuilding is idempotent: a document's prior
chunks are replaced, never duplicated.

Examples:
  docrag chunks                          # Use the configured window
  docrag chunks --max-chars 500 --overlap 100`,
	RunE: runChunks,
}

func init() {
	rootCmd.AddCommand(chunksCmd)
	chunksCmd.Flags().IntVar(&chunksMaxChars, "max-chars", 0, "chunk window size (default from config)")
	chunksCmd.Flags().IntVar(&chunksOverlap, "overlap", -1, "chunk window overlap (default from config)")
}

func runChunks(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	maxChars := cfg.Chunking.MaxChars
	if chunksMaxChars > 0 {
		maxChars = chunksMaxChars
	}
	overlap := cfg.Chunking.Overlap
	if chunksOverlap >= 0 {
		overlap = chunksOverlap
	}

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	var bar *progressbar.ProgressBar
	progress := func(done, total int) {
		if bar == nil {
			bar = newProgressBar(total, "Chunking")
		}
		bar.Set(done)
	}

	result, err := usecase.NewChunkBuilder(st).Build(maxChars, overlap, progress)
	if err != nil {
		return fmt.Errorf("chunk building failed: %w", err)
	}

	fmt.Printf("\nChunking complete:\n")
	fmt.Printf("  Documents chunked: %d\n", result.DocsProcessed)
	fmt.Printf("  Documents skipped: %d\n", result.DocsSkipped)
	fmt.Printf("  Chunks created:    %d\n", result.ChunksCreated)
	return nil
}
