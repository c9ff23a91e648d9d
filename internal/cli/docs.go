package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var docsJSON bool

var docsCmd = &cobra.Command{
	Use:   "docs",
	Short: "List stored documents",
	Long: `List every stored document with its derived metadata and chunk count.

Examples:
  docrag docs
  docrag docs --json`,
	RunE: runDocs,
}

func init() {
	rootCmd.AddCommand(docsCmd)
	docsCmd.Flags().BoolVar(&docsJSON, "json", false, "output as JSON")
}

func runDocs(cmd *cobra.Command, args []string) error {
	cfg := GetConfig()

	st, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	docs, err := st.FetchAllDocuments()
	if err != nil {
		return fmt.Errorf("failed to list documents: %w", err)
	}

	type docRow struct {
		ID      int64    `json:"id"`
		Path    string   `json:"file_path"`
		Title   string   `json:"title"`
		Domains []string `json:"domain"`
		DocType string   `json:"doc_type"`
		Year    *int     `json:"year,omitempty"`
		Chunks  int      `json:"chunks"`
	}

	rows := make([]docRow, 0, len(docs))
	for _, doc := range docs {
		n, err := st.CountChunks(doc.ID)
		if err != nil {
			return fmt.Errorf("failed to count chunks for doc %d: %w", doc.ID, err)
		}
		rows = append(rows, docRow{
			ID:      doc.ID,
			Path:    doc.Path,
			Title:   doc.Title,
			Domains: doc.Domains,
			DocType: doc.DocType,
			Year:    doc.Year,
			Chunks:  n,
		})
	}

	if docsJSON {
		output, _ := json.MarshalIndent(rows, "", "  ")
		fmt.Println(string(output))
		return nil
	}

	if len(rows) == 0 {
		fmt.Println("No documents stored. Run 'docrag ingest' first.")
		return nil
	}

	for _, r := range rows {
		year := "-"
		if r.Year != nil {
			year = fmt.Sprintf("%d", *r.Year)
		}
		fmt.Printf("[%d] %s\n", r.ID, r.Path)
		fmt.Printf("    title: %q  type: %s  year: %s  domains: %v  chunks: %d\n",
			r.Title, r.DocType, year, r.Domains, r.Chunks)
	}
	return nil
}
