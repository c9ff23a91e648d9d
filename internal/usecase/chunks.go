package usecase

import (
	"encoding/json"
	"strings"

	"docrag/internal/adapter/chunker"
	"docrag/internal/adapter/metadata"
	"docrag/internal/domain"
	"docrag/internal/logger"
	"docrag/internal/port"
)

// ChunkBuilder rebuilds the chunk rows for every stored document.
// Rebuilding is idempotent per document: prior chunks are deleted
// before fresh ones are inserted, never updated incrementally.
type ChunkBuilder struct {
	store port.DocumentStore
}

func NewChunkBuilder(store port.DocumentStore) *ChunkBuilder {
	return &ChunkBuilder{store: store}
}

// BuildResult summarizes one chunk-building run.
type BuildResult struct {
	DocsProcessed int
	DocsSkipped   int
	ChunksCreated int
}

// Build chunks every stored document's full text with the given window
// parameters. A decode or chunking failure for one document is logged
// and skipped; blank documents produce zero chunks and a warning.
// Invalid window parameters fail the whole run up front.
func (b *ChunkBuilder) Build(maxChars, overlap int, progress func(done, total int)) (*BuildResult, error) {
	// validate the window parameters once instead of per document
	if _, err := chunker.Chunk("x", maxChars, overlap); err != nil {
		return nil, err
	}

	docs, err := b.store.FetchAllDocuments()
	if err != nil {
		return nil, err
	}

	result := &BuildResult{}
	if len(docs) == 0 {
		logger.Warn("no documents found; ingest a workspace first")
		return result, nil
	}

	for i, doc := range docs {
		n, ok := b.buildDoc(doc, maxChars, overlap)
		if ok {
			result.DocsProcessed++
			result.ChunksCreated += n
			logger.Info("doc id=%d file=%s -> %d chunks", doc.ID, doc.Path, n)
		} else {
			result.DocsSkipped++
		}
		if progress != nil {
			progress(i+1, len(docs))
		}
	}

	logger.Info("chunking complete, total chunks inserted: %d", result.ChunksCreated)
	return result, nil
}

func (b *ChunkBuilder) buildDoc(doc domain.Document, maxChars, overlap int) (int, bool) {
	var elements []domain.Element
	if err := json.Unmarshal(doc.Elements, &elements); err != nil {
		logger.Error("doc id=%d: could not decode stored elements: %v", doc.ID, err)
		return 0, false
	}

	fullText := metadata.FullText(elements)
	if strings.TrimSpace(fullText) == "" {
		logger.Warn("doc id=%d file=%s: empty full text, skipping", doc.ID, doc.Path)
		return 0, false
	}

	if err := b.store.DeleteChunksForDocument(doc.ID); err != nil {
		logger.Error("doc id=%d: clearing old chunks failed: %v", doc.ID, err)
		return 0, false
	}

	pieces, err := chunker.Chunk(fullText, maxChars, overlap)
	if err != nil {
		logger.Error("doc id=%d: chunking failed: %v", doc.ID, err)
		return 0, false
	}
	if len(pieces) == 0 {
		logger.Warn("doc id=%d file=%s: no chunks generated", doc.ID, doc.Path)
		return 0, false
	}

	for idx, piece := range pieces {
		err := b.store.InsertChunk(domain.Chunk{
			DocID: doc.ID,
			Index: idx,
			Text:  piece.Text,
			Start: piece.Start,
			End:   piece.End,
			Metadata: map[string]any{
				"source_file": doc.Path,
				"note":        "auto-chunked from full_text",
			},
		})
		if err != nil {
			logger.Error("doc id=%d: inserting chunk %d failed: %v", doc.ID, idx, err)
			return 0, false
		}
	}

	return len(pieces), true
}
