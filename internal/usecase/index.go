package usecase

import (
	"fmt"

	"docrag/internal/domain"
	"docrag/internal/logger"
	"docrag/internal/port"
)

// Indexer pushes stored chunks through the embedder into the vector
// store, and answers similarity queries against it.
type Indexer struct {
	store    port.DocumentStore
	embedder port.Embedder
	vectors  port.VectorStore
}

func NewIndexer(store port.DocumentStore, embedder port.Embedder, vectors port.VectorStore) *Indexer {
	return &Indexer{store: store, embedder: embedder, vectors: vectors}
}

// EmbedAndUpsert streams every stored chunk in batches, embeds each
// batch and upserts the vectors into collection. The collection is
// created (or verified compatible) from the first batch's vector size,
// so the embedding dimension never needs to be configured. Point IDs
// are derived from the chunk identity, so re-running overwrites rather
// than duplicates. Returns the number of points written.
func (x *Indexer) EmbedAndUpsert(collection string, batchSize int, progress func(done int)) (int, error) {
	if batchSize <= 0 {
		return 0, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}

	iter, err := x.store.IterateChunkJoins(batchSize)
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	total := 0
	ensured := false
	for {
		rows, err := iter.Next()
		if err != nil {
			return total, err
		}
		if rows == nil {
			break
		}

		texts := make([]string, len(rows))
		for i, row := range rows {
			texts[i] = row.Text
		}
		vecs, err := x.embedder.Embed(texts)
		if err != nil {
			return total, fmt.Errorf("embedding batch: %w", err)
		}
		if len(vecs) != len(rows) {
			return total, fmt.Errorf("embedder returned %d vectors for %d chunks", len(vecs), len(rows))
		}

		if !ensured {
			if err := x.vectors.EnsureCollection(collection, len(vecs[0])); err != nil {
				return total, err
			}
			ensured = true
		}

		points := make([]port.Point, len(rows))
		for i, row := range rows {
			points[i] = port.Point{
				ID:      row.PointID(),
				Vector:  vecs[i],
				Payload: row.Payload(),
			}
		}
		if err := x.vectors.Upsert(collection, points); err != nil {
			return total, fmt.Errorf("upserting batch: %w", err)
		}

		total += len(points)
		if progress != nil {
			progress(total)
		}
	}

	if total == 0 {
		logger.Warn("no chunks to index; run chunk building first")
		return 0, nil
	}

	logger.Info("indexed %d chunks into collection %q with model %s", total, collection, x.embedder.ModelName())
	return total, nil
}

// Query embeds the query text and returns the topK most similar chunks
// from collection, best first.
func (x *Indexer) Query(collection, query string, topK int) ([]domain.ScoredPoint, error) {
	if topK <= 0 {
		topK = 5
	}

	vecs, err := x.embedder.Embed([]string{query})
	if err != nil {
		return nil, fmt.Errorf("embedding query: %w", err)
	}
	if len(vecs) != 1 {
		return nil, fmt.Errorf("embedder returned %d vectors for one query", len(vecs))
	}

	if err := x.vectors.EnsureCollection(collection, len(vecs[0])); err != nil {
		return nil, err
	}

	return x.vectors.Search(collection, vecs[0], topK)
}
