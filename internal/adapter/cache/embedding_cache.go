// Package cache persists computed embeddings in a bbolt file so
// re-indexing unchanged chunks does not call the embedding API again.
package cache

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"docrag/internal/port"
)

var bucketVectors = []byte("vectors")

// EmbeddingCache is a content-addressed vector cache: keys are derived
// from the model name and the exact chunk text, so a model change or a
// text change both miss.
type EmbeddingCache struct {
	db *bbolt.DB
}

// Open opens (or creates) the cache file at path.
func Open(path string) (*EmbeddingCache, error) {
	db, err := bbolt.Open(path, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}
	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketVectors)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create cache bucket: %w", err)
	}
	return &EmbeddingCache{db: db}, nil
}

func (c *EmbeddingCache) Close() error {
	return c.db.Close()
}

func cacheKey(model, text string) []byte {
	h := sha256.New()
	h.Write([]byte(model))
	h.Write([]byte{0})
	h.Write([]byte(text))
	return h.Sum(nil)[:16]
}

// Get returns the cached vector for (model, text), if present.
func (c *EmbeddingCache) Get(model, text string) ([]float32, bool) {
	var vector []float32
	found := false
	c.db.View(func(tx *bbolt.Tx) error {
		data := tx.Bucket(bucketVectors).Get(cacheKey(model, text))
		if data == nil {
			return nil
		}
		if err := json.Unmarshal(data, &vector); err != nil {
			// corrupted entry, treat as miss
			return nil
		}
		found = true
		return nil
	})
	return vector, found
}

// Put stores the vector for (model, text).
func (c *EmbeddingCache) Put(model, text string, vector []float32) error {
	data, err := json.Marshal(vector)
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(bucketVectors).Put(cacheKey(model, text), data)
	})
}

// CachedEmbedder wraps an Embedder with the cache: hits are served
// locally, misses go to the wrapped embedder in one call and are
// written through. Output order always matches input order.
type CachedEmbedder struct {
	embedder port.Embedder
	cache    *EmbeddingCache
}

var _ port.Embedder = (*CachedEmbedder)(nil)

func NewCachedEmbedder(embedder port.Embedder, cache *EmbeddingCache) *CachedEmbedder {
	return &CachedEmbedder{embedder: embedder, cache: cache}
}

func (e *CachedEmbedder) Embed(texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}

	model := e.embedder.ModelName()
	vectors := make([][]float32, len(texts))
	var missIdx []int
	var missTexts []string

	for i, text := range texts {
		if v, ok := e.cache.Get(model, text); ok {
			vectors[i] = v
			continue
		}
		missIdx = append(missIdx, i)
		missTexts = append(missTexts, text)
	}

	if len(missTexts) > 0 {
		fresh, err := e.embedder.Embed(missTexts)
		if err != nil {
			return nil, err
		}
		if len(fresh) != len(missTexts) {
			return nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(fresh), len(missTexts))
		}
		for j, i := range missIdx {
			vectors[i] = fresh[j]
			if err := e.cache.Put(model, texts[i], fresh[j]); err != nil {
				return nil, fmt.Errorf("failed to cache vector: %w", err)
			}
		}
	}

	return vectors, nil
}

func (e *CachedEmbedder) ModelName() string {
	return e.embedder.ModelName()
}
