package port

import "docrag/internal/domain"

// Point is one vector-store record: a deterministic identity, an
// embedding vector and the denormalized chunk payload.
type Point struct {
	ID      string
	Vector  []float32
	Payload domain.PointPayload
}

// VectorStore is the boundary to the external vector database.
type VectorStore interface {
	// EnsureCollection creates the collection with the given vector
	// size and cosine distance if it does not exist. If it exists with
	// a different size, distance metric or named-vector configuration,
	// an error wrapping ErrCollectionMismatch is returned.
	EnsureCollection(collection string, vectorSize int) error

	// Upsert writes the points, overwriting points with the same ID.
	Upsert(collection string, points []Point) error

	// Search returns up to limit nearest neighbours with payloads,
	// ordered by descending score.
	Search(collection string, vector []float32, limit int) ([]domain.ScoredPoint, error)
}
