package port

import "docrag/internal/domain"

// DocumentStore persists documents and their chunks.
type DocumentStore interface {
	// InsertDocument stores a document row and returns its assigned id.
	InsertDocument(doc domain.Document) (int64, error)

	// DeleteChunksForDocument removes every chunk row belonging to the
	// document, making a chunk rebuild idempotent.
	DeleteChunksForDocument(docID int64) error

	// InsertChunk stores one chunk row.
	InsertChunk(chunk domain.Chunk) error

	// FetchAllDocuments returns a full snapshot of stored documents.
	FetchAllDocuments() ([]domain.Document, error)

	// IterateChunkJoins streams chunk rows joined with their parent
	// document's metadata in insertion order, in batches of at most
	// batchSize rows. The iterator is finite and not restartable; a
	// fresh call re-reads from the start.
	IterateChunkJoins(batchSize int) (ChunkIterator, error)

	// CountChunks returns the number of chunks stored per document.
	CountChunks(docID int64) (int, error)

	Close() error
}

// ChunkIterator yields batches of joined chunk rows. Next returns a nil
// batch once the sequence is exhausted; the underlying resources are
// released on exhaustion or on Close, whichever comes first.
type ChunkIterator interface {
	Next() ([]domain.ChunkRow, error)
	Close() error
}
