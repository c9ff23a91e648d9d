package domain

import (
	"encoding/json"
	"fmt"
)

// Element is one typed text fragment produced by the document
// partitioning service. Element order is significant and preserved.
type Element struct {
	Type string `json:"type"`
	Text string `json:"text,omitempty"`
}

// Document is one ingested source file: derived metadata plus the raw
// partitioner output. Documents are created once per successful parse
// and never mutated.
type Document struct {
	ID       int64
	Path     string
	Title    string
	Domains  []string
	DocType  string
	Year     *int
	Elements json.RawMessage
}

// Chunk is a bounded, possibly overlapping window of a document's full
// text. Start and End are character offsets into the full text.
type Chunk struct {
	ID       int64
	DocID    int64
	Index    int
	Text     string
	Start    int
	End      int
	Metadata map[string]any
}

// ChunkRow is a chunk joined with its parent document's metadata, as
// streamed by the document store for embedding and upsert.
type ChunkRow struct {
	DocID    int64
	ChunkIdx int
	Text     string
	Start    int
	End      int
	Title    string
	Path     string
	Domains  []string
	DocType  string
	Year     *int
	Metadata map[string]any
}

// PointID returns the deterministic vector-store identity for this
// chunk. Re-indexing an unchanged chunk overwrites its point instead of
// duplicating it.
func (r ChunkRow) PointID() string {
	return fmt.Sprintf("%d-%d", r.DocID, r.ChunkIdx)
}

// PointPayload is the denormalized payload stored alongside each vector
// point, so search results carry everything needed to display a hit.
type PointPayload struct {
	DocID    int64          `json:"doc_id"`
	ChunkIdx int            `json:"chunk_idx"`
	Text     string         `json:"text"`
	StartPos int            `json:"start_pos"`
	EndPos   int            `json:"end_pos"`
	Title    string         `json:"title"`
	FilePath string         `json:"file_path"`
	Domain   []string       `json:"domain"`
	DocType  string         `json:"doc_type"`
	Year     *int           `json:"year,omitempty"`
	Metadata map[string]any `json:"chunk_metadata,omitempty"`
}

// Payload builds the vector-store payload for this row.
func (r ChunkRow) Payload() PointPayload {
	return PointPayload{
		DocID:    r.DocID,
		ChunkIdx: r.ChunkIdx,
		Text:     r.Text,
		StartPos: r.Start,
		EndPos:   r.End,
		Title:    r.Title,
		FilePath: r.Path,
		Domain:   r.Domains,
		DocType:  r.DocType,
		Year:     r.Year,
		Metadata: r.Metadata,
	}
}

// ScoredPoint is one nearest-neighbour search result, ordered by
// descending similarity score.
type ScoredPoint struct {
	ID      string
	Score   float64
	Payload PointPayload
}
