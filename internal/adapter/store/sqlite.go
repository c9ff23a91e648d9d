// Package store persists documents and chunks in SQLite.
package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite" // SQLite driver

	"docrag/internal/domain"
	"docrag/internal/logger"
	"docrag/internal/port"
)

var _ port.DocumentStore = (*SQLiteStore)(nil)

const schema = `
CREATE TABLE IF NOT EXISTS documents (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	file_path TEXT NOT NULL,
	title     TEXT,
	domain    TEXT,
	doc_type  TEXT,
	year      INTEGER,
	json_data TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS chunks (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	doc_id    INTEGER NOT NULL REFERENCES documents(id),
	chunk_idx INTEGER NOT NULL,
	text      TEXT NOT NULL,
	start_pos INTEGER NOT NULL,
	end_pos   INTEGER NOT NULL,
	metadata  TEXT,
	UNIQUE(doc_id, chunk_idx)
);
`

// SQLiteStore implements port.DocumentStore on a SQLite file.
type SQLiteStore struct {
	db   *sql.DB
	path string
}

// Open opens (or creates) the database at path and ensures the schema
// exists. Safe to call against an already initialized database.
func Open(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}
	return &SQLiteStore{db: db, path: path}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *SQLiteStore) Path() string {
	return s.path
}

// InsertDocument stores a document row and returns its assigned id.
// Domain tags are serialized as JSON text; an absent year is stored as
// NULL.
func (s *SQLiteStore) InsertDocument(doc domain.Document) (int64, error) {
	domains, err := json.Marshal(doc.Domains)
	if err != nil {
		return 0, fmt.Errorf("marshalling domain tags: %w", err)
	}

	var year sql.NullInt64
	if doc.Year != nil {
		year = sql.NullInt64{Int64: int64(*doc.Year), Valid: true}
	}

	res, err := s.db.Exec(
		`INSERT INTO documents (file_path, title, domain, doc_type, year, json_data)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		doc.Path, doc.Title, string(domains), doc.DocType, year, string(doc.Elements),
	)
	if err != nil {
		return 0, fmt.Errorf("inserting document: %w", err)
	}
	return res.LastInsertId()
}

// DeleteChunksForDocument removes every chunk row for the document.
func (s *SQLiteStore) DeleteChunksForDocument(docID int64) error {
	if _, err := s.db.Exec(`DELETE FROM chunks WHERE doc_id = ?`, docID); err != nil {
		return fmt.Errorf("deleting chunks for doc %d: %w", docID, err)
	}
	return nil
}

// InsertChunk stores one chunk row. A nil metadata map is stored as an
// empty JSON object.
func (s *SQLiteStore) InsertChunk(chunk domain.Chunk) error {
	meta := chunk.Metadata
	if meta == nil {
		meta = map[string]any{}
	}
	metaJSON, err := json.Marshal(meta)
	if err != nil {
		return fmt.Errorf("marshalling chunk metadata: %w", err)
	}

	_, err = s.db.Exec(
		`INSERT INTO chunks (doc_id, chunk_idx, text, start_pos, end_pos, metadata)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		chunk.DocID, chunk.Index, chunk.Text, chunk.Start, chunk.End, string(metaJSON),
	)
	if err != nil {
		return fmt.Errorf("inserting chunk %d of doc %d: %w", chunk.Index, chunk.DocID, err)
	}
	return nil
}

// FetchAllDocuments returns a snapshot of every stored document.
// Documents whose domain tags fail to decode keep an empty tag list and
// are reported, not dropped: the raw elements may still be usable.
func (s *SQLiteStore) FetchAllDocuments() ([]domain.Document, error) {
	rows, err := s.db.Query(
		`SELECT id, file_path, title, domain, doc_type, year, json_data
		 FROM documents ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.Document
	for rows.Next() {
		var (
			doc     domain.Document
			title   sql.NullString
			domains sql.NullString
			docType sql.NullString
			year    sql.NullInt64
			raw     string
		)
		if err := rows.Scan(&doc.ID, &doc.Path, &title, &domains, &docType, &year, &raw); err != nil {
			return nil, fmt.Errorf("scanning document: %w", err)
		}
		doc.Title = title.String
		doc.DocType = docType.String
		if year.Valid {
			y := int(year.Int64)
			doc.Year = &y
		}
		if domains.Valid && domains.String != "" {
			if err := json.Unmarshal([]byte(domains.String), &doc.Domains); err != nil {
				logger.Warn("doc %d: malformed domain tags, keeping empty: %v", doc.ID, err)
				doc.Domains = nil
			}
		}
		doc.Elements = json.RawMessage(raw)
		docs = append(docs, doc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating documents: %w", err)
	}
	return docs, nil
}

// CountChunks returns the number of chunk rows for the document.
func (s *SQLiteStore) CountChunks(docID int64) (int, error) {
	var n int
	err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks WHERE doc_id = ?`, docID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("counting chunks for doc %d: %w", docID, err)
	}
	return n, nil
}

// IterateChunkJoins streams chunk rows joined with their parent
// document's metadata, ordered by chunk insertion order, in batches of
// at most batchSize rows.
func (s *SQLiteStore) IterateChunkJoins(batchSize int) (port.ChunkIterator, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size must be positive, got %d", batchSize)
	}
	rows, err := s.db.Query(
		`SELECT c.doc_id, c.chunk_idx, c.text, c.start_pos, c.end_pos, c.metadata,
		        d.title, d.file_path, d.domain, d.doc_type, d.year
		 FROM chunks c
		 JOIN documents d ON d.id = c.doc_id
		 ORDER BY c.id`,
	)
	if err != nil {
		return nil, fmt.Errorf("querying chunk joins: %w", err)
	}
	return &ChunkIterator{rows: rows, batchSize: batchSize}, nil
}

// ChunkIterator yields joined chunk rows in fixed-size batches. It is
// finite and not restartable; the underlying connection is released
// when the iterator is exhausted or closed early. Rows with malformed
// stored JSON are logged and skipped rather than aborting the scan.
type ChunkIterator struct {
	rows      *sql.Rows
	batchSize int
	done      bool
}

// Next returns the next batch, or a nil batch once exhausted.
func (it *ChunkIterator) Next() ([]domain.ChunkRow, error) {
	if it.done {
		return nil, nil
	}

	batch := make([]domain.ChunkRow, 0, it.batchSize)
	for len(batch) < it.batchSize {
		if !it.rows.Next() {
			it.done = true
			if err := it.rows.Err(); err != nil {
				it.rows.Close()
				return nil, fmt.Errorf("iterating chunk joins: %w", err)
			}
			it.rows.Close()
			break
		}

		var (
			row     domain.ChunkRow
			meta    sql.NullString
			title   sql.NullString
			domains sql.NullString
			docType sql.NullString
			year    sql.NullInt64
		)
		if err := it.rows.Scan(
			&row.DocID, &row.ChunkIdx, &row.Text, &row.Start, &row.End, &meta,
			&title, &row.Path, &domains, &docType, &year,
		); err != nil {
			it.done = true
			it.rows.Close()
			return nil, fmt.Errorf("scanning chunk join: %w", err)
		}
		row.Title = title.String
		row.DocType = docType.String
		if year.Valid {
			y := int(year.Int64)
			row.Year = &y
		}
		if meta.Valid && meta.String != "" {
			if err := json.Unmarshal([]byte(meta.String), &row.Metadata); err != nil {
				logger.Warn("chunk %d-%d: malformed metadata, skipping row: %v", row.DocID, row.ChunkIdx, err)
				continue
			}
		}
		if domains.Valid && domains.String != "" {
			if err := json.Unmarshal([]byte(domains.String), &row.Domains); err != nil {
				logger.Warn("chunk %d-%d: malformed domain tags, skipping row: %v", row.DocID, row.ChunkIdx, err)
				continue
			}
		}
		batch = append(batch, row)
	}

	if len(batch) == 0 {
		return nil, nil
	}
	return batch, nil
}

// Close releases the iterator's resources. Safe to call after
// exhaustion or more than once.
func (it *ChunkIterator) Close() error {
	if it.done {
		return nil
	}
	it.done = true
	return it.rows.Close()
}
