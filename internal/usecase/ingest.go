package usecase

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"docrag/internal/adapter/fs"
	"docrag/internal/adapter/metadata"
	"docrag/internal/domain"
	"docrag/internal/logger"
	"docrag/internal/port"
)

// IngestUseCase parses workspace files and stores one document row per
// successful parse: derived metadata plus the raw element sequence.
type IngestUseCase struct {
	store   port.DocumentStore
	parser  port.Partitioner
	walker  *fs.Walker
	domains []metadata.DomainKeywords
}

func NewIngestUseCase(
	store port.DocumentStore,
	parser port.Partitioner,
	walker *fs.Walker,
	domains []metadata.DomainKeywords,
) *IngestUseCase {
	return &IngestUseCase{
		store:   store,
		parser:  parser,
		walker:  walker,
		domains: domains,
	}
}

// IngestResult summarizes one ingestion run.
type IngestResult struct {
	FilesIngested int
	FilesSkipped  int
	Errors        []string
}

// Ingest walks root and processes every matching file. A parse or
// store failure for one file is recorded and skipped; it never aborts
// the run.
func (u *IngestUseCase) Ingest(root string) (*IngestResult, error) {
	files, err := u.walker.Walk(root)
	if err != nil {
		return nil, fmt.Errorf("failed to walk workspace: %w", err)
	}

	result := &IngestResult{}
	for _, path := range files {
		if err := u.ingestFile(path); err != nil {
			logger.Error("ingest %s: %v", path, err)
			result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", path, err))
			result.FilesSkipped++
			continue
		}
		result.FilesIngested++
	}
	return result, nil
}

func (u *IngestUseCase) ingestFile(path string) error {
	elements, err := u.parser.Partition(path)
	if err != nil {
		return fmt.Errorf("partition failed: %w", err)
	}
	if len(elements) == 0 {
		return fmt.Errorf("nothing parsed")
	}

	fullText := metadata.FullText(elements)
	title := metadata.Title(elements, filepath.Base(path))
	tags := metadata.DomainTags(fullText, u.domains)
	docType := metadata.DocType(fullText, path)

	var year *int
	if y, ok := metadata.Year(fullText); ok {
		year = &y
	}

	raw, err := json.Marshal(elements)
	if err != nil {
		return fmt.Errorf("encoding elements: %w", err)
	}

	id, err := u.store.InsertDocument(domain.Document{
		Path:     path,
		Title:    title,
		Domains:  tags,
		DocType:  docType,
		Year:     year,
		Elements: raw,
	})
	if err != nil {
		return fmt.Errorf("storing document: %w", err)
	}

	logger.Info("ingested doc id=%d file=%s title=%q domains=%v type=%s", id, path, title, tags, docType)
	return nil
}
