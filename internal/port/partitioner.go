package port

import "docrag/internal/domain"

// Partitioner is the boundary to the external document partitioning
// service: it turns a raw file into a sequence of typed text elements.
type Partitioner interface {
	Partition(path string) ([]domain.Element, error)
}
