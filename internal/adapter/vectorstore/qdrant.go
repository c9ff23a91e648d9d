// Package vectorstore is a minimal REST client to Qdrant: collection
// management, point upsert and nearest-neighbour search. Collections
// are validated before the first write so the index never mixes
// incompatible vectors.
package vectorstore

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"docrag/internal/domain"
	"docrag/internal/port"
)

// ErrCollectionMismatch marks a collection whose configured vector
// size, distance metric or vector naming conflicts with what the
// pipeline writes. Continuing would corrupt the index, so callers abort.
var ErrCollectionMismatch = errors.New("collection configuration mismatch")

const distanceCosine = "Cosine"

type Qdrant struct {
	url    string
	apiKey string
	client *http.Client
}

var _ port.VectorStore = (*Qdrant)(nil)

type Config struct {
	URL     string
	APIKey  string
	Timeout time.Duration
}

func New(cfg Config) *Qdrant {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Qdrant{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: timeout},
	}
}

type vectorParams struct {
	Size     int    `json:"size"`
	Distance string `json:"distance"`
}

type collectionInfo struct {
	Result struct {
		Config struct {
			Params struct {
				Vectors json.RawMessage `json:"vectors"`
			} `json:"params"`
		} `json:"config"`
	} `json:"result"`
}

// EnsureCollection creates the collection with the given size and
// cosine distance if it is missing. An existing collection must match
// exactly: a size or distance difference, or a named-vectors layout,
// fails with ErrCollectionMismatch since this client only writes a
// single unnamed vector per point.
func (q *Qdrant) EnsureCollection(collection string, vectorSize int) error {
	if vectorSize <= 0 {
		return fmt.Errorf("invalid vector size %d", vectorSize)
	}

	req, err := http.NewRequest(http.MethodGet, fmt.Sprintf("%s/collections/%s", q.url, collection), nil)
	if err != nil {
		return err
	}
	q.setHeaders(req)
	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant GET collection failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return q.createCollection(collection, vectorSize)
	case resp.StatusCode >= 300:
		return fmt.Errorf("qdrant GET collection %s failed: %s", collection, resp.Status)
	}

	var info collectionInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return fmt.Errorf("decoding collection info: %w", err)
	}

	// a single default vector decodes as an object with a "size" key;
	// named vectors decode as a map of vector names
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(info.Result.Config.Params.Vectors, &fields); err != nil {
		return fmt.Errorf("decoding vector params: %w", err)
	}
	if _, ok := fields["size"]; !ok {
		return fmt.Errorf("collection %q uses named vectors, expected a single default vector: %w",
			collection, ErrCollectionMismatch)
	}

	var params vectorParams
	if err := json.Unmarshal(info.Result.Config.Params.Vectors, &params); err != nil {
		return fmt.Errorf("decoding vector params: %w", err)
	}
	if params.Size != vectorSize || params.Distance != distanceCosine {
		return fmt.Errorf("collection %q has size=%d distance=%s, expected size=%d distance=%s: %w",
			collection, params.Size, params.Distance, vectorSize, distanceCosine, ErrCollectionMismatch)
	}
	return nil
}

func (q *Qdrant) createCollection(collection string, vectorSize int) error {
	body := map[string]any{
		"vectors": vectorParams{Size: vectorSize, Distance: distanceCosine},
	}
	return q.putJSON(fmt.Sprintf("%s/collections/%s", q.url, collection), body)
}

type pointStruct struct {
	ID      string              `json:"id"`
	Vector  []float32           `json:"vector"`
	Payload domain.PointPayload `json:"payload"`
}

// Upsert writes the points, overwriting any point with the same id.
func (q *Qdrant) Upsert(collection string, points []port.Point) error {
	if len(points) == 0 {
		return nil
	}
	body := struct {
		Points []pointStruct `json:"points"`
	}{Points: make([]pointStruct, len(points))}
	for i, p := range points {
		body.Points[i] = pointStruct{ID: p.ID, Vector: p.Vector, Payload: p.Payload}
	}
	return q.putJSON(fmt.Sprintf("%s/collections/%s/points?wait=true", q.url, collection), body)
}

// Search returns up to limit nearest neighbours with payloads attached,
// ordered by descending score.
func (q *Qdrant) Search(collection string, vector []float32, limit int) ([]domain.ScoredPoint, error) {
	reqBody := map[string]any{
		"vector":       vector,
		"limit":        limit,
		"with_payload": true,
	}
	var resp struct {
		Result []struct {
			ID      string              `json:"id"`
			Score   float64             `json:"score"`
			Payload domain.PointPayload `json:"payload"`
		} `json:"result"`
	}
	url := fmt.Sprintf("%s/collections/%s/points/search", q.url, collection)
	if err := q.postJSON(url, reqBody, &resp); err != nil {
		return nil, err
	}

	results := make([]domain.ScoredPoint, 0, len(resp.Result))
	for _, r := range resp.Result {
		results = append(results, domain.ScoredPoint{ID: r.ID, Score: r.Score, Payload: r.Payload})
	}
	return results, nil
}

func (q *Qdrant) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	if q.apiKey != "" {
		req.Header.Set("api-key", q.apiKey)
	}
}

func (q *Qdrant) putJSON(url string, body any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	q.setHeaders(req)
	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant PUT failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant PUT %s failed: %s", url, resp.Status)
	}
	return nil
}

func (q *Qdrant) postJSON(url string, body, out any) error {
	data, err := json.Marshal(body)
	if err != nil {
		return err
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	q.setHeaders(req)
	resp, err := q.client.Do(req)
	if err != nil {
		return fmt.Errorf("qdrant POST failed: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("qdrant POST %s failed: %s", url, resp.Status)
	}
	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}
