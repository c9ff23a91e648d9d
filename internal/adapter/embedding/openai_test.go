package embedding

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestEmbedEmptyInput(t *testing.T) {
	e := &Embedder{} // no client needed: the API must not be called

	vectors, err := e.Embed(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 0 {
		t.Errorf("expected no vectors, got %d", len(vectors))
	}
}

func TestEmbedOrderAndLength(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/embeddings" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", got)
		}

		var req embeddingRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatal(err)
		}

		// answer out of order to exercise index-based reassembly
		resp := embeddingResponse{}
		for i := len(req.Input) - 1; i >= 0; i-- {
			resp.Data = append(resp.Data, embeddingData{
				Index:     i,
				Embedding: []float32{float32(i), float32(i), float32(i)},
			})
		}
		json.NewEncoder(w).Encode(resp)
	}))
	defer srv.Close()

	e := &Embedder{apiKey: "test-key", model: "test-model", baseURL: srv.URL, client: srv.Client()}

	vectors, err := e.Embed([]string{"a", "b"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	if len(vectors[0]) != len(vectors[1]) {
		t.Error("vectors must share one dimensionality")
	}
	if vectors[0][0] != 0 || vectors[1][0] != 1 {
		t.Error("vectors not returned in input order")
	}
}

func TestEmbedAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
		w.Write([]byte(`{"error":{"message":"rate limited"}}`))
	}))
	defer srv.Close()

	e := &Embedder{apiKey: "k", model: "m", baseURL: srv.URL, client: srv.Client()}

	if _, err := e.Embed([]string{"a"}); err == nil {
		t.Error("expected error on non-200 response")
	}
}

func TestMockEmbedderDimensions(t *testing.T) {
	e := NewMockEmbedder(8)

	vectors, err := e.Embed([]string{"alpha", "beta"})
	if err != nil {
		t.Fatal(err)
	}
	if len(vectors) != 2 {
		t.Fatalf("expected 2 vectors, got %d", len(vectors))
	}
	for i, v := range vectors {
		if len(v) != 8 {
			t.Errorf("vector %d has dimension %d, want 8", i, len(v))
		}
	}

	empty, err := e.Embed(nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(empty) != 0 {
		t.Error("embed of empty input must be empty")
	}
}
