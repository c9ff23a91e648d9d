package port

// Embedder turns text into fixed-length float vectors.
type Embedder interface {
	// Embed generates one vector per input text, in input order.
	// Empty input returns an empty result without touching the model.
	// All vectors returned by one embedder share the same length;
	// the length is model-dependent and discovered at runtime.
	Embed(texts []string) ([][]float32, error)

	// ModelName returns the name of the embedding model.
	ModelName() string
}
