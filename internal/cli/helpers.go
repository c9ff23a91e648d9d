package cli

import (
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"

	"docrag/config"
	"docrag/internal/adapter/cache"
	"docrag/internal/adapter/embedding"
	"docrag/internal/adapter/store"
	"docrag/internal/port"
)

// openStore opens the configured SQLite document store.
func openStore(cfg *config.Config) (*store.SQLiteStore, error) {
	st, err := store.Open(cfg.Store.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open document store: %w", err)
	}
	return st, nil
}

// newEmbedder builds the configured embedder, wrapped with the vector
// cache when a cache path is set. The returned closer releases the
// cache file; it is a no-op when caching is disabled.
func newEmbedder(cfg *config.Config) (port.Embedder, func() error, error) {
	var embedder port.Embedder
	var err error

	switch cfg.Embedding.Provider {
	case "openai":
		embedder, err = embedding.NewOpenAIEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model)
	case "ollama":
		embedder = embedding.NewOllamaEmbedder(cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "compatible":
		embedder, err = embedding.NewCompatibleEmbedder(cfg.Embedding.APIKeyEnv, cfg.Embedding.Model, cfg.Embedding.BaseURL)
	case "mock":
		embedder = embedding.NewMockEmbedder(cfg.Embedding.Dimension)
	default:
		return nil, nil, fmt.Errorf("unsupported embedding provider: %s", cfg.Embedding.Provider)
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create embedder: %w", err)
	}

	noop := func() error { return nil }
	if cfg.Embedding.CachePath == "" {
		return embedder, noop, nil
	}

	c, err := cache.Open(cfg.Embedding.CachePath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open embedding cache: %w", err)
	}
	return cache.NewCachedEmbedder(embedder, c), c.Close, nil
}

// newProgressBar builds the standard pipeline progress bar.
func newProgressBar(total int, description string) *progressbar.ProgressBar {
	return progressbar.NewOptions(total,
		progressbar.OptionEnableColorCodes(true),
		progressbar.OptionShowBytes(false),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowCount(),
		progressbar.OptionSetDescription(fmt.Sprintf("[cyan]%s[reset]", description)),
		progressbar.OptionOnCompletion(func() {
			fmt.Println()
		}),
	)
}

// apiKeyFromEnv reads an optional API key environment variable.
func apiKeyFromEnv(envName string) string {
	if envName == "" {
		return ""
	}
	return os.Getenv(envName)
}
