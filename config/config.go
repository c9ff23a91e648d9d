// Package config loads the docrag YAML configuration.
package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"docrag/internal/adapter/metadata"
)

// Config holds all configuration for the ingestion and indexing
// pipeline.
type Config struct {
	Store     StoreConfig               `yaml:"store"`
	Chunking  ChunkingConfig            `yaml:"chunking"`
	Embedding EmbeddingConfig           `yaml:"embedding"`
	Qdrant    QdrantConfig              `yaml:"qdrant"`
	Parser    ParserConfig              `yaml:"parser"`
	Domains   []metadata.DomainKeywords `yaml:"domains"`
	Logging   LoggingConfig             `yaml:"logging"`
}

// StoreConfig holds document store configuration.
type StoreConfig struct {
	Path string `yaml:"path"`
}

// ChunkingConfig holds the window parameters for chunk building.
type ChunkingConfig struct {
	MaxChars int `yaml:"max_chars"`
	Overlap  int `yaml:"overlap"`
}

// EmbeddingConfig holds embedding gateway configuration.
type EmbeddingConfig struct {
	Provider  string `yaml:"provider"` // "openai", "ollama", "compatible", "mock"
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BaseURL   string `yaml:"base_url"`
	BatchSize int    `yaml:"batch_size"`
	Dimension int    `yaml:"dimension"`  // mock provider only
	CachePath string `yaml:"cache_path"` // empty disables the vector cache
}

// QdrantConfig holds vector store configuration.
type QdrantConfig struct {
	URL        string `yaml:"url"`
	APIKeyEnv  string `yaml:"api_key_env"`
	Collection string `yaml:"collection"`
	TimeoutSec int    `yaml:"timeout_seconds"`
}

// Timeout returns the configured request timeout.
func (c QdrantConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSec) * time.Second
}

// ParserConfig holds partition service configuration and the workspace
// file selection patterns.
type ParserConfig struct {
	BaseURL   string   `yaml:"base_url"`
	APIKeyEnv string   `yaml:"api_key_env"`
	Languages []string `yaml:"languages"`
	Includes  []string `yaml:"includes"`
	Excludes  []string `yaml:"excludes"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// DefaultConfig returns the default configuration, including the
// built-in domain keyword table. The table is plain data so locale
// coverage can be extended in the config file without code changes; the
// defaults carry both English and French variants.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Path: "parsed_docs.db",
		},
		Chunking: ChunkingConfig{
			MaxChars: 1000,
			Overlap:  200,
		},
		Embedding: EmbeddingConfig{
			Provider:  "openai",
			Model:     "text-embedding-3-small",
			APIKeyEnv: "OPENAI_API_KEY",
			BatchSize: 64,
		},
		Qdrant: QdrantConfig{
			URL:        "http://localhost:6333",
			APIKeyEnv:  "QDRANT_API_KEY",
			Collection: "doc_chunks",
			TimeoutSec: 15,
		},
		Parser: ParserConfig{
			BaseURL:   "https://api.unstructuredapp.io",
			APIKeyEnv: "UNSTRUCTURED_API_KEY",
			Languages: []string{"eng", "fra"},
			Includes:  []string{"**/*.pdf", "**/*.doc", "**/*.docx", "**/*.ppt", "**/*.pptx", "**/*.txt", "**/*.md"},
			Excludes:  []string{"**/.git/**"},
		},
		Domains: DefaultDomainTable(),
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// DefaultDomainTable is the built-in domain keyword table.
func DefaultDomainTable() []metadata.DomainKeywords {
	return []metadata.DomainKeywords{
		{Tag: "corrosion", Keywords: []string{"corrosion", "rust", "rouille", "corrode", "corrodee"}},
		{Tag: "hull", Keywords: []string{"hull", "plating", "structural steel", "shell plating", "coque", "bordage", "bordee"}},
		{Tag: "AOPV", Keywords: []string{"aopv", "arctic offshore patrol", "harry de wolfe", "npea", "npeaa"}},
		{Tag: "MCDV", Keywords: []string{"mcdv", "maritime coastal defence vessel", "navire de defense cotiere"}},
		{Tag: "HALIFAX", Keywords: []string{"halifax-class", "halifax class", "ffh", "classe halifax"}},
		{Tag: "submarine", Keywords: []string{"victoria class", "victoria-class", "ssk", "submarine", "sous-marin", "sous marin"}},
		{Tag: "NETE", Keywords: []string{"nete", "test and evaluation", "trial report", "sea trial", "essais en mer"}},
		{Tag: "manpower", Keywords: []string{"attrition", "retention", "manning", "staffing", "personnel", "dotation", "effectifs"}},
		{Tag: "engineering", Keywords: []string{"propulsion", "diesel generator", "gas turbine", "combat system", "generatrice diesel", "turbine a gaz"}},
	}
}

// Load loads configuration from a YAML file. A missing file yields the
// defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Save writes the configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
