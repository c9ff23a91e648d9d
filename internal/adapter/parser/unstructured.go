// Package parser calls an Unstructured-compatible partition API: it
// uploads a raw file and gets back a sequence of typed text elements.
// The service is a black box; element order is preserved as received.
package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"docrag/internal/domain"
	"docrag/internal/port"
)

type Client struct {
	baseURL   string
	apiKey    string
	languages []string
	client    *http.Client
}

var _ port.Partitioner = (*Client)(nil)

type Config struct {
	BaseURL   string
	APIKey    string
	Languages []string
	Timeout   time.Duration
}

func NewClient(cfg Config) *Client {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 5 * time.Minute
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		apiKey:    cfg.APIKey,
		languages: cfg.Languages,
		client:    &http.Client{Timeout: timeout},
	}
}

// Partition uploads the file and returns its typed elements.
func (c *Client) Partition(path string) ([]domain.Element, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	part, err := mw.CreateFormFile("files", filepath.Base(path))
	if err != nil {
		return nil, err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if err := mw.WriteField("strategy", "auto"); err != nil {
		return nil, err
	}
	for _, lang := range c.languages {
		if err := mw.WriteField("languages", lang); err != nil {
			return nil, err
		}
	}
	if err := mw.Close(); err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, c.baseURL+"/general/v0/general", &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("unstructured-api-key", c.apiKey)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("partition request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading partition response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("partition API returned status %d: %s", resp.StatusCode, string(body))
	}

	var elements []domain.Element
	if err := json.Unmarshal(body, &elements); err != nil {
		return nil, fmt.Errorf("decoding partition response: %w", err)
	}
	return elements, nil
}
