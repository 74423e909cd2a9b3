package crawler

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"cocktailetl/internal/models"
)

// jsonIndent is the indentation of both batch documents.
const jsonIndent = "    "

// Client fetches drinks and persists batch output.
type Client struct {
	fetcher      Fetcher
	createBackup bool
}

// NewClientWithDeps creates a new client with an injected fetcher.
func NewClientWithDeps(fetcher Fetcher, createBackup bool) *Client {
	return &Client{
		fetcher:      fetcher,
		createBackup: createBackup,
	}
}

// FetchRandom fetches one random drink.
func (c *Client) FetchRandom(ctx context.Context) (models.RawRecord, error) {
	return c.fetcher.FetchRandom(ctx)
}

// SaveJSON writes v as 4-space indented JSON, replacing any existing file.
func (c *Client) SaveJSON(outputPath string, v any) error {
	jsonData, err := json.MarshalIndent(v, "", jsonIndent)
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}

	return c.write(outputPath, jsonData)
}

// SaveText writes content as-is, replacing any existing file.
func (c *Client) SaveText(outputPath, content string) error {
	return c.write(outputPath, []byte(content))
}

// LoadRaw reads a raw batch document.
func LoadRaw(filePath string) ([]models.RawRecord, error) {
	return load[models.RawRecord](filePath)
}

// LoadTransformed reads a transformed batch document.
func LoadTransformed(filePath string) ([]models.TransformedRecord, error) {
	return load[models.TransformedRecord](filePath)
}

func load[T any](filePath string) ([]T, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	var records []T
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return records, nil
}

func (c *Client) write(outputPath string, data []byte) error {
	// Ensure output directory exists
	outputDir := filepath.Dir(outputPath)
	if outputDir != "." && outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	if c.createBackup {
		if err := backup(outputPath); err != nil {
			return err
		}
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write file: %w", err)
	}

	return nil
}

// backup renames an existing file to <path>.bak.
func backup(outputPath string) error {
	if _, err := os.Stat(outputPath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}

		return fmt.Errorf("failed to stat %s: %w", outputPath, err)
	}

	if err := os.Rename(outputPath, outputPath+".bak"); err != nil {
		return fmt.Errorf("failed to create backup: %w", err)
	}

	return nil
}
