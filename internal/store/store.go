// Package store reads and writes snapshot documents on disk.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"SectorSentinel/internal/model"
)

// Load reads a snapshot file.
func Load(filePath string) (*model.Payload, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, err
	}
	return model.DecodePayload(data)
}

// Save writes the snapshot as indented JSON. The document is written to a
// temporary file in the same directory and renamed into place.
func Save(filePath string, p *model.Payload) error {
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	dir := filepath.Dir(filePath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".stock_data-*.json")
	if err != nil {
		return fmt.Errorf("create temp snapshot: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close snapshot: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("chmod snapshot: %w", err)
	}
	return os.Rename(tmp.Name(), filePath)
}
