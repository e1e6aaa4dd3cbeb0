// Package store persists sequences as JSON files: the sequence metadata plus
// an ordered list of flat action mappings tagged by variant. The files are
// shared with the GUI layer, so the format stays plain and stable.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/codecravings/playbian-auto-typer/internal/logger"
	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

// Load reads a sequence from path. An unknown action variant tag fails the
// whole load; no partial recovery is attempted.
func Load(path string) (*models.Sequence, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read sequence file '%s': %w", path, err)
	}

	var seq models.Sequence
	if err := json.Unmarshal(data, &seq); err != nil {
		return nil, fmt.Errorf("failed to unmarshal sequence file '%s': %w", path, err)
	}

	logger.L().Debug("Loaded sequence", "path", path, "name", seq.Name, "actions", len(seq.Actions))
	return &seq, nil
}

// Save writes the sequence to path atomically (temp file, then rename).
// Actions without an ID are assigned one, and the modification timestamp is
// refreshed.
func Save(path string, seq *models.Sequence) error {
	for i := range seq.Actions {
		if seq.Actions[i].ID == "" {
			seq.Actions[i].ID = uuid.NewString()
		}
	}
	seq.ModifiedAt = time.Now()

	data, err := json.MarshalIndent(seq, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sequence: %w", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory '%s': %w", dir, err)
		}
	}

	tempFile := path + ".tmp"
	if err := os.WriteFile(tempFile, data, 0644); err != nil {
		return fmt.Errorf("failed to write temporary sequence file '%s': %w", tempFile, err)
	}
	if err := os.Rename(tempFile, path); err != nil {
		_ = os.Remove(tempFile)
		return fmt.Errorf("failed to rename temporary sequence file to '%s': %w", path, err)
	}

	logger.L().Debug("Saved sequence", "path", path, "name", seq.Name, "actions", len(seq.Actions))
	return nil
}
