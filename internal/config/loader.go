package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

// LoadSettings reads the YAML settings file at the given path. A missing
// file is not an error: a desktop tool should work out of the box, so the
// defaults are returned instead. Values present in the file overlay the
// defaults, which is how "failsafe: false" stays distinguishable from an
// absent key.
func LoadSettings(path string) (*models.Settings, error) {
	settings := models.DefaultSettings()

	if path == "" {
		return &settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &settings, nil
		}
		return nil, fmt.Errorf("failed to read settings file '%s': %w", path, err)
	}

	if err := yaml.Unmarshal(data, &settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal settings file '%s': %w", path, err)
	}

	if err := ValidateSettings(&settings); err != nil {
		return nil, fmt.Errorf("settings validation failed: %w", err)
	}

	return &settings, nil
}
