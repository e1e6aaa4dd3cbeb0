package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/codecravings/playbian-auto-typer/pkg/models"
)

// ValidateSettings checks the application settings for consistency.
func ValidateSettings(settings *models.Settings) error {
	if settings == nil {
		return errors.New("settings cannot be nil")
	}

	if settings.LogLevel != "" {
		level := strings.ToLower(settings.LogLevel)
		if level != "debug" && level != "info" && level != "warn" && level != "error" {
			return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", settings.LogLevel)
		}
	}
	if settings.LogFormat != "" {
		format := strings.ToLower(settings.LogFormat)
		if format != "text" && format != "json" {
			return fmt.Errorf("invalid log_format: %s (must be text or json)", settings.LogFormat)
		}
	}
	if settings.Pause < 0 {
		return fmt.Errorf("pause cannot be negative: %g", settings.Pause)
	}
	if err := validateRetryPolicy(&settings.DefaultRetry, "default_retry"); err != nil {
		return err
	}
	return nil
}

func validateRetryPolicy(policy *models.RetryPolicy, fieldName string) error {
	if policy == nil {
		return nil
	}
	if policy.MaxRetries != nil && *policy.MaxRetries < 0 {
		return fmt.Errorf("%s: max_retries cannot be negative", fieldName)
	}
	if policy.Delay != nil && *policy.Delay < 0 {
		return fmt.Errorf("%s: delay cannot be negative", fieldName)
	}
	if policy.BackoffFactor != nil && *policy.BackoffFactor < 1.0 {
		// Allow 1.0 (no backoff), but not less.
		return fmt.Errorf("%s: backoff_factor cannot be less than 1.0", fieldName)
	}
	return nil
}
