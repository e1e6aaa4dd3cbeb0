package models

// Settings holds the application configuration. What used to be process-wide
// automation state (fail-safe, inter-call pause) is carried here explicitly
// and passed to the simulator at construction.
type Settings struct {
	LogLevel  string `yaml:"log_level" json:"log_level"`   // debug, info, warn, error
	LogFormat string `yaml:"log_format" json:"log_format"` // text, json

	// FailSafe aborts simulation when the pointer sits in a screen corner,
	// giving the user a way to wrest control back from a runaway sequence.
	FailSafe bool `yaml:"failsafe" json:"failsafe"`

	// Pause is the time in seconds the simulator rests after every
	// simulated input call.
	Pause float64 `yaml:"pause" json:"pause"`

	// DefaultRetry applies to action executions that have no
	// sequence-specific policy.
	DefaultRetry RetryPolicy `yaml:"default_retry" json:"default_retry"`
}

// DefaultSettings returns the settings used when no config file is present.
func DefaultSettings() Settings {
	return Settings{
		LogLevel:  "info",
		LogFormat: "text",
		FailSafe:  true,
		Pause:     0.05,
	}
}

// RetryPolicy defines the parameters for retrying failed action executions.
// Pointers distinguish a value being explicitly set (even to zero) from not
// being set at all, so policies merge cleanly with defaults.
type RetryPolicy struct {
	MaxRetries    *int     `yaml:"max_retries" json:"max_retries,omitempty"`
	Delay         *float64 `yaml:"delay" json:"delay,omitempty"`                   // Initial delay in seconds
	BackoffFactor *float64 `yaml:"backoff_factor" json:"backoff_factor,omitempty"` // Multiplier for exponential backoff
}
