package review

import "time"

const (
	// DefaultModel is the Claude model used for reviews
	DefaultModel = "claude-sonnet-4-20250514"
	// DefaultMaxTokens is the response token budget
	DefaultMaxTokens int64 = 4096
	// DefaultAttempts is the total number of API calls, the first included
	DefaultAttempts = 3
	// DefaultInitialDelay is the wait before the second attempt, in milliseconds
	DefaultInitialDelay = 2000
	// DefaultOutput is where the review is written
	DefaultOutput = "claude_review.md"
)

// Config holds the review settings decoded from flags, environment and config file
type Config struct {
	Model     string      `mapstructure:"model"`
	MaxTokens int64       `mapstructure:"max_tokens"`
	Retry     RetryConfig `mapstructure:"retry"`
	Output    string      `mapstructure:"output"`
}

// RetryConfig controls how connectivity failures are retried
type RetryConfig struct {
	Attempts     int `mapstructure:"attempts"`
	InitialDelay int `mapstructure:"initial_delay"` // milliseconds, doubled after every failure
}

// DefaultConfig returns the settings used when nothing is configured
func DefaultConfig() Config {
	return Config{
		Model:     DefaultModel,
		MaxTokens: DefaultMaxTokens,
		Retry: RetryConfig{
			Attempts:     DefaultAttempts,
			InitialDelay: DefaultInitialDelay,
		},
		Output: DefaultOutput,
	}
}

// withDefaults fills zero values from DefaultConfig
func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.Model == "" {
		c.Model = d.Model
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = d.MaxTokens
	}
	if c.Retry.Attempts <= 0 {
		c.Retry.Attempts = d.Retry.Attempts
	}
	if c.Retry.InitialDelay <= 0 {
		c.Retry.InitialDelay = d.Retry.InitialDelay
	}
	if c.Output == "" {
		c.Output = d.Output
	}
	return c
}

func (r RetryConfig) initialDelay() time.Duration {
	return time.Duration(r.InitialDelay) * time.Millisecond
}
