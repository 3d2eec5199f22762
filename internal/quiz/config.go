package quiz

import "time"

// Config holds relay tuning knobs.
type Config struct {
	// Temperature for upstream generation.
	Temperature float64

	// MaxTokens caps the upstream response length.
	MaxTokens int

	// Timeout bounds the single upstream call per request.
	Timeout time.Duration

	// DefaultCount is used when a request leaves the count unset.
	DefaultCount int

	// MaxCount clamps hostile or accidental oversized requests.
	MaxCount int
}

// DefaultConfig returns the relay defaults.
func DefaultConfig() Config {
	return Config{
		Temperature:  0.7,
		MaxTokens:    1024,
		Timeout:      30 * time.Second,
		DefaultCount: 20,
		MaxCount:     50,
	}
}
