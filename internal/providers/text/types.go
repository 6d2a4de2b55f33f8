package text

import "context"

// Defaults applied when the caller leaves tuning knobs unset.
const (
	DefaultMaxTokens   = 500
	DefaultTemperature = 0.7
)

// Result is the normalized output of any text provider.
type Result struct {
	Text  string
	Model string
	Usage map[string]int
}

// Generator is the contract implemented by all text providers.
type Generator interface {
	GenerateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (*Result, error)
}
