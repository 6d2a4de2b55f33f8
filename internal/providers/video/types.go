package video

import "context"

// GenerateRequest describes a normalized request passed to any video provider.
type GenerateRequest struct {
	Prompt    string
	Ratio     string
	Seconds   int
	RequestID string
}

// Result represents one generated creative video.
type Result struct {
	URL     string
	Model   string
	Seconds int
}

// Generator is the contract implemented by all video providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)
}
