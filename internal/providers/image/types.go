package image

import (
	"context"
	"strings"

	"adcraft/internal/domain"
)

// DefaultSize is applied when the caller does not request a size.
const DefaultSize = "1024x1024"

var allowedSizes = map[string]bool{
	"256x256":   true,
	"512x512":   true,
	"1024x1024": true,
	"1792x1024": true,
	"1024x1792": true,
}

// GenerateRequest describes a normalized request passed to any image provider.
type GenerateRequest struct {
	Prompt    string
	Size      string
	Style     string
	Quantity  int
	RequestID string
}

// Result represents one generated creative image.
type Result struct {
	URL    string
	Model  string
	Width  int
	Height int
}

// Generator is the contract implemented by all image providers.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (*Result, error)
}

// NormalizeSize validates the requested pixel dimensions against the
// enumerated set, defaulting when unset.
func NormalizeSize(size string) (string, error) {
	size = strings.TrimSpace(size)
	if size == "" {
		return DefaultSize, nil
	}
	if !allowedSizes[size] {
		return "", domain.NewValidationError("unsupported image size " + size)
	}
	return size, nil
}

// SizeDimensions splits a validated size string into width and height.
func SizeDimensions(size string) (int, int) {
	parts := strings.SplitN(size, "x", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	return atoi(parts[0]), atoi(parts[1])
}

func atoi(s string) int {
	n := 0
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0
		}
		n = n*10 + int(r-'0')
	}
	return n
}
