package gen

import (
	"strings"

	"adcraft/internal/domain"
)

// Capability is the kind of generation requested.
type Capability string

const (
	CapabilityText  Capability = "text"
	CapabilityImage Capability = "image"
	CapabilityVideo Capability = "video"
)

// ParseCapability maps free-form input onto the fixed capability set.
func ParseCapability(s string) (Capability, error) {
	switch Capability(strings.ToLower(strings.TrimSpace(s))) {
	case CapabilityText:
		return CapabilityText, nil
	case CapabilityImage:
		return CapabilityImage, nil
	case CapabilityVideo:
		return CapabilityVideo, nil
	default:
		return "", domain.NewValidationError("unknown capability " + s)
	}
}

// Options carries the provider-agnostic knobs of a request. Each adapter maps
// them onto its vendor-specific fields.
type Options struct {
	MaxTokens   int
	Temperature float64
	Size        string
	Style       string
	Ratio       string
	Seconds     int
}

// Request is a normalized generation request at the orchestrator boundary.
// Provider optionally overrides the default adapter for the capability.
type Request struct {
	Capability Capability
	Prompt     string
	Provider   string
	RequestID  string
	Options    Options
}

// Result is the normalized outcome of a generation call. Immutable once
// returned.
type Result struct {
	Text     string
	AssetURL string
	Provider string
	Model    string
	Width    int
	Height   int
	Seconds  int
	Usage    map[string]int
}
