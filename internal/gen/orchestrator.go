package gen

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"adcraft/internal/domain"
	"adcraft/internal/providers/image"
	"adcraft/internal/providers/text"
	"adcraft/internal/providers/video"
)

// Adapters maps provider names to adapter instances, per capability. Built
// once at startup and read-only thereafter.
type Adapters struct {
	Text  map[string]text.Generator
	Image map[string]image.Generator
	Video map[string]video.Generator
}

// Defaults names the adapter used when a request carries no provider override.
type Defaults struct {
	Text  string
	Image string
	Video string
}

// Orchestrator routes a capability-tagged request to the matching adapter.
// It owns no state across calls beyond the adapter table.
type Orchestrator struct {
	adapters Adapters
	defaults Defaults
	logger   zerolog.Logger
}

// New validates the adapter table up front: every capability that has
// adapters must also have a resolvable default. Misconfiguration surfaces
// here, at startup, not on the first request.
func New(adapters Adapters, defaults Defaults, logger zerolog.Logger) (*Orchestrator, error) {
	if len(adapters.Text) == 0 && len(adapters.Image) == 0 && len(adapters.Video) == 0 {
		return nil, domain.NewConfigurationError("", "no generation adapters configured")
	}
	if len(adapters.Text) > 0 {
		if _, ok := adapters.Text[defaults.Text]; !ok {
			return nil, domain.NewConfigurationError("", fmt.Sprintf("default text provider %q not configured", defaults.Text))
		}
	}
	if len(adapters.Image) > 0 {
		if _, ok := adapters.Image[defaults.Image]; !ok {
			return nil, domain.NewConfigurationError("", fmt.Sprintf("default image provider %q not configured", defaults.Image))
		}
	}
	if len(adapters.Video) > 0 {
		if _, ok := adapters.Video[defaults.Video]; !ok {
			return nil, domain.NewConfigurationError("", fmt.Sprintf("default video provider %q not configured", defaults.Video))
		}
	}
	return &Orchestrator{adapters: adapters, defaults: defaults, logger: logger}, nil
}

// Supports reports whether any adapter serves the capability.
func (o *Orchestrator) Supports(capability Capability) bool {
	switch capability {
	case CapabilityText:
		return len(o.adapters.Text) > 0
	case CapabilityImage:
		return len(o.adapters.Image) > 0
	case CapabilityVideo:
		return len(o.adapters.Video) > 0
	default:
		return false
	}
}

// Generate applies defaults, selects the adapter, delegates, and returns the
// adapter's result unmodified apart from uniform logging.
func (o *Orchestrator) Generate(ctx context.Context, req Request) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, domain.NewValidationError("prompt is required")
	}
	start := time.Now()
	res, err := o.dispatch(ctx, req)
	event := o.logger.Info()
	if err != nil {
		event = o.logger.Error().Err(err)
	}
	event.
		Str("capability", string(req.Capability)).
		Str("request_id", req.RequestID).
		Dur("elapsed", time.Since(start)).
		Msg("generation dispatched")
	return res, err
}

func (o *Orchestrator) dispatch(ctx context.Context, req Request) (*Result, error) {
	switch req.Capability {
	case CapabilityText:
		adapter, name, err := pick(o.adapters.Text, req.Provider, o.defaults.Text, req.Capability)
		if err != nil {
			return nil, err
		}
		out, err := adapter.GenerateText(ctx, req.Prompt, req.Options.MaxTokens, req.Options.Temperature)
		if err != nil {
			return nil, err
		}
		return &Result{Text: out.Text, Provider: name, Model: out.Model, Usage: out.Usage}, nil
	case CapabilityImage:
		adapter, name, err := pick(o.adapters.Image, req.Provider, o.defaults.Image, req.Capability)
		if err != nil {
			return nil, err
		}
		out, err := adapter.Generate(ctx, image.GenerateRequest{
			Prompt:    req.Prompt,
			Size:      req.Options.Size,
			Style:     req.Options.Style,
			RequestID: req.RequestID,
		})
		if err != nil {
			return nil, err
		}
		return &Result{AssetURL: out.URL, Provider: name, Model: out.Model, Width: out.Width, Height: out.Height}, nil
	case CapabilityVideo:
		adapter, name, err := pick(o.adapters.Video, req.Provider, o.defaults.Video, req.Capability)
		if err != nil {
			return nil, err
		}
		out, err := adapter.Generate(ctx, video.GenerateRequest{
			Prompt:    req.Prompt,
			Ratio:     req.Options.Ratio,
			Seconds:   req.Options.Seconds,
			RequestID: req.RequestID,
		})
		if err != nil {
			return nil, err
		}
		return &Result{AssetURL: out.URL, Provider: name, Model: out.Model, Seconds: out.Seconds}, nil
	default:
		return nil, domain.NewValidationError("unknown capability " + string(req.Capability))
	}
}

func pick[T any](table map[string]T, override, fallback string, capability Capability) (T, string, error) {
	name := strings.TrimSpace(strings.ToLower(override))
	if name == "" {
		name = fallback
	}
	adapter, ok := table[name]
	if !ok {
		var zero T
		return zero, "", domain.NewValidationError(fmt.Sprintf("provider %q not configured for capability %q", name, capability))
	}
	return adapter, name, nil
}
