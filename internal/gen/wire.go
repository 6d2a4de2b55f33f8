package gen

import (
	"fmt"

	"github.com/rs/zerolog"

	"adcraft/internal/domain"
	"adcraft/internal/providers/image"
	"adcraft/internal/providers/text"
	"adcraft/internal/providers/video"
)

// ProviderConfig carries the credentials and model names resolved at startup.
// Adapters are only constructed for providers that have a key.
type ProviderConfig struct {
	OpenAIKey        string
	OpenAIModel      string
	OpenAIImageModel string
	OpenAIBaseURL    string
	OpenAIOrg        string
	ReplicateKey     string
	ReplicateModel   string
	ReplicateBaseURL string
	RunwayKey        string
	RunwayModel      string
	RunwayBaseURL    string
	ImageProvider    string
	Logger           *zerolog.Logger
}

// Build wires the configured adapters into an orchestrator.
func Build(cfg ProviderConfig) (*Orchestrator, error) {
	adapters := Adapters{
		Text:  map[string]text.Generator{},
		Image: map[string]image.Generator{},
		Video: map[string]video.Generator{},
	}

	if cfg.OpenAIKey != "" {
		textGen, err := text.NewOpenAI(text.OpenAIOptions{
			APIKey:       cfg.OpenAIKey,
			Model:        cfg.OpenAIModel,
			BaseURL:      cfg.OpenAIBaseURL,
			Organization: cfg.OpenAIOrg,
			Logger:       cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		adapters.Text["openai"] = textGen

		imageGen, err := image.NewOpenAIGenerator(image.OpenAIOptions{
			APIKey:  cfg.OpenAIKey,
			Model:   cfg.OpenAIImageModel,
			BaseURL: cfg.OpenAIBaseURL,
			Logger:  cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		adapters.Image["openai"] = imageGen
	}

	if cfg.ReplicateKey != "" {
		replicateGen, err := image.NewReplicateGenerator(image.ReplicateOptions{
			APIKey:  cfg.ReplicateKey,
			Model:   cfg.ReplicateModel,
			BaseURL: cfg.ReplicateBaseURL,
			Logger:  cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		adapters.Image["replicate"] = replicateGen
	}

	if cfg.RunwayKey != "" {
		runwayGen, err := video.NewRunwayGenerator(video.RunwayOptions{
			APIKey:  cfg.RunwayKey,
			Model:   cfg.RunwayModel,
			BaseURL: cfg.RunwayBaseURL,
			Logger:  cfg.Logger,
		})
		if err != nil {
			return nil, err
		}
		adapters.Video["runway"] = runwayGen
	}

	defaults := Defaults{
		Text:  resolveDefault(keys(adapters.Text), "openai"),
		Image: resolveDefault(keys(adapters.Image), cfg.ImageProvider),
		Video: resolveDefault(keys(adapters.Video), "runway"),
	}

	logger := zerolog.Nop()
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	return New(adapters, defaults, logger)
}

// resolveDefault keeps the preferred name when it is configured; with exactly
// one adapter it falls back to that adapter so a single-key setup works
// without naming a default.
func resolveDefault(names []string, preferred string) string {
	for _, name := range names {
		if name == preferred {
			return preferred
		}
	}
	if len(names) == 1 {
		return names[0]
	}
	return preferred
}

func keys[T any](m map[string]T) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}

// ResolveKey prefers the explicit configuration value and otherwise consults
// the fallback lookup (typically the DB credential store).
func ResolveKey(envValue string, lookup func() (string, error)) (string, error) {
	if envValue != "" {
		return envValue, nil
	}
	if lookup == nil {
		return "", nil
	}
	key, err := lookup()
	if err != nil {
		return "", fmt.Errorf("%w: %s", domain.ErrProviderFailure, err)
	}
	return key, nil
}
