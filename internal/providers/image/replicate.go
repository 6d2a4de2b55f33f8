package image

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"adcraft/internal/domain"
)

const replicateProviderName = "replicate"

const replicateDefaultTimeout = 120 * time.Second

const defaultReplicateModel = "black-forest-labs/flux-schnell"

// ReplicateOptions configures the Replicate image adapter.
type ReplicateOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// ReplicateGenerator runs hosted diffusion models via the predictions API.
// The Prefer: wait header keeps the call synchronous, matching the
// single-attempt contract of the other adapters.
type ReplicateGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

type replicatePredictionRequest struct {
	Input map[string]any `json:"input"`
}

type replicatePredictionResponse struct {
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

func NewReplicateGenerator(opts ReplicateOptions) (*ReplicateGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.NewConfigurationError(replicateProviderName, "api token is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.replicate.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultReplicateModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: replicateDefaultTimeout}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &ReplicateGenerator{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}, nil
}

// Model returns the configured model identifier.
func (g *ReplicateGenerator) Model() string {
	return g.model
}

func (g *ReplicateGenerator) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, domain.NewValidationError("prompt is required")
	}
	size, err := NormalizeSize(req.Size)
	if err != nil {
		return nil, err
	}
	width, height := SizeDimensions(size)
	payload := replicatePredictionRequest{
		Input: map[string]any{
			"prompt": req.Prompt,
			"width":  width,
			"height": height,
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, g.fail(0, fmt.Errorf("encode request: %w", err))
	}
	endpoint := fmt.Sprintf("%s/models/%s/predictions", g.baseURL, g.model)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, g.fail(0, fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
	httpReq.Header.Set("Prefer", "wait")
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return nil, g.fail(0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, g.fail(resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))))
	}
	var out replicatePredictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, g.fail(0, fmt.Errorf("decode response: %w", err))
	}
	if out.Error != "" {
		return nil, g.fail(0, errors.New(out.Error))
	}
	url := firstOutputURL(out.Output)
	if url == "" {
		return nil, g.fail(0, fmt.Errorf("no output for status %q", out.Status))
	}
	return &Result{
		URL:    url,
		Model:  g.model,
		Width:  width,
		Height: height,
	}, nil
}

// firstOutputURL handles the two shapes Replicate returns: a bare string or a
// list of strings.
func firstOutputURL(raw json.RawMessage) string {
	if len(raw) == 0 {
		return ""
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return strings.TrimSpace(single)
	}
	var many []string
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return strings.TrimSpace(many[0])
	}
	return ""
}

func (g *ReplicateGenerator) fail(status int, err error) error {
	g.logger.Error().Err(err).Str("provider", replicateProviderName).Int("status", status).Msg("image generation failed")
	return domain.NewProviderError(replicateProviderName, status, err)
}

var _ Generator = (*ReplicateGenerator)(nil)
