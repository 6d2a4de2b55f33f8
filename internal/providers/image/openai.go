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

const openAIProviderName = "openai"

const openAIDefaultTimeout = 60 * time.Second

const defaultOpenAIImageModel = "dall-e-3"

// OpenAIOptions configures the DALL-E image adapter.
type OpenAIOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// OpenAIGenerator produces ad images through the images API.
type OpenAIGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

type openAIImageRequest struct {
	Model          string `json:"model"`
	Prompt         string `json:"prompt"`
	N              int    `json:"n"`
	Size           string `json:"size"`
	Style          string `json:"style,omitempty"`
	ResponseFormat string `json:"response_format"`
}

type openAIImageResponse struct {
	Data []struct {
		URL string `json:"url"`
	} `json:"data"`
}

func NewOpenAIGenerator(opts OpenAIOptions) (*OpenAIGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.NewConfigurationError(openAIProviderName, "api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIImageModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &OpenAIGenerator{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}, nil
}

// Model returns the configured model identifier.
func (g *OpenAIGenerator) Model() string {
	return g.model
}

func (g *OpenAIGenerator) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, domain.NewValidationError("prompt is required")
	}
	size, err := NormalizeSize(req.Size)
	if err != nil {
		return nil, err
	}
	payload := openAIImageRequest{
		Model:          g.model,
		Prompt:         req.Prompt,
		N:              1,
		Size:           size,
		Style:          strings.TrimSpace(req.Style),
		ResponseFormat: "url",
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, g.fail(0, fmt.Errorf("encode request: %w", err))
	}
	endpoint := fmt.Sprintf("%s/images/generations", g.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, g.fail(0, fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+g.apiKey)
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
	var out openAIImageResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, g.fail(0, fmt.Errorf("decode response: %w", err))
	}
	if len(out.Data) == 0 || strings.TrimSpace(out.Data[0].URL) == "" {
		return nil, g.fail(0, errors.New("no image returned"))
	}
	width, height := SizeDimensions(size)
	return &Result{
		URL:    out.Data[0].URL,
		Model:  g.model,
		Width:  width,
		Height: height,
	}, nil
}

func (g *OpenAIGenerator) fail(status int, err error) error {
	g.logger.Error().Err(err).Str("provider", openAIProviderName).Int("status", status).Msg("image generation failed")
	return domain.NewProviderError(openAIProviderName, status, err)
}

var _ Generator = (*OpenAIGenerator)(nil)
