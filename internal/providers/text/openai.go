package text

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

const openAIDefaultTimeout = 30 * time.Second

const defaultOpenAIModel = "gpt-4o-mini"

// OpenAIOptions configures the OpenAI text adapter. APIKey is mandatory.
type OpenAIOptions struct {
	APIKey       string
	Model        string
	BaseURL      string
	Organization string
	HTTPClient   *http.Client
	Logger       *zerolog.Logger
}

// OpenAI generates ad copy through the chat completions API. The client
// handle is configured once and reused; the adapter holds no other state.
type OpenAI struct {
	apiKey       string
	model        string
	baseURL      string
	organization string
	client       *http.Client
	logger       zerolog.Logger
}

type openAIChatRequest struct {
	Model       string          `json:"model"`
	Messages    []openAIMessage `json:"messages"`
	MaxTokens   int             `json:"max_tokens,omitempty"`
	Temperature float64         `json:"temperature"`
}

type openAIMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openAIChatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// NewOpenAI fails fast when no API key is configured; no network call is
// attempted before the first generation request.
func NewOpenAI(opts OpenAIOptions) (*OpenAI, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.NewConfigurationError(openAIProviderName, "api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultOpenAIModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: openAIDefaultTimeout}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &OpenAI{
		apiKey:       strings.TrimSpace(opts.APIKey),
		model:        model,
		baseURL:      baseURL,
		organization: strings.TrimSpace(opts.Organization),
		client:       client,
		logger:       logger,
	}, nil
}

// Model returns the configured model identifier.
func (o *OpenAI) Model() string {
	return o.model
}

// GenerateText produces ad copy for the prompt. A single best-effort attempt:
// vendor failures are logged with provider context and returned as a
// provider-prefixed AdaptError. Retries, if any, belong to the caller.
func (o *OpenAI) GenerateText(ctx context.Context, prompt string, maxTokens int, temperature float64) (*Result, error) {
	if strings.TrimSpace(prompt) == "" {
		return nil, domain.NewValidationError("prompt is required")
	}
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}
	if temperature <= 0 || temperature > 1 {
		temperature = DefaultTemperature
	}
	payload := openAIChatRequest{
		Model:       o.model,
		MaxTokens:   maxTokens,
		Temperature: temperature,
		Messages: []openAIMessage{
			{Role: "system", Content: "You are a copywriter producing concise Facebook ad copy."},
			{Role: "user", Content: prompt},
		},
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return nil, o.fail(0, fmt.Errorf("encode request: %w", err))
	}
	endpoint := fmt.Sprintf("%s/chat/completions", o.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return nil, o.fail(0, fmt.Errorf("build request: %w", err))
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+o.apiKey)
	if o.organization != "" {
		httpReq.Header.Set("OpenAI-Organization", o.organization)
	}
	resp, err := o.client.Do(httpReq)
	if err != nil {
		return nil, o.fail(0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, o.fail(resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))))
	}
	var out openAIChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, o.fail(0, fmt.Errorf("decode response: %w", err))
	}
	if len(out.Choices) == 0 {
		return nil, o.fail(0, errors.New("no choices returned"))
	}
	content := strings.TrimSpace(out.Choices[0].Message.Content)
	if content == "" {
		return nil, o.fail(0, errors.New("empty completion"))
	}
	return &Result{
		Text:  content,
		Model: o.model,
		Usage: map[string]int{
			"prompt_tokens":     out.Usage.PromptTokens,
			"completion_tokens": out.Usage.CompletionTokens,
			"total_tokens":      out.Usage.TotalTokens,
		},
	}, nil
}

func (o *OpenAI) fail(status int, err error) error {
	o.logger.Error().Err(err).Str("provider", openAIProviderName).Int("status", status).Msg("text generation failed")
	return domain.NewProviderError(openAIProviderName, status, err)
}

var _ Generator = (*OpenAI)(nil)
