package video

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

const runwayProviderName = "runway"

const (
	runwayDefaultTimeout = 30 * time.Second
	runwayPollInterval   = 5 * time.Second
	runwayAPIVersion     = "2024-11-06"
)

const (
	defaultRunwayModel   = "gen3a_turbo"
	defaultRunwayRatio   = "1280:768"
	defaultRunwaySeconds = 5
)

// RunwayOptions configures the Runway video adapter.
type RunwayOptions struct {
	APIKey     string
	Model      string
	BaseURL    string
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// RunwayGenerator creates a generation task and polls it to a terminal state.
// Polling is bounded by the caller's context; each HTTP round trip is bounded
// by the client timeout.
type RunwayGenerator struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
	logger  zerolog.Logger
}

type runwayTaskRequest struct {
	Model      string `json:"model"`
	PromptText string `json:"promptText"`
	Ratio      string `json:"ratio"`
	Duration   int    `json:"duration"`
}

type runwayTaskResponse struct {
	ID      string   `json:"id"`
	Status  string   `json:"status"`
	Output  []string `json:"output"`
	Failure string   `json:"failure"`
}

func NewRunwayGenerator(opts RunwayOptions) (*RunwayGenerator, error) {
	if strings.TrimSpace(opts.APIKey) == "" {
		return nil, domain.NewConfigurationError(runwayProviderName, "api key is required")
	}
	baseURL := strings.TrimRight(opts.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.dev.runwayml.com/v1"
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = defaultRunwayModel
	}
	client := opts.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: runwayDefaultTimeout}
	}
	logger := zerolog.Nop()
	if opts.Logger != nil {
		logger = *opts.Logger
	}
	return &RunwayGenerator{
		apiKey:  strings.TrimSpace(opts.APIKey),
		model:   model,
		baseURL: baseURL,
		client:  client,
		logger:  logger,
	}, nil
}

// Model returns the configured model identifier.
func (g *RunwayGenerator) Model() string {
	return g.model
}

func (g *RunwayGenerator) Generate(ctx context.Context, req GenerateRequest) (*Result, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, domain.NewValidationError("prompt is required")
	}
	ratio := strings.TrimSpace(req.Ratio)
	if ratio == "" {
		ratio = defaultRunwayRatio
	}
	seconds := req.Seconds
	if seconds <= 0 {
		seconds = defaultRunwaySeconds
	}
	taskID, err := g.createTask(ctx, req.Prompt, ratio, seconds)
	if err != nil {
		return nil, err
	}
	url, err := g.awaitTask(ctx, taskID)
	if err != nil {
		return nil, err
	}
	return &Result{URL: url, Model: g.model, Seconds: seconds}, nil
}

func (g *RunwayGenerator) createTask(ctx context.Context, prompt, ratio string, seconds int) (string, error) {
	payload := runwayTaskRequest{
		Model:      g.model,
		PromptText: prompt,
		Ratio:      ratio,
		Duration:   seconds,
	}
	var buf bytes.Buffer
	if err := json.NewEncoder(&buf).Encode(payload); err != nil {
		return "", g.fail(0, fmt.Errorf("encode request: %w", err))
	}
	endpoint := fmt.Sprintf("%s/text_to_video", g.baseURL)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, &buf)
	if err != nil {
		return "", g.fail(0, fmt.Errorf("build request: %w", err))
	}
	g.setHeaders(httpReq)
	resp, err := g.client.Do(httpReq)
	if err != nil {
		return "", g.fail(0, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if resp.StatusCode >= 300 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", g.fail(resp.StatusCode, fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(detail))))
	}
	var out runwayTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", g.fail(0, fmt.Errorf("decode response: %w", err))
	}
	if out.ID == "" {
		return "", g.fail(0, errors.New("no task id returned"))
	}
	return out.ID, nil
}

func (g *RunwayGenerator) awaitTask(ctx context.Context, taskID string) (string, error) {
	ticker := time.NewTicker(runwayPollInterval)
	defer ticker.Stop()
	for {
		task, err := g.fetchTask(ctx, taskID)
		if err != nil {
			return "", err
		}
		switch task.Status {
		case "SUCCEEDED":
			if len(task.Output) == 0 || strings.TrimSpace(task.Output[0]) == "" {
				return "", g.fail(0, errors.New("task succeeded without output"))
			}
			return task.Output[0], nil
		case "FAILED":
			detail := task.Failure
			if detail == "" {
				detail = "task failed"
			}
			return "", g.fail(0, errors.New(detail))
		}
		select {
		case <-ctx.Done():
			return "", g.fail(0, ctx.Err())
		case <-ticker.C:
		}
	}
}

func (g *RunwayGenerator) fetchTask(ctx context.Context, taskID string) (*runwayTaskResponse, error) {
	endpoint := fmt.Sprintf("%s/tasks/%s", g.baseURL, taskID)
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, g.fail(0, fmt.Errorf("build request: %w", err))
	}
	g.setHeaders(httpReq)
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
	var out runwayTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, g.fail(0, fmt.Errorf("decode response: %w", err))
	}
	return &out, nil
}

func (g *RunwayGenerator) setHeaders(req *http.Request) {
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)
	req.Header.Set("X-Runway-Version", runwayAPIVersion)
}

func (g *RunwayGenerator) fail(status int, err error) error {
	g.logger.Error().Err(err).Str("provider", runwayProviderName).Int("status", status).Msg("video generation failed")
	return domain.NewProviderError(runwayProviderName, status, err)
}

var _ Generator = (*RunwayGenerator)(nil)
