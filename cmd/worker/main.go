package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"adcraft/internal/gen"
	"adcraft/internal/infra"
	"adcraft/internal/infra/credentials"
	"adcraft/internal/sqlinline"
	"adcraft/internal/storage"
)

const jobPollInterval = 2 * time.Second

type job struct {
	ID         string
	UserID     string
	AdID       *string
	Capability string
	Provider   string
	Prompt     json.RawMessage
}

type promptPayload struct {
	Prompt  string `json:"prompt"`
	Options struct {
		MaxTokens   int     `json:"max_tokens"`
		Temperature float64 `json:"temperature"`
		Size        string  `json:"size"`
		Style       string  `json:"style"`
		Ratio       string  `json:"ratio"`
		Seconds     int     `json:"seconds"`
	} `json:"options"`
}

type jobWorker struct {
	ctx          context.Context
	runner       *infra.SQLRunner
	logger       infra.Logger
	orchestrator *gen.Orchestrator
	store        *storage.FileStore
	downloader   *http.Client
}

var errNoJobAvailable = errors.New("no job available")

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: db connection failed")
	}
	defer pool.Close()

	runner := infra.NewSQLRunner(pool, logger)

	storagePath := cfg.StoragePath
	if !filepath.IsAbs(storagePath) {
		if abs, err := filepath.Abs(storagePath); err == nil {
			storagePath = abs
		}
	}
	fileStore, err := storage.NewFileStore(storagePath)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure storage")
	}

	orchestrator, err := buildOrchestrator(ctx, cfg, credentials.NewStore(runner), &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: failed to configure generation adapters")
	}

	worker := &jobWorker{
		ctx:          ctx,
		runner:       runner,
		logger:       logger,
		orchestrator: orchestrator,
		store:        fileStore,
		downloader:   &http.Client{Timeout: 120 * time.Second},
	}

	if err := worker.Run(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Fatal().Err(err).Msg("worker: stopped with error")
	}
	logger.Info().Msg("worker: stopped")
}

func buildOrchestrator(ctx context.Context, cfg *infra.Config, creds *credentials.Store, logger *infra.Logger) (*gen.Orchestrator, error) {
	openAIKey, err := gen.ResolveKey(strings.TrimSpace(cfg.OpenAIAPIKey), func() (string, error) {
		return creds.Token(ctx, credentials.ProviderOpenAI)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("worker: failed to load openai key from store")
	}
	replicateKey, err := gen.ResolveKey(strings.TrimSpace(cfg.ReplicateAPIKey), func() (string, error) {
		return creds.Token(ctx, credentials.ProviderReplicate)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("worker: failed to load replicate key from store")
	}
	runwayKey, err := gen.ResolveKey(strings.TrimSpace(cfg.RunwayAPIKey), func() (string, error) {
		return creds.Token(ctx, credentials.ProviderRunway)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("worker: failed to load runway key from store")
	}

	return gen.Build(gen.ProviderConfig{
		OpenAIKey:        openAIKey,
		OpenAIModel:      cfg.OpenAIModel,
		OpenAIImageModel: cfg.OpenAIImageModel,
		OpenAIBaseURL:    cfg.OpenAIBaseURL,
		OpenAIOrg:        cfg.OpenAIOrg,
		ReplicateKey:     replicateKey,
		ReplicateModel:   cfg.ReplicateModel,
		ReplicateBaseURL: cfg.ReplicateBaseURL,
		RunwayKey:        runwayKey,
		RunwayModel:      cfg.RunwayModel,
		RunwayBaseURL:    cfg.RunwayBaseURL,
		ImageProvider:    cfg.ImageProvider,
		Logger:           logger,
	})
}

func (w *jobWorker) Run() error {
	w.logger.Info().Msg("worker: started")
	for {
		select {
		case <-w.ctx.Done():
			return w.ctx.Err()
		default:
		}

		j, err := w.claimJob()
		if err != nil {
			if errors.Is(err, errNoJobAvailable) {
				time.Sleep(jobPollInterval)
				continue
			}
			w.logger.Error().Err(err).Msg("worker: failed to claim job")
			time.Sleep(jobPollInterval)
			continue
		}

		w.handleJob(j)
	}
}

func (w *jobWorker) claimJob() (job, error) {
	row := w.runner.QueryRow(w.ctx, sqlinline.QWorkerClaimJob)
	var j job
	if err := row.Scan(&j.ID, &j.UserID, &j.AdID, &j.Capability, &j.Provider, &j.Prompt); err != nil {
		if infra.IsNoRows(err) {
			return job{}, errNoJobAvailable
		}
		return job{}, err
	}
	// Ensure prompt bytes are not aliased.
	j.Prompt = append(json.RawMessage(nil), j.Prompt...)
	return j, nil
}

func (w *jobWorker) handleJob(j job) {
	w.logger.Info().Str("job_id", j.ID).Str("capability", j.Capability).Msg("worker: picked job")
	result, err := w.process(j)
	if err != nil {
		w.logger.Error().Err(err).Str("job_id", j.ID).Msg("worker: job failed")
		if _, execErr := w.runner.Exec(w.ctx, sqlinline.QWorkerFailJob, j.ID, err.Error()); execErr != nil {
			w.logger.Error().Err(execErr).Str("job_id", j.ID).Msg("worker: mark failed errored")
		}
		return
	}
	raw, err := json.Marshal(result)
	if err != nil {
		raw = []byte(`{}`)
	}
	if _, execErr := w.runner.Exec(w.ctx, sqlinline.QWorkerCompleteJob, j.ID, raw); execErr != nil {
		w.logger.Error().Err(execErr).Str("job_id", j.ID).Msg("worker: mark succeeded errored")
	}
}

func (w *jobWorker) process(j job) (map[string]any, error) {
	capability, err := gen.ParseCapability(j.Capability)
	if err != nil {
		return nil, err
	}
	var payload promptPayload
	if len(j.Prompt) > 0 {
		if err := json.Unmarshal(j.Prompt, &payload); err != nil {
			return nil, fmt.Errorf("decode prompt payload: %w", err)
		}
	}

	res, err := w.orchestrator.Generate(w.ctx, gen.Request{
		Capability: capability,
		Prompt:     payload.Prompt,
		Provider:   j.Provider,
		RequestID:  j.ID,
		Options: gen.Options{
			MaxTokens:   payload.Options.MaxTokens,
			Temperature: payload.Options.Temperature,
			Size:        payload.Options.Size,
			Style:       payload.Options.Style,
			Ratio:       payload.Options.Ratio,
			Seconds:     payload.Options.Seconds,
		},
	})
	if err != nil {
		return nil, err
	}

	result := map[string]any{
		"provider": res.Provider,
		"model":    res.Model,
	}
	if res.Text != "" {
		result["text"] = res.Text
	}
	if len(res.Usage) > 0 {
		result["usage"] = res.Usage
	}
	if res.AssetURL != "" {
		storageKey, size, mime, err := w.persistAsset(j, capability, res)
		if err != nil {
			return nil, err
		}
		result["storage_key"] = storageKey
		result["mime"] = mime
		result["bytes"] = size
		if _, execErr := w.runner.Exec(
			w.ctx,
			sqlinline.QInsertAsset,
			j.UserID,
			j.ID,
			storageKey,
			mime,
			size,
			res.Width,
			res.Height,
		); execErr != nil {
			w.logger.Error().Err(execErr).Str("job_id", j.ID).Msg("worker: insert asset failed")
		}
	}
	return result, nil
}

// persistAsset downloads the provider-hosted asset and stores it locally so
// results remain available after the provider URL expires.
func (w *jobWorker) persistAsset(j job, capability gen.Capability, res *gen.Result) (string, int64, string, error) {
	data, err := w.download(res.AssetURL)
	if err != nil {
		return "", 0, "", fmt.Errorf("download asset: %w", err)
	}
	mime := mimeForCapability(capability)
	key := fmt.Sprintf("generated/%s/%s%s", j.ID, res.Provider, extensionForMIME(mime))
	savedKey, err := w.store.Write(w.ctx, key, data)
	if err != nil {
		return "", 0, "", fmt.Errorf("persist asset: %w", err)
	}
	return savedKey, int64(len(data)), mime, nil
}

func (w *jobWorker) download(url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(w.ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := w.downloader.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status %d fetching asset", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

func mimeForCapability(capability gen.Capability) string {
	switch capability {
	case gen.CapabilityVideo:
		return "video/mp4"
	default:
		return "image/png"
	}
}

func extensionForMIME(mime string) string {
	switch strings.ToLower(strings.TrimSpace(mime)) {
	case "image/png":
		return ".png"
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "video/mp4":
		return ".mp4"
	default:
		return ".bin"
	}
}
