package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"adcraft/internal/gen"
	"adcraft/internal/http/handlers"
	"adcraft/internal/http/httpapi"
	"adcraft/internal/infra"
	"adcraft/internal/infra/credentials"
	"adcraft/internal/infra/geoip"
	"adcraft/internal/middleware"
	"adcraft/internal/storage"
	"adcraft/internal/upload"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx := context.Background()
	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to connect database")
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
		logger.Fatal().Err(err).Msg("failed to configure storage")
	}

	orchestrator, err := buildOrchestrator(ctx, cfg, credentials.NewStore(runner), &logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to configure generation adapters")
	}

	var countryLookup middleware.CountryLookup
	resolver, err := geoip.NewResolver(cfg.GeoIPDBPath)
	if err != nil {
		logger.Warn().Err(err).Msg("geoip database unavailable, country detection disabled")
	} else if resolver != nil {
		countryLookup = resolver.CountryCode
	}

	app := &handlers.App{
		SQL:          runner,
		Logger:       logger,
		Orchestrator: orchestrator,
		Store:        fileStore,
		Uploads:      upload.NewValidator(cfg.UploadMaxBytes),
		JWTSecret:    cfg.JWTSecret,
		AssetBaseURL: cfg.AssetBaseURL,
	}

	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		AllowedOrigins:  []string{"*"},
		RateLimitPerMin: cfg.RateLimitPerMin,
		DefaultLocale:   "en",
		CountryLookup:   countryLookup,
	})

	server := infra.NewHTTPServer(cfg, router)

	go func() {
		logger.Info().Msgf("API listening on :%s", cfg.Port)
		if err := server.Start(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("http server failed")
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTPIdleTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("failed to shutdown server")
	}
	logger.Info().Msg("server stopped")
}

// buildOrchestrator resolves provider keys from the environment first and the
// credential store second, then wires the configured adapters.
func buildOrchestrator(ctx context.Context, cfg *infra.Config, creds *credentials.Store, logger *infra.Logger) (*gen.Orchestrator, error) {
	openAIKey, err := gen.ResolveKey(strings.TrimSpace(cfg.OpenAIAPIKey), func() (string, error) {
		return creds.Token(ctx, credentials.ProviderOpenAI)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load openai key from store")
	}
	replicateKey, err := gen.ResolveKey(strings.TrimSpace(cfg.ReplicateAPIKey), func() (string, error) {
		return creds.Token(ctx, credentials.ProviderReplicate)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load replicate key from store")
	}
	runwayKey, err := gen.ResolveKey(strings.TrimSpace(cfg.RunwayAPIKey), func() (string, error) {
		return creds.Token(ctx, credentials.ProviderRunway)
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to load runway key from store")
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
