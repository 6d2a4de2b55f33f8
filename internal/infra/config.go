package infra

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Config represents application configuration loaded from environment variables.
// It is built once at startup and passed by reference; business logic never
// reads the environment directly.
type Config struct {
	AppEnv           string
	Port             string
	DatabaseURL      string
	JWTSecret        string
	StoragePath      string
	AssetBaseURL     string
	GeoIPDBPath      string
	OpenAIAPIKey     string
	OpenAIModel      string
	OpenAIImageModel string
	OpenAIBaseURL    string
	OpenAIOrg        string
	ReplicateAPIKey  string
	ReplicateModel   string
	ReplicateBaseURL string
	RunwayAPIKey     string
	RunwayModel      string
	RunwayBaseURL    string
	ImageProvider    string
	UploadMaxBytes   int64
	HTTPReadTimeout  time.Duration
	HTTPWriteTimeout time.Duration
	HTTPIdleTimeout  time.Duration
	RateLimitPerMin  int
}

// LoadConfig loads configuration from environment variables and applies defaults where needed.
func LoadConfig() (*Config, error) {
	cfg := &Config{
		AppEnv:           getEnv("APP_ENV", "development"),
		Port:             getEnv("PORT", "8080"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		StoragePath:      getEnv("STORAGE_PATH", "./storage"),
		AssetBaseURL:     getEnv("ASSET_BASE_URL", "http://localhost:8080/static"),
		GeoIPDBPath:      os.Getenv("GEOIP_DB_PATH"),
		OpenAIAPIKey:     os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:      getEnv("OPENAI_MODEL", "gpt-4o-mini"),
		OpenAIImageModel: getEnv("OPENAI_IMAGE_MODEL", "dall-e-3"),
		OpenAIBaseURL:    getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		OpenAIOrg:        os.Getenv("OPENAI_ORG"),
		ReplicateAPIKey:  os.Getenv("REPLICATE_API_TOKEN"),
		ReplicateModel:   getEnv("REPLICATE_MODEL", "black-forest-labs/flux-schnell"),
		ReplicateBaseURL: getEnv("REPLICATE_BASE_URL", "https://api.replicate.com/v1"),
		RunwayAPIKey:     os.Getenv("RUNWAY_API_KEY"),
		RunwayModel:      getEnv("RUNWAY_MODEL", "gen3a_turbo"),
		RunwayBaseURL:    getEnv("RUNWAY_BASE_URL", "https://api.dev.runwayml.com/v1"),
		ImageProvider:    getEnv("IMAGE_PROVIDER", "openai"),
		UploadMaxBytes:   int64(getEnvInt("UPLOAD_MAX_BYTES", 5*1024*1024)),
		HTTPReadTimeout:  time.Second * time.Duration(getEnvInt("HTTP_READ_TIMEOUT_SECONDS", 15)),
		HTTPWriteTimeout: time.Second * time.Duration(getEnvInt("HTTP_WRITE_TIMEOUT_SECONDS", 30)),
		HTTPIdleTimeout:  time.Second * time.Duration(getEnvInt("HTTP_IDLE_TIMEOUT_SECONDS", 60)),
		RateLimitPerMin:  getEnvInt("RATE_LIMIT_PER_MINUTE", 30),
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
