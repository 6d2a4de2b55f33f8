package infra

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("PORT", "")
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("OPENAI_IMAGE_MODEL", "")
	t.Setenv("IMAGE_PROVIDER", "")
	t.Setenv("UPLOAD_MAX_BYTES", "")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.OpenAIModel != "gpt-4o-mini" {
		t.Fatalf("OpenAIModel = %q", cfg.OpenAIModel)
	}
	if cfg.OpenAIImageModel != "dall-e-3" {
		t.Fatalf("OpenAIImageModel = %q", cfg.OpenAIImageModel)
	}
	if cfg.ImageProvider != "openai" {
		t.Fatalf("ImageProvider = %q", cfg.ImageProvider)
	}
	if cfg.UploadMaxBytes != 5*1024*1024 {
		t.Fatalf("UploadMaxBytes = %d, want 5 MiB", cfg.UploadMaxBytes)
	}
	if cfg.HTTPReadTimeout != 15*time.Second {
		t.Fatalf("HTTPReadTimeout = %v", cfg.HTTPReadTimeout)
	}
}

func TestLoadConfigRequiresDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "test-secret")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing DATABASE_URL")
	}
}

func TestLoadConfigRequiresJWTSecret(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "")
	if _, err := LoadConfig(); err == nil {
		t.Fatal("expected error for missing JWT_SECRET")
	}
}

func TestLoadConfigHonorsOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("JWT_SECRET", "test-secret")
	t.Setenv("IMAGE_PROVIDER", "replicate")
	t.Setenv("UPLOAD_MAX_BYTES", "1048576")
	t.Setenv("RUNWAY_MODEL", "gen4_turbo")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.ImageProvider != "replicate" {
		t.Fatalf("ImageProvider = %q, want replicate", cfg.ImageProvider)
	}
	if cfg.UploadMaxBytes != 1048576 {
		t.Fatalf("UploadMaxBytes = %d, want 1048576", cfg.UploadMaxBytes)
	}
	if cfg.RunwayModel != "gen4_turbo" {
		t.Fatalf("RunwayModel = %q", cfg.RunwayModel)
	}
}
