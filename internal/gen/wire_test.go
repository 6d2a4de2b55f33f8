package gen

import (
	"errors"
	"testing"

	"adcraft/internal/domain"
)

func TestBuildRequiresAtLeastOneKey(t *testing.T) {
	_, err := Build(ProviderConfig{})
	if !domain.IsKind(err, domain.KindConfiguration) {
		t.Fatalf("error = %v, want configuration error", err)
	}
}

func TestBuildSingleImageKeyResolvesDefault(t *testing.T) {
	o, err := Build(ProviderConfig{
		ReplicateKey:  "r8-test",
		ImageProvider: "openai",
	})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	if !o.Supports(CapabilityImage) {
		t.Fatal("image should be supported")
	}
	if o.Supports(CapabilityText) || o.Supports(CapabilityVideo) {
		t.Fatal("only image adapters should be configured")
	}
}

func TestBuildFullStack(t *testing.T) {
	o, err := Build(ProviderConfig{
		OpenAIKey:     "sk-test",
		ReplicateKey:  "r8-test",
		RunwayKey:     "rw-test",
		ImageProvider: "replicate",
	})
	if err != nil {
		t.Fatalf("Build error: %v", err)
	}
	for _, c := range []Capability{CapabilityText, CapabilityImage, CapabilityVideo} {
		if !o.Supports(c) {
			t.Fatalf("capability %q should be supported", c)
		}
	}
}

func TestResolveKeyPrefersEnvValue(t *testing.T) {
	key, err := ResolveKey("sk-env", func() (string, error) {
		t.Fatal("lookup should not run when env value is set")
		return "", nil
	})
	if err != nil || key != "sk-env" {
		t.Fatalf("ResolveKey = %q, %v", key, err)
	}
}

func TestResolveKeyFallsBackToLookup(t *testing.T) {
	key, err := ResolveKey("", func() (string, error) { return "sk-store", nil })
	if err != nil || key != "sk-store" {
		t.Fatalf("ResolveKey = %q, %v", key, err)
	}
}

func TestResolveKeyLookupError(t *testing.T) {
	_, err := ResolveKey("", func() (string, error) { return "", errors.New("db down") })
	if err == nil {
		t.Fatal("expected lookup error")
	}
	if !errors.Is(err, domain.ErrProviderFailure) {
		t.Fatalf("error = %v, want ErrProviderFailure", err)
	}
}
