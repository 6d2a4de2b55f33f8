package image

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"testing"

	"adcraft/internal/domain"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) {
	return f(r)
}

func jsonResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Header:     http.Header{"Content-Type": []string{"application/json"}},
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestNewOpenAIGeneratorRequiresKey(t *testing.T) {
	_, err := NewOpenAIGenerator(OpenAIOptions{})
	if err == nil {
		t.Fatal("expected configuration error for missing key")
	}
	if !domain.IsKind(err, domain.KindConfiguration) {
		t.Fatalf("error kind = %v, want configuration", err)
	}
}

func TestOpenAIGenerateImage(t *testing.T) {
	var captured openAIImageRequest
	gen, err := NewOpenAIGenerator(OpenAIOptions{
		APIKey: "sk-test",
		Model:  "dall-e",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if !strings.HasSuffix(r.URL.Path, "/images/generations") {
				t.Fatalf("path = %q, want images/generations", r.URL.Path)
			}
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			return jsonResponse(http.StatusOK, `{"data":[{"url":"https://cdn.example.com/shoe.png"}]}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("NewOpenAIGenerator error: %v", err)
	}
	res, err := gen.Generate(context.Background(), GenerateRequest{
		Prompt: "A red shoe on white background",
		Size:   "1024x1024",
	})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if captured.Prompt != "A red shoe on white background" {
		t.Fatalf("prompt = %q", captured.Prompt)
	}
	if captured.Size != "1024x1024" {
		t.Fatalf("size = %q, want 1024x1024", captured.Size)
	}
	if captured.Model != "dall-e" {
		t.Fatalf("model = %q, want configured model", captured.Model)
	}
	if res.URL != "https://cdn.example.com/shoe.png" {
		t.Fatalf("url = %q", res.URL)
	}
	if res.Width != 1024 || res.Height != 1024 {
		t.Fatalf("dimensions = %dx%d, want 1024x1024", res.Width, res.Height)
	}
}

func TestOpenAIGenerateDefaultsSize(t *testing.T) {
	var captured openAIImageRequest
	gen, err := NewOpenAIGenerator(OpenAIOptions{
		APIKey: "sk-test",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
				t.Fatalf("decode request: %v", err)
			}
			return jsonResponse(http.StatusOK, `{"data":[{"url":"https://cdn.example.com/a.png"}]}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("NewOpenAIGenerator error: %v", err)
	}
	if _, err := gen.Generate(context.Background(), GenerateRequest{Prompt: "hello"}); err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if captured.Size != DefaultSize {
		t.Fatalf("size = %q, want default %q", captured.Size, DefaultSize)
	}
}

func TestOpenAIGenerateRejectsUnknownSize(t *testing.T) {
	gen, err := NewOpenAIGenerator(OpenAIOptions{APIKey: "sk-test"})
	if err != nil {
		t.Fatalf("NewOpenAIGenerator error: %v", err)
	}
	_, err = gen.Generate(context.Background(), GenerateRequest{Prompt: "hello", Size: "999x999"})
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("error = %v, want validation error", err)
	}
}

func TestOpenAIGenerateUpstreamFailure(t *testing.T) {
	gen, err := NewOpenAIGenerator(OpenAIOptions{
		APIKey: "sk-test",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusBadRequest, `{"error":{"message":"content policy violation"}}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("NewOpenAIGenerator error: %v", err)
	}
	_, err = gen.Generate(context.Background(), GenerateRequest{Prompt: "hello"})
	if !domain.IsKind(err, domain.KindProvider) {
		t.Fatalf("error = %v, want provider error", err)
	}
	if !strings.HasPrefix(err.Error(), "openai:") {
		t.Fatalf("error = %q, want openai prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "content policy violation") {
		t.Fatalf("error = %q, want upstream detail", err.Error())
	}
}

func TestNormalizeSize(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "empty_defaults", input: "", want: DefaultSize},
		{name: "square", input: "512x512", want: "512x512"},
		{name: "landscape", input: "1792x1024", want: "1792x1024"},
		{name: "unknown", input: "640x480", wantErr: true},
	}
	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			got, err := NormalizeSize(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("NormalizeSize(%q) expected error", tc.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("NormalizeSize(%q) error: %v", tc.input, err)
			}
			if got != tc.want {
				t.Fatalf("NormalizeSize(%q) = %q, want %q", tc.input, got, tc.want)
			}
		})
	}
}
