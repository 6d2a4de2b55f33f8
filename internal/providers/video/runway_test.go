package video

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

func TestNewRunwayGeneratorRequiresKey(t *testing.T) {
	_, err := NewRunwayGenerator(RunwayOptions{})
	if !domain.IsKind(err, domain.KindConfiguration) {
		t.Fatalf("error = %v, want configuration error", err)
	}
}

func TestRunwayGenerateVideo(t *testing.T) {
	var captured runwayTaskRequest
	gen, err := NewRunwayGenerator(RunwayOptions{
		APIKey: "rw-test",
		Model:  "gen3a_turbo",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if got := r.Header.Get("X-Runway-Version"); got != "2024-11-06" {
				t.Fatalf("X-Runway-Version = %q", got)
			}
			switch {
			case r.Method == http.MethodPost && strings.HasSuffix(r.URL.Path, "/text_to_video"):
				if err := json.NewDecoder(r.Body).Decode(&captured); err != nil {
					t.Fatalf("decode request: %v", err)
				}
				return jsonResponse(http.StatusOK, `{"id":"task-1","status":"PENDING"}`), nil
			case r.Method == http.MethodGet && strings.HasSuffix(r.URL.Path, "/tasks/task-1"):
				return jsonResponse(http.StatusOK, `{"id":"task-1","status":"SUCCEEDED","output":["https://runway.example.com/clip.mp4"]}`), nil
			default:
				t.Fatalf("unexpected request %s %s", r.Method, r.URL.Path)
				return nil, nil
			}
		})},
	})
	if err != nil {
		t.Fatalf("NewRunwayGenerator error: %v", err)
	}
	res, err := gen.Generate(context.Background(), GenerateRequest{Prompt: "A shoe spinning on a turntable"})
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if captured.PromptText != "A shoe spinning on a turntable" {
		t.Fatalf("promptText = %q", captured.PromptText)
	}
	if captured.Ratio != defaultRunwayRatio {
		t.Fatalf("ratio = %q, want default %q", captured.Ratio, defaultRunwayRatio)
	}
	if captured.Duration != defaultRunwaySeconds {
		t.Fatalf("duration = %d, want default %d", captured.Duration, defaultRunwaySeconds)
	}
	if res.URL != "https://runway.example.com/clip.mp4" {
		t.Fatalf("url = %q", res.URL)
	}
	if res.Seconds != defaultRunwaySeconds {
		t.Fatalf("seconds = %d, want %d", res.Seconds, defaultRunwaySeconds)
	}
}

func TestRunwayGenerateTaskFailure(t *testing.T) {
	gen, err := NewRunwayGenerator(RunwayOptions{
		APIKey: "rw-test",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			if r.Method == http.MethodPost {
				return jsonResponse(http.StatusOK, `{"id":"task-2","status":"PENDING"}`), nil
			}
			return jsonResponse(http.StatusOK, `{"id":"task-2","status":"FAILED","failure":"safety filter triggered"}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("NewRunwayGenerator error: %v", err)
	}
	_, err = gen.Generate(context.Background(), GenerateRequest{Prompt: "hello"})
	if !domain.IsKind(err, domain.KindProvider) {
		t.Fatalf("error = %v, want provider error", err)
	}
	if !strings.HasPrefix(err.Error(), "runway:") {
		t.Fatalf("error = %q, want runway prefix", err.Error())
	}
	if !strings.Contains(err.Error(), "safety filter triggered") {
		t.Fatalf("error = %q, want upstream detail", err.Error())
	}
}

func TestRunwayGenerateCreateRejected(t *testing.T) {
	gen, err := NewRunwayGenerator(RunwayOptions{
		APIKey: "rw-test",
		HTTPClient: &http.Client{Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			return jsonResponse(http.StatusUnauthorized, `{"error":"invalid api key"}`), nil
		})},
	})
	if err != nil {
		t.Fatalf("NewRunwayGenerator error: %v", err)
	}
	_, err = gen.Generate(context.Background(), GenerateRequest{Prompt: "hello"})
	if !domain.IsKind(err, domain.KindProvider) {
		t.Fatalf("error = %v, want provider error", err)
	}
}

func TestRunwayGenerateEmptyPrompt(t *testing.T) {
	gen, err := NewRunwayGenerator(RunwayOptions{APIKey: "rw-test"})
	if err != nil {
		t.Fatalf("NewRunwayGenerator error: %v", err)
	}
	_, err = gen.Generate(context.Background(), GenerateRequest{Prompt: " "})
	if !domain.IsKind(err, domain.KindValidation) {
		t.Fatalf("error = %v, want validation error", err)
	}
}
