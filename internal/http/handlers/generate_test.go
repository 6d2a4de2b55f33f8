package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"adcraft/internal/middleware"
	"adcraft/internal/sqlinline"
)

func authedRequest(method, target, body string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	return req.WithContext(middleware.ContextWithUserID(req.Context(), "user-1"))
}

func TestGenerationsCreateEnqueuesJob(t *testing.T) {
	sql := &fakeSQL{
		queryRowFn: func(query string, args ...any) pgx.Row {
			return NewSimpleRow(func(dest ...any) error {
				return scanStrings(dest, "job-1", 2)
			})
		},
	}
	app := newTestApp(sql)
	rec := httptest.NewRecorder()
	app.GenerationsCreate(rec, authedRequest(http.MethodPost, "/v1/generations", `{
        "capability": "text",
        "prompt": "Write copy for a red shoe"
    }`))
	if rec.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202, body %s", rec.Code, rec.Body.String())
	}
	var resp jobResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.JobID != "job-1" || resp.Status != "QUEUED" || resp.RemainingQuota != 2 {
		t.Fatalf("response = %+v", resp)
	}
	if !strings.Contains(sql.lastQuery, "generation_jobs") {
		t.Fatalf("unexpected query: %q", sql.lastQuery)
	}
	if sql.lastQuery != sqlinline.QEnqueueGenerationJob {
		t.Fatal("enqueue must use the quota-charging statement")
	}
}

func TestGenerationsCreateQuotaExceeded(t *testing.T) {
	sql := &fakeSQL{
		queryRowFn: func(query string, args ...any) pgx.Row {
			return NewSimpleRow(nil) // quota CTE matched no row
		},
	}
	app := newTestApp(sql)
	rec := httptest.NewRecorder()
	app.GenerationsCreate(rec, authedRequest(http.MethodPost, "/v1/generations", `{
        "capability": "image",
        "prompt": "A red shoe on white background"
    }`))
	if rec.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "quota_exceeded") {
		t.Fatalf("body = %s, want quota_exceeded code", rec.Body.String())
	}
}

func TestGenerationsCreateUnknownCapability(t *testing.T) {
	app := newTestApp(&fakeSQL{})
	rec := httptest.NewRecorder()
	app.GenerationsCreate(rec, authedRequest(http.MethodPost, "/v1/generations", `{
        "capability": "audio",
        "prompt": "hello"
    }`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenerationsCreateUnavailableCapability(t *testing.T) {
	// The test app has no replicate key, so image requests still work via
	// openai; drop video support by omitting the runway key here.
	app := newTestApp(&fakeSQL{})
	app.Orchestrator = mustBuildTextOnly(t)
	rec := httptest.NewRecorder()
	app.GenerationsCreate(rec, authedRequest(http.MethodPost, "/v1/generations", `{
        "capability": "video",
        "prompt": "hello"
    }`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenerationsCreateEmptyPrompt(t *testing.T) {
	app := newTestApp(&fakeSQL{})
	rec := httptest.NewRecorder()
	app.GenerationsCreate(rec, authedRequest(http.MethodPost, "/v1/generations", `{
        "capability": "text",
        "prompt": "   "
    }`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestGenerationsCreateUnauthenticated(t *testing.T) {
	app := newTestApp(&fakeSQL{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/generations", strings.NewReader(`{"capability":"text","prompt":"p"}`))
	app.GenerationsCreate(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}
}
