package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"adcraft/internal/gen"
	"adcraft/internal/infra"
	"adcraft/internal/sqlinline"
)

type generateOptions struct {
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Size        string  `json:"size"`
	Style       string  `json:"style"`
	Ratio       string  `json:"ratio"`
	Seconds     int     `json:"seconds"`
}

type generateRequest struct {
	Capability string          `json:"capability"`
	Provider   string          `json:"provider"`
	AdID       string          `json:"ad_id"`
	Prompt     string          `json:"prompt"`
	Options    generateOptions `json:"options"`
}

type jobResponse struct {
	JobID          string `json:"job_id"`
	Status         string `json:"status"`
	RemainingQuota int    `json:"remaining_quota"`
}

// GenerationsCreate enqueues a generation job. Quota is consumed atomically
// in the enqueue statement; a provider is never called for an over-quota user.
func (a *App) GenerationsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	capability, err := gen.ParseCapability(req.Capability)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "unknown capability")
		return
	}
	if !a.Orchestrator.Supports(capability) {
		a.error(w, http.StatusBadRequest, "bad_request", "capability not available")
		return
	}
	if strings.TrimSpace(req.Prompt) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "prompt required")
		return
	}
	promptPayload, _ := json.Marshal(map[string]any{
		"prompt":  req.Prompt,
		"options": req.Options,
	})
	row := a.SQL.QueryRow(r.Context(), sqlinline.QEnqueueGenerationJob, userID, req.AdID, string(capability), strings.ToLower(strings.TrimSpace(req.Provider)), promptPayload)
	var jobID string
	var remaining int
	if err := row.Scan(&jobID, &remaining); err != nil {
		if infra.IsNoRows(err) {
			a.error(w, http.StatusForbidden, "quota_exceeded", "daily quota exceeded")
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to queue job")
		return
	}
	a.json(w, http.StatusAccepted, jobResponse{JobID: jobID, Status: "QUEUED", RemainingQuota: remaining})
}

func (a *App) GenerationStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	jobID := chi.URLParam(r, "job_id")
	if jobID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "job_id required")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectJobForUser, jobID, userID)
	var id, uid, capability, provider, status, errorMessage string
	var adID *string
	var promptJSON, resultJSON []byte
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &uid, &adID, &capability, &provider, &status, &promptJSON, &resultJSON, &errorMessage, &createdAt, &updatedAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "job not found")
		return
	}
	resp := map[string]any{
		"id":         id,
		"ad_id":      adID,
		"capability": capability,
		"provider":   provider,
		"status":     status,
		"prompt":     json.RawMessage(promptJSON),
		"created_at": createdAt,
		"updated_at": updatedAt,
	}
	if len(resultJSON) > 0 {
		resp["result"] = json.RawMessage(resultJSON)
	}
	if errorMessage != "" {
		resp["error"] = errorMessage
	}
	a.json(w, http.StatusOK, resp)
}

func (a *App) GenerationAssets(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	jobID := chi.URLParam(r, "job_id")
	if jobID == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "job_id required")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QSelectJobAssets, jobID, userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load assets")
		return
	}
	defer rows.Close()
	var items []map[string]any
	for rows.Next() {
		var id, storageKey, mime string
		var bytesCount int64
		var width, height int
		var createdAt time.Time
		if err := rows.Scan(&id, &storageKey, &mime, &bytesCount, &width, &height, &createdAt); err != nil {
			continue
		}
		items = append(items, map[string]any{
			"id":         id,
			"url":        a.assetURL(storageKey),
			"mime":       mime,
			"bytes":      bytesCount,
			"width":      width,
			"height":     height,
			"created_at": createdAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}
