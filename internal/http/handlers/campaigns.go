package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"adcraft/internal/sqlinline"
)

type campaignRequest struct {
	Name      string `json:"name"`
	Objective string `json:"objective"`
	Status    string `json:"status"`
}

func (a *App) CampaignsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "name required")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertCampaign, userID, req.Name, req.Objective)
	var campaignID string
	if err := row.Scan(&campaignID); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create campaign")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": campaignID})
}

func (a *App) CampaignsList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 {
		limit = 20
	}
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListCampaignsByUser, userID, limit, offset)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load campaigns")
		return
	}
	defer rows.Close()
	var items []map[string]any
	for rows.Next() {
		var id, name, objective, status string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &name, &objective, &status, &createdAt, &updatedAt); err != nil {
			continue
		}
		items = append(items, map[string]any{
			"id":         id,
			"name":       name,
			"objective":  objective,
			"status":     status,
			"created_at": createdAt,
			"updated_at": updatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) CampaignsGet(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	campaignID := chi.URLParam(r, "id")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectCampaignByID, campaignID)
	var id, ownerID, name, objective, status string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &ownerID, &name, &objective, &status, &createdAt, &updatedAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}
	if ownerID != userID {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"id":         id,
		"name":       name,
		"objective":  objective,
		"status":     status,
		"created_at": createdAt,
		"updated_at": updatedAt,
	})
}

func (a *App) CampaignsUpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	campaignID := chi.URLParam(r, "id")
	var req campaignRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	status := strings.ToLower(strings.TrimSpace(req.Status))
	switch status {
	case "active", "paused", "archived":
	default:
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported status")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateCampaignStatus, campaignID, userID, status)
	var id string
	if err := row.Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "campaign not found")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"id": id, "status": status})
}
