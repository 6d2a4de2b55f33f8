package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"adcraft/internal/domain"
	"adcraft/internal/sqlinline"
	"adcraft/pkg/zip"
)

type adRequest struct {
	CampaignID   string `json:"campaign_id"`
	Headline     string `json:"headline"`
	BodyCopy     string `json:"body_copy"`
	CallToAction string `json:"call_to_action"`
	Status       string `json:"status"`
}

func (a *App) AdsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req adRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if strings.TrimSpace(req.Headline) == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "headline required")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertAd, userID, req.CampaignID, req.Headline, req.BodyCopy, req.CallToAction)
	var adID string
	if err := row.Scan(&adID); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create ad")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{"id": adID})
}

func (a *App) AdsList(w http.ResponseWriter, r *http.Request) {
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
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListAdsByUser, userID, limit, offset)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load ads")
		return
	}
	defer rows.Close()
	var items []map[string]any
	for rows.Next() {
		var id, headline, body, cta, status string
		var campaignID *string
		var createdAt, updatedAt time.Time
		if err := rows.Scan(&id, &campaignID, &headline, &body, &cta, &status, &createdAt, &updatedAt); err != nil {
			continue
		}
		items = append(items, map[string]any{
			"id":             id,
			"campaign_id":    campaignID,
			"headline":       headline,
			"body_copy":      body,
			"call_to_action": cta,
			"status":         status,
			"created_at":     createdAt,
			"updated_at":     updatedAt,
		})
	}
	a.json(w, http.StatusOK, map[string]any{"items": items})
}

func (a *App) AdsGet(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	adID := chi.URLParam(r, "id")
	ad, err := a.loadAdForUser(r, adID, userID)
	if err != nil {
		a.error(w, http.StatusNotFound, "not_found", "ad not found")
		return
	}
	a.json(w, http.StatusOK, ad)
}

func (a *App) AdsUpdate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	adID := chi.URLParam(r, "id")
	var req adRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	status := domain.NormalizeAdStatus(req.Status)
	row := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateAd, adID, userID, req.Headline, req.BodyCopy, req.CallToAction, string(status))
	var id string
	if err := row.Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "ad not found")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"id": id, "status": string(status)})
}

func (a *App) AdsArchive(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	adID := chi.URLParam(r, "id")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QArchiveAd, adID, userID)
	var id string
	if err := row.Scan(&id); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "ad not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// AdsExport streams the ad's generated creatives as a zip archive.
func (a *App) AdsExport(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	adID := chi.URLParam(r, "id")
	if _, err := a.loadAdForUser(r, adID, userID); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "ad not found")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListAdAssets, adID, userID)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load assets")
		return
	}
	defer rows.Close()
	var assets []zip.Asset
	for rows.Next() {
		var id, storageKey, mime string
		var bytesCount int64
		var width, height int
		var createdAt time.Time
		if err := rows.Scan(&id, &storageKey, &mime, &bytesCount, &width, &height, &createdAt); err != nil {
			continue
		}
		data, err := a.Store.Read(r.Context(), storageKey)
		if err != nil {
			a.Logger.Error().Err(err).Str("asset_id", id).Msg("export: read asset failed")
			continue
		}
		assets = append(assets, zip.Asset{Filename: archiveName(storageKey), MIME: mime, Data: data})
	}
	if len(assets) == 0 {
		a.error(w, http.StatusNotFound, "not_found", "no creatives to export")
		return
	}
	archive := zip.ArchiveAssets(assets)
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "ad-"+adID+".zip"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (a *App) loadAdForUser(r *http.Request, adID, userID string) (map[string]any, error) {
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectAdByID, adID)
	var id, ownerID, headline, body, cta, status string
	var campaignID *string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &ownerID, &campaignID, &headline, &body, &cta, &status, &createdAt, &updatedAt); err != nil {
		return nil, err
	}
	if ownerID != userID {
		return nil, domain.ErrNotFound
	}
	return map[string]any{
		"id":             id,
		"campaign_id":    campaignID,
		"headline":       headline,
		"body_copy":      body,
		"call_to_action": cta,
		"status":         status,
		"created_at":     createdAt,
		"updated_at":     updatedAt,
	}, nil
}

func archiveName(storageKey string) string {
	if idx := strings.LastIndex(storageKey, "/"); idx >= 0 {
		return storageKey[idx+1:]
	}
	return storageKey
}
