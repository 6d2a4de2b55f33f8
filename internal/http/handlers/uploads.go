package handlers

import (
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"adcraft/internal/sqlinline"
	"adcraft/internal/upload"
)

// UploadsCreate accepts a multipart product image, gates it through the
// validator, and persists the accepted file as an ORIGINAL asset.
func (a *App) UploadsCreate(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	// Cap the multipart reader slightly above the validation ceiling so
	// oversize files produce the validator's message, not a parse error.
	r.Body = http.MaxBytesReader(w, r.Body, a.Uploads.MaxBytes()+1024*1024)
	if err := r.ParseMultipartForm(a.Uploads.MaxBytes()); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid multipart payload")
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "file field required")
		return
	}
	defer func() {
		_ = file.Close()
	}()
	data, err := io.ReadAll(file)
	if err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "failed to read file")
		return
	}
	accepted, err := a.Uploads.Validate(upload.Candidate{
		Data:         data,
		DeclaredMIME: header.Header.Get("Content-Type"),
		FileName:     header.Filename,
		SizeBytes:    int64(len(data)),
	})
	if err != nil {
		a.error(w, http.StatusUnprocessableEntity, "validation_failed", err.Error())
		return
	}
	storageKey := fmt.Sprintf("uploads/%s/%s-%s", userID, uuid.NewString(), accepted.FileName)
	key, err := a.Store.Write(r.Context(), storageKey, data)
	if err != nil {
		a.Logger.Error().Err(err).Msg("upload: store write failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to store file")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUploadedAsset, userID, key, accepted.MIME, accepted.SizeBytes)
	var assetID string
	if err := row.Scan(&assetID); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to persist asset")
		return
	}
	a.json(w, http.StatusCreated, map[string]any{
		"id":        assetID,
		"file_name": accepted.FileName,
		"mime":      accepted.MIME,
		"bytes":     accepted.SizeBytes,
		"url":       a.assetURL(key),
	})
}

func (a *App) AssetsList(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	rows, err := a.SQL.Query(r.Context(), sqlinline.QListAssetsByUser, userID, 50, 0)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load assets")
		return
	}
	defer rows.Close()
	var items []map[string]any
	for rows.Next() {
		var id, kind, storageKey, mime string
		var jobID *string
		var bytesCount int64
		var width, height int
		var createdAt time.Time
		if err := rows.Scan(&id, &jobID, &kind, &storageKey, &mime, &bytesCount, &width, &height, &createdAt); err != nil {
			continue
		}
		items = append(items, map[string]any{
			"id":         id,
			"job_id":     jobID,
			"kind":       kind,
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

func (a *App) AssetsDownload(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	assetID := chi.URLParam(r, "id")
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectAssetByID, assetID)
	var id, ownerID, kind, storageKey, mime string
	var bytesCount int64
	var width, height int
	var createdAt time.Time
	if err := row.Scan(&id, &ownerID, &kind, &storageKey, &mime, &bytesCount, &width, &height, &createdAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "asset not found")
		return
	}
	if ownerID != userID {
		a.error(w, http.StatusForbidden, "forbidden", "not your asset")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"url":    a.assetURL(storageKey),
		"mime":   mime,
		"bytes":  bytesCount,
		"width":  width,
		"height": height,
	})
}
