package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"adcraft/internal/gen"
	"adcraft/internal/infra"
	"adcraft/internal/middleware"
	"adcraft/internal/storage"
	"adcraft/internal/upload"
)

// App is the handler container: one instance per process, wired at startup.
type App struct {
	SQL          infra.SQLExecutor
	Logger       infra.Logger
	Orchestrator *gen.Orchestrator
	Store        *storage.FileStore
	Uploads      *upload.Validator
	JWTSecret    string
	AssetBaseURL string
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, errCode, message string) {
	a.json(w, code, map[string]errorResponse{"error": {Code: errCode, Message: message}})
}

func (a *App) currentUserID(r *http.Request) string {
	return middleware.UserIDFromContext(r.Context())
}

func (a *App) assetURL(storageKey string) string {
	base := strings.TrimRight(a.AssetBaseURL, "/")
	return base + "/" + strings.TrimLeft(storageKey, "/")
}
