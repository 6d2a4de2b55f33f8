package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"adcraft/internal/domain"
	"adcraft/internal/middleware"
	"adcraft/internal/sqlinline"
)

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  userProfileDTO `json:"user"`
}

type userProfileDTO struct {
	ID         string `json:"id"`
	Email      string `json:"email"`
	Plan       string `json:"plan"`
	Locale     string `json:"locale"`
	QuotaDaily int    `json:"quota_daily"`
	QuotaUsed  int    `json:"quota_used_today"`
}

func (a *App) AuthRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || !strings.Contains(email, "@") {
		a.error(w, http.StatusBadRequest, "bad_request", "valid email required")
		return
	}
	if len(req.Password) < 8 {
		a.error(w, http.StatusBadRequest, "bad_request", "password must be at least 8 characters")
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to hash password")
		return
	}
	locale := middleware.LocaleFromContext(r.Context())
	country := middleware.CountryFromContext(r.Context())
	quota := domain.DefaultQuotaForPlan(domain.PlanFree)
	row := a.SQL.QueryRow(r.Context(), sqlinline.QInsertUser, email, string(hash), locale, country, quota)
	var userID, plan string
	if err := row.Scan(&userID, &plan); err != nil {
		a.error(w, http.StatusConflict, "conflict", "email already registered")
		return
	}
	a.issueToken(w, userProfileDTO{
		ID:         userID,
		Email:      email,
		Plan:       plan,
		Locale:     locale,
		QuotaDaily: quota,
	})
}

func (a *App) AuthLogin(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByEmail, req.Email)
	var id, email, passwordHash, locale, plan string
	var quotaDaily, quotaUsed int
	if err := row.Scan(&id, &email, &passwordHash, &locale, &plan, &quotaDaily, &quotaUsed); err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	if err := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(req.Password)); err != nil {
		a.error(w, http.StatusUnauthorized, "unauthorized", "invalid credentials")
		return
	}
	if country := middleware.CountryFromContext(r.Context()); country != "" {
		if _, err := a.SQL.Exec(r.Context(), sqlinline.QUpdateUserCountry, id, country); err != nil {
			a.Logger.Warn().Err(err).Str("user_id", id).Msg("country backfill failed")
		}
	}
	a.issueToken(w, userProfileDTO{
		ID:         id,
		Email:      email,
		Plan:       plan,
		Locale:     locale,
		QuotaDaily: quotaDaily,
		QuotaUsed:  quotaUsed,
	})
}

func (a *App) Me(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectUserByID, userID)
	var id, email, locale, plan string
	var quotaDaily, quotaUsed int
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &email, &locale, &plan, &quotaDaily, &quotaUsed, &createdAt, &updatedAt); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "user not found")
		return
	}
	a.json(w, http.StatusOK, userProfileDTO{
		ID:         id,
		Email:      email,
		Plan:       plan,
		Locale:     locale,
		QuotaDaily: quotaDaily,
		QuotaUsed:  quotaUsed,
	})
}

func (a *App) issueToken(w http.ResponseWriter, user userProfileDTO) {
	token, err := middleware.SignJWT(a.JWTSecret, middleware.TokenClaims{
		Sub:      user.ID,
		Plan:     user.Plan,
		Locale:   user.Locale,
		Exp:      time.Now().Add(24 * time.Hour).Unix(),
		Issuer:   "adcraft",
		Audience: "adcraft-clients",
	})
	if err != nil {
		a.Logger.Error().Err(err).Msg("sign jwt failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to sign token")
		return
	}
	a.json(w, http.StatusOK, authResponse{Token: token, User: user})
}
