package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"adcraft/internal/domain"
	"adcraft/internal/infra"
	"adcraft/internal/sqlinline"
)

type checkoutRequest struct {
	Plan string `json:"plan"`
}

type webhookRequest struct {
	CheckoutSession string `json:"checkout_session"`
	Event           string `json:"event"`
}

// BillingStatus reports the caller's latest subscription, if any.
func (a *App) BillingStatus(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectSubscriptionByUser, userID)
	var id, plan, status string
	var createdAt, updatedAt time.Time
	if err := row.Scan(&id, &plan, &status, &createdAt, &updatedAt); err != nil {
		if infra.IsNoRows(err) {
			a.json(w, http.StatusOK, map[string]any{"plan": string(domain.PlanFree), "status": "none"})
			return
		}
		a.error(w, http.StatusInternalServerError, "internal", "failed to load subscription")
		return
	}
	a.json(w, http.StatusOK, map[string]any{
		"id":         id,
		"plan":       plan,
		"status":     status,
		"created_at": createdAt,
		"updated_at": updatedAt,
	})
}

// BillingCheckout opens a pending subscription and returns the checkout
// session handle the payment page redirects with.
func (a *App) BillingCheckout(w http.ResponseWriter, r *http.Request) {
	userID := a.currentUserID(r)
	if userID == "" {
		a.error(w, http.StatusUnauthorized, "unauthorized", "missing user context")
		return
	}
	var req checkoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	plan := strings.ToLower(strings.TrimSpace(req.Plan))
	if plan != string(domain.PlanPro) {
		a.error(w, http.StatusBadRequest, "bad_request", "unsupported plan")
		return
	}
	session := uuid.NewString()
	row := a.SQL.QueryRow(r.Context(), sqlinline.QCreateCheckoutSession, userID, plan, session)
	var subscriptionID string
	if err := row.Scan(&subscriptionID); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to create checkout")
		return
	}
	a.json(w, http.StatusCreated, map[string]string{
		"subscription_id":  subscriptionID,
		"checkout_session": session,
	})
}

// BillingWebhook activates a pending subscription when the payment provider
// confirms completion, and upgrades the user's plan and quota.
func (a *App) BillingWebhook(w http.ResponseWriter, r *http.Request) {
	var req webhookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	if req.Event != "checkout.completed" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	row := a.SQL.QueryRow(r.Context(), sqlinline.QSelectSubscriptionBySession, req.CheckoutSession)
	var subscriptionID, subUserID, plan, status string
	if err := row.Scan(&subscriptionID, &subUserID, &plan, &status); err != nil {
		a.error(w, http.StatusNotFound, "not_found", "unknown checkout session")
		return
	}
	if status != "pending" {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	activated := a.SQL.QueryRow(r.Context(), sqlinline.QActivateSubscription, subscriptionID)
	var userID, activatedPlan string
	if err := activated.Scan(&userID, &activatedPlan); err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to activate subscription")
		return
	}
	quota := domain.DefaultQuotaForPlan(domain.Plan(activatedPlan))
	planRow := a.SQL.QueryRow(r.Context(), sqlinline.QUpdateUserPlan, userID, activatedPlan, quota)
	var updatedID string
	if err := planRow.Scan(&updatedID); err != nil {
		a.Logger.Error().Err(err).Str("user_id", userID).Msg("billing: plan upgrade failed")
		a.error(w, http.StatusInternalServerError, "internal", "failed to upgrade plan")
		return
	}
	a.json(w, http.StatusOK, map[string]string{"user_id": userID, "plan": activatedPlan})
}
