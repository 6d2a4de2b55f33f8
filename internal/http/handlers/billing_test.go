package handlers

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"

	"adcraft/internal/sqlinline"
)

func TestBillingCheckoutRejectsUnknownPlan(t *testing.T) {
	app := newTestApp(&fakeSQL{})
	rec := httptest.NewRecorder()
	app.BillingCheckout(rec, authedRequest(http.MethodPost, "/v1/billing/checkout", `{"plan":"enterprise"}`))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestBillingCheckoutCreatesSession(t *testing.T) {
	sql := &fakeSQL{
		queryRowFn: func(query string, args ...any) pgx.Row {
			return NewSimpleRow(func(dest ...any) error {
				return scanStrings(dest, "sub-1")
			})
		},
	}
	app := newTestApp(sql)
	rec := httptest.NewRecorder()
	app.BillingCheckout(rec, authedRequest(http.MethodPost, "/v1/billing/checkout", `{"plan":"pro"}`))
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201, body %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "checkout_session") {
		t.Fatalf("body = %s", rec.Body.String())
	}
}

func TestBillingWebhookIgnoresOtherEvents(t *testing.T) {
	app := newTestApp(&fakeSQL{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/billing/webhook", strings.NewReader(`{"event":"invoice.created","checkout_session":"s-1"}`))
	app.BillingWebhook(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}

func TestBillingWebhookActivatesSubscription(t *testing.T) {
	var updatedPlanArgs []any
	sql := &fakeSQL{}
	sql.queryRowFn = func(query string, args ...any) pgx.Row {
		switch query {
		case sqlinline.QSelectSubscriptionBySession:
			return NewSimpleRow(func(dest ...any) error {
				return scanStrings(dest, "sub-1", "user-1", "pro", "pending")
			})
		case sqlinline.QActivateSubscription:
			return NewSimpleRow(func(dest ...any) error {
				return scanStrings(dest, "user-1", "pro")
			})
		case sqlinline.QUpdateUserPlan:
			updatedPlanArgs = args
			return NewSimpleRow(func(dest ...any) error {
				return scanStrings(dest, "user-1")
			})
		default:
			return NewSimpleRow(nil)
		}
	}
	app := newTestApp(sql)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/billing/webhook", strings.NewReader(`{"event":"checkout.completed","checkout_session":"s-1"}`))
	app.BillingWebhook(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", rec.Code, rec.Body.String())
	}
	if len(updatedPlanArgs) != 3 {
		t.Fatalf("plan update args = %v", updatedPlanArgs)
	}
	if updatedPlanArgs[1] != "pro" {
		t.Fatalf("plan arg = %v, want pro", updatedPlanArgs[1])
	}
	if quota, ok := updatedPlanArgs[2].(int); !ok || quota != 50 {
		t.Fatalf("quota arg = %v, want pro quota 50", updatedPlanArgs[2])
	}
}

func TestBillingWebhookUnknownSession(t *testing.T) {
	app := newTestApp(&fakeSQL{})
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/billing/webhook", strings.NewReader(`{"event":"checkout.completed","checkout_session":"nope"}`))
	app.BillingWebhook(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
}

func TestBillingWebhookAlreadyActive(t *testing.T) {
	sql := &fakeSQL{
		queryRowFn: func(query string, args ...any) pgx.Row {
			return NewSimpleRow(func(dest ...any) error {
				return scanStrings(dest, "sub-1", "user-1", "pro", "active")
			})
		},
	}
	app := newTestApp(sql)
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/v1/billing/webhook", strings.NewReader(`{"event":"checkout.completed","checkout_session":"s-1"}`))
	app.BillingWebhook(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}
}
