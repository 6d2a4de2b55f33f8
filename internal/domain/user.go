package domain

import "time"

// Plan enumerates subscription tiers.
type Plan string

const (
	PlanFree Plan = "free"
	PlanPro  Plan = "pro"
)

// User is an account that owns campaigns, ads, and generated assets.
type User struct {
	ID         string
	Email      string
	Locale     string
	Country    string
	Plan       Plan
	QuotaDaily int
	QuotaUsed  int
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// DefaultQuotaForPlan returns the daily generation quota granted by a plan.
func DefaultQuotaForPlan(plan Plan) int {
	switch plan {
	case PlanPro:
		return 50
	default:
		return 3
	}
}
