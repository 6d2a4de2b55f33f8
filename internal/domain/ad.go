package domain

import "time"

// AdStatus enumerates the lifecycle of an ad creative.
type AdStatus string

const (
	AdStatusDraft    AdStatus = "draft"
	AdStatusReady    AdStatus = "ready"
	AdStatusArchived AdStatus = "archived"
)

// Ad holds the editable metadata of a single ad creative. Generated media is
// linked through assets referencing the ad's generation jobs.
type Ad struct {
	ID           string
	UserID       string
	CampaignID   string
	Headline     string
	BodyCopy     string
	CallToAction string
	Status       AdStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NormalizeAdStatus sanitizes free-form input into a supported status.
func NormalizeAdStatus(status string) AdStatus {
	switch AdStatus(status) {
	case AdStatusReady:
		return AdStatusReady
	case AdStatusArchived:
		return AdStatusArchived
	default:
		return AdStatusDraft
	}
}
