package domain

import "time"

// CampaignStatus enumerates campaign lifecycle states.
type CampaignStatus string

const (
	CampaignStatusActive   CampaignStatus = "active"
	CampaignStatusPaused   CampaignStatus = "paused"
	CampaignStatusArchived CampaignStatus = "archived"
)

// Campaign groups ads under a shared marketing objective.
type Campaign struct {
	ID        string
	UserID    string
	Name      string
	Objective string
	Status    CampaignStatus
	CreatedAt time.Time
	UpdatedAt time.Time
}
