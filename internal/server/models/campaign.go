package models

import "time"

// CampaignHealth is the bucket a campaign's completion percentage falls in.
type CampaignHealth string

const (
	HealthHealthy  CampaignHealth = "healthy"
	HealthAtRisk   CampaignHealth = "at_risk"
	HealthCritical CampaignHealth = "critical"
)

// CampaignStats is what the health recompute reads and writes per campaign.
type CampaignStats struct {
	ID            int64
	Title         string
	Questions     int
	Responses     int
	CompletionPct float64
	Health        CampaignHealth
	UpdatedAt     time.Time
}
