// Package campaignhealth recomputes each campaign's completion percentage
// and health bucket from its question and response counts.
package campaignhealth

import (
	"context"
	"fmt"
	"math"

	"github.com/dmitrijs2005/focusgroup/internal/logging"
	"github.com/dmitrijs2005/focusgroup/internal/server/models"
	"github.com/dmitrijs2005/focusgroup/internal/server/repositories/campaigns"
)

const (
	healthyThreshold = 70
	atRiskThreshold  = 40
)

// Completion is responses per question as a percentage, capped at 100 and
// rounded to two decimals. No questions means 0.
func Completion(responses, questions int) float64 {
	if questions <= 0 || responses <= 0 {
		return 0
	}
	pct := math.Min(100, float64(responses)/float64(questions)*100)
	return math.Round(pct*100) / 100
}

func Classify(pct float64) models.CampaignHealth {
	switch {
	case pct >= healthyThreshold:
		return models.HealthHealthy
	case pct >= atRiskThreshold:
		return models.HealthAtRisk
	default:
		return models.HealthCritical
	}
}

// Result summarises one recompute run.
type Result struct {
	Scanned int
	Changed int
}

// Recompute reads every campaign, derives its completion and health, and
// writes back the ones that changed. Each row gets an audit log line. The
// run stops at the first error; rows already written stay written. With
// dryRun nothing is written.
func Recompute(ctx context.Context, repo campaigns.Repository, dryRun bool, log logging.Logger) (Result, error) {
	log = log.With("module", "campaign_health", "dry_run", dryRun)

	stats, err := repo.ListStats(ctx)
	if err != nil {
		return Result{}, fmt.Errorf("list campaigns: %w", err)
	}

	var res Result
	for _, c := range stats {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		res.Scanned++

		pct := Completion(c.Responses, c.Questions)
		health := Classify(pct)
		changed := pct != c.CompletionPct || health != c.Health

		log.Info(ctx, "campaign health",
			"campaign_id", c.ID,
			"title", c.Title,
			"questions", c.Questions,
			"responses", c.Responses,
			"completion_before", c.CompletionPct,
			"completion_after", pct,
			"health_before", c.Health,
			"health_after", health,
			"changed", changed,
		)
		if !changed {
			continue
		}
		res.Changed++
		if dryRun {
			continue
		}
		if err := repo.UpdateHealth(ctx, c.ID, pct, health); err != nil {
			return res, fmt.Errorf("update campaign %d: %w", c.ID, err)
		}
	}

	log.Info(ctx, "campaign health recomputed", "scanned", res.Scanned, "changed", res.Changed)
	return res, nil
}
