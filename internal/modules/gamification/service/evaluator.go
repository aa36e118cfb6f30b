package service

import (
	"time"

	"github.com/google/uuid"
	"learnly.id/gamification/internal/entity"
)

// Grant is one achievement awarded during an evaluation pass, together
// with the earned record row to persist.
type Grant struct {
	Achievement entity.Achievement
	Record      *entity.StudentAchievement
}

// EvaluateAchievements walks the active catalog against the profile and
// grants everything whose criteria value reached its threshold.
//
// Earned records block definitions that are not repeatable, so the pass is
// idempotent. Repeatable definitions need the next multiple of their
// threshold and honor MaxCompletions. Rewards are credited through the
// ledger as they are granted, which means an early grant can tip a later
// points based definition in the same pass.
func EvaluateAchievements(p *entity.GamificationProfile, defs []entity.Achievement, earned map[uuid.UUID]*entity.StudentAchievement, now time.Time) []Grant {
	var grants []Grant

	for _, def := range defs {
		if !def.IsActive || def.Threshold <= 0 {
			continue
		}

		record := earned[def.ID]
		if record != nil {
			if !def.IsRepeatable {
				continue
			}
			if def.MaxCompletions > 0 && record.Completions >= def.MaxCompletions {
				continue
			}
		}

		value, ok := CriteriaValue(p, def.CriteriaType)
		if !ok {
			continue
		}

		needed := def.Threshold
		if def.IsRepeatable && record != nil {
			needed = def.Threshold * (record.Completions + 1)
		}
		if value < needed {
			continue
		}

		// Progress records the threshold that was crossed, not the raw
		// counter, so an overshoot reads as a full bar.
		if record == nil {
			record = &entity.StudentAchievement{
				StudentID:     p.StudentID,
				AchievementID: def.ID,
				EarnedAt:      now,
				Progress:      needed,
				Completions:   1,
			}
			earned[def.ID] = record
		} else {
			record.Completions++
			record.EarnedAt = now
			record.Progress = needed
		}

		AddPoints(p, def.PointsReward)
		AddExperience(p, def.ExperienceReward)

		grants = append(grants, Grant{Achievement: def, Record: record})
	}

	return grants
}
