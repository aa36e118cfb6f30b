package service

import (
	"time"

	"learnly.id/gamification/internal/entity"
)

// UpdateStreak advances the streak clock by one activity. Days are UTC
// calendar days. A second activity on the same day is a no-op, and so is a
// backdated event whose day is older than the recorded one.
func UpdateStreak(p *entity.GamificationProfile, now time.Time) {
	today := truncateDay(now)

	if p.LastActivityDate == nil {
		p.CurrentStreak = 1
	} else {
		switch days := daysBetween(truncateDay(*p.LastActivityDate), today); {
		case days <= 0:
			return
		case days == 1:
			p.CurrentStreak++
		default:
			p.CurrentStreak = 1
		}
	}

	p.LastActivityDate = &today
	if p.CurrentStreak > p.LongestStreak {
		p.LongestStreak = p.CurrentStreak
	}
	if weeks := p.CurrentStreak / 7; weeks > p.Statistics.ConsecutiveWeeks {
		p.Statistics.ConsecutiveWeeks = weeks
	}
}

func truncateDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
