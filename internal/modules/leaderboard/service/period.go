package service

import (
	"time"

	"learnly.id/gamification/internal/entity"
)

// WeekKey is the ISO date of the week start. Weeks start on Sunday.
func WeekKey(now time.Time) string {
	day := truncatePeriodDay(now)
	return day.AddDate(0, 0, -int(day.Weekday())).Format("2006-01-02")
}

func MonthKey(now time.Time) string {
	return now.UTC().Format("2006-01")
}

// PeriodKey resolves the snapshot period for a leaderboard type.
func PeriodKey(leaderboardType string, now time.Time) string {
	switch leaderboardType {
	case entity.LeaderboardWeekly:
		return WeekKey(now)
	case entity.LeaderboardMonthly:
		return MonthKey(now)
	default:
		return entity.PeriodAllTime
	}
}

// ApplyPeriodPoints feeds an award's points delta into the running weekly
// and monthly totals the leaderboards are built from, resetting a total
// when its period rolled over since the previous award.
func ApplyPeriodPoints(p *entity.GamificationProfile, amount int, now time.Time) {
	if week := WeekKey(now); p.WeeklyPeriod != week {
		p.WeeklyPeriod = week
		p.WeeklyPoints = 0
	}
	if month := MonthKey(now); p.MonthlyPeriod != month {
		p.MonthlyPeriod = month
		p.MonthlyPoints = 0
	}
	p.WeeklyPoints += amount
	p.MonthlyPoints += amount
}

func truncatePeriodDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
