package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"learnly.id/gamification/internal/entity"
)

func TestWeekKeyStartsOnSunday(t *testing.T) {
	// 2026-03-02 is a Monday, 2026-03-01 a Sunday.
	monday := time.Date(2026, 3, 2, 15, 0, 0, 0, time.UTC)
	sunday := time.Date(2026, 3, 1, 0, 30, 0, 0, time.UTC)
	saturday := time.Date(2026, 3, 7, 23, 0, 0, 0, time.UTC)

	assert.Equal(t, "2026-03-01", WeekKey(monday))
	assert.Equal(t, "2026-03-01", WeekKey(sunday))
	assert.Equal(t, "2026-03-01", WeekKey(saturday))

	nextSunday := time.Date(2026, 3, 8, 1, 0, 0, 0, time.UTC)
	assert.Equal(t, "2026-03-08", WeekKey(nextSunday))
}

func TestMonthKey(t *testing.T) {
	assert.Equal(t, "2026-03", MonthKey(time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC)))
	assert.Equal(t, "2026-04", MonthKey(time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)))
}

func TestPeriodKeyPerType(t *testing.T) {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	assert.Equal(t, entity.PeriodAllTime, PeriodKey(entity.LeaderboardTotal, now))
	assert.Equal(t, "2026-03-01", PeriodKey(entity.LeaderboardWeekly, now))
	assert.Equal(t, "2026-03", PeriodKey(entity.LeaderboardMonthly, now))
}

func TestApplyPeriodPointsAccumulatesWithinPeriod(t *testing.T) {
	p := &entity.GamificationProfile{}
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

	ApplyPeriodPoints(p, 30, now)
	ApplyPeriodPoints(p, 20, now.Add(2*time.Hour))

	assert.Equal(t, 50, p.WeeklyPoints)
	assert.Equal(t, 50, p.MonthlyPoints)
	assert.Equal(t, "2026-03-01", p.WeeklyPeriod)
	assert.Equal(t, "2026-03", p.MonthlyPeriod)
}

func TestApplyPeriodPointsResetsOnWeekRollover(t *testing.T) {
	p := &entity.GamificationProfile{
		WeeklyPoints:  120,
		WeeklyPeriod:  "2026-02-22",
		MonthlyPoints: 400,
		MonthlyPeriod: "2026-02",
	}

	ApplyPeriodPoints(p, 10, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 10, p.WeeklyPoints)
	assert.Equal(t, 10, p.MonthlyPoints)
	assert.Equal(t, "2026-03-01", p.WeeklyPeriod)
	assert.Equal(t, "2026-03", p.MonthlyPeriod)
}

func TestApplyPeriodPointsWeekRolloverKeepsMonth(t *testing.T) {
	p := &entity.GamificationProfile{
		WeeklyPoints:  70,
		WeeklyPeriod:  "2026-03-01",
		MonthlyPoints: 70,
		MonthlyPeriod: "2026-03",
	}

	// Next week, same month.
	ApplyPeriodPoints(p, 15, time.Date(2026, 3, 9, 9, 0, 0, 0, time.UTC))

	assert.Equal(t, 15, p.WeeklyPoints)
	assert.Equal(t, 85, p.MonthlyPoints)
}
