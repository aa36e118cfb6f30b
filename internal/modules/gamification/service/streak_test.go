package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"learnly.id/gamification/internal/entity"
)

func day(year int, month time.Month, d, hour int) time.Time {
	return time.Date(year, month, d, hour, 0, 0, 0, time.UTC)
}

func TestUpdateStreakFirstActivity(t *testing.T) {
	p := &entity.GamificationProfile{}

	UpdateStreak(p, day(2026, 3, 2, 14))

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 1, p.LongestStreak)
	assert.Equal(t, day(2026, 3, 2, 0), *p.LastActivityDate)
}

func TestUpdateStreakSameDayIsNoOp(t *testing.T) {
	p := &entity.GamificationProfile{}

	UpdateStreak(p, day(2026, 3, 2, 9))
	UpdateStreak(p, day(2026, 3, 2, 23))

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, day(2026, 3, 2, 0), *p.LastActivityDate)
}

func TestUpdateStreakConsecutiveDays(t *testing.T) {
	p := &entity.GamificationProfile{}

	UpdateStreak(p, day(2026, 3, 2, 9))
	UpdateStreak(p, day(2026, 3, 3, 7))
	UpdateStreak(p, day(2026, 3, 4, 22))

	assert.Equal(t, 3, p.CurrentStreak)
	assert.Equal(t, 3, p.LongestStreak)
}

func TestUpdateStreakGapResets(t *testing.T) {
	p := &entity.GamificationProfile{}

	UpdateStreak(p, day(2026, 3, 2, 9))
	UpdateStreak(p, day(2026, 3, 3, 9))
	UpdateStreak(p, day(2026, 3, 6, 9))

	assert.Equal(t, 1, p.CurrentStreak)
	// The broken run survives as the longest streak.
	assert.Equal(t, 2, p.LongestStreak)
	assert.Equal(t, day(2026, 3, 6, 0), *p.LastActivityDate)
}

func TestUpdateStreakBackdatedEventIsNoOp(t *testing.T) {
	p := &entity.GamificationProfile{}

	UpdateStreak(p, day(2026, 3, 5, 9))
	UpdateStreak(p, day(2026, 3, 1, 9))

	assert.Equal(t, 1, p.CurrentStreak)
	// The recorded day never moves backwards.
	assert.Equal(t, day(2026, 3, 5, 0), *p.LastActivityDate)
}

func TestUpdateStreakLongestNotLoweredByReset(t *testing.T) {
	p := &entity.GamificationProfile{
		CurrentStreak: 9,
		LongestStreak: 9,
	}
	last := day(2026, 3, 2, 0)
	p.LastActivityDate = &last

	UpdateStreak(p, day(2026, 3, 10, 9))

	assert.Equal(t, 1, p.CurrentStreak)
	assert.Equal(t, 9, p.LongestStreak)
}

func TestUpdateStreakConsecutiveWeeks(t *testing.T) {
	p := &entity.GamificationProfile{
		CurrentStreak: 13,
		LongestStreak: 13,
	}
	last := day(2026, 3, 2, 0)
	p.LastActivityDate = &last

	UpdateStreak(p, day(2026, 3, 3, 9))

	assert.Equal(t, 14, p.CurrentStreak)
	assert.Equal(t, 2, p.Statistics.ConsecutiveWeeks)
}

func TestUpdateStreakCrossesUTCMidnight(t *testing.T) {
	p := &entity.GamificationProfile{}

	UpdateStreak(p, day(2026, 3, 2, 23))
	UpdateStreak(p, time.Date(2026, 3, 3, 0, 15, 0, 0, time.UTC))

	assert.Equal(t, 2, p.CurrentStreak)
}
