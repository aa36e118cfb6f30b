package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"learnly.id/gamification/internal/entity"
)

func TestAddPointsCreditsBothTotals(t *testing.T) {
	p := &entity.GamificationProfile{Points: 30, TotalPointsEarned: 250}

	AddPoints(p, 20)

	assert.Equal(t, 50, p.Points)
	assert.Equal(t, 270, p.TotalPointsEarned)
}

func TestAddExperienceKeepsLevelDerived(t *testing.T) {
	p := &entity.GamificationProfile{Level: 1}

	AddExperience(p, 99)
	assert.Equal(t, 1, p.Level)

	AddExperience(p, 1)
	assert.Equal(t, 2, p.Level)
	assert.Equal(t, 100, p.Experience)
}

func TestAddExperienceMultiLevelJump(t *testing.T) {
	p := &entity.GamificationProfile{Level: 1, Experience: 50}

	AddExperience(p, 500)

	assert.Equal(t, 550, p.Experience)
	assert.Equal(t, 6, p.Level)
}

func TestLevelForExperience(t *testing.T) {
	assert.Equal(t, 1, LevelForExperience(0))
	assert.Equal(t, 1, LevelForExperience(99))
	assert.Equal(t, 2, LevelForExperience(100))
	assert.Equal(t, 3, LevelForExperience(299))
	assert.Equal(t, 1, LevelForExperience(-10))
}

func TestInfoForLevel(t *testing.T) {
	info := InfoForLevel(5)

	assert.Equal(t, 5, info.Level)
	assert.Equal(t, 400, info.MinExperience)
	assert.Equal(t, 500, info.NextLevelAt)

	// Nonsense levels clamp to the first band.
	assert.Equal(t, 1, InfoForLevel(0).Level)
	assert.Equal(t, 0, InfoForLevel(-3).MinExperience)
}
