package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"learnly.id/gamification/internal/entity"
)

func achievementDef(name, criteriaType string, threshold int) entity.Achievement {
	return entity.Achievement{
		ID:             uuid.New(),
		Name:           name,
		CriteriaType:   criteriaType,
		Threshold:      threshold,
		IsActive:       true,
		MaxCompletions: 1,
	}
}

func TestEvaluateGrantsAtThreshold(t *testing.T) {
	p := &entity.GamificationProfile{StudentID: uuid.New(), Level: 1}
	p.Statistics.LecturesCompleted = 10

	def := achievementDef("Pelajar Tekun", CriteriaLecturesCompleted, 10)
	def.PointsReward = 25
	def.ExperienceReward = 25

	earned := map[uuid.UUID]*entity.StudentAchievement{}
	now := time.Now().UTC()

	grants := EvaluateAchievements(p, []entity.Achievement{def}, earned, now)

	if assert.Len(t, grants, 1) {
		assert.Equal(t, def.ID, grants[0].Achievement.ID)
		assert.Equal(t, 1, grants[0].Record.Completions)
		assert.Equal(t, 10, grants[0].Record.Progress)
		assert.Equal(t, now, grants[0].Record.EarnedAt)
	}
	// Rewards flow through the ledger.
	assert.Equal(t, 25, p.Points)
	assert.Equal(t, 25, p.TotalPointsEarned)
	assert.Equal(t, 25, p.Experience)
	assert.Contains(t, earned, def.ID)
}

func TestEvaluateOvershootRecordsThresholdAsProgress(t *testing.T) {
	p := &entity.GamificationProfile{StudentID: uuid.New(), Level: 1}
	p.Statistics.LecturesCompleted = 50

	def := achievementDef("Pelajar Tekun", CriteriaLecturesCompleted, 10)

	grants := EvaluateAchievements(p, []entity.Achievement{def}, map[uuid.UUID]*entity.StudentAchievement{}, time.Now())

	// The record keeps the crossed threshold, not the raw counter.
	if assert.Len(t, grants, 1) {
		assert.Equal(t, 10, grants[0].Record.Progress)
	}
}

func TestEvaluateBelowThresholdDoesNothing(t *testing.T) {
	p := &entity.GamificationProfile{StudentID: uuid.New()}
	p.Statistics.LecturesCompleted = 9

	def := achievementDef("Pelajar Tekun", CriteriaLecturesCompleted, 10)
	grants := EvaluateAchievements(p, []entity.Achievement{def}, map[uuid.UUID]*entity.StudentAchievement{}, time.Now())

	assert.Empty(t, grants)
	assert.Zero(t, p.Points)
}

func TestEvaluateIsIdempotentForNonRepeatable(t *testing.T) {
	p := &entity.GamificationProfile{StudentID: uuid.New()}
	p.Statistics.LecturesCompleted = 50

	def := achievementDef("Pelajar Tekun", CriteriaLecturesCompleted, 10)
	earned := map[uuid.UUID]*entity.StudentAchievement{}

	first := EvaluateAchievements(p, []entity.Achievement{def}, earned, time.Now())
	second := EvaluateAchievements(p, []entity.Achievement{def}, earned, time.Now())

	assert.Len(t, first, 1)
	assert.Empty(t, second)
}

func TestEvaluateRepeatableNeedsNextMultiple(t *testing.T) {
	p := &entity.GamificationProfile{StudentID: uuid.New(), TotalPointsEarned: 100}

	def := achievementDef("Kolektor Poin", CriteriaPointsEarned, 100)
	def.IsRepeatable = true
	def.MaxCompletions = 0
	def.PointsReward = 10

	earned := map[uuid.UUID]*entity.StudentAchievement{}

	// First completion at 100.
	grants := EvaluateAchievements(p, []entity.Achievement{def}, earned, time.Now())
	assert.Len(t, grants, 1)

	// 110 after the reward, second completion wants 200.
	grants = EvaluateAchievements(p, []entity.Achievement{def}, earned, time.Now())
	assert.Empty(t, grants)

	p.TotalPointsEarned = 205
	grants = EvaluateAchievements(p, []entity.Achievement{def}, earned, time.Now())
	if assert.Len(t, grants, 1) {
		assert.Equal(t, 2, grants[0].Record.Completions)
		assert.Equal(t, 200, grants[0].Record.Progress)
	}
}

func TestEvaluateRepeatableHonorsMaxCompletions(t *testing.T) {
	p := &entity.GamificationProfile{StudentID: uuid.New(), TotalPointsEarned: 10000}

	def := achievementDef("Kolektor Poin", CriteriaPointsEarned, 100)
	def.IsRepeatable = true
	def.MaxCompletions = 2

	record := &entity.StudentAchievement{
		StudentID:     p.StudentID,
		AchievementID: def.ID,
		Completions:   2,
	}
	earned := map[uuid.UUID]*entity.StudentAchievement{def.ID: record}

	grants := EvaluateAchievements(p, []entity.Achievement{def}, earned, time.Now())

	assert.Empty(t, grants)
	assert.Equal(t, 2, record.Completions)
}

func TestEvaluateRewardCanTipLaterDefinition(t *testing.T) {
	p := &entity.GamificationProfile{StudentID: uuid.New(), TotalPointsEarned: 90}
	p.Statistics.CoursesCompleted = 1

	first := achievementDef("Juara Kursus", CriteriaCoursesCompleted, 1)
	first.PointsReward = 50
	second := achievementDef("Kolektor Poin", CriteriaPointsEarned, 100)

	grants := EvaluateAchievements(p, []entity.Achievement{first, second}, map[uuid.UUID]*entity.StudentAchievement{}, time.Now())

	// 90 + 50 reward carries the profile over the second threshold in the
	// same pass.
	assert.Len(t, grants, 2)
	assert.Equal(t, 140, p.TotalPointsEarned)
}

func TestEvaluateSkipsInactiveZeroThresholdAndUnknown(t *testing.T) {
	p := &entity.GamificationProfile{StudentID: uuid.New()}
	p.Statistics.LecturesCompleted = 100

	inactive := achievementDef("Nonaktif", CriteriaLecturesCompleted, 10)
	inactive.IsActive = false

	zero := achievementDef("Tanpa Ambang", CriteriaLecturesCompleted, 0)

	unknown := achievementDef("Misterius", "telepathy_sessions", 1)

	grants := EvaluateAchievements(p, []entity.Achievement{inactive, zero, unknown}, map[uuid.UUID]*entity.StudentAchievement{}, time.Now())

	assert.Empty(t, grants)
}
