package service

import "learnly.id/gamification/internal/entity"

// Flat leveling curve: every level costs the same amount of experience.
const ExperiencePerLevel = 100

// AddPoints credits spendable points and the lifetime total together.
// Amounts are validated positive before they get here.
func AddPoints(p *entity.GamificationProfile, amount int) {
	p.Points += amount
	p.TotalPointsEarned += amount
}

// AddExperience credits experience and recomputes the level from it, so
// the level can never drift from the experience on the row.
func AddExperience(p *entity.GamificationProfile, amount int) {
	p.Experience += amount
	p.Level = LevelForExperience(p.Experience)
}

func LevelForExperience(experience int) int {
	if experience < 0 {
		return 1
	}
	return experience/ExperiencePerLevel + 1
}

// LevelInfo describes one level's experience band.
type LevelInfo struct {
	Level         int `json:"level"`
	MinExperience int `json:"min_experience"`
	NextLevelAt   int `json:"next_level_at"`
}

func InfoForLevel(level int) LevelInfo {
	if level < 1 {
		level = 1
	}
	return LevelInfo{
		Level:         level,
		MinExperience: (level - 1) * ExperiencePerLevel,
		NextLevelAt:   level * ExperiencePerLevel,
	}
}
