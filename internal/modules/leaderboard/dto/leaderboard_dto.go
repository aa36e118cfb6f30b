package dto

import (
	"time"

	"github.com/google/uuid"
	commonDto "learnly.id/gamification/pkg/dto"
)

// LeaderboardEntry is a single ranked row. Rank is 1-based and dense, ties
// keep their insertion order from the rebuild.
type LeaderboardEntry struct {
	Rank             int                      `json:"rank"`
	StudentID        uuid.UUID                `json:"student_id"`
	Student          commonDto.StudentSummary `json:"student"`
	Points           int                    `json:"points"`
	Level            int                    `json:"level"`
	Streak           int                    `json:"streak"`
	AchievementCount int                    `json:"achievement_count"`
	Title            string                 `json:"title"`
	ActivityLabel    string                 `json:"activity_label,omitempty"`
}

type LeaderboardResponse struct {
	Type        string             `json:"type"`
	Period      string             `json:"period"`
	LastUpdated time.Time          `json:"last_updated"`
	Entries     []LeaderboardEntry `json:"entries"`
}

// StudentRank is the caller's own position. A student outside the top of
// the board has no rank at all.
type StudentRank struct {
	Type   string `json:"type"`
	Period string `json:"period"`
	Rank   int    `json:"rank"`
	Points int    `json:"points"`
}
