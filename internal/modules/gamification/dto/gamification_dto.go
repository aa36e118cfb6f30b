package dto

import (
	"time"

	"github.com/google/uuid"
	"learnly.id/gamification/internal/entity"
)

type AwardRequest struct {
	Activity string         `json:"activity" binding:"required,max=50"`
	Points   int            `json:"points" binding:"required,gt=0"`
	Metadata map[string]any `json:"metadata"`
}

// AdminAwardRequest lets staff credit an arbitrary student, for imports
// and manual corrections.
type AdminAwardRequest struct {
	StudentID string         `json:"student_id" binding:"required,uuid"`
	Activity  string         `json:"activity" binding:"required,max=50"`
	Points    int            `json:"points" binding:"required,gt=0"`
	Metadata  map[string]any `json:"metadata"`
}

type LevelUpInfo struct {
	From int `json:"from"`
	To   int `json:"to"`
}

type AchievementSummary struct {
	ID               uuid.UUID `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description"`
	Icon             string    `json:"icon"`
	Category         string    `json:"category"`
	Rarity           string    `json:"rarity"`
	PointsReward     int       `json:"points_reward"`
	ExperienceReward int       `json:"experience_reward"`
}

type AwardResult struct {
	Points            int                  `json:"points"`
	TotalPointsEarned int                  `json:"total_points_earned"`
	Level             int                  `json:"level"`
	LevelUp           *LevelUpInfo         `json:"level_up,omitempty"`
	CurrentStreak     int                  `json:"current_streak"`
	NewAchievements   []AchievementSummary `json:"new_achievements"`
}

type LevelInfoResponse struct {
	Level         int `json:"level"`
	MinExperience int `json:"min_experience"`
	NextLevelAt   int `json:"next_level_at"`
}

type ProfileResponse struct {
	Profile          *entity.GamificationProfile `json:"profile"`
	LevelInfo        LevelInfoResponse           `json:"level_info"`
	AchievementCount int64                       `json:"achievement_count"`
}

type StreakResponse struct {
	CurrentStreak    int        `json:"current_streak"`
	LongestStreak    int        `json:"longest_streak"`
	LastActivityDate *time.Time `json:"last_activity_date"`
}

type AchievementProgress struct {
	Achievement  AchievementSummary `json:"achievement"`
	Earned       bool               `json:"earned"`
	EarnedAt     *time.Time         `json:"earned_at,omitempty"`
	Completions  int                `json:"completions"`
	CurrentValue int                `json:"current_value"`
	Threshold    int                `json:"threshold"`
	Percent      int                `json:"percent"`
}

// Preferences fields are pointers so a partial update leaves the rest
// untouched.
type PreferencesRequest struct {
	ShowOnLeaderboard *bool `json:"show_on_leaderboard"`
	ShowAchievements  *bool `json:"show_achievements"`
	Notifications     *bool `json:"notifications"`
}

type DailyChallenge struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Description  string `json:"description"`
	Target       int    `json:"target"`
	Progress     int    `json:"progress"`
	Completed    bool   `json:"completed"`
	PointsReward int    `json:"points_reward"`
}

type RankSummary struct {
	Total   *int `json:"total"`
	Weekly  *int `json:"weekly"`
	Monthly *int `json:"monthly"`
}

type DashboardResponse struct {
	Profile        *entity.GamificationProfile `json:"profile"`
	LevelInfo      LevelInfoResponse           `json:"level_info"`
	Ranks          RankSummary                 `json:"ranks"`
	RecentActivity []entity.PointLog           `json:"recent_activity"`
	Challenges     []DailyChallenge            `json:"challenges"`
}
