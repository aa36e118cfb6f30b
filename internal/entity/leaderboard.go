package entity

import (
	"time"

	"github.com/google/uuid"
)

const (
	LeaderboardTotal   = "total"
	LeaderboardWeekly  = "weekly"
	LeaderboardMonthly = "monthly"
)

// PeriodAllTime is the period key of the total leaderboard. Weekly
// snapshots use the ISO date of the week start, monthly ones "YYYY-MM".
const PeriodAllTime = "all-time"

// Leaderboard is a materialized snapshot, one row per (type, period).
// Entries are replaced wholesale on rebuild.
type Leaderboard struct {
	ID          uint               `gorm:"primaryKey" json:"id"`
	Type        string             `gorm:"size:20;uniqueIndex:idx_leaderboard_type_period;not null" json:"type"`
	Period      string             `gorm:"size:10;uniqueIndex:idx_leaderboard_type_period;not null" json:"period"`
	LastUpdated time.Time          `gorm:"not null" json:"last_updated"`
	Entries     []LeaderboardEntry `gorm:"foreignKey:LeaderboardID;constraint:OnDelete:CASCADE" json:"entries"`
}

type LeaderboardEntry struct {
	ID               uint      `gorm:"primaryKey" json:"-"`
	LeaderboardID    uint      `gorm:"index;not null" json:"-"`
	StudentID        uuid.UUID `gorm:"type:uuid;not null" json:"student_id"`
	Student          Student   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Rank             int       `gorm:"not null" json:"rank"`
	Points           int       `gorm:"not null" json:"points"`
	Level            int       `gorm:"default:1" json:"level"`
	Streak           int       `gorm:"default:0" json:"streak"`
	AchievementCount int       `gorm:"default:0" json:"achievement_count"`
}
