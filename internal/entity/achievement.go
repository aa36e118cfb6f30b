package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	CategoryLearning  = "learning"
	CategorySocial    = "social"
	CategoryStreak    = "streak"
	CategoryMilestone = "milestone"
	CategorySpecial   = "special"
)

const (
	RarityCommon    = "common"
	RarityUncommon  = "uncommon"
	RarityRare      = "rare"
	RarityEpic      = "epic"
	RarityLegendary = "legendary"
)

const (
	TimeFrameLifetime = "lifetime"
	TimeFrameDaily    = "daily"
	TimeFrameWeekly   = "weekly"
	TimeFrameMonthly  = "monthly"
)

// Achievement is one row of the admin-managed catalog. Criteria are fully
// data-driven: CriteriaType names a profile counter and Threshold is the
// value that counter must reach.
type Achievement struct {
	ID               uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name             string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	Description      string    `gorm:"type:text;not null" json:"description"`
	Icon             string    `gorm:"size:50" json:"icon"`
	Category         string    `gorm:"size:30;index;not null" json:"category"`
	Rarity           string    `gorm:"size:20;default:common" json:"rarity"`
	CriteriaType     string    `gorm:"size:50;not null" json:"criteria_type"`
	Threshold        int       `gorm:"not null" json:"threshold"`
	TimeFrame        string    `gorm:"size:20;default:lifetime" json:"time_frame"`
	PointsReward     int       `gorm:"default:0" json:"points_reward"`
	ExperienceReward int       `gorm:"default:0" json:"experience_reward"`
	IsActive         bool      `gorm:"default:true;index" json:"is_active"`
	IsHidden         bool      `gorm:"default:false" json:"is_hidden"`
	IsRepeatable     bool      `gorm:"default:false" json:"is_repeatable"`
	// No column default here: gorm drops zero-valued fields that carry one
	// on insert, and zero means unlimited for repeatable definitions. The
	// service and the seeds normalize non-repeatable rows to 1 explicitly.
	MaxCompletions int       `json:"max_completions"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Achievement) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}

// StudentAchievement records one earned achievement. Repeatable
// achievements reuse the row and bump Completions.
type StudentAchievement struct {
	ID            uint        `gorm:"primaryKey" json:"id"`
	StudentID     uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_student_achievement;not null" json:"student_id"`
	AchievementID uuid.UUID   `gorm:"type:uuid;uniqueIndex:idx_student_achievement;not null" json:"achievement_id"`
	Achievement   Achievement `gorm:"constraint:OnDelete:CASCADE" json:"achievement"`
	EarnedAt      time.Time   `gorm:"not null" json:"earned_at"`
	Progress      int         `gorm:"default:0" json:"progress"`
	Completions   int         `gorm:"default:1" json:"completions"`
}
