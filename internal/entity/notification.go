package entity

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const (
	NotificationAchievementEarned = "achievement_earned"
	NotificationLevelUp           = "level_up"
	NotificationRankUp            = "rank_up"
)

type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	StudentID uuid.UUID `gorm:"type:uuid;index;not null" json:"student_id"`
	Type      string    `gorm:"size:30;not null" json:"type"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Data      *string   `gorm:"type:jsonb" json:"data,omitempty"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
