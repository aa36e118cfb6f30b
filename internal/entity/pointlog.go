package entity

import (
	"time"

	"github.com/google/uuid"
)

// PointLog is the append-only audit trail of awards. Experience here is
// the total granted by the award, achievement rewards included.
type PointLog struct {
	ID         uint      `gorm:"primaryKey" json:"id"`
	StudentID  uuid.UUID `gorm:"type:uuid;index;not null" json:"student_id"`
	Activity   string    `gorm:"size:50;not null" json:"activity"`
	Points     int       `gorm:"not null" json:"points"`
	Experience int       `gorm:"default:0" json:"experience"`
	Metadata   *string   `gorm:"type:jsonb" json:"metadata,omitempty"`
	CreatedAt  time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
