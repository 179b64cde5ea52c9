package dbmysql

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Report has no foreign key on its target: reports outlive what they point at.
type Report struct {
	ID         string    `gorm:"primaryKey;size:36" json:"id"`
	TargetType string    `gorm:"not null;size:10;index:idx_reports_target" json:"target_type"`
	TargetID   string    `gorm:"not null;size:36;index:idx_reports_target" json:"target_id"`
	ReporterID string    `gorm:"not null;size:36;index" json:"reporter_id"`
	Reason     string    `gorm:"not null;type:text" json:"reason"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (r *Report) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}
