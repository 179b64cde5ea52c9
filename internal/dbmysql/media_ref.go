package dbmysql

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// MediaRef records a blob uploaded to GridFS for use in a post.
type MediaRef struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	FileID      string    `gorm:"size:24;uniqueIndex" json:"file_id"` // MongoDB ObjectID
	Type        string    `gorm:"size:20" json:"type"`                // image, video
	FileName    string    `gorm:"size:255" json:"file_name"`
	ContentType string    `gorm:"size:100" json:"content_type"`
	URL         string    `gorm:"size:500" json:"url"`
	Size        int64     `json:"size"`
	UploadedBy  string    `gorm:"size:36;index" json:"uploaded_by"` // forum uid
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (MediaRef) TableName() string {
	return "media_refs"
}

func (m *MediaRef) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}
