package dbmysql

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Notification struct {
	ID            string    `gorm:"primaryKey;size:36" json:"id"`
	UserID        string    `gorm:"not null;index:idx_notifications_user_created;size:36" json:"user_id"`
	Type          string    `gorm:"not null;size:20" json:"type"`
	PostID        *string   `gorm:"size:36" json:"post_id"`
	CommentID     *string   `gorm:"size:36" json:"comment_id"`
	TriggerUserID string    `gorm:"not null;size:36" json:"trigger_user_id"`
	Message       *string   `gorm:"size:255" json:"message"`
	Read          bool      `gorm:"column:is_read;not null;default:false" json:"read"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index:idx_notifications_user_created" json:"created_at"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// NotificationRow is a notification joined with the post it refers to.
type NotificationRow struct {
	Notification
	PostTitle    *string
	PostCategory *string
}
