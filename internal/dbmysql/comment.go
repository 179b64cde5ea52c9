package dbmysql

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Comment belongs to a post. ParentID has no foreign key: a reply whose parent
// is gone stays in the table.
type Comment struct {
	ID        string    `gorm:"primaryKey;size:36" json:"id"`
	PostID    string    `gorm:"not null;index:idx_comments_post_created;size:36" json:"post_id"`
	UserID    string    `gorm:"not null;index;size:36" json:"user_id"`
	ParentID  *string   `gorm:"size:36;index" json:"parent_id"`
	Content   string    `gorm:"not null;type:text" json:"content"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_comments_post_created" json:"created_at"`

	Likes []CommentLike `gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE" json:"-"`
}

func (c *Comment) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}
