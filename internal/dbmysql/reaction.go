package dbmysql

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PostReaction holds at most one row per (post, user).
type PostReaction struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	PostID       string    `gorm:"not null;size:36;uniqueIndex:uq_post_reactions_post_user" json:"post_id"`
	UserID       string    `gorm:"not null;size:36;uniqueIndex:uq_post_reactions_post_user;index" json:"user_id"`
	ReactionType string    `gorm:"not null;size:20" json:"reaction_type"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PostReaction) TableName() string {
	return "post_reactions"
}

func (r *PostReaction) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.NewString()
	}
	return nil
}

// CommentLike exists while the user likes the comment.
type CommentLike struct {
	CommentID string    `gorm:"primaryKey;size:36" json:"comment_id"`
	UserID    string    `gorm:"primaryKey;size:36" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}

// SavedPost is a bookmark, listed by save time.
type SavedPost struct {
	PostID    string    `gorm:"primaryKey;size:36" json:"post_id"`
	UserID    string    `gorm:"primaryKey;size:36;index:idx_saved_posts_user_created" json:"user_id"`
	CreatedAt time.Time `gorm:"autoCreateTime;index:idx_saved_posts_user_created" json:"created_at"`
}
