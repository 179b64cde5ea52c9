package dbmysql

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"parentforum/internal/common"
)

// Post is a forum post. City is set only for city scoped posts.
type Post struct {
	ID          string                      `gorm:"primaryKey;size:36" json:"id"`
	UserID      string                      `gorm:"not null;index;size:36" json:"user_id"`
	Title       string                      `gorm:"not null;size:255" json:"title"`
	Content     string                      `gorm:"not null;type:text" json:"content"`
	Category    string                      `gorm:"size:255;index" json:"category"`
	MediaURLs   datatypes.JSONSlice[string] `gorm:"column:media_urls" json:"media_urls"`
	IsAnonymous bool                        `gorm:"not null;default:false" json:"is_anonymous"`
	PostType    *string                     `gorm:"size:20" json:"post_type"`
	FeedType    string                      `gorm:"not null;size:10;default:'global';index:idx_posts_scope" json:"feed_type"`
	City        *string                     `gorm:"size:100;index:idx_posts_scope" json:"city"`
	IsDeleted   bool                        `gorm:"not null;default:false" json:"is_deleted"`
	DeletedAt   *time.Time                  `json:"deleted_at"`
	CreatedAt   time.Time                   `gorm:"autoCreateTime;index" json:"created_at"`
	UpdatedAt   time.Time                   `gorm:"autoUpdateTime" json:"updated_at"`

	Comments  []Comment      `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Reactions []PostReaction `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
	Saves     []SavedPost    `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"-"`
}

func (p *Post) BeforeCreate(tx *gorm.DB) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	return nil
}

// BeforeSave keeps the scope invariant: city is present iff the post is city scoped.
// Column-only updates through a map run this against an empty model and pass.
func (p *Post) BeforeSave(tx *gorm.DB) error {
	if p.FeedType == "" {
		return nil
	}
	isCity := p.FeedType == string(common.FeedCity)
	if isCity != (p.City != nil) {
		return common.NewValidationError("city must be set for city posts and only for them")
	}
	return nil
}
