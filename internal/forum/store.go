package forum

import (
	"context"
	"time"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

// FeedQuery selects one page of a feed as seen by ViewerID.
type FeedQuery struct {
	FeedType common.FeedType
	City     *string
	Category string
	ViewerID string
	Limit    int
	Offset   int
}

type Posts interface {
	CreatePost(ctx context.Context, post *dbmysql.Post) error
	// GetPost returns common.ErrNotFound for missing and soft-deleted posts.
	GetPost(ctx context.Context, id string) (*dbmysql.Post, error)
	ListFeed(ctx context.Context, q FeedQuery) ([]dbmysql.Post, error)
	// PostsByIDs skips soft-deleted posts. Order is unspecified.
	PostsByIDs(ctx context.Context, ids []string) ([]dbmysql.Post, error)
	// SoftDeletePost redacts the post if userID owns it and reports whether it did.
	SoftDeletePost(ctx context.Context, id, userID string, at time.Time) (bool, error)
	HardDeletePost(ctx context.Context, id string) error
}

type Reactions interface {
	// GetReaction returns nil, nil when the user has no reaction on the post.
	GetReaction(ctx context.Context, postID, userID string) (*dbmysql.PostReaction, error)
	CreateReaction(ctx context.Context, reaction *dbmysql.PostReaction) error
	UpdateReactionKind(ctx context.Context, id string, kind common.ReactionKind) error
	DeleteReaction(ctx context.Context, id string) error
	ReactionsForPosts(ctx context.Context, postIDs []string) ([]dbmysql.PostReaction, error)
}

type Comments interface {
	CreateComment(ctx context.Context, comment *dbmysql.Comment) error
	GetComment(ctx context.Context, id string) (*dbmysql.Comment, error)
	// CommentsForPost is ordered oldest first.
	CommentsForPost(ctx context.Context, postID string) ([]dbmysql.Comment, error)
	CountComments(ctx context.Context, postIDs []string) (map[string]int64, error)
	DeleteComment(ctx context.Context, id string) error
}

type CommentLikes interface {
	HasLiked(ctx context.Context, commentID, userID string) (bool, error)
	CreateLike(ctx context.Context, commentID, userID string) error
	DeleteLike(ctx context.Context, commentID, userID string) error
	CountLikes(ctx context.Context, commentID string) (int64, error)
	LikesForComments(ctx context.Context, commentIDs []string) ([]dbmysql.CommentLike, error)
}

type SavedPosts interface {
	IsSaved(ctx context.Context, postID, userID string) (bool, error)
	SavePost(ctx context.Context, postID, userID string) error
	UnsavePost(ctx context.Context, postID, userID string) error
	// ListSaved is ordered newest save first.
	ListSaved(ctx context.Context, userID string, limit, offset int) ([]dbmysql.SavedPost, error)
	CountSaved(ctx context.Context, userID string) (int64, error)
}

type Reports interface {
	CreateReport(ctx context.Context, report *dbmysql.Report) error
	CountReports(ctx context.Context, targetType common.TargetType, targetID string) (int64, error)
}

// Store is everything the forum service persists. Inserts that would break a
// uniqueness rule return common.ErrConflict.
type Store interface {
	Posts
	Reactions
	Comments
	CommentLikes
	SavedPosts
	Reports
}
