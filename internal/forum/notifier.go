package forum

import (
	"context"

	"parentforum/internal/dbmysql"
)

//go:generate mockgen -source=notifier.go -destination=mock_notifier.go -package=forum

// Notifier is told about social actions once they are stored. Implementations
// must not block the caller.
type Notifier interface {
	ReactionAdded(ctx context.Context, post *dbmysql.Post, actorID string)
	// CommentCreated receives the parent comment for replies, nil otherwise.
	CommentCreated(ctx context.Context, post *dbmysql.Post, comment, parent *dbmysql.Comment)
	CommentLiked(ctx context.Context, comment *dbmysql.Comment, actorID string)
}
