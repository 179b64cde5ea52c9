package notif

import (
	"context"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

const replyMessage = "replied to your comment"

// FanOut turns forum actions into notification events. Nobody is notified
// about their own action, and a post author who also wrote the parent
// comment gets only the comment_reply.
type FanOut struct {
	subject common.Subject
}

func NewFanOut(subject common.Subject) *FanOut {
	return &FanOut{subject: subject}
}

func (f *FanOut) ReactionAdded(ctx context.Context, post *dbmysql.Post, actorID string) {
	if post == nil || post.UserID == actorID {
		return
	}
	f.emit(common.NotificationEvent{
		Type:          common.NotificationReaction,
		RecipientID:   post.UserID,
		TriggerUserID: actorID,
		PostID:        ptr(post.ID),
	})
}

func (f *FanOut) CommentCreated(ctx context.Context, post *dbmysql.Post, comment, parent *dbmysql.Comment) {
	if post == nil || comment == nil {
		return
	}
	actorID := comment.UserID

	if parent != nil && parent.UserID != actorID {
		msg := replyMessage
		f.emit(common.NotificationEvent{
			Type:          common.NotificationCommentReply,
			RecipientID:   parent.UserID,
			TriggerUserID: actorID,
			PostID:        ptr(post.ID),
			CommentID:     ptr(comment.ID),
			Message:       &msg,
		})
	}

	if post.UserID == actorID || (parent != nil && parent.UserID == post.UserID) {
		return
	}
	f.emit(common.NotificationEvent{
		Type:          common.NotificationReply,
		RecipientID:   post.UserID,
		TriggerUserID: actorID,
		PostID:        ptr(post.ID),
		CommentID:     ptr(comment.ID),
	})
}

func (f *FanOut) CommentLiked(ctx context.Context, comment *dbmysql.Comment, actorID string) {
	if comment == nil || comment.UserID == actorID {
		return
	}
	f.emit(common.NotificationEvent{
		Type:          common.NotificationCommentLike,
		RecipientID:   comment.UserID,
		TriggerUserID: actorID,
		PostID:        ptr(comment.PostID),
		CommentID:     ptr(comment.ID),
	})
}

func (f *FanOut) emit(event common.NotificationEvent) {
	if event.RecipientID == "" {
		return
	}
	f.subject.NotifyAsync(event)
}

func ptr(s string) *string {
	return &s
}
