package common

import (
	"context"
	"strings"
)

type ReactionKind string

const (
	ReactionLike       ReactionKind = "like"
	ReactionSupport    ReactionKind = "support"
	ReactionCelebrate  ReactionKind = "celebrate"
	ReactionLove       ReactionKind = "love"
	ReactionInsightful ReactionKind = "insightful"
)

// ReactionKinds lists every accepted reaction in display order.
var ReactionKinds = []ReactionKind{
	ReactionLike,
	ReactionSupport,
	ReactionCelebrate,
	ReactionLove,
	ReactionInsightful,
}

func (k ReactionKind) String() string {
	return string(k)
}

func (k ReactionKind) IsValid() bool {
	for _, v := range ReactionKinds {
		if k == v {
			return true
		}
	}
	return false
}

// NormalizeReaction maps legacy aliases onto the canonical set.
// An empty input means "remove my reaction" and returns "".
func NormalizeReaction(raw string) (ReactionKind, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", nil
	}
	if raw == "heart" || raw == "care" {
		raw = string(ReactionLove)
	}
	kind := ReactionKind(raw)
	if !kind.IsValid() {
		return "", NewValidationError("Invalid reaction")
	}
	return kind, nil
}

type NotificationType string

const (
	NotificationReaction     NotificationType = "reaction"
	NotificationCommentReply NotificationType = "comment_reply"
	NotificationReply        NotificationType = "reply"
	NotificationCommentLike  NotificationType = "comment_like"
)

type PostType string

const (
	PostTypeQuery   PostType = "query"
	PostTypeInsight PostType = "insight"
)

type FeedType string

const (
	FeedGlobal FeedType = "global"
	FeedCity   FeedType = "city"
)

type TargetType string

const (
	TargetPost    TargetType = "post"
	TargetComment TargetType = "comment"
)

// Account is the authoritative user record owned by the identity side of the app.
type Account struct {
	ID          string // Mongo ObjectID hex
	Username    string
	CurrentCity string
	ForumUID    string
}

// Viewer is the resolved identity attached to every authenticated request.
type Viewer struct {
	ID        string // forum uid
	AccountID string
	Username  string
	City      string
}

type viewerKey struct{}

func WithViewer(ctx context.Context, v Viewer) context.Context {
	return context.WithValue(ctx, viewerKey{}, v)
}

func ViewerFrom(ctx context.Context) (Viewer, bool) {
	v, ok := ctx.Value(viewerKey{}).(Viewer)
	return v, ok && v.ID != ""
}

type NotificationEvent struct {
	Type          NotificationType
	RecipientID   string
	TriggerUserID string
	PostID        *string
	CommentID     *string
	Message       *string
}
