package notif

import (
	"context"
	"fmt"
	"log"
	"time"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
	"parentforum/internal/profile"
)

type NotificationStore interface {
	ByRecipient(ctx context.Context, userID string) ([]dbmysql.NotificationRow, error)
	MarkAllRead(ctx context.Context, userID string) error
	ReactionsBy(ctx context.Context, postIDs, userIDs []string) ([]dbmysql.PostReaction, error)
}

type IdentityResolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]profile.Identity, error)
}

// PostRef is the part of the referenced post shown next to a notification.
type PostRef struct {
	Title    string `json:"title"`
	Category string `json:"category"`
}

type NotificationView struct {
	ID              string    `json:"id"`
	Type            string    `json:"type"`
	PostID          *string   `json:"post_id"`
	CommentID       *string   `json:"comment_id"`
	TriggerUserID   string    `json:"trigger_user_id"`
	Read            bool      `json:"read"`
	CreatedAt       time.Time `json:"created_at"`
	Posts           *PostRef  `json:"posts"`
	TriggerUsername string    `json:"trigger_username"`
	Message         *string   `json:"message"`
}

type NotificationService struct {
	repo     NotificationStore
	resolver IdentityResolver
}

func NewNotificationService(repo NotificationStore, resolver IdentityResolver) *NotificationService {
	return &NotificationService{repo: repo, resolver: resolver}
}

// List returns the viewer's notifications, newest first. Reaction
// notifications carry the trigger user's reaction as it is now, which may
// differ from the one that caused the notification.
func (s *NotificationService) List(ctx context.Context, viewerID string) ([]NotificationView, error) {
	rows, err := s.repo.ByRecipient(ctx, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to get notifications: %w", err)
	}

	views := make([]NotificationView, len(rows))
	if len(rows) == 0 {
		return views, nil
	}

	triggerIDs := make([]string, len(rows))
	for i, row := range rows {
		triggerIDs[i] = row.TriggerUserID
	}
	identities, err := s.resolver.Resolve(ctx, triggerIDs)
	if err != nil {
		log.Printf("Failed to resolve notification senders: %v", err)
	}

	for i, row := range rows {
		views[i] = NotificationView{
			ID:              row.ID,
			Type:            row.Type,
			PostID:          row.PostID,
			CommentID:       row.CommentID,
			TriggerUserID:   row.TriggerUserID,
			Read:            row.Read,
			CreatedAt:       row.CreatedAt,
			TriggerUsername: profile.DisplayName(identities, row.TriggerUserID, "Unknown"),
			Message:         row.Message,
		}
		if row.PostTitle != nil {
			ref := &PostRef{Title: *row.PostTitle}
			if row.PostCategory != nil {
				ref.Category = *row.PostCategory
			}
			views[i].Posts = ref
		}
	}

	if err := s.labelReactions(ctx, views); err != nil {
		log.Printf("Failed to enrich reaction notifications with reaction_type: %v", err)
	}
	return views, nil
}

// labelReactions sets the message of reaction notifications to the trigger
// user's current reaction on the post, or nil when there is none.
func (s *NotificationService) labelReactions(ctx context.Context, views []NotificationView) error {
	var postIDs, userIDs []string
	var targets []int
	for i, v := range views {
		if v.Type != string(common.NotificationReaction) || v.PostID == nil || v.TriggerUserID == "" {
			continue
		}
		targets = append(targets, i)
		postIDs = append(postIDs, *v.PostID)
		userIDs = append(userIDs, v.TriggerUserID)
	}
	if len(targets) == 0 {
		return nil
	}

	reactions, err := s.repo.ReactionsBy(ctx, dedupe(postIDs), dedupe(userIDs))
	if err != nil {
		return err
	}
	current := make(map[[2]string]string, len(reactions))
	for _, r := range reactions {
		current[[2]string{r.PostID, r.UserID}] = r.ReactionType
	}

	for _, i := range targets {
		views[i].Message = nil
		if kind, ok := current[[2]string{*views[i].PostID, views[i].TriggerUserID}]; ok {
			k := kind
			views[i].Message = &k
		}
	}
	return nil
}

// MarkAllRead flags every notification of the viewer as read.
func (s *NotificationService) MarkAllRead(ctx context.Context, viewerID string) error {
	return s.repo.MarkAllRead(ctx, viewerID)
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
