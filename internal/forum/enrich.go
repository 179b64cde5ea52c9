package forum

import (
	"context"
	"fmt"
	"time"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
	"parentforum/internal/profile"
)

// EditWindow is how long after creation the author is told the post can
// still be edited or undone.
const EditWindow = 15 * time.Minute

// IdentityResolver maps forum user ids to display identities.
type IdentityResolver interface {
	Resolve(ctx context.Context, ids []string) (map[string]profile.Identity, error)
}

// Tally counts reactions per kind.
type Tally struct {
	Like       int `json:"like"`
	Support    int `json:"support"`
	Celebrate  int `json:"celebrate"`
	Love       int `json:"love"`
	Insightful int `json:"insightful"`
}

// Add counts one reaction. Kinds outside the set are ignored.
func (t *Tally) Add(kind common.ReactionKind) bool {
	switch kind {
	case common.ReactionLike:
		t.Like++
	case common.ReactionSupport:
		t.Support++
	case common.ReactionCelebrate:
		t.Celebrate++
	case common.ReactionLove:
		t.Love++
	case common.ReactionInsightful:
		t.Insightful++
	default:
		return false
	}
	return true
}

func (t Tally) Total() int {
	return t.Like + t.Support + t.Celebrate + t.Love + t.Insightful
}

// EnrichedPost is a post as the viewer sees it.
type EnrichedPost struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id,omitempty"`
	Title       string    `json:"title"`
	Content     string    `json:"content"`
	Category    string    `json:"category"`
	MediaURLs   []string  `json:"media_urls"`
	IsAnonymous bool      `json:"is_anonymous"`
	PostType    *string   `json:"post_type"`
	FeedType    string    `json:"feed_type"`
	City        *string   `json:"city"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Username          string     `json:"username"`
	ReactionCounts    Tally      `json:"reaction_counts"`
	TotalReactions    int        `json:"total_reactions"`
	MyReactions       []string   `json:"my_reactions"`
	CommentCount      int64      `json:"comment_count"`
	IsOwnPost         bool       `json:"isOwnPost"`
	TimeRemaining     int64      `json:"timeRemaining"` // milliseconds
	CanEditUndoDelete bool       `json:"canEditUndoDelete"`
	SavedAt           *time.Time `json:"saved_at,omitempty"`
}

type enrichStore interface {
	ReactionsForPosts(ctx context.Context, postIDs []string) ([]dbmysql.PostReaction, error)
	CountComments(ctx context.Context, postIDs []string) (map[string]int64, error)
}

// Enricher attaches authorship, reaction and comment state to a page of posts
// with a fixed number of queries per page.
type Enricher struct {
	store    enrichStore
	resolver IdentityResolver
	now      func() time.Time
}

// NewEnricher measures the edit window against now.
func NewEnricher(store enrichStore, resolver IdentityResolver, now func() time.Time) *Enricher {
	return &Enricher{store: store, resolver: resolver, now: now}
}

// Enrich keeps the input order. Any lookup failure fails the whole page.
func (e *Enricher) Enrich(ctx context.Context, posts []dbmysql.Post, viewerID string) ([]EnrichedPost, error) {
	out := make([]EnrichedPost, 0, len(posts))
	if len(posts) == 0 {
		return out, nil
	}

	postIDs := make([]string, len(posts))
	authorIDs := make([]string, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		authorIDs[i] = p.UserID
	}

	identities, err := e.resolver.Resolve(ctx, authorIDs)
	if err != nil {
		return nil, fmt.Errorf("enrich authors: %w", err)
	}

	reactions, err := e.store.ReactionsForPosts(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("enrich reactions: %w", err)
	}
	tallies := make(map[string]*Tally, len(posts))
	mine := make(map[string][]string)
	for _, r := range reactions {
		t, ok := tallies[r.PostID]
		if !ok {
			t = &Tally{}
			tallies[r.PostID] = t
		}
		t.Add(common.ReactionKind(r.ReactionType))
		if r.UserID == viewerID {
			mine[r.PostID] = append(mine[r.PostID], r.ReactionType)
		}
	}

	comments, err := e.store.CountComments(ctx, postIDs)
	if err != nil {
		return nil, fmt.Errorf("enrich comment counts: %w", err)
	}

	now := e.now()
	for _, p := range posts {
		ep := basePost(p)

		ident, known := identities[p.UserID]
		switch {
		case p.IsAnonymous:
			ep.Username = "Anonymous"
			ep.City = nil
			if p.UserID != viewerID {
				ep.UserID = ""
			}
		default:
			ep.Username = "Unknown"
			if known && ident.Username != "" {
				ep.Username = ident.Username
			}
			if ep.City == nil && known && ident.City != "" {
				city := ident.City
				ep.City = &city
			}
		}

		if t, ok := tallies[p.ID]; ok {
			ep.ReactionCounts = *t
		}
		ep.TotalReactions = ep.ReactionCounts.Total()
		ep.MyReactions = mine[p.ID]
		if ep.MyReactions == nil {
			ep.MyReactions = []string{}
		}
		ep.CommentCount = comments[p.ID]

		ep.IsOwnPost = p.UserID == viewerID
		if ep.IsOwnPost {
			ep.TimeRemaining = remainingWindow(p.CreatedAt, now).Milliseconds()
		}
		ep.CanEditUndoDelete = ep.IsOwnPost && ep.TimeRemaining > 0

		out = append(out, ep)
	}

	return out, nil
}

// remainingWindow is max(0, EditWindow - (now - created)).
func remainingWindow(created, now time.Time) time.Duration {
	left := EditWindow - now.Sub(created)
	if left < 0 {
		return 0
	}
	return left
}

func basePost(p dbmysql.Post) EnrichedPost {
	media := []string(p.MediaURLs)
	if media == nil {
		media = []string{}
	}
	return EnrichedPost{
		ID:          p.ID,
		UserID:      p.UserID,
		Title:       p.Title,
		Content:     p.Content,
		Category:    p.Category,
		MediaURLs:   media,
		IsAnonymous: p.IsAnonymous,
		PostType:    p.PostType,
		FeedType:    p.FeedType,
		City:        p.City,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
