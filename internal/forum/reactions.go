package forum

import (
	"context"
	"errors"
	"fmt"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

var errPostNotFound = common.NotFoundOrNotOwned("Post not found")

// ReactResult is the state after a react request, read back from the store.
type ReactResult struct {
	Reacted    bool    `json:"reacted"`
	Reaction   *string `json:"reaction"`
	Counts     Tally   `json:"counts"`
	Total      int     `json:"total"`
	MyReaction *string `json:"my_reaction"`
}

type ReactionSummary struct {
	Counts      Tally    `json:"counts"`
	Total       int      `json:"total"`
	MyReactions []string `json:"my_reactions"`
}

// React applies the viewer's reaction press. An empty kind removes the
// viewer's reaction, the same kind twice toggles it off, and a different kind
// replaces it in place. Only a new or replaced reaction notifies the author.
func (s *ForumService) React(ctx context.Context, viewer common.Viewer, postID, raw string) (*ReactResult, error) {
	kind, err := common.NormalizeReaction(raw)
	if err != nil {
		return nil, err
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	existing, err := s.store.GetReaction(ctx, postID, viewer.ID)
	if err != nil {
		return nil, err
	}

	var reacted, added bool
	switch {
	case kind == "":
		if existing != nil {
			if err := s.store.DeleteReaction(ctx, existing.ID); err != nil {
				return nil, err
			}
		}
	case existing == nil:
		err := s.store.CreateReaction(ctx, &dbmysql.PostReaction{
			PostID:       postID,
			UserID:       viewer.ID,
			ReactionType: string(kind),
		})
		switch {
		case err == nil:
			added = true
		case errors.Is(err, common.ErrConflict):
			// a concurrent identical request already inserted the row
		default:
			return nil, err
		}
		reacted = true
	case existing.ReactionType == string(kind):
		if err := s.store.DeleteReaction(ctx, existing.ID); err != nil {
			return nil, err
		}
	default:
		if err := s.store.UpdateReactionKind(ctx, existing.ID, kind); err != nil {
			return nil, err
		}
		reacted, added = true, true
	}

	summary, err := s.reactionSummary(ctx, postID, viewer.ID)
	if err != nil {
		return nil, err
	}

	if added && s.notifier != nil {
		s.notifier.ReactionAdded(ctx, post, viewer.ID)
	}

	res := &ReactResult{
		Reacted: reacted,
		Counts:  summary.Counts,
		Total:   summary.Total,
	}
	if kind != "" {
		k := string(kind)
		res.Reaction = &k
	}
	if len(summary.MyReactions) > 0 {
		mine := summary.MyReactions[0]
		res.MyReaction = &mine
	}
	return res, nil
}

// Reactions reads the tally of a post and the viewer's own reactions on it.
func (s *ForumService) Reactions(ctx context.Context, viewer common.Viewer, postID string) (*ReactionSummary, error) {
	return s.reactionSummary(ctx, postID, viewer.ID)
}

func (s *ForumService) reactionSummary(ctx context.Context, postID, viewerID string) (*ReactionSummary, error) {
	rows, err := s.store.ReactionsForPosts(ctx, []string{postID})
	if err != nil {
		return nil, fmt.Errorf("read reactions: %w", err)
	}

	summary := &ReactionSummary{MyReactions: []string{}}
	for _, r := range rows {
		if !summary.Counts.Add(common.ReactionKind(r.ReactionType)) {
			continue
		}
		if r.UserID == viewerID {
			summary.MyReactions = append(summary.MyReactions, r.ReactionType)
		}
	}
	summary.Total = summary.Counts.Total()
	return summary, nil
}

// getPost loads a live post, mapping a missing one to a 404.
func (s *ForumService) getPost(ctx context.Context, postID string) (*dbmysql.Post, error) {
	post, err := s.store.GetPost(ctx, postID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, errPostNotFound
	}
	if err != nil {
		return nil, err
	}
	return post, nil
}
