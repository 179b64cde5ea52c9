package forum

import (
	"context"
	"errors"

	"parentforum/internal/common"
)

type SaveResult struct {
	Saved bool `json:"saved"`
}

type SavedPage struct {
	Posts []EnrichedPost `json:"posts"`
	Total int64          `json:"total"`
}

// ToggleSave bookmarks the post, or removes the bookmark if it exists.
func (s *ForumService) ToggleSave(ctx context.Context, viewer common.Viewer, postID string) (*SaveResult, error) {
	saved, err := s.store.IsSaved(ctx, postID, viewer.ID)
	if err != nil {
		return nil, err
	}
	if saved {
		if err := s.store.UnsavePost(ctx, postID, viewer.ID); err != nil {
			return nil, err
		}
		return &SaveResult{Saved: false}, nil
	}

	if _, err := s.getPost(ctx, postID); err != nil {
		return nil, err
	}
	if err := s.store.SavePost(ctx, postID, viewer.ID); err != nil && !errors.Is(err, common.ErrConflict) {
		return nil, err
	}
	return &SaveResult{Saved: true}, nil
}

// SavedPosts lists the viewer's bookmarks in save order, newest first.
// Bookmarks of deleted posts are skipped but still counted in Total.
func (s *ForumService) SavedPosts(ctx context.Context, viewer common.Viewer, page int) (*SavedPage, error) {
	saved, err := s.store.ListSaved(ctx, viewer.ID, PageSize, offset(page))
	if err != nil {
		return nil, err
	}
	if len(saved) == 0 {
		return &SavedPage{Posts: []EnrichedPost{}}, nil
	}

	total, err := s.store.CountSaved(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(saved))
	for i, sp := range saved {
		ids[i] = sp.PostID
	}
	posts, err := s.store.PostsByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	enriched, err := s.enricher.Enrich(ctx, posts, viewer.ID)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]EnrichedPost, len(enriched))
	for _, p := range enriched {
		byID[p.ID] = p
	}

	out := make([]EnrichedPost, 0, len(saved))
	for _, sp := range saved {
		p, ok := byID[sp.PostID]
		if !ok {
			continue
		}
		at := sp.CreatedAt
		p.SavedAt = &at
		out = append(out, p)
	}
	return &SavedPage{Posts: out, Total: total}, nil
}
