package forum

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

type NewComment struct {
	Content  string  `json:"content"`
	ParentID *string `json:"parent_id"`
}

type ThreadResult struct {
	Comments []*CommentNode `json:"comments"`
}

// CreateComment stores a comment or a reply. A reply must point at a comment
// of the same post.
func (s *ForumService) CreateComment(ctx context.Context, viewer common.Viewer, postID string, in NewComment) (*dbmysql.Comment, error) {
	if strings.TrimSpace(in.Content) == "" {
		return nil, common.NewValidationError("Content required")
	}
	clean, err := common.CheckText("Comment", in.Content)
	if err != nil {
		return nil, err
	}
	if clean[0] == "" {
		return nil, common.NewValidationError("Content required")
	}

	post, err := s.getPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	var parent *dbmysql.Comment
	if in.ParentID != nil && *in.ParentID != "" {
		parent, err = s.store.GetComment(ctx, *in.ParentID)
		if errors.Is(err, common.ErrNotFound) || (err == nil && parent.PostID != post.ID) {
			return nil, common.NewValidationError("Invalid parent_id")
		}
		if err != nil {
			return nil, err
		}
	}

	comment := &dbmysql.Comment{
		PostID:  post.ID,
		UserID:  viewer.ID,
		Content: clean[0],
	}
	if parent != nil {
		comment.ParentID = &parent.ID
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.CommentCreated(ctx, post, comment, parent)
	}
	return comment, nil
}

// Thread returns the comment forest of a post with like state for the viewer.
func (s *ForumService) Thread(ctx context.Context, viewer common.Viewer, postID string) (*ThreadResult, error) {
	comments, err := s.store.CommentsForPost(ctx, postID)
	if err != nil {
		return nil, err
	}
	if len(comments) == 0 {
		return &ThreadResult{Comments: []*CommentNode{}}, nil
	}

	ids := make([]string, len(comments))
	authors := make([]string, len(comments))
	for i, c := range comments {
		ids[i] = c.ID
		authors[i] = c.UserID
	}

	identities, err := s.resolver.Resolve(ctx, authors)
	if err != nil {
		return nil, fmt.Errorf("resolve comment authors: %w", err)
	}
	likes, err := s.store.LikesForComments(ctx, ids)
	if err != nil {
		return nil, err
	}

	return &ThreadResult{Comments: BuildThread(comments, identities, likes, viewer.ID)}, nil
}
