package forum

import (
	"context"
	"errors"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

type LikeResult struct {
	Liked       bool  `json:"liked"`
	TotalLikes  int64 `json:"total_likes"`
	IsLikedByMe bool  `json:"is_liked_by_me"`
}

type LikeSummary struct {
	TotalLikes  int64 `json:"total_likes"`
	IsLikedByMe bool  `json:"is_liked_by_me"`
}

var errCommentNotFound = common.NotFoundOrNotOwned("Comment not found")

// ToggleCommentLike flips the viewer's like. Only an inserted like notifies
// the comment author.
func (s *ForumService) ToggleCommentLike(ctx context.Context, viewer common.Viewer, commentID string) (*LikeResult, error) {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return nil, err
	}

	liked, err := s.store.HasLiked(ctx, commentID, viewer.ID)
	if err != nil {
		return nil, err
	}

	added := false
	if liked {
		if err := s.store.DeleteLike(ctx, commentID, viewer.ID); err != nil {
			return nil, err
		}
	} else {
		err := s.store.CreateLike(ctx, commentID, viewer.ID)
		if err != nil && !errors.Is(err, common.ErrConflict) {
			return nil, err
		}
		added = err == nil
	}

	total, err := s.store.CountLikes(ctx, commentID)
	if err != nil {
		return nil, err
	}

	if added && s.notifier != nil {
		s.notifier.CommentLiked(ctx, comment, viewer.ID)
	}
	return &LikeResult{Liked: !liked, TotalLikes: total, IsLikedByMe: !liked}, nil
}

// UnlikeComment removes the viewer's like if there is one. It never notifies
// and repeating it changes nothing.
func (s *ForumService) UnlikeComment(ctx context.Context, viewer common.Viewer, commentID string) (*LikeResult, error) {
	if err := s.store.DeleteLike(ctx, commentID, viewer.ID); err != nil {
		return nil, err
	}
	total, err := s.store.CountLikes(ctx, commentID)
	if err != nil {
		return nil, err
	}
	return &LikeResult{Liked: false, TotalLikes: total}, nil
}

func (s *ForumService) CommentLikes(ctx context.Context, viewer common.Viewer, commentID string) (*LikeSummary, error) {
	total, err := s.store.CountLikes(ctx, commentID)
	if err != nil {
		return nil, err
	}
	mine, err := s.store.HasLiked(ctx, commentID, viewer.ID)
	if err != nil {
		return nil, err
	}
	return &LikeSummary{TotalLikes: total, IsLikedByMe: mine}, nil
}

func (s *ForumService) getComment(ctx context.Context, commentID string) (*dbmysql.Comment, error) {
	comment, err := s.store.GetComment(ctx, commentID)
	if errors.Is(err, common.ErrNotFound) {
		return nil, errCommentNotFound
	}
	if err != nil {
		return nil, err
	}
	return comment, nil
}
