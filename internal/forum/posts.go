package forum

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"gorm.io/datatypes"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

const (
	deletedPostTitle   = "[This post was deleted]"
	deletedPostContent = "[This post was removed by the author]"
)

// TagList accepts either a JSON array of tags or a single string.
type TagList struct {
	Tags  []string
	Raw   string
	Array bool
}

func (t *TagList) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		return nil
	}
	if err := json.Unmarshal(data, &t.Tags); err == nil {
		t.Array = true
		return nil
	}
	if err := json.Unmarshal(data, &t.Raw); err != nil {
		return common.NewValidationError("tags must be a string or a list of strings")
	}
	return nil
}

type NewPost struct {
	Title       string   `json:"title"`
	Content     string   `json:"content"`
	Category    string   `json:"category"`
	Tags        TagList  `json:"tags"`
	MediaURLs   []string `json:"media_urls"`
	IsAnonymous bool     `json:"is_anonymous"`
	PostType    string   `json:"post_type"`
	FeedType    string   `json:"feed_type"`
}

// category folds tags into the stored category string. An array wins over
// the category field, which wins over a plain tags string.
func (in NewPost) category() string {
	switch {
	case in.Tags.Array:
		return strings.Join(in.Tags.Tags, ",")
	case in.Category != "":
		return in.Category
	default:
		return in.Tags.Raw
	}
}

type DeleteResult struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// CreatePost validates and stores a post. City posts take the viewer's
// current city from the account store, never from the request.
func (s *ForumService) CreatePost(ctx context.Context, viewer common.Viewer, in NewPost) (*dbmysql.Post, error) {
	postType, err := common.ValidatePostType(in.PostType)
	if err != nil {
		return nil, err
	}
	feedType, city, err := common.ValidateFeedType(in.FeedType, viewer.City)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Title) == "" || strings.TrimSpace(in.Content) == "" {
		return nil, common.NewValidationError("Title and content required")
	}

	clean, err := common.CheckText("Post", in.Title, in.Content)
	if err != nil {
		return nil, err
	}
	// markup-only input sanitises to nothing
	if clean[0] == "" || clean[1] == "" {
		return nil, common.NewValidationError("Title and content required")
	}

	media := datatypes.JSONSlice[string]{}
	for _, u := range in.MediaURLs {
		if u = strings.TrimSpace(u); u != "" {
			media = append(media, u)
		}
	}

	post := &dbmysql.Post{
		UserID:      viewer.ID,
		Title:       clean[0],
		Content:     clean[1],
		Category:    in.category(),
		MediaURLs:   media,
		IsAnonymous: in.IsAnonymous,
		FeedType:    string(feedType),
		City:        city,
	}
	if postType != nil {
		pt := string(*postType)
		post.PostType = &pt
	}

	if err := s.store.CreatePost(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// DeletePost redacts the viewer's own post. Missing and foreign posts get the
// same answer.
func (s *ForumService) DeletePost(ctx context.Context, viewer common.Viewer, postID string) (*DeleteResult, error) {
	ok, err := s.store.SoftDeletePost(ctx, postID, viewer.ID, s.now())
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, common.NotFoundOrNotOwned("Post not found or not owned by you")
	}
	return &DeleteResult{Success: true, Message: "Post deleted"}, nil
}

// DeleteComment removes the viewer's own comment. Replies under it stay and
// surface as roots.
func (s *ForumService) DeleteComment(ctx context.Context, viewer common.Viewer, commentID string) (*DeleteResult, error) {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil && !errors.Is(err, common.ErrNotFound) {
		return nil, err
	}
	if comment == nil || comment.UserID != viewer.ID {
		return nil, common.NotOwned("You can only delete your own comment")
	}

	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return nil, err
	}
	return &DeleteResult{Success: true}, nil
}
