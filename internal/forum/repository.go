package forum

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

type ForumRepository struct {
	db *gorm.DB
}

func NewForumRepository(db *gorm.DB) *ForumRepository {
	return &ForumRepository{db: db}
}

// storeErr maps driver errors onto the common sentinels.
func storeErr(op string, err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return common.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return common.ErrConflict
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

// --------- POSTS ---------

func (r *ForumRepository) CreatePost(ctx context.Context, post *dbmysql.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return storeErr("create post", err)
	}
	return nil
}

func (r *ForumRepository) GetPost(ctx context.Context, id string) (*dbmysql.Post, error) {
	var post dbmysql.Post
	err := r.db.WithContext(ctx).
		Where("id = ? AND is_deleted = ?", id, false).
		First(&post).Error
	if err != nil {
		return nil, storeErr("get post", err)
	}
	return &post, nil
}

func (r *ForumRepository) ListFeed(ctx context.Context, q FeedQuery) ([]dbmysql.Post, error) {
	db := r.db.WithContext(ctx)
	reported := db.Model(&dbmysql.Report{}).
		Select("target_id").
		Where("target_type = ? AND reporter_id = ?", common.TargetPost, q.ViewerID)

	query := db.Where("feed_type = ? AND is_deleted = ?", q.FeedType, false)
	if q.City != nil {
		query = query.Where("city = ?", *q.City)
	}
	if q.Category != "" && q.Category != "all" {
		query = query.Where("category = ?", q.Category)
	}

	var posts []dbmysql.Post
	err := query.
		Where("id NOT IN (?)", reported).
		Order("created_at DESC").
		Limit(q.Limit).
		Offset(q.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, storeErr("list feed", err)
	}
	return posts, nil
}

func (r *ForumRepository) PostsByIDs(ctx context.Context, ids []string) ([]dbmysql.Post, error) {
	var posts []dbmysql.Post
	if len(ids) == 0 {
		return posts, nil
	}
	err := r.db.WithContext(ctx).
		Where("id IN ? AND is_deleted = ?", ids, false).
		Find(&posts).Error
	if err != nil {
		return nil, storeErr("get posts", err)
	}
	return posts, nil
}

func (r *ForumRepository) SoftDeletePost(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	res := r.db.WithContext(ctx).
		Model(&dbmysql.Post{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"is_deleted": true,
			"deleted_at": at,
			"title":      deletedPostTitle,
			"content":    deletedPostContent,
			"media_urls": datatypes.JSONSlice[string]{},
		})
	if res.Error != nil {
		return false, storeErr("delete post", res.Error)
	}
	return res.RowsAffected > 0, nil
}

func (r *ForumRepository) HardDeletePost(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&dbmysql.Post{}, "id = ?", id).Error; err != nil {
		return storeErr("remove post", err)
	}
	return nil
}

// --------- REACTIONS ---------

func (r *ForumRepository) GetReaction(ctx context.Context, postID, userID string) (*dbmysql.PostReaction, error) {
	var reactions []dbmysql.PostReaction
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Limit(1).
		Find(&reactions).Error
	if err != nil {
		return nil, storeErr("get reaction", err)
	}
	if len(reactions) == 0 {
		return nil, nil
	}
	return &reactions[0], nil
}

func (r *ForumRepository) CreateReaction(ctx context.Context, reaction *dbmysql.PostReaction) error {
	if err := r.db.WithContext(ctx).Create(reaction).Error; err != nil {
		return storeErr("create reaction", err)
	}
	return nil
}

func (r *ForumRepository) UpdateReactionKind(ctx context.Context, id string, kind common.ReactionKind) error {
	err := r.db.WithContext(ctx).
		Model(&dbmysql.PostReaction{}).
		Where("id = ?", id).
		Update("reaction_type", string(kind)).Error
	if err != nil {
		return storeErr("update reaction", err)
	}
	return nil
}

func (r *ForumRepository) DeleteReaction(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&dbmysql.PostReaction{}, "id = ?", id).Error; err != nil {
		return storeErr("delete reaction", err)
	}
	return nil
}

func (r *ForumRepository) ReactionsForPosts(ctx context.Context, postIDs []string) ([]dbmysql.PostReaction, error) {
	var reactions []dbmysql.PostReaction
	if len(postIDs) == 0 {
		return reactions, nil
	}
	err := r.db.WithContext(ctx).
		Select("post_id", "user_id", "reaction_type").
		Where("post_id IN ?", postIDs).
		Find(&reactions).Error
	if err != nil {
		return nil, storeErr("get reactions", err)
	}
	return reactions, nil
}

// --------- COMMENTS ---------

func (r *ForumRepository) CreateComment(ctx context.Context, comment *dbmysql.Comment) error {
	if err := r.db.WithContext(ctx).Create(comment).Error; err != nil {
		return storeErr("create comment", err)
	}
	return nil
}

func (r *ForumRepository) GetComment(ctx context.Context, id string) (*dbmysql.Comment, error) {
	var comment dbmysql.Comment
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&comment).Error; err != nil {
		return nil, storeErr("get comment", err)
	}
	return &comment, nil
}

func (r *ForumRepository) CommentsForPost(ctx context.Context, postID string) ([]dbmysql.Comment, error) {
	var comments []dbmysql.Comment
	err := r.db.WithContext(ctx).
		Where("post_id = ?", postID).
		Order("created_at ASC").
		Find(&comments).Error
	if err != nil {
		return nil, storeErr("get comments", err)
	}
	return comments, nil
}

type commentCount struct {
	PostID string
	Total  int64
}

func (r *ForumRepository) CountComments(ctx context.Context, postIDs []string) (map[string]int64, error) {
	counts := make(map[string]int64, len(postIDs))
	if len(postIDs) == 0 {
		return counts, nil
	}

	var rows []commentCount
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Comment{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ?", postIDs).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return nil, storeErr("count comments", err)
	}
	for _, row := range rows {
		counts[row.PostID] = row.Total
	}
	return counts, nil
}

func (r *ForumRepository) DeleteComment(ctx context.Context, id string) error {
	if err := r.db.WithContext(ctx).Delete(&dbmysql.Comment{}, "id = ?", id).Error; err != nil {
		return storeErr("delete comment", err)
	}
	return nil
}

// --------- COMMENT LIKES ---------

func (r *ForumRepository) HasLiked(ctx context.Context, commentID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.CommentLike{}).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Count(&count).Error
	if err != nil {
		return false, storeErr("check like", err)
	}
	return count > 0, nil
}

func (r *ForumRepository) CreateLike(ctx context.Context, commentID, userID string) error {
	like := &dbmysql.CommentLike{CommentID: commentID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(like).Error; err != nil {
		return storeErr("create like", err)
	}
	return nil
}

func (r *ForumRepository) DeleteLike(ctx context.Context, commentID, userID string) error {
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&dbmysql.CommentLike{}).Error
	if err != nil {
		return storeErr("delete like", err)
	}
	return nil
}

func (r *ForumRepository) CountLikes(ctx context.Context, commentID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.CommentLike{}).
		Where("comment_id = ?", commentID).
		Count(&count).Error
	if err != nil {
		return 0, storeErr("count likes", err)
	}
	return count, nil
}

func (r *ForumRepository) LikesForComments(ctx context.Context, commentIDs []string) ([]dbmysql.CommentLike, error) {
	var likes []dbmysql.CommentLike
	if len(commentIDs) == 0 {
		return likes, nil
	}
	err := r.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Find(&likes).Error
	if err != nil {
		return nil, storeErr("get likes", err)
	}
	return likes, nil
}

// --------- SAVED POSTS ---------

func (r *ForumRepository) IsSaved(ctx context.Context, postID, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.SavedPost{}).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Count(&count).Error
	if err != nil {
		return false, storeErr("check saved", err)
	}
	return count > 0, nil
}

func (r *ForumRepository) SavePost(ctx context.Context, postID, userID string) error {
	saved := &dbmysql.SavedPost{PostID: postID, UserID: userID}
	if err := r.db.WithContext(ctx).Create(saved).Error; err != nil {
		return storeErr("save post", err)
	}
	return nil
}

func (r *ForumRepository) UnsavePost(ctx context.Context, postID, userID string) error {
	err := r.db.WithContext(ctx).
		Where("post_id = ? AND user_id = ?", postID, userID).
		Delete(&dbmysql.SavedPost{}).Error
	if err != nil {
		return storeErr("unsave post", err)
	}
	return nil
}

func (r *ForumRepository) ListSaved(ctx context.Context, userID string, limit, offset int) ([]dbmysql.SavedPost, error) {
	var saved []dbmysql.SavedPost
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&saved).Error
	if err != nil {
		return nil, storeErr("list saved", err)
	}
	return saved, nil
}

func (r *ForumRepository) CountSaved(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.SavedPost{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, storeErr("count saved", err)
	}
	return count, nil
}

// --------- REPORTS ---------

func (r *ForumRepository) CreateReport(ctx context.Context, report *dbmysql.Report) error {
	if err := r.db.WithContext(ctx).Create(report).Error; err != nil {
		return storeErr("create report", err)
	}
	return nil
}

func (r *ForumRepository) CountReports(ctx context.Context, targetType common.TargetType, targetID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&dbmysql.Report{}).
		Where("target_type = ? AND target_id = ?", targetType, targetID).
		Count(&count).Error
	if err != nil {
		return 0, storeErr("count reports", err)
	}
	return count, nil
}
