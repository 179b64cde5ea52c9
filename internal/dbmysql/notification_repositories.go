package dbmysql

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(ctx context.Context, notification *Notification) error {
	if err := r.db.WithContext(ctx).Create(notification).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

// ByRecipient lists every notification for userID, newest first, with the
// title and category of the post it refers to when that post still exists.
func (r *NotificationRepository) ByRecipient(ctx context.Context, userID string) ([]NotificationRow, error) {
	var rows []NotificationRow

	err := r.db.WithContext(ctx).
		Table("notifications AS n").
		Select("n.*, p.title AS post_title, p.category AS post_category").
		Joins("LEFT JOIN posts p ON p.id = n.post_id").
		Where("n.user_id = ?", userID).
		Order("n.created_at DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user notifications: %w", err)
	}

	return rows, nil
}

// MarkAllRead flags every notification of userID as read.
func (r *NotificationRepository) MarkAllRead(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&Notification{}).
		Where("user_id = ?", userID).
		Update("is_read", true).Error
	if err != nil {
		return fmt.Errorf("failed to mark notifications as read: %w", err)
	}
	return nil
}

// ReactionsBy returns the current reactions of the given users on the given posts.
func (r *NotificationRepository) ReactionsBy(ctx context.Context, postIDs, userIDs []string) ([]PostReaction, error) {
	var reactions []PostReaction
	if len(postIDs) == 0 || len(userIDs) == 0 {
		return reactions, nil
	}

	err := r.db.WithContext(ctx).
		Select("post_id", "user_id", "reaction_type").
		Where("post_id IN ? AND user_id IN ?", postIDs, userIDs).
		Find(&reactions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get reactions: %w", err)
	}
	return reactions, nil
}
