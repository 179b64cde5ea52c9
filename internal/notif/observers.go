package notif

import (
	"context"
	"fmt"
	"time"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

const persistTimeout = 5 * time.Second

// NotificationWriter stores one notification row.
type NotificationWriter interface {
	Create(ctx context.Context, notification *dbmysql.Notification) error
}

// DatabaseNotificationObserver persists every event it receives.
type DatabaseNotificationObserver struct {
	repo NotificationWriter
}

func NewDatabaseNotificationObserver(repo NotificationWriter) *DatabaseNotificationObserver {
	return &DatabaseNotificationObserver{
		repo: repo,
	}
}

func (d *DatabaseNotificationObserver) Name() string {
	return "database_observer"
}

func (d *DatabaseNotificationObserver) Update(event common.NotificationEvent) error {
	notification := &dbmysql.Notification{
		UserID:        event.RecipientID,
		Type:          string(event.Type),
		PostID:        event.PostID,
		CommentID:     event.CommentID,
		TriggerUserID: event.TriggerUserID,
		Message:       event.Message,
	}

	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	if err := d.repo.Create(ctx, notification); err != nil {
		return fmt.Errorf("failed to store notification: %w", err)
	}
	return nil
}
