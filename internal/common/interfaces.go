package common

import (
	"context"
)

type Observer interface {
	Update(event NotificationEvent) error
	Name() string
}

type Subject interface {
	Subscribe(observer Observer)
	Unsubscribe(observer Observer)
	Notify(event NotificationEvent)
	NotifyAsync(event NotificationEvent)
}

// AccountStore is the authoritative user directory.
type AccountStore interface {
	FindByID(ctx context.Context, id string) (*Account, error)
	FindByForumUIDs(ctx context.Context, uids []string) ([]Account, error)
	AssignForumUID(ctx context.Context, id, uid string) error
}

// ProfileSyncer mirrors display identity into the forum store.
type ProfileSyncer interface {
	SyncProfile(ctx context.Context, forumUID, username, city string) error
}
