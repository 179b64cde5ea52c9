package notif

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"parentforum/internal/common"
)

type recordingObserver struct {
	name    string
	mu      sync.Mutex
	events  []common.NotificationEvent
	err     error
	started chan struct{}
	release chan struct{}
}

func (o *recordingObserver) Name() string { return o.name }

func (o *recordingObserver) Update(event common.NotificationEvent) error {
	if o.started != nil {
		o.started <- struct{}{}
	}
	if o.release != nil {
		<-o.release
	}
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, event)
	return o.err
}

func (o *recordingObserver) count() int {
	o.mu.Lock()
	defer o.mu.Unlock()
	return len(o.events)
}

func TestNotificationManager_NotifyReachesAllObservers(t *testing.T) {
	nm := NewNotificationManager(2, 10)
	defer nm.Shutdown()

	failing := &recordingObserver{name: "failing", err: errors.New("boom")}
	ok := &recordingObserver{name: "ok"}
	nm.Subscribe(failing)
	nm.Subscribe(ok)

	nm.Notify(common.NotificationEvent{Type: common.NotificationReply, RecipientID: "u1"})
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 1, ok.count())

	nm.Unsubscribe(failing)
	nm.Notify(common.NotificationEvent{Type: common.NotificationReply, RecipientID: "u1"})
	assert.Equal(t, 1, failing.count())
	assert.Equal(t, 2, ok.count())
}

func TestNotificationManager_ShutdownDrainsQueue(t *testing.T) {
	nm := NewNotificationManager(3, 100)
	obs := &recordingObserver{name: "rec"}
	nm.Subscribe(obs)

	for i := 0; i < 50; i++ {
		nm.NotifyAsync(common.NotificationEvent{Type: common.NotificationReaction, RecipientID: "u1"})
	}
	nm.Shutdown()

	assert.Equal(t, 50, obs.count())

	// late events are dropped instead of panicking on the closed channel
	assert.NotPanics(t, func() {
		nm.NotifyAsync(common.NotificationEvent{Type: common.NotificationReaction, RecipientID: "u1"})
	})
	nm.Shutdown()
	assert.Equal(t, 50, obs.count())
}

func TestNotificationManager_DropsWhenFull(t *testing.T) {
	nm := NewNotificationManager(1, 1)
	obs := &recordingObserver{
		name:    "slow",
		started: make(chan struct{}, 10),
		release: make(chan struct{}),
	}
	nm.Subscribe(obs)

	nm.NotifyAsync(common.NotificationEvent{RecipientID: "first"})
	select {
	case <-obs.started:
	case <-time.After(time.Second):
		t.Fatal("worker never picked up the first event")
	}

	done := make(chan struct{})
	go func() {
		nm.NotifyAsync(common.NotificationEvent{RecipientID: "queued"})
		nm.NotifyAsync(common.NotificationEvent{RecipientID: "dropped"})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("NotifyAsync blocked on a full queue")
	}

	close(obs.release)
	nm.Shutdown()

	require.Equal(t, 2, obs.count())
	assert.Equal(t, "first", obs.events[0].RecipientID)
	assert.Equal(t, "queued", obs.events[1].RecipientID)
}
