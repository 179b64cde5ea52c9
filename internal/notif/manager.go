package notif

import (
	"log"
	"sync"

	"parentforum/internal/common"
)

// NotificationManager fans events out to its observers. NotifyAsync queues
// onto a buffered channel served by a fixed worker pool and never blocks.
type NotificationManager struct {
	observers    map[string]common.Observer
	eventChannel chan common.NotificationEvent
	workerPool   int
	closed       bool
	mu           sync.RWMutex
	wg           sync.WaitGroup
}

func NewNotificationManager(workerPoolSize, bufferSize int) *NotificationManager {
	if workerPoolSize < 1 {
		workerPoolSize = 1
	}
	if bufferSize < 1 {
		bufferSize = 1
	}

	nm := &NotificationManager{
		observers:    make(map[string]common.Observer),
		eventChannel: make(chan common.NotificationEvent, bufferSize),
		workerPool:   workerPoolSize,
	}

	for i := 0; i < workerPoolSize; i++ {
		nm.wg.Add(1)
		go nm.processEvents()
	}

	return nm
}

func (nm *NotificationManager) Subscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	nm.observers[observer.Name()] = observer
	log.Printf("Observer %s subscribed", observer.Name())
}

func (nm *NotificationManager) Unsubscribe(observer common.Observer) {
	nm.mu.Lock()
	defer nm.mu.Unlock()
	delete(nm.observers, observer.Name())
	log.Printf("Observer %s unsubscribed", observer.Name())
}

// Notify delivers the event to every observer on the calling goroutine.
// Observer failures are logged and otherwise ignored.
func (nm *NotificationManager) Notify(event common.NotificationEvent) {
	nm.mu.RLock()
	observers := make([]common.Observer, 0, len(nm.observers))
	for _, obs := range nm.observers {
		observers = append(observers, obs)
	}
	nm.mu.RUnlock()

	for _, observer := range observers {
		if err := observer.Update(event); err != nil {
			log.Printf("Observer %s update failed for %s to %s: %v",
				observer.Name(), event.Type, event.RecipientID, err)
		}
	}
}

func (nm *NotificationManager) NotifyAsync(event common.NotificationEvent) {
	nm.mu.RLock()
	defer nm.mu.RUnlock()

	if nm.closed {
		log.Printf("Notification manager stopped, dropping event: %s", event.Type)
		return
	}

	select {
	case nm.eventChannel <- event:
	default:
		log.Printf("Notification channel full, dropping event: %s", event.Type)
	}
}

func (nm *NotificationManager) processEvents() {
	defer nm.wg.Done()

	for event := range nm.eventChannel {
		nm.Notify(event)
	}
}

// Shutdown stops accepting events and waits until the queued ones are delivered.
func (nm *NotificationManager) Shutdown() {
	nm.mu.Lock()
	if nm.closed {
		nm.mu.Unlock()
		return
	}
	nm.closed = true
	close(nm.eventChannel)
	nm.mu.Unlock()

	nm.wg.Wait()
	log.Println("NotificationManager shutdown complete")
}
