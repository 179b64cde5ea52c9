package forum

import (
	"time"
)

// PageSize is the fixed page length of every paginated listing.
const PageSize = 20

// ForumService implements the forum interactions on top of a Store.
type ForumService struct {
	store    Store
	resolver IdentityResolver
	notifier Notifier
	enricher *Enricher
	now      func() time.Time
}

func NewForumService(store Store, resolver IdentityResolver, notifier Notifier) *ForumService {
	s := &ForumService{
		store:    store,
		resolver: resolver,
		notifier: notifier,
		now:      time.Now,
	}
	s.enricher = NewEnricher(store, resolver, s.clock)
	return s
}

// clock reads s.now at call time so every component shares one time source.
func (s *ForumService) clock() time.Time {
	return s.now()
}

// offset turns a 1-based page number into a row offset. Pages below 1 read as 1.
func offset(page int) int {
	if page < 1 {
		page = 1
	}
	return (page - 1) * PageSize
}
