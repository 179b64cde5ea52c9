package forum

import (
	"context"

	"parentforum/internal/common"
)

type FeedPage struct {
	Posts   []EnrichedPost `json:"posts"`
	HasMore bool           `json:"hasMore"`
	Total   int            `json:"total"`
}

var errNoCity = common.NewValidationError("Please set your city in profile first")

// Feed returns one page of the global or city feed, newest first. Posts the
// viewer has reported are never shown to them.
func (s *ForumService) Feed(ctx context.Context, viewer common.Viewer, feedType common.FeedType, category string, page int) (*FeedPage, error) {
	q := FeedQuery{
		FeedType: feedType,
		Category: category,
		ViewerID: viewer.ID,
		Limit:    PageSize,
		Offset:   offset(page),
	}
	switch feedType {
	case common.FeedGlobal:
	case common.FeedCity:
		if viewer.City == "" {
			return nil, errNoCity
		}
		city := viewer.City
		q.City = &city
	default:
		return nil, common.NewValidationError(`Invalid feed_type. Must be "global" or "city"`)
	}

	posts, err := s.store.ListFeed(ctx, q)
	if err != nil {
		return nil, err
	}

	enriched, err := s.enricher.Enrich(ctx, posts, viewer.ID)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:   enriched,
		HasMore: len(posts) == PageSize,
		Total:   len(enriched),
	}, nil
}
