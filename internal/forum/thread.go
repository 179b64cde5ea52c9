package forum

import (
	"time"

	"parentforum/internal/dbmysql"
	"parentforum/internal/profile"
)

// CommentNode is one comment in a thread with its replies attached.
type CommentNode struct {
	ID           string         `json:"id"`
	Content      string         `json:"content"`
	Author       string         `json:"author"`
	Timestamp    time.Time      `json:"timestamp"`
	TotalLikes   int            `json:"total_likes"`
	IsLikedByMe  bool           `json:"is_liked_by_me"`
	Replies      []*CommentNode `json:"replies"`
	IsOwnComment bool           `json:"isOwnComment"`
}

// BuildThread turns comments ordered oldest first into a forest. A reply is
// attached only when its parent appears earlier in the slice; otherwise it is
// promoted to a root so nothing is dropped.
func BuildThread(comments []dbmysql.Comment, identities map[string]profile.Identity, likes []dbmysql.CommentLike, viewerID string) []*CommentNode {
	likeCount := make(map[string]int, len(comments))
	likedByMe := make(map[string]bool)
	for _, l := range likes {
		likeCount[l.CommentID]++
		if l.UserID == viewerID {
			likedByMe[l.CommentID] = true
		}
	}

	nodes := make([]CommentNode, len(comments))
	index := make(map[string]int, len(comments))
	for i, c := range comments {
		nodes[i] = CommentNode{
			ID:           c.ID,
			Content:      c.Content,
			Author:       profile.DisplayName(identities, c.UserID, "Anonymous"),
			Timestamp:    c.CreatedAt,
			TotalLikes:   likeCount[c.ID],
			IsLikedByMe:  likedByMe[c.ID],
			Replies:      []*CommentNode{},
			IsOwnComment: c.UserID == viewerID,
		}
		if _, dup := index[c.ID]; !dup {
			index[c.ID] = i
		}
	}

	roots := make([]*CommentNode, 0)
	for i, c := range comments {
		node := &nodes[i]
		if c.ParentID != nil {
			if p, ok := index[*c.ParentID]; ok && p < i {
				nodes[p].Replies = append(nodes[p].Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
