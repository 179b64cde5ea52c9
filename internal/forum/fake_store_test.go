package forum

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
	"parentforum/internal/profile"
)

// ---- In-memory Store for service tests ----

type fakeStore struct {
	mu        sync.Mutex
	clock     time.Time
	posts     map[string]*dbmysql.Post
	reactions map[string]*dbmysql.PostReaction
	comments  []dbmysql.Comment
	likes     map[[2]string]time.Time
	saved     map[[2]string]time.Time
	reports   []dbmysql.Report

	failHardDelete error
	failReactions  error
	hardDeletes    int
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		clock:     time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC),
		posts:     map[string]*dbmysql.Post{},
		reactions: map[string]*dbmysql.PostReaction{},
		likes:     map[[2]string]time.Time{},
		saved:     map[[2]string]time.Time{},
	}
}

// tick hands out strictly increasing timestamps.
func (f *fakeStore) tick() time.Time {
	f.clock = f.clock.Add(time.Second)
	return f.clock
}

func (f *fakeStore) addPost(p dbmysql.Post) *dbmysql.Post {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.FeedType == "" {
		p.FeedType = string(common.FeedGlobal)
	}
	if p.CreatedAt.IsZero() {
		p.CreatedAt = f.tick()
	}
	f.posts[p.ID] = &p
	return &p
}

func (f *fakeStore) CreatePost(ctx context.Context, post *dbmysql.Post) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	post.ID = uuid.NewString()
	post.CreatedAt = f.tick()
	post.UpdatedAt = post.CreatedAt
	cp := *post
	f.posts[post.ID] = &cp
	return nil
}

func (f *fakeStore) GetPost(ctx context.Context, id string) (*dbmysql.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok || p.IsDeleted {
		return nil, common.ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeStore) ListFeed(ctx context.Context, q FeedQuery) ([]dbmysql.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	reported := map[string]bool{}
	for _, r := range f.reports {
		if r.TargetType == string(common.TargetPost) && r.ReporterID == q.ViewerID {
			reported[r.TargetID] = true
		}
	}
	var out []dbmysql.Post
	for _, p := range f.posts {
		if p.IsDeleted || p.FeedType != string(q.FeedType) || reported[p.ID] {
			continue
		}
		if q.City != nil && (p.City == nil || *p.City != *q.City) {
			continue
		}
		if q.Category != "" && q.Category != "all" && p.Category != q.Category {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if q.Offset >= len(out) {
		return nil, nil
	}
	out = out[q.Offset:]
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (f *fakeStore) PostsByIDs(ctx context.Context, ids []string) ([]dbmysql.Post, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbmysql.Post
	for _, id := range ids {
		if p, ok := f.posts[id]; ok && !p.IsDeleted {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeStore) SoftDeletePost(ctx context.Context, id, userID string, at time.Time) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	p, ok := f.posts[id]
	if !ok || p.UserID != userID {
		return false, nil
	}
	p.IsDeleted = true
	p.DeletedAt = &at
	p.Title = deletedPostTitle
	p.Content = deletedPostContent
	p.MediaURLs = nil
	return true, nil
}

func (f *fakeStore) HardDeletePost(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hardDeletes++
	if f.failHardDelete != nil {
		return f.failHardDelete
	}
	delete(f.posts, id)
	return nil
}

func (f *fakeStore) GetReaction(ctx context.Context, postID, userID string) (*dbmysql.PostReaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reactions {
		if r.PostID == postID && r.UserID == userID {
			cp := *r
			return &cp, nil
		}
	}
	return nil, nil
}

func (f *fakeStore) CreateReaction(ctx context.Context, reaction *dbmysql.PostReaction) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, r := range f.reactions {
		if r.PostID == reaction.PostID && r.UserID == reaction.UserID {
			return common.ErrConflict
		}
	}
	reaction.ID = uuid.NewString()
	cp := *reaction
	f.reactions[reaction.ID] = &cp
	return nil
}

func (f *fakeStore) UpdateReactionKind(ctx context.Context, id string, kind common.ReactionKind) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if r, ok := f.reactions[id]; ok {
		r.ReactionType = string(kind)
	}
	return nil
}

func (f *fakeStore) DeleteReaction(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.reactions, id)
	return nil
}

func (f *fakeStore) ReactionsForPosts(ctx context.Context, postIDs []string) ([]dbmysql.PostReaction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failReactions != nil {
		return nil, f.failReactions
	}
	want := map[string]bool{}
	for _, id := range postIDs {
		want[id] = true
	}
	var out []dbmysql.PostReaction
	for _, r := range f.reactions {
		if want[r.PostID] {
			out = append(out, *r)
		}
	}
	return out, nil
}

func (f *fakeStore) CreateComment(ctx context.Context, comment *dbmysql.Comment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	comment.ID = uuid.NewString()
	comment.CreatedAt = f.tick()
	f.comments = append(f.comments, *comment)
	return nil
}

func (f *fakeStore) GetComment(ctx context.Context, id string) (*dbmysql.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, c := range f.comments {
		if c.ID == id {
			cp := c
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}

func (f *fakeStore) CommentsForPost(ctx context.Context, postID string) ([]dbmysql.Comment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbmysql.Comment
	for _, c := range f.comments {
		if c.PostID == postID {
			out = append(out, c)
		}
	}
	return out, nil
}

func (f *fakeStore) CountComments(ctx context.Context, postIDs []string) (map[string]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	counts := map[string]int64{}
	for _, c := range f.comments {
		counts[c.PostID]++
	}
	return counts, nil
}

func (f *fakeStore) DeleteComment(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, c := range f.comments {
		if c.ID == id {
			f.comments = append(f.comments[:i], f.comments[i+1:]...)
			return nil
		}
	}
	return nil
}

func (f *fakeStore) HasLiked(ctx context.Context, commentID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.likes[[2]string{commentID, userID}]
	return ok, nil
}

func (f *fakeStore) CreateLike(ctx context.Context, commentID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := [2]string{commentID, userID}
	if _, ok := f.likes[key]; ok {
		return common.ErrConflict
	}
	f.likes[key] = f.tick()
	return nil
}

func (f *fakeStore) DeleteLike(ctx context.Context, commentID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.likes, [2]string{commentID, userID})
	return nil
}

func (f *fakeStore) CountLikes(ctx context.Context, commentID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.likes {
		if k[0] == commentID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) LikesForComments(ctx context.Context, commentIDs []string) ([]dbmysql.CommentLike, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbmysql.CommentLike
	for k, at := range f.likes {
		out = append(out, dbmysql.CommentLike{CommentID: k[0], UserID: k[1], CreatedAt: at})
	}
	return out, nil
}

func (f *fakeStore) IsSaved(ctx context.Context, postID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.saved[[2]string{postID, userID}]
	return ok, nil
}

func (f *fakeStore) SavePost(ctx context.Context, postID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved[[2]string{postID, userID}] = f.tick()
	return nil
}

func (f *fakeStore) UnsavePost(ctx context.Context, postID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.saved, [2]string{postID, userID})
	return nil
}

func (f *fakeStore) ListSaved(ctx context.Context, userID string, limit, offset int) ([]dbmysql.SavedPost, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []dbmysql.SavedPost
	for k, at := range f.saved {
		if k[1] == userID {
			out = append(out, dbmysql.SavedPost{PostID: k[0], UserID: k[1], CreatedAt: at})
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeStore) CountSaved(ctx context.Context, userID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for k := range f.saved {
		if k[1] == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeStore) CreateReport(ctx context.Context, report *dbmysql.Report) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	report.ID = uuid.NewString()
	report.CreatedAt = f.tick()
	f.reports = append(f.reports, *report)
	return nil
}

func (f *fakeStore) CountReports(ctx context.Context, targetType common.TargetType, targetID string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var n int64
	for _, r := range f.reports {
		if r.TargetType == string(targetType) && r.TargetID == targetID {
			n++
		}
	}
	return n, nil
}

// ---- Resolver fake ----

type fakeResolver map[string]profile.Identity

func (f fakeResolver) Resolve(ctx context.Context, ids []string) (map[string]profile.Identity, error) {
	out := map[string]profile.Identity{}
	for _, id := range ids {
		if ident, ok := f[id]; ok {
			out[id] = ident
		}
	}
	return out, nil
}
