package forum

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"parentforum/internal/common"
	"parentforum/internal/dbmysql"
)

// ForumUsecase is what the HTTP layer needs from ForumService.
type ForumUsecase interface {
	CreatePost(ctx context.Context, viewer common.Viewer, in NewPost) (*dbmysql.Post, error)
	Feed(ctx context.Context, viewer common.Viewer, feedType common.FeedType, category string, page int) (*FeedPage, error)
	React(ctx context.Context, viewer common.Viewer, postID, raw string) (*ReactResult, error)
	Reactions(ctx context.Context, viewer common.Viewer, postID string) (*ReactionSummary, error)
	CreateComment(ctx context.Context, viewer common.Viewer, postID string, in NewComment) (*dbmysql.Comment, error)
	Thread(ctx context.Context, viewer common.Viewer, postID string) (*ThreadResult, error)
	DeletePost(ctx context.Context, viewer common.Viewer, postID string) (*DeleteResult, error)
	DeleteComment(ctx context.Context, viewer common.Viewer, commentID string) (*DeleteResult, error)
	Report(ctx context.Context, viewer common.Viewer, in NewReport) (*ReportResult, error)
	ToggleSave(ctx context.Context, viewer common.Viewer, postID string) (*SaveResult, error)
	SavedPosts(ctx context.Context, viewer common.Viewer, page int) (*SavedPage, error)
	ToggleCommentLike(ctx context.Context, viewer common.Viewer, commentID string) (*LikeResult, error)
	UnlikeComment(ctx context.Context, viewer common.Viewer, commentID string) (*LikeResult, error)
	CommentLikes(ctx context.Context, viewer common.Viewer, commentID string) (*LikeSummary, error)
}

type ForumHandlers struct {
	Svc ForumUsecase
}

func NewForumHandlers(svc ForumUsecase) *ForumHandlers {
	return &ForumHandlers{Svc: svc}
}

// RegisterRoutes mounts the forum endpoints on a router that already runs
// the auth middleware.
func (h *ForumHandlers) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/posts", h.CreatePost).Methods("POST")
	r.HandleFunc("/feed/global", h.feed(common.FeedGlobal)).Methods("GET")
	r.HandleFunc("/feed/city", h.feed(common.FeedCity)).Methods("GET")
	r.HandleFunc("/posts/{id}", h.DeletePost).Methods("DELETE")
	r.HandleFunc("/posts/{id}/react", h.React).Methods("POST")
	r.HandleFunc("/posts/{id}/reactions", h.Reactions).Methods("GET")
	r.HandleFunc("/posts/{id}/comments", h.CreateComment).Methods("POST")
	r.HandleFunc("/posts/{id}/comments", h.Comments).Methods("GET")
	r.HandleFunc("/posts/{id}/saveBookmark", h.ToggleSave).Methods("POST")
	r.HandleFunc("/saved-posts", h.SavedPosts).Methods("GET")
	r.HandleFunc("/comments/{id}", h.DeleteComment).Methods("DELETE")
	r.HandleFunc("/comments/{id}/like", h.LikeComment).Methods("POST")
	r.HandleFunc("/comments/{id}/like", h.UnlikeComment).Methods("DELETE")
	r.HandleFunc("/comments/{id}/likes", h.CommentLikes).Methods("GET")
	r.HandleFunc("/reports", h.Report).Methods("POST")
}

func (h *ForumHandlers) CreatePost(w http.ResponseWriter, r *http.Request) {
	viewer, ok := common.RequireViewer(w, r)
	if !ok {
		return
	}
	var in NewPost
	if !decode(w, r, &in) {
		return
	}
	post, err := h.Svc.CreatePost(r.Context(), viewer, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, post)
}

func (h *ForumHandlers) feed(feedType common.FeedType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		viewer, ok := common.RequireViewer(w, r)
		if !ok {
			return
		}
		q := r.URL.Query()
		page, err := h.Svc.Feed(r.Context(), viewer, feedType, q.Get("category"), pageParam(r))
		if err != nil {
			common.WriteError(w, err)
			return
		}
		common.WriteJSON(w, http.StatusOK, page)
	}
}

func (h *ForumHandlers) React(w http.ResponseWriter, r *http.Request) {
	viewer, postID, ok := h.target(w, r, "post")
	if !ok {
		return
	}
	var body struct {
		Reaction string `json:"reaction"`
	}
	if !decode(w, r, &body) {
		return
	}
	res, err := h.Svc.React(r.Context(), viewer, postID, body.Reaction)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *ForumHandlers) Reactions(w http.ResponseWriter, r *http.Request) {
	viewer, postID, ok := h.target(w, r, "post")
	if !ok {
		return
	}
	res, err := h.Svc.Reactions(r.Context(), viewer, postID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *ForumHandlers) CreateComment(w http.ResponseWriter, r *http.Request) {
	viewer, postID, ok := h.target(w, r, "post")
	if !ok {
		return
	}
	var in NewComment
	if !decode(w, r, &in) {
		return
	}
	if in.ParentID != nil && *in.ParentID != "" {
		id, err := common.ParseID(*in.ParentID, "parent")
		if err != nil {
			common.WriteError(w, common.NewValidationError("Invalid parent_id"))
			return
		}
		in.ParentID = &id
	}
	comment, err := h.Svc.CreateComment(r.Context(), viewer, postID, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, comment)
}

func (h *ForumHandlers) Comments(w http.ResponseWriter, r *http.Request) {
	viewer, postID, ok := h.target(w, r, "post")
	if !ok {
		return
	}
	res, err := h.Svc.Thread(r.Context(), viewer, postID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *ForumHandlers) DeletePost(w http.ResponseWriter, r *http.Request) {
	viewer, postID, ok := h.target(w, r, "post")
	if !ok {
		return
	}
	res, err := h.Svc.DeletePost(r.Context(), viewer, postID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *ForumHandlers) DeleteComment(w http.ResponseWriter, r *http.Request) {
	viewer, commentID, ok := h.target(w, r, "comment")
	if !ok {
		return
	}
	res, err := h.Svc.DeleteComment(r.Context(), viewer, commentID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *ForumHandlers) Report(w http.ResponseWriter, r *http.Request) {
	viewer, ok := common.RequireViewer(w, r)
	if !ok {
		return
	}
	var in NewReport
	if !decode(w, r, &in) {
		return
	}
	res, err := h.Svc.Report(r.Context(), viewer, in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusCreated, res)
}

func (h *ForumHandlers) ToggleSave(w http.ResponseWriter, r *http.Request) {
	viewer, postID, ok := h.target(w, r, "post")
	if !ok {
		return
	}
	res, err := h.Svc.ToggleSave(r.Context(), viewer, postID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *ForumHandlers) SavedPosts(w http.ResponseWriter, r *http.Request) {
	viewer, ok := common.RequireViewer(w, r)
	if !ok {
		return
	}
	res, err := h.Svc.SavedPosts(r.Context(), viewer, pageParam(r))
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *ForumHandlers) LikeComment(w http.ResponseWriter, r *http.Request) {
	viewer, commentID, ok := h.target(w, r, "comment")
	if !ok {
		return
	}
	res, err := h.Svc.ToggleCommentLike(r.Context(), viewer, commentID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *ForumHandlers) UnlikeComment(w http.ResponseWriter, r *http.Request) {
	viewer, commentID, ok := h.target(w, r, "comment")
	if !ok {
		return
	}
	res, err := h.Svc.UnlikeComment(r.Context(), viewer, commentID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

func (h *ForumHandlers) CommentLikes(w http.ResponseWriter, r *http.Request) {
	viewer, commentID, ok := h.target(w, r, "comment")
	if !ok {
		return
	}
	res, err := h.Svc.CommentLikes(r.Context(), viewer, commentID)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.WriteJSON(w, http.StatusOK, res)
}

// target resolves the viewer and the {id} path variable.
func (h *ForumHandlers) target(w http.ResponseWriter, r *http.Request, name string) (common.Viewer, string, bool) {
	viewer, ok := common.RequireViewer(w, r)
	if !ok {
		return viewer, "", false
	}
	id, err := common.ParseID(mux.Vars(r)["id"], name)
	if err != nil {
		common.WriteError(w, err)
		return viewer, "", false
	}
	return viewer, id, true
}

// decode reads a JSON body. An empty body decodes to the zero value.
func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	var ve *common.ValidationError
	if errors.As(err, &ve) {
		common.WriteError(w, err)
		return false
	}
	common.WriteError(w, common.NewValidationError("Invalid request body"))
	return false
}

func pageParam(r *http.Request) int {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		return 1
	}
	return page
}
