package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/boardman/internal/middleware"
	"github.com/hitoshi/boardman/internal/model"
)

// BoardService は投稿・コメント操作に必要なインターフェース。
type BoardService interface {
	CreatePost(ctx context.Context, userID, title, content string) (*model.Post, error)
	ListPosts(ctx context.Context) ([]model.Post, error)
	GetPost(ctx context.Context, postID string) (*model.Post, error)
	CreateComment(ctx context.Context, userID, postID, content string) (*model.Comment, error)
	ListComments(ctx context.Context, postID string) ([]model.Comment, error)
}

// PostHandler は投稿のHTTPハンドラー。
type PostHandler struct {
	service BoardService
}

// NewPostHandler はPostHandlerを生成する。
func NewPostHandler(service BoardService) *PostHandler {
	return &PostHandler{service: service}
}

// createPostRequest は投稿作成のリクエストボディ。
type createPostRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// postResponse は投稿のレスポンス表現。
type postResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// postSummaryResponse は投稿一覧の概要表現。本文は含まない。
type postSummaryResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CreatePost は POST /api/posts のハンドラー。
// 作成成功時は201を返す。
func (h *PostHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var req createPostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}
	if req.Title == "" {
		writeMissingField(w, "title")
		return
	}
	if req.Content == "" {
		writeMissingField(w, "content")
		return
	}

	post, err := h.service.CreatePost(r.Context(), user.ID, req.Title, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, postResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	})
}

// ListPosts は GET /api/posts のハンドラー。
// 全投稿の概要を新しい順に返す。
func (h *PostHandler) ListPosts(w http.ResponseWriter, r *http.Request) {
	posts, err := h.service.ListPosts(r.Context())
	if err != nil {
		handleServiceError(w, err)
		return
	}

	summaries := make([]postSummaryResponse, 0, len(posts))
	for _, post := range posts {
		summaries = append(summaries, postSummaryResponse{
			ID:        post.ID,
			Title:     post.Title,
			CreatedAt: post.CreatedAt,
			UpdatedAt: post.UpdatedAt,
		})
	}

	writeJSON(w, http.StatusOK, summaries)
}

// GetPost は GET /api/posts/{postId} のハンドラー。
// 投稿が存在しない場合は404を返す。
func (h *PostHandler) GetPost(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	post, err := h.service.GetPost(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, postResponse{
		ID:        post.ID,
		UserID:    post.UserID,
		Title:     post.Title,
		Content:   post.Content,
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	})
}
