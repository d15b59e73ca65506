package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hitoshi/boardman/internal/middleware"
)

// CommentHandler はコメントのHTTPハンドラー。
type CommentHandler struct {
	service BoardService
}

// NewCommentHandler はCommentHandlerを生成する。
func NewCommentHandler(service BoardService) *CommentHandler {
	return &CommentHandler{service: service}
}

// createCommentRequest はコメント作成のリクエストボディ。
type createCommentRequest struct {
	Content string `json:"content"`
}

// commentResponse はコメントのレスポンス表現。
type commentResponse struct {
	ID        string    `json:"id"`
	PostID    string    `json:"postId"`
	UserID    string    `json:"userId"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateComment は POST /api/posts/{postId}/comments のハンドラー。
// 投稿が存在しない場合は404、作成成功時は201を返す。
func (h *CommentHandler) CreateComment(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	postID := chi.URLParam(r, "postId")

	var req createCommentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}
	if req.Content == "" {
		writeMissingField(w, "content")
		return
	}

	comment, err := h.service.CreateComment(r.Context(), user.ID, postID, req.Content)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, commentResponse{
		ID:        comment.ID,
		PostID:    comment.PostID,
		UserID:    comment.UserID,
		Content:   comment.Content,
		CreatedAt: comment.CreatedAt,
	})
}

// ListComments は GET /api/posts/{postId}/comments のハンドラー。
// 投稿が存在しない場合は404、取得成功時は200を返す。
// 参照系のため、作成系と異なり201ではなく200を返す。
func (h *CommentHandler) ListComments(w http.ResponseWriter, r *http.Request) {
	postID := chi.URLParam(r, "postId")

	comments, err := h.service.ListComments(r.Context(), postID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	responses := make([]commentResponse, 0, len(comments))
	for _, comment := range comments {
		responses = append(responses, commentResponse{
			ID:        comment.ID,
			PostID:    comment.PostID,
			UserID:    comment.UserID,
			Content:   comment.Content,
			CreatedAt: comment.CreatedAt,
		})
	}

	writeJSON(w, http.StatusOK, responses)
}
