// Package board は投稿とコメントのドメインロジックを提供する。
package board

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/boardman/internal/model"
	"github.com/hitoshi/boardman/internal/repository"
)

// ContentSanitizer は本文のサニタイズインターフェース。
// security.ContentSanitizerの部分集合として定義する。
type ContentSanitizer interface {
	Sanitize(rawHTML string) string
}

// Service は投稿・コメント管理のサービス層。
type Service struct {
	postRepo    repository.PostRepository
	commentRepo repository.CommentRepository
	sanitizer   ContentSanitizer
}

// NewService はServiceを生成する。
func NewService(postRepo repository.PostRepository, commentRepo repository.CommentRepository, sanitizer ContentSanitizer) *Service {
	return &Service{
		postRepo:    postRepo,
		commentRepo: commentRepo,
		sanitizer:   sanitizer,
	}
}

// CreatePost は認証済みユーザーの投稿を作成する。
// 本文は保存前にサニタイズされる。
func (s *Service) CreatePost(ctx context.Context, userID, title, content string) (*model.Post, error) {
	now := time.Now()
	post := &model.Post{
		ID:        uuid.New().String(),
		UserID:    userID,
		Title:     title,
		Content:   s.sanitizer.Sanitize(content),
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}

	slog.Info("post created",
		slog.String("post_id", post.ID),
		slog.String("user_id", userID),
	)

	return post, nil
}

// ListPosts は全投稿の概要（id・タイトル・タイムスタンプ）を新しい順に取得する。
func (s *Service) ListPosts(ctx context.Context) ([]model.Post, error) {
	posts, err := s.postRepo.ListSummaries(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}
	return posts, nil
}

// GetPost は指定IDの投稿を取得する。
// 見つからない場合はPOST_NOT_FOUNDを返す。
func (s *Service) GetPost(ctx context.Context, postID string) (*model.Post, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to get post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}
	return post, nil
}

// CreateComment は指定投稿へのコメントを作成する。
// 投稿が存在しない場合はPOST_NOT_FOUNDを返す。本文は保存前にサニタイズされる。
func (s *Service) CreateComment(ctx context.Context, userID, postID, content string) (*model.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	comment := &model.Comment{
		ID:        uuid.New().String(),
		PostID:    postID,
		UserID:    userID,
		Content:   s.sanitizer.Sanitize(content),
		CreatedAt: time.Now(),
	}

	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, fmt.Errorf("failed to create comment: %w", err)
	}

	slog.Info("comment created",
		slog.String("comment_id", comment.ID),
		slog.String("post_id", postID),
		slog.String("user_id", userID),
	)

	return comment, nil
}

// ListComments は指定投稿のコメントを新しい順に取得する。
// 投稿が存在しない場合はPOST_NOT_FOUNDを返す。
func (s *Service) ListComments(ctx context.Context, postID string) ([]model.Comment, error) {
	post, err := s.postRepo.FindByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to check post: %w", err)
	}
	if post == nil {
		return nil, model.NewPostNotFoundError(postID)
	}

	comments, err := s.commentRepo.ListByPostID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return comments, nil
}
