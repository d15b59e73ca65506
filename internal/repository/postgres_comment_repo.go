package repository

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/hitoshi/boardman/internal/model"
)

// PostgresCommentRepo はbun ORMを使用したコメントリポジトリ。
type PostgresCommentRepo struct {
	db *bun.DB
}

// NewPostgresCommentRepo はPostgresCommentRepoを生成する。
func NewPostgresCommentRepo(db *bun.DB) *PostgresCommentRepo {
	return &PostgresCommentRepo{db: db}
}

// Create はコメントを作成する。
func (r *PostgresCommentRepo) Create(ctx context.Context, comment *model.Comment) error {
	if _, err := r.db.NewInsert().Model(comment).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

// ListByPostID は指定投稿のコメントを新しい順に取得する。
func (r *PostgresCommentRepo) ListByPostID(ctx context.Context, postID string) ([]model.Comment, error) {
	var comments []model.Comment
	err := r.db.NewSelect().
		Model(&comments).
		Where("cmt.post_id = ?", postID).
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

// compile-time interface check
var _ CommentRepository = (*PostgresCommentRepo)(nil)
