package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/hitoshi/boardman/internal/model"
)

// PostgresPostRepo はbun ORMを使用した投稿リポジトリ。
type PostgresPostRepo struct {
	db *bun.DB
}

// NewPostgresPostRepo はPostgresPostRepoを生成する。
func NewPostgresPostRepo(db *bun.DB) *PostgresPostRepo {
	return &PostgresPostRepo{db: db}
}

// Create は投稿を作成する。
func (r *PostgresPostRepo) Create(ctx context.Context, post *model.Post) error {
	if _, err := r.db.NewInsert().Model(post).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert post: %w", err)
	}
	return nil
}

// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
func (r *PostgresPostRepo) FindByID(ctx context.Context, id string) (*model.Post, error) {
	post := &model.Post{}
	err := r.db.NewSelect().
		Model(post).
		Where("pst.id = ?", id).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find post by ID: %w", err)
	}

	return post, nil
}

// ListSummaries は全投稿をid・タイトル・タイムスタンプのみで新しい順に取得する。
// 一覧表示では本文を返さない。
func (r *PostgresPostRepo) ListSummaries(ctx context.Context) ([]model.Post, error) {
	var posts []model.Post
	err := r.db.NewSelect().
		Model(&posts).
		Column("id", "title", "created_at", "updated_at").
		Order("created_at DESC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list posts: %w", err)
	}

	return posts, nil
}

// compile-time interface check
var _ PostRepository = (*PostgresPostRepo)(nil)
