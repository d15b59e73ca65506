// Package repository はデータアクセス層のインターフェースとPostgreSQL実装を提供する。
package repository

import (
	"context"

	"github.com/hitoshi/boardman/internal/model"
)

// UserRepository はユーザー認証情報のデータアクセスインターフェース。
type UserRepository interface {
	// FindByID は指定IDのユーザーを取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.User, error)
	// FindByEmail は指定メールアドレスのユーザーを取得する。見つからない場合はnilを返す。
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// CreateWithProfile はユーザーとプロフィールを同一トランザクションで作成する。
	CreateWithProfile(ctx context.Context, user *model.User, profile *model.Profile) error
}

// ProfileRepository はプロフィールと変更履歴のデータアクセスインターフェース。
type ProfileRepository interface {
	// FindByUserID は指定ユーザーのプロフィールを取得する。見つからない場合はnilを返す。
	FindByUserID(ctx context.Context, userID string) (*model.Profile, error)
	// UpdateWithAudit はプロフィール更新と変更履歴の追記を単一トランザクションで実行する。
	// 値が変わったフィールドごとにChangeRecordを1件作成し、コミット失敗時はすべてロールバックされる。
	UpdateWithAudit(ctx context.Context, userID string, changes map[string]string) (*model.Profile, []model.ChangeRecord, error)
	// ListChangeRecords は指定プロフィールの変更履歴を時刻順に取得する。
	ListChangeRecords(ctx context.Context, profileID string) ([]model.ChangeRecord, error)
}

// PostRepository は投稿のデータアクセスインターフェース。
type PostRepository interface {
	// Create は投稿を作成する。
	Create(ctx context.Context, post *model.Post) error
	// FindByID は指定IDの投稿を取得する。見つからない場合はnilを返す。
	FindByID(ctx context.Context, id string) (*model.Post, error)
	// ListSummaries は全投稿をid・タイトル・タイムスタンプのみで新しい順に取得する。
	ListSummaries(ctx context.Context) ([]model.Post, error)
}

// CommentRepository はコメントのデータアクセスインターフェース。
type CommentRepository interface {
	// Create はコメントを作成する。
	Create(ctx context.Context, comment *model.Comment) error
	// ListByPostID は指定投稿のコメントを新しい順に取得する。
	ListByPostID(ctx context.Context, postID string) ([]model.Comment, error)
}
