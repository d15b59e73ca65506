package model

import (
	"time"

	"github.com/uptrace/bun"
)

// Post は掲示板の投稿を表す。
type Post struct {
	bun.BaseModel `bun:"table:posts,alias:pst"`

	ID        string    `bun:"id,pk"`
	UserID    string    `bun:"user_id,notnull"`
	Title     string    `bun:"title,notnull"`
	Content   string    `bun:"content,notnull,type:text"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Comment は投稿に対するコメントを表す。
type Comment struct {
	bun.BaseModel `bun:"table:comments,alias:cmt"`

	ID        string    `bun:"id,pk"`
	PostID    string    `bun:"post_id,notnull"`
	UserID    string    `bun:"user_id,notnull"`
	Content   string    `bun:"content,notnull,type:text"`
	CreatedAt time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
