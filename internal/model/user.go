// Package model はドメインモデルを定義する。
package model

import (
	"strings"
	"time"

	"github.com/uptrace/bun"
)

// Gender はプロフィールの性別区分を表す。
// 保存前に大文字へ正規化した固定の列挙値のみを許可する。
type Gender = string

const (
	GenderMale   Gender = "MALE"
	GenderFemale Gender = "FEMALE"
	GenderOther  Gender = "OTHER"
)

// NormalizeGender は入力値を大文字へ正規化し、許可された列挙値か検証する。
// 許可外の値の場合はfalseを返す。
func NormalizeGender(v string) (Gender, bool) {
	g := strings.ToUpper(strings.TrimSpace(v))
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return g, true
	}
	return "", false
}

// User はサービス利用ユーザーの認証情報を表す。
// パスワードはbcryptハッシュのみを保持し、平文は保存しない。
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID           string    `bun:"id,pk"`
	Email        string    `bun:"email,notnull,unique"`
	PasswordHash string    `bun:"password_hash,notnull"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// Profile はUserと1:1で対応するプロフィール情報を表す。
// Userと同一トランザクションで作成される。
type Profile struct {
	bun.BaseModel `bun:"table:profiles,alias:prf"`

	ID           string    `bun:"id,pk"`
	UserID       string    `bun:"user_id,notnull,unique"`
	Name         string    `bun:"name,notnull"`
	Age          int       `bun:"age"`
	Gender       Gender    `bun:"gender,notnull"`
	ProfileImage string    `bun:"profile_image"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
	UpdatedAt    time.Time `bun:"updated_at,notnull,default:current_timestamp"`
}

// ChangeRecord はプロフィール変更の監査ログを表す。
// 追記専用で、1回の更新で実際に値が変わったフィールドごとに1件作成される。
type ChangeRecord struct {
	bun.BaseModel `bun:"table:change_records,alias:chr"`

	ID           string    `bun:"id,pk"`
	ProfileID    string    `bun:"profile_id,notnull"`
	ChangedField string    `bun:"changed_field,notnull"`
	OldValue     string    `bun:"old_value,type:text"`
	NewValue     string    `bun:"new_value,type:text"`
	CreatedAt    time.Time `bun:"created_at,notnull,default:current_timestamp"`
}
