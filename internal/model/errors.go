package model

import "fmt"

// APIError は統一エラーフォーマットを表す。
// UIに表示する原因カテゴリと対処方法を含む。
type APIError struct {
	Code     string // エラーコード
	Message  string // エラーメッセージ
	Category string // カテゴリ: auth, validation, board, system
	Action   string // ユーザー向け対処方法
}

// Error はerrorインターフェースを実装する。
func (e *APIError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// 定義済みエラーコード
const (
	ErrCodeEmailAlreadyExists = "EMAIL_ALREADY_EXISTS"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeInvalidGender      = "INVALID_GENDER"
	ErrCodeUnknownField       = "UNKNOWN_FIELD"
	ErrCodeInvalidAge         = "INVALID_AGE"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeProfileNotFound    = "PROFILE_NOT_FOUND"
	ErrCodePostNotFound       = "POST_NOT_FOUND"
)

// NewEmailAlreadyExistsError はメールアドレス重複エラーを生成する。
func NewEmailAlreadyExistsError() *APIError {
	return &APIError{
		Code:     ErrCodeEmailAlreadyExists,
		Message:  "このメールアドレスは既に登録されています。",
		Category: "validation",
		Action:   "別のメールアドレスで登録するか、ログインしてください。",
	}
}

// NewInvalidCredentialsError は認証情報不一致エラーを生成する。
// メールアドレス未登録とパスワード不一致を区別しない。
func NewInvalidCredentialsError() *APIError {
	return &APIError{
		Code:     ErrCodeInvalidCredentials,
		Message:  "メールアドレスまたはパスワードが一致しません。",
		Category: "auth",
		Action:   "入力内容を確認して再度お試しください。",
	}
}

// NewInvalidGenderError は性別区分が許可外の場合のエラーを生成する。
func NewInvalidGenderError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidGender,
		Message:  fmt.Sprintf("無効な性別区分です: %s", value),
		Category: "validation",
		Action:   "male、female、other のいずれかを指定してください。",
	}
}

// NewUnknownFieldError は許可外のプロフィール項目が指定された場合のエラーを生成する。
func NewUnknownFieldError(field string) *APIError {
	return &APIError{
		Code:     ErrCodeUnknownField,
		Message:  fmt.Sprintf("更新できない項目です: %s", field),
		Category: "validation",
		Action:   "name、age、gender、profileImage のみ更新できます。",
	}
}

// NewInvalidAgeError は年齢が整数として解釈できない場合のエラーを生成する。
func NewInvalidAgeError(value string) *APIError {
	return &APIError{
		Code:     ErrCodeInvalidAge,
		Message:  fmt.Sprintf("無効な年齢です: %s", value),
		Category: "validation",
		Action:   "年齢は0以上の整数で指定してください。",
	}
}

// NewUserNotFoundError はユーザーが見つからない場合のエラーを生成する。
func NewUserNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeUserNotFound,
		Message:  "ユーザーが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewProfileNotFoundError はプロフィールが見つからない場合のエラーを生成する。
func NewProfileNotFoundError() *APIError {
	return &APIError{
		Code:     ErrCodeProfileNotFound,
		Message:  "プロフィールが見つかりません。",
		Category: "auth",
		Action:   "ログインし直してください。",
	}
}

// NewPostNotFoundError は投稿が見つからない場合のエラーを生成する。
func NewPostNotFoundError(postID string) *APIError {
	return &APIError{
		Code:     ErrCodePostNotFound,
		Message:  fmt.Sprintf("指定された投稿が見つかりません: %s", postID),
		Category: "board",
		Action:   "投稿IDを確認してください。",
	}
}
