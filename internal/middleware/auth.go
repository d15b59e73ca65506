// Package middleware はHTTPミドルウェアを提供する。
package middleware

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/hitoshi/boardman/internal/auth"
	"github.com/hitoshi/boardman/internal/model"
)

// authCookieName は認証トークンを保持するCookie名。
// 値は "Bearer <token>" 形式。
const authCookieName = "authorization"

// contextKey はコンテキストに値を格納するための型安全なキー。
type contextKey string

// userContextKey はリクエストコンテキストに認証済みユーザーを格納するためのキー。
var userContextKey = contextKey("user")

// TokenVerifier はトークン検証に必要なインターフェース。
// auth.TokenServiceの部分集合として定義する。
type TokenVerifier interface {
	Verify(token string) (string, error)
}

// UserFinder はユーザー検索に必要なインターフェース。
// repository.UserRepositoryの部分集合として定義する。
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// CookieConfig は認証Cookieの属性設定。
type CookieConfig struct {
	Domain string
	Secure bool
}

// NewAuthMiddleware はauthorization Cookieからベアラートークンを読み取り、
// 検証して認証済みユーザーをリクエストコンテキストに注入するミドルウェアを返す。
// 検証手順: Cookie形式の確認 → トークン検証 → ユーザー読み込み。
// いずれかで失敗した場合は401を返し、authorization Cookieを必ず削除する。
// 失敗はすべてそのリクエストで終端し、リトライは行わない。
func NewAuthMiddleware(verifier TokenVerifier, users UserFinder, cookieCfg CookieConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. CookieからBearerトークンを取得
			token, err := bearerTokenFromCookie(r)
			if err != nil {
				clearAuthCookie(w, cookieCfg)
				WriteErrorResponse(w, http.StatusUnauthorized, &model.APIError{
					Code:     "AUTH_BAD_FORMAT",
					Message:  "認証情報の形式が不正です。",
					Category: "auth",
					Action:   "ログインし直してください。",
				})
				return
			}

			// 2. トークンの検証
			userID, err := verifier.Verify(token)
			if err != nil {
				clearAuthCookie(w, cookieCfg)
				if errors.Is(err, auth.ErrTokenExpired) {
					WriteErrorResponse(w, http.StatusUnauthorized, &model.APIError{
						Code:     "TOKEN_EXPIRED",
						Message:  "トークンの有効期限が切れています。",
						Category: "auth",
						Action:   "ログインし直してください。",
					})
					return
				}
				WriteErrorResponse(w, http.StatusUnauthorized, &model.APIError{
					Code:     "AUTH_FAILED",
					Message:  "トークンの認証に失敗しました。",
					Category: "auth",
					Action:   "ログインし直してください。",
				})
				return
			}

			// 3. トークンのuserIDでユーザーを読み込む
			user, err := users.FindByID(r.Context(), userID)
			if err != nil {
				slog.Error("failed to load authenticated user",
					slog.String("error", err.Error()),
				)
				clearAuthCookie(w, cookieCfg)
				WriteErrorResponse(w, http.StatusUnauthorized, &model.APIError{
					Code:     "AUTH_FAILED",
					Message:  "トークンの認証に失敗しました。",
					Category: "auth",
					Action:   "ログインし直してください。",
				})
				return
			}
			if user == nil {
				clearAuthCookie(w, cookieCfg)
				WriteErrorResponse(w, http.StatusUnauthorized, model.NewUserNotFoundError())
				return
			}

			// 4. 認証済みユーザーをコンテキストに注入
			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerTokenFromCookie はauthorization Cookieから "Bearer <token>" のトークン部を取り出す。
// Cookieの欠落、2要素に分割できない値、Bearer以外のスキームはエラーになる。
func bearerTokenFromCookie(r *http.Request) (string, error) {
	cookie, err := r.Cookie(authCookieName)
	if err != nil || cookie.Value == "" {
		return "", fmt.Errorf("authorization cookie not found")
	}

	parts := strings.Split(cookie.Value, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", fmt.Errorf("authorization cookie is not a bearer token")
	}

	return parts[1], nil
}

// SetAuthCookie は認証Cookieに "Bearer <token>" を設定する。
func SetAuthCookie(w http.ResponseWriter, token string, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "Bearer " + token,
		Path:     "/",
		Domain:   cfg.Domain,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// clearAuthCookie は認証Cookieを削除する。
// 失効・不正なCookieをクライアントに残さないため、認証失敗時は常に呼び出される。
func clearAuthCookie(w http.ResponseWriter, cfg CookieConfig) {
	http.SetCookie(w, &http.Cookie{
		Name:     authCookieName,
		Value:    "",
		Path:     "/",
		Domain:   cfg.Domain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   cfg.Secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// UserFromContext はリクエストコンテキストから認証済みユーザーを取得する。
// 認証ミドルウェアを通過したリクエストでのみ有効。
func UserFromContext(ctx context.Context) (*model.User, error) {
	user, ok := ctx.Value(userContextKey).(*model.User)
	if !ok || user == nil {
		return nil, fmt.Errorf("authenticated user not found in context")
	}
	return user, nil
}

// ContextWithUser はコンテキストに認証済みユーザーを注入する。
// テストやミドルウェア以外のコンテキスト生成で使用する。
func ContextWithUser(ctx context.Context, user *model.User) context.Context {
	return context.WithValue(ctx, userContextKey, user)
}
