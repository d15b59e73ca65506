// Package auth はトークン発行・検証、パスワードハッシュ、サインアップ/サインインの
// ビジネスロジックを提供する。
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// トークン検証の失敗種別。
// 認証ミドルウェアはこの種別に応じてレスポンスメッセージを変える。
var (
	// ErrTokenExpired は有効期限切れのトークンを示す。
	ErrTokenExpired = errors.New("token expired")
	// ErrTokenMalformed は構造または署名が不正なトークンを示す。
	ErrTokenMalformed = errors.New("token malformed")
	// ErrTokenInvalid は上記以外の検証失敗を示す。
	ErrTokenInvalid = errors.New("token invalid")
)

// Claims はJWTに埋め込む利用者識別情報。
// 標準クレームに加えてUserIDを保持する。
type Claims struct {
	jwt.RegisteredClaims
	UserID string `json:"userId"`
}

// TokenService は署名付きセッショントークンの発行と検証を行う。
// トークンはサーバー側に保存しないステートレスなクレデンシャル。
type TokenService struct {
	signingKey []byte
	expiry     time.Duration
}

// NewTokenService はTokenServiceを生成する。
// signingKeyとexpiryは設定から起動時に渡される。
func NewTokenService(signingKey []byte, expiry time.Duration) *TokenService {
	return &TokenService{
		signingKey: signingKey,
		expiry:     expiry,
	}
}

// Issue はuserIDと有効期限を埋め込んだHS256署名トークンを発行する。
func (s *TokenService) Issue(userID string) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
		},
		UserID: userID,
	})

	signed, err := token.SignedString(s.signingKey)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}

// Verify はトークンを検証し、埋め込まれたuserIDを返す。
// 失敗種別: 期限切れはErrTokenExpired、構造・署名不正はErrTokenMalformed、
// その他の検証失敗はErrTokenInvalid。副作用は持たない。
func (s *TokenService) Verify(tokenString string) (string, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.signingKey, nil
	})
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return "", ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenMalformed), errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return "", ErrTokenMalformed
		default:
			return "", ErrTokenInvalid
		}
	}

	if !token.Valid || claims.UserID == "" {
		return "", ErrTokenInvalid
	}

	return claims.UserID, nil
}
