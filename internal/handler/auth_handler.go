package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/boardman/internal/auth"
	"github.com/hitoshi/boardman/internal/middleware"
	"github.com/hitoshi/boardman/internal/model"
)

// AuthService はサインアップ・サインインに必要なインターフェース。
type AuthService interface {
	SignUp(ctx context.Context, input auth.SignUpInput) (*model.User, error)
	SignIn(ctx context.Context, email, password string) (string, error)
}

// AuthMetricsRecorder は認証成功の計測インターフェース。
// metrics.MetricsCollectorの部分集合として定義する。
type AuthMetricsRecorder interface {
	RecordSignUp()
	RecordSignIn()
}

// AuthHandler はサインアップ・サインインのHTTPハンドラー。
type AuthHandler struct {
	service   AuthService
	cookieCfg middleware.CookieConfig
	metrics   AuthMetricsRecorder
}

// NewAuthHandler はAuthHandlerを生成する。
// metricsはnilを許容する。
func NewAuthHandler(service AuthService, cookieCfg middleware.CookieConfig, metrics AuthMetricsRecorder) *AuthHandler {
	return &AuthHandler{
		service:   service,
		cookieCfg: cookieCfg,
		metrics:   metrics,
	}
}

// signUpRequest はサインアップのリクエストボディ。
type signUpRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	ProfileImage string `json:"profileImage"`
}

// signUpResponse はサインアップのレスポンスボディ。
type signUpResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// SignUp は POST /api/sign-up のハンドラー。
// 登録成功時は201を返す。メールアドレス重複は409。
func (h *AuthHandler) SignUp(w http.ResponseWriter, r *http.Request) {
	var req signUpRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}
	if req.Email == "" {
		writeMissingField(w, "email")
		return
	}
	if req.Password == "" {
		writeMissingField(w, "password")
		return
	}
	if req.Name == "" {
		writeMissingField(w, "name")
		return
	}

	user, err := h.service.SignUp(r.Context(), auth.SignUpInput{
		Email:        req.Email,
		Password:     req.Password,
		Name:         req.Name,
		Age:          req.Age,
		Gender:       req.Gender,
		ProfileImage: req.ProfileImage,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSignUp()
	}

	writeJSON(w, http.StatusCreated, signUpResponse{
		ID:    user.ID,
		Email: user.Email,
	})
}

// signInRequest はサインインのリクエストボディ。
type signInRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// signInResponse はサインインのレスポンスボディ。
type signInResponse struct {
	Message string `json:"message"`
}

// SignIn は POST /api/sign-in のハンドラー。
// 認証成功時はauthorization Cookieにベアラートークンを設定して200を返す。
// メールアドレス未登録とパスワード不一致はいずれも401。
func (h *AuthHandler) SignIn(w http.ResponseWriter, r *http.Request) {
	var req signInRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequest(w)
		return
	}
	if req.Email == "" {
		writeMissingField(w, "email")
		return
	}
	if req.Password == "" {
		writeMissingField(w, "password")
		return
	}

	token, err := h.service.SignIn(r.Context(), req.Email, req.Password)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	if h.metrics != nil {
		h.metrics.RecordSignIn()
	}

	middleware.SetAuthCookie(w, token, h.cookieCfg)
	writeJSON(w, http.StatusOK, signInResponse{
		Message: "ログインしました。",
	})
}
