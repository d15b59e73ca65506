package handler

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/hitoshi/boardman/internal/account"
	"github.com/hitoshi/boardman/internal/middleware"
	"github.com/hitoshi/boardman/internal/model"
)

// AccountService はアカウント参照・プロフィール更新に必要なインターフェース。
type AccountService interface {
	GetAccount(ctx context.Context, userID string) (*account.Account, error)
	UpdateProfile(ctx context.Context, userID string, changes map[string]string) (*model.Profile, []model.ChangeRecord, error)
}

// UserHandler はアカウント参照・プロフィール更新のHTTPハンドラー。
type UserHandler struct {
	service AccountService
}

// NewUserHandler はUserHandlerを生成する。
func NewUserHandler(service AccountService) *UserHandler {
	return &UserHandler{service: service}
}

// profileResponse はプロフィールのレスポンス表現。
type profileResponse struct {
	Name         string `json:"name"`
	Age          int    `json:"age"`
	Gender       string `json:"gender"`
	ProfileImage string `json:"profileImage"`
}

// accountResponse はアカウント参照のレスポンスボディ。
type accountResponse struct {
	ID        string          `json:"id"`
	Email     string          `json:"email"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
	Profile   profileResponse `json:"profile"`
}

// Me は GET /api/users のハンドラー。
// 認証済みユーザー自身のユーザー情報とプロフィールを返す。
func (h *UserHandler) Me(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	acct, err := h.service.GetAccount(r.Context(), user.ID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, accountResponse{
		ID:        acct.User.ID,
		Email:     acct.User.Email,
		CreatedAt: acct.User.CreatedAt,
		UpdatedAt: acct.User.UpdatedAt,
		Profile: profileResponse{
			Name:         acct.Profile.Name,
			Age:          acct.Profile.Age,
			Gender:       acct.Profile.Gender,
			ProfileImage: acct.Profile.ProfileImage,
		},
	})
}

// updateProfileResponse はプロフィール更新のレスポンスボディ。
type updateProfileResponse struct {
	Profile       profileResponse `json:"profile"`
	ChangedFields []string        `json:"changedFields"`
}

// UpdateProfile は PATCH /api/users のハンドラー。
// リクエストボディは更新する項目のみを含む自由形式のJSONオブジェクト。
// 許可リスト外の項目が含まれる場合は400を返し、何も更新しない。
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, err := middleware.UserFromContext(r.Context())
	if err != nil {
		writeUnauthorized(w)
		return
	}

	var body map[string]any
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeInvalidRequest(w)
		return
	}

	changes := make(map[string]string, len(body))
	for field, value := range body {
		changes[field] = coerceToString(value)
	}

	profile, records, err := h.service.UpdateProfile(r.Context(), user.ID, changes)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	changedFields := make([]string, 0, len(records))
	for _, record := range records {
		changedFields = append(changedFields, record.ChangedField)
	}

	writeJSON(w, http.StatusOK, updateProfileResponse{
		Profile: profileResponse{
			Name:         profile.Name,
			Age:          profile.Age,
			Gender:       profile.Gender,
			ProfileImage: profile.ProfileImage,
		},
		ChangedFields: changedFields,
	})
}

// coerceToString はJSON値をテキスト表現に変換する。
// JSONの数値はfloat64でデコードされるため、整数値は小数点なしの表記にする。
func coerceToString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case float64:
		if v == math.Trunc(v) {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return ""
	default:
		raw, _ := json.Marshal(v)
		return string(raw)
	}
}
