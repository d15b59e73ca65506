package auth

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/hitoshi/boardman/internal/model"
	"github.com/hitoshi/boardman/internal/repository"
)

// Service はサインアップ・サインインのビジネスロジックを提供する。
type Service struct {
	userRepo repository.UserRepository
	tokens   *TokenService
}

// NewService はServiceを生成する。
func NewService(userRepo repository.UserRepository, tokens *TokenService) *Service {
	return &Service{
		userRepo: userRepo,
		tokens:   tokens,
	}
}

// SignUpInput はサインアップの入力。
type SignUpInput struct {
	Email        string
	Password     string
	Name         string
	Age          int
	Gender       string
	ProfileImage string
}

// SignUp は新規ユーザーを登録する。
// メールアドレスが登録済みの場合はEMAIL_ALREADY_EXISTSを返す。
// 性別は大文字へ正規化してから保存し、UserとProfileは同一トランザクションで作成される。
func (s *Service) SignUp(ctx context.Context, input SignUpInput) (*model.User, error) {
	gender, ok := model.NormalizeGender(input.Gender)
	if !ok {
		return nil, model.NewInvalidGenderError(input.Gender)
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}
	if existing != nil {
		return nil, model.NewEmailAlreadyExistsError()
	}

	hash, err := HashPassword(input.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := &model.User{
		ID:           uuid.New().String(),
		Email:        input.Email,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	profile := &model.Profile{
		ID:           uuid.New().String(),
		UserID:       user.ID,
		Name:         input.Name,
		Age:          input.Age,
		Gender:       gender,
		ProfileImage: input.ProfileImage,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.userRepo.CreateWithProfile(ctx, user, profile); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	slog.Info("user signed up",
		slog.String("user_id", user.ID),
	)

	return user, nil
}

// SignIn は認証情報を検証し、セッショントークンを発行する。
// メールアドレス未登録とパスワード不一致はいずれもINVALID_CREDENTIALSを返し、区別しない。
// パスワード比較は結果が確定してから分岐する。
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return "", model.NewInvalidCredentialsError()
	}

	if err := ComparePassword(password, user.PasswordHash); err != nil {
		return "", model.NewInvalidCredentialsError()
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("user signed in",
		slog.String("user_id", user.ID),
	)

	return token, nil
}
