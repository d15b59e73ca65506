// Package account はプロフィール参照と監査付きプロフィール更新のドメインロジックを提供する。
package account

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hitoshi/boardman/internal/model"
	"github.com/hitoshi/boardman/internal/repository"
)

// AuditRecorder は書き込まれた変更履歴件数の計測インターフェース。
type AuditRecorder interface {
	RecordAuditRecords(count int)
}

// Account はユーザーとプロフィールをまとめた参照用ビュー。
type Account struct {
	User    *model.User
	Profile *model.Profile
}

// Service はアカウント管理のサービス層。
type Service struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	audit       AuditRecorder
}

// NewService はServiceを生成する。
// auditはnilを許容する。
func NewService(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, audit AuditRecorder) *Service {
	return &Service{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		audit:       audit,
	}
}

// GetAccount は認証済みユーザーのユーザー情報とプロフィールを取得する。
func (s *Service) GetAccount(ctx context.Context, userID string) (*Account, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	if user == nil {
		return nil, model.NewUserNotFoundError()
	}

	profile, err := s.profileRepo.FindByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}
	if profile == nil {
		return nil, model.NewProfileNotFoundError()
	}

	return &Account{User: user, Profile: profile}, nil
}

// UpdateProfile は認証済みユーザーのプロフィールを更新し、変更履歴を追記する。
// 許可リスト外のフィールドはUNKNOWN_FIELDで拒否される。
// 更新と履歴追記は単一トランザクションで実行され、失敗時に部分的な書き込みは残らない。
func (s *Service) UpdateProfile(ctx context.Context, userID string, changes map[string]string) (*model.Profile, []model.ChangeRecord, error) {
	if err := model.ValidateProfileChanges(changes); err != nil {
		return nil, nil, err
	}

	profile, records, err := s.profileRepo.UpdateWithAudit(ctx, userID, changes)
	if err != nil {
		return nil, nil, err
	}

	if s.audit != nil {
		s.audit.RecordAuditRecords(len(records))
	}

	slog.Info("profile updated",
		slog.String("user_id", userID),
		slog.Int("changed_fields", len(records)),
	)

	return profile, records, nil
}
