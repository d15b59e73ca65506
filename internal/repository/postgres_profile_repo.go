package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"

	"github.com/hitoshi/boardman/internal/model"
)

// PostgresProfileRepo はbun ORMを使用したプロフィールリポジトリ。
// プロフィール更新と変更履歴の追記を単一トランザクションとして扱う。
type PostgresProfileRepo struct {
	db *bun.DB
}

// NewPostgresProfileRepo はPostgresProfileRepoを生成する。
func NewPostgresProfileRepo(db *bun.DB) *PostgresProfileRepo {
	return &PostgresProfileRepo{db: db}
}

// FindByUserID は指定ユーザーのプロフィールを取得する。見つからない場合はnilを返す。
func (r *PostgresProfileRepo) FindByUserID(ctx context.Context, userID string) (*model.Profile, error) {
	profile := &model.Profile{}
	err := r.db.NewSelect().
		Model(profile).
		Where("prf.user_id = ?", userID).
		Scan(ctx)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find profile by user ID: %w", err)
	}

	return profile, nil
}

// UpdateWithAudit はプロフィール更新と変更履歴の追記をREAD COMMITTEDの
// 単一トランザクションで実行する。
// 処理順序: プロフィール読み取り → フィールド適用(1回のUPDATE) →
// 値が変わったフィールドごとにChangeRecordをINSERT → コミット。
// いずれかの書き込みが失敗した場合、プロフィール変更と履歴はすべてロールバックされる。
// プロフィールが存在しない場合はPROFILE_NOT_FOUNDを返す。
func (r *PostgresProfileRepo) UpdateWithAudit(ctx context.Context, userID string, changes map[string]string) (*model.Profile, []model.ChangeRecord, error) {
	profile := &model.Profile{}
	var records []model.ChangeRecord

	err := r.db.RunInTx(ctx, &sql.TxOptions{Isolation: sql.LevelReadCommitted}, func(ctx context.Context, tx bun.Tx) error {
		err := tx.NewSelect().
			Model(profile).
			Where("prf.user_id = ?", userID).
			Scan(ctx)
		if errors.Is(err, sql.ErrNoRows) {
			return model.NewProfileNotFoundError()
		}
		if err != nil {
			return fmt.Errorf("failed to load profile: %w", err)
		}

		records, err = model.ApplyProfileChanges(profile, changes)
		if err != nil {
			return err
		}

		now := time.Now()
		profile.UpdatedAt = now

		if _, err := tx.NewUpdate().Model(profile).WherePK().Exec(ctx); err != nil {
			return fmt.Errorf("failed to update profile: %w", err)
		}

		for i := range records {
			records[i].ID = uuid.New().String()
			records[i].ProfileID = profile.ID
			records[i].CreatedAt = now
		}

		if len(records) > 0 {
			if _, err := tx.NewInsert().Model(&records).Exec(ctx); err != nil {
				return fmt.Errorf("failed to insert change records: %w", err)
			}
		}

		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	return profile, records, nil
}

// ListChangeRecords は指定プロフィールの変更履歴を時刻順に取得する。
func (r *PostgresProfileRepo) ListChangeRecords(ctx context.Context, profileID string) ([]model.ChangeRecord, error) {
	var records []model.ChangeRecord
	err := r.db.NewSelect().
		Model(&records).
		Where("chr.profile_id = ?", profileID).
		Order("created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list change records: %w", err)
	}

	return records, nil
}

// compile-time interface check
var _ ProfileRepository = (*PostgresProfileRepo)(nil)
