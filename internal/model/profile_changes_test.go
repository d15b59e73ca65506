package model

import (
	"testing"
)

func baseProfile() *Profile {
	return &Profile{
		ID:           "profile-1",
		UserID:       "user-1",
		Name:         "A",
		Age:          20,
		Gender:       GenderMale,
		ProfileImage: "",
	}
}

// 値が変わったフィールドの数だけChangeRecordが生成されることを検証
func TestApplyProfileChanges_RecordCountEqualsChangedFields(t *testing.T) {
	tests := []struct {
		name        string
		changes     map[string]string
		wantRecords int
	}{
		{
			name:        "1フィールド変更",
			changes:     map[string]string{"name": "B"},
			wantRecords: 1,
		},
		{
			name:        "3フィールド変更",
			changes:     map[string]string{"name": "B", "age": "21", "gender": "female"},
			wantRecords: 3,
		},
		{
			name:        "変更なしのフィールドはレコードを生成しない",
			changes:     map[string]string{"name": "A", "age": "20"},
			wantRecords: 0,
		},
		{
			name:        "一部のみ変更",
			changes:     map[string]string{"name": "A", "age": "30"},
			wantRecords: 1,
		},
		{
			name:        "空のペイロード",
			changes:     map[string]string{},
			wantRecords: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			profile := baseProfile()
			records, err := ApplyProfileChanges(profile, tt.changes)
			if err != nil {
				t.Fatalf("ApplyProfileChanges() error = %v", err)
			}
			if len(records) != tt.wantRecords {
				t.Errorf("records = %d, want %d", len(records), tt.wantRecords)
			}
		})
	}
}

// 新旧値が正しく記録されることを検証
func TestApplyProfileChanges_RecordsOldAndNewValues(t *testing.T) {
	profile := baseProfile()
	records, err := ApplyProfileChanges(profile, map[string]string{"name": "B"})
	if err != nil {
		t.Fatalf("ApplyProfileChanges() error = %v", err)
	}

	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	rec := records[0]
	if rec.ChangedField != "name" {
		t.Errorf("ChangedField = %q, want %q", rec.ChangedField, "name")
	}
	if rec.OldValue != "A" {
		t.Errorf("OldValue = %q, want %q", rec.OldValue, "A")
	}
	if rec.NewValue != "B" {
		t.Errorf("NewValue = %q, want %q", rec.NewValue, "B")
	}
	if profile.Name != "B" {
		t.Errorf("profile.Name = %q, want %q", profile.Name, "B")
	}
}

// 許可外フィールドが拒否されることを検証
func TestApplyProfileChanges_RejectsUnknownField(t *testing.T) {
	profile := baseProfile()
	_, err := ApplyProfileChanges(profile, map[string]string{"email": "evil@example.com"})
	if err == nil {
		t.Fatal("expected error for unknown field")
	}

	apiErr, ok := err.(*APIError)
	if !ok {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.Code != ErrCodeUnknownField {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrCodeUnknownField)
	}
}

// 年齢は整数テキストとして比較されることを検証
func TestApplyProfileChanges_AgeCoercion(t *testing.T) {
	profile := baseProfile()
	records, err := ApplyProfileChanges(profile, map[string]string{"age": "20"})
	if err != nil {
		t.Fatalf("ApplyProfileChanges() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0 for same age", len(records))
	}

	_, err = ApplyProfileChanges(profile, map[string]string{"age": "twenty"})
	if err == nil {
		t.Fatal("expected error for non-numeric age")
	}
	_, err = ApplyProfileChanges(profile, map[string]string{"age": "-1"})
	if err == nil {
		t.Fatal("expected error for negative age")
	}
}

// 性別は大文字へ正規化してから比較・保存されることを検証
func TestApplyProfileChanges_GenderNormalization(t *testing.T) {
	profile := baseProfile()

	// "male" は現在値MALEと同じため変更なし
	records, err := ApplyProfileChanges(profile, map[string]string{"gender": "male"})
	if err != nil {
		t.Fatalf("ApplyProfileChanges() error = %v", err)
	}
	if len(records) != 0 {
		t.Errorf("records = %d, want 0 for unchanged gender", len(records))
	}

	records, err = ApplyProfileChanges(profile, map[string]string{"gender": "female"})
	if err != nil {
		t.Fatalf("ApplyProfileChanges() error = %v", err)
	}
	if len(records) != 1 {
		t.Fatalf("records = %d, want 1", len(records))
	}
	if records[0].NewValue != GenderFemale {
		t.Errorf("NewValue = %q, want %q", records[0].NewValue, GenderFemale)
	}
	if profile.Gender != GenderFemale {
		t.Errorf("profile.Gender = %q, want %q", profile.Gender, GenderFemale)
	}

	_, err = ApplyProfileChanges(profile, map[string]string{"gender": "dragon"})
	if err == nil {
		t.Fatal("expected error for invalid gender")
	}
}

// NormalizeGenderの正規化と検証を確認
func TestNormalizeGender(t *testing.T) {
	tests := []struct {
		input  string
		want   Gender
		wantOK bool
	}{
		{"male", GenderMale, true},
		{"MALE", GenderMale, true},
		{" Female ", GenderFemale, true},
		{"other", GenderOther, true},
		{"", "", false},
		{"unknown", "", false},
	}

	for _, tt := range tests {
		got, ok := NormalizeGender(tt.input)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("NormalizeGender(%q) = (%q, %v), want (%q, %v)", tt.input, got, ok, tt.want, tt.wantOK)
		}
	}
}
