package model

import (
	"strconv"
)

// プロフィールの更新可能フィールド名。
// リクエストで指定できるのはこの許可リストに含まれるキーのみ。
const (
	FieldName         = "name"
	FieldAge          = "age"
	FieldGender       = "gender"
	FieldProfileImage = "profileImage"
)

// mutableFields は差分計算の評価順を固定するための許可リスト。
var mutableFields = []string{FieldName, FieldAge, FieldGender, FieldProfileImage}

// ValidateProfileChanges は更新対象フィールドが許可リストに含まれるか検証する。
// 許可外のキーが含まれる場合はUNKNOWN_FIELDエラーを返す。
func ValidateProfileChanges(changes map[string]string) error {
	for key := range changes {
		allowed := false
		for _, f := range mutableFields {
			if key == f {
				allowed = true
				break
			}
		}
		if !allowed {
			return NewUnknownFieldError(key)
		}
	}
	return nil
}

// ApplyProfileChanges は与えられたフィールド更新をプロフィールに適用し、
// 実際に値が変わったフィールドごとにChangeRecordを1件返す。
// 新旧値はテキストとして比較し、値が変わらないフィールドはレコードを生成しない。
// 返却されるChangeRecordのID、ProfileID、CreatedAtは未設定であり、永続化層で補完される。
func ApplyProfileChanges(profile *Profile, changes map[string]string) ([]ChangeRecord, error) {
	if err := ValidateProfileChanges(changes); err != nil {
		return nil, err
	}

	var records []ChangeRecord

	for _, field := range mutableFields {
		newValue, ok := changes[field]
		if !ok {
			continue
		}

		var oldValue string

		switch field {
		case FieldName:
			oldValue = profile.Name
			if oldValue != newValue {
				profile.Name = newValue
			}
		case FieldAge:
			age, err := strconv.Atoi(newValue)
			if err != nil || age < 0 {
				return nil, NewInvalidAgeError(newValue)
			}
			oldValue = strconv.Itoa(profile.Age)
			newValue = strconv.Itoa(age)
			if oldValue != newValue {
				profile.Age = age
			}
		case FieldGender:
			gender, ok := NormalizeGender(newValue)
			if !ok {
				return nil, NewInvalidGenderError(newValue)
			}
			oldValue = profile.Gender
			newValue = gender
			if oldValue != newValue {
				profile.Gender = gender
			}
		case FieldProfileImage:
			oldValue = profile.ProfileImage
			if oldValue != newValue {
				profile.ProfileImage = newValue
			}
		}

		if oldValue != newValue {
			records = append(records, ChangeRecord{
				ChangedField: field,
				OldValue:     oldValue,
				NewValue:     newValue,
			})
		}
	}

	return records, nil
}
