package db

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ctxtimer/ctt/internal/models"
)

// GetSetting returns the value stored for key, or "" when the key is unset.
// Unknown keys are not an error; newer versions may write keys this binary
// does not recognize.
func GetSetting(key string) (string, error) {
	var setting models.Setting
	err := DB.First(&setting, "key = ?", key).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return setting.Value, nil
}

// SetSetting upserts a setting by key. No history is kept.
func SetSetting(key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(&setting).Error
}
