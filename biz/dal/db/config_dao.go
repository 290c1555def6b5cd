package db

import (
	"context"
	"errors"

	"catalogo/biz/dal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConfigDAO reads and seeds rows of the configs key/value table.
type ConfigDAO struct{}

func NewConfigDAO() *ConfigDAO { return &ConfigDAO{} }

// GetValue returns the value stored under key, or an empty string when the
// row is absent. A missing row is not an error.
func (dao *ConfigDAO) GetValue(ctx context.Context, db *gorm.DB, key string) (string, error) {
	var entity model.Config
	err := db.WithContext(ctx).Where("key = ?", key).First(&entity).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil
		}
		return "", err
	}
	return entity.Value, nil
}

// Set inserts or updates the value stored under key. Used by seeding.
func (dao *ConfigDAO) Set(ctx context.Context, db *gorm.DB, key, value string) error {
	if key == "" {
		return errors.New("config key is required")
	}
	return db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&model.Config{Key: key, Value: value}).
		Error
}
