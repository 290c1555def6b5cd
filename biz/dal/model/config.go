package model

import (
	"time"
)

// Config is a key/value row holding service settings, such as the bucket
// base URL. Rows are seeded externally; the service only reads them.
type Config struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:key;uniqueIndex:uk_config_key" json:"key"`
	Value     string    `gorm:"column:value;type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName overrides gorm to use the configs table.
func (Config) TableName() string {
	return "configs"
}
