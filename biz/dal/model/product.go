package model

import (
	"time"
)

// Product represents a catalog product. ImagePath holds the object storage
// key of the attached image, or nil when the product has no image.
type Product struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	ImagePath   *string   `gorm:"column:image_path" json:"image_path"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName overrides gorm to use the products table.
func (Product) TableName() string {
	return "products"
}
