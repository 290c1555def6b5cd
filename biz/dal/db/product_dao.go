package db

import (
	"context"
	"errors"

	"catalogo/biz/dal/model"

	"gorm.io/gorm"
)

// ProductDAO wraps basic CRUD operations for product entities.
// The *gorm.DB handle is passed per call so callers can supply a transaction.
type ProductDAO struct{}

func NewProductDAO() *ProductDAO { return &ProductDAO{} }

// Create persists a new product row and backfills the assigned ID.
func (dao *ProductDAO) Create(ctx context.Context, db *gorm.DB, entity *model.Product) error {
	if entity == nil {
		return errors.New("product must not be nil")
	}
	return db.WithContext(ctx).Create(entity).Error
}

// FindAll returns every product row. Order is whatever the database returns.
func (dao *ProductDAO) FindAll(ctx context.Context, db *gorm.DB) ([]model.Product, error) {
	var entities []model.Product
	if err := db.WithContext(ctx).Find(&entities).Error; err != nil {
		return nil, err
	}
	return entities, nil
}

// FindByID fetches a single product by primary key.
// Returns gorm.ErrRecordNotFound when the row does not exist.
func (dao *ProductDAO) FindByID(ctx context.Context, db *gorm.DB, id uint) (*model.Product, error) {
	var entity model.Product
	if err := db.WithContext(ctx).First(&entity, id).Error; err != nil {
		return nil, err
	}
	return &entity, nil
}

// Updates applies the given column values to an existing product row.
func (dao *ProductDAO) Updates(ctx context.Context, db *gorm.DB, id uint, values map[string]interface{}) error {
	if len(values) == 0 {
		return nil
	}
	return db.WithContext(ctx).
		Model(&model.Product{}).
		Where("id = ?", id).
		Updates(values).
		Error
}

// Delete removes a product row by primary key.
func (dao *ProductDAO) Delete(ctx context.Context, db *gorm.DB, id uint) error {
	return db.WithContext(ctx).Delete(&model.Product{}, id).Error
}
