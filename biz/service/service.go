package service

import (
	"errors"
	"net/http"

	"catalogo/biz/dal/db"
	"catalogo/biz/dal/model"
	"catalogo/pkg/storage"

	"gorm.io/gorm"
)

// ErrProductNotFound signals that the requested product id has no row.
var ErrProductNotFound = errors.New("product not found")

// FileInput captures metadata and payload for an uploaded image.
type FileInput struct {
	FileName    string
	ContentType string
	Data        []byte
}

// ProductView is the externally visible product representation: the record
// fields plus the computed full image URL. The URL is never persisted.
type ProductView struct {
	model.Product
	FullImageURL *string `json:"full_image_url"`
}

// Service orchestrates product persistence and image storage.
type Service struct {
	db         *gorm.DB
	storage    storage.Storage
	productDAO *db.ProductDAO
	configDAO  *db.ConfigDAO
}

func NewService(gdb *gorm.DB, store storage.Storage) *Service {
	return &Service{
		db:         gdb,
		storage:    store,
		productDAO: db.NewProductDAO(),
		configDAO:  db.NewConfigDAO(),
	}
}

// detectContentType falls back to content sniffing when the client did not
// supply a MIME type with the upload.
func detectContentType(declared string, data []byte) string {
	if declared != "" {
		return declared
	}
	if len(data) == 0 {
		return "application/octet-stream"
	}
	return http.DetectContentType(data)
}
