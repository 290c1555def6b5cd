package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"catalogo/biz/dal/model"

	"gorm.io/gorm"
)

// imageKey derives the deterministic storage key for a product image:
// imagenes/producto<id>.<ext>, where <ext> is everything after the last dot
// of the uploaded file's original name. A name without a dot yields an empty
// suffix and the key keeps its trailing dot.
func imageKey(productID uint, fileName string) string {
	ext := ""
	if i := strings.LastIndex(fileName, "."); i >= 0 {
		ext = fileName[i+1:]
	}
	return fmt.Sprintf("imagenes/producto%d.%s", productID, ext)
}

// Create inserts a product and, when a file is attached, uploads the image
// and records its storage key, all within one database transaction. The
// upload itself is a plain network call: if the transaction rolls back after
// a successful upload the object is not removed.
func (s *Service) Create(ctx context.Context, name, description string, file *FileInput) (*ProductView, error) {
	product := &model.Product{Name: name, Description: description}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.productDAO.Create(ctx, tx, product); err != nil {
			return err
		}
		if file != nil {
			key := imageKey(product.ID, file.FileName)
			if err := s.uploadObject(ctx, key, file); err != nil {
				return err
			}
			if err := s.productDAO.Updates(ctx, tx, product.ID, map[string]interface{}{
				"image_path": key,
			}); err != nil {
				return err
			}
			product.ImagePath = &key
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("create product: %w", err)
	}

	return s.decorate(ctx, product)
}

// List returns every product with its computed full image URL. The bucket
// base URL is resolved once for the whole listing.
func (s *Service) List(ctx context.Context) ([]*ProductView, error) {
	products, err := s.productDAO.FindAll(ctx, s.db)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}

	baseURL, err := s.BucketBaseURL(ctx)
	if err != nil {
		return nil, err
	}

	views := make([]*ProductView, 0, len(products))
	for i := range products {
		views = append(views, buildView(&products[i], baseURL))
	}
	return views, nil
}

// GetByID fetches one product. Returns ErrProductNotFound when absent.
func (s *Service) GetByID(ctx context.Context, id uint) (*ProductView, error) {
	product, err := s.productDAO.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("get product: %w", err)
	}
	return s.decorate(ctx, product)
}

// Update modifies name, description and optionally the image of an existing
// product. When a new file arrives and the product already has an image, the
// old object is deleted before the new one is uploaded. Both storage calls
// run outside the database transaction, so a failed commit does not restore
// a deleted object.
func (s *Service) Update(ctx context.Context, id uint, name, description string, file *FileInput) (*ProductView, error) {
	existing, err := s.productDAO.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("update product: %w", err)
	}

	imagePath := existing.ImagePath
	if file != nil {
		if imagePath != nil {
			if err := s.deleteObject(ctx, *imagePath); err != nil {
				return nil, fmt.Errorf("delete previous image: %w", err)
			}
		}
		// The key is recomputed from the new file's extension, so a
		// different extension changes the storage key.
		key := imageKey(id, file.FileName)
		if err := s.uploadObject(ctx, key, file); err != nil {
			return nil, err
		}
		imagePath = &key
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.productDAO.Updates(ctx, tx, id, map[string]interface{}{
			"name":        name,
			"description": description,
			"image_path":  imagePath,
		})
	})
	if err != nil {
		return nil, fmt.Errorf("update product: %w", err)
	}

	updated, err := s.productDAO.FindByID(ctx, s.db, id)
	if err != nil {
		return nil, fmt.Errorf("reload product: %w", err)
	}
	return s.decorate(ctx, updated)
}

// Delete removes a product and its stored image. The object is deleted
// first; a storage failure aborts before the row is touched. The row delete
// runs without a surrounding transaction.
func (s *Service) Delete(ctx context.Context, id uint) error {
	existing, err := s.productDAO.FindByID(ctx, s.db, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("delete product: %w", err)
	}

	if existing.ImagePath != nil {
		if err := s.deleteObject(ctx, *existing.ImagePath); err != nil {
			return fmt.Errorf("delete image: %w", err)
		}
	}

	if err := s.productDAO.Delete(ctx, s.db, id); err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// uploadObject resolves the bucket from the configs table and stores the
// file's bytes under key.
func (s *Service) uploadObject(ctx context.Context, key string, file *FileInput) error {
	bucket, err := s.resolveBucket(ctx)
	if err != nil {
		return err
	}
	contentType := detectContentType(file.ContentType, file.Data)
	if err := s.storage.PutObject(ctx, bucket, key, bytes.NewReader(file.Data), contentType, int64(len(file.Data))); err != nil {
		return fmt.Errorf("upload image: %w", err)
	}
	return nil
}

// deleteObject resolves the bucket and removes the object at key.
func (s *Service) deleteObject(ctx context.Context, key string) error {
	bucket, err := s.resolveBucket(ctx)
	if err != nil {
		return err
	}
	return s.storage.DeleteObject(ctx, bucket, key)
}

// decorate attaches the computed full image URL to a single record.
func (s *Service) decorate(ctx context.Context, product *model.Product) (*ProductView, error) {
	baseURL, err := s.BucketBaseURL(ctx)
	if err != nil {
		return nil, err
	}
	return buildView(product, baseURL), nil
}

// buildView computes full_image_url as plain concatenation of the base URL
// and the storage key. The base URL is expected to end with a slash already.
func buildView(product *model.Product, baseURL string) *ProductView {
	view := &ProductView{Product: *product}
	if product.ImagePath != nil {
		full := baseURL + *product.ImagePath
		view.FullImageURL = &full
	}
	return view
}
