package service_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"testing"

	"catalogo/biz/dal/db"
	"catalogo/biz/dal/model"
	"catalogo/biz/service"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testBucketURL = "https://jose-myawsbucket1.s3.us-east-2.amazonaws.com/"

// storageCall records one operation against the fake storage backend.
type storageCall struct {
	Op     string // "put" or "delete"
	Bucket string
	Key    string
}

// fakeStorage implements storage.Storage and records call order, which the
// tests use to assert the delete-old-before-upload-new sequencing.
type fakeStorage struct {
	calls     []storageCall
	objects   map[string][]byte
	putErr    error
	deleteErr error
}

func newFakeStorage() *fakeStorage {
	return &fakeStorage{objects: map[string][]byte{}}
}

func (f *fakeStorage) PutObject(ctx context.Context, bucket, key string, data io.Reader, contentType string, size int64) error {
	f.calls = append(f.calls, storageCall{Op: "put", Bucket: bucket, Key: key})
	if f.putErr != nil {
		return f.putErr
	}
	b, err := io.ReadAll(data)
	if err != nil {
		return err
	}
	f.objects[bucket+"/"+key] = b
	return nil
}

func (f *fakeStorage) DeleteObject(ctx context.Context, bucket, key string) error {
	f.calls = append(f.calls, storageCall{Op: "delete", Bucket: bucket, Key: key})
	if f.deleteErr != nil {
		return f.deleteErr
	}
	delete(f.objects, bucket+"/"+key)
	return nil
}

func (f *fakeStorage) ObjectExists(ctx context.Context, bucket, key string) (bool, error) {
	_, ok := f.objects[bucket+"/"+key]
	return ok, nil
}

func (f *fakeStorage) Type() string { return "fake" }

func newTestService(t *testing.T) (*service.Service, *fakeStorage, *gorm.DB) {
	t.Helper()

	// A shared-cache named in-memory DB: with the plain ":memory:" DSN every
	// pool connection gets its own empty database, so queries that run on a
	// second connection while a transaction pins the first see no tables.
	gdb, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := gdb.AutoMigrate(&model.Product{}, &model.Config{}); err != nil {
		t.Fatalf("auto migrate: %v", err)
	}
	db.SeedBucketURL(t, gdb, testBucketURL)

	store := newFakeStorage()
	return service.NewService(gdb, store), store, gdb
}

func TestCreateWithoutFile(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	view, err := svc.Create(ctx, "Producto 1", "d1", nil)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if view.ID == 0 {
		t.Fatalf("expected assigned id")
	}
	if view.ImagePath != nil {
		t.Fatalf("expected nil image_path, got %v", *view.ImagePath)
	}
	if view.FullImageURL != nil {
		t.Fatalf("expected nil full_image_url, got %v", *view.FullImageURL)
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected no storage calls, got %v", store.calls)
	}
}

func TestCreateWithFile(t *testing.T) {
	ctx := context.Background()
	svc, store, _ := newTestService(t)

	view, err := svc.Create(ctx, "P2", "d2", &service.FileInput{
		FileName:    "photo.png",
		ContentType: "image/png",
		Data:        []byte("png bytes"),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	wantKey := fmt.Sprintf("imagenes/producto%d.png", view.ID)
	if view.ImagePath == nil || *view.ImagePath != wantKey {
		t.Fatalf("expected image_path %q, got %v", wantKey, view.ImagePath)
	}
	wantURL := testBucketURL + wantKey
	if view.FullImageURL == nil || *view.FullImageURL != wantURL {
		t.Fatalf("expected full_image_url %q, got %v", wantURL, view.FullImageURL)
	}

	if len(store.calls) != 1 {
		t.Fatalf("expected 1 storage call, got %v", store.calls)
	}
	call := store.calls[0]
	if call.Op != "put" || call.Bucket != "jose-myawsbucket1" || call.Key != wantKey {
		t.Fatalf("unexpected storage call %+v", call)
	}
}

func TestCreateRollsBackWhenUploadFails(t *testing.T) {
	ctx := context.Background()
	svc, store, gdb := newTestService(t)
	store.putErr = errors.New("s3 unavailable")

	_, err := svc.Create(ctx, "P3", "d3", &service.FileInput{
		FileName: "photo.jpg",
		Data:     []byte("jpg"),
	})
	if err == nil {
		t.Fatalf("expected create to fail")
	}

	var count int64
	if err := gdb.Model(&model.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count products: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected rollback to leave no rows, got %d", count)
	}
}

func TestCreateFailsWhenBucketUnresolvable(t *testing.T) {
	ctx := context.Background()
	svc, _, gdb := newTestService(t)
	db.SeedBucketURL(t, gdb, "https://not-a-bucket-url.example.com/")

	_, err := svc.Create(ctx, "P4", "d4", &service.FileInput{
		FileName: "photo.png",
		Data:     []byte("png"),
	})
	if err == nil {
		t.Fatalf("expected create to fail when bucket name cannot be resolved")
	}
}

func TestListAttachesURLs(t *testing.T) {
	ctx := context.Background()
	svc, _, gdb := newTestService(t)

	key := "imagenes/producto1.jpg"
	db.CreateTestProduct(t, gdb, "Producto 1", "Descripción del producto 1", &key)
	db.CreateTestProduct(t, gdb, "Producto 2", "Descripción del producto 2", nil)

	views, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(views) != 2 {
		t.Fatalf("expected 2 products, got %d", len(views))
	}

	withImage := 0
	for _, v := range views {
		if v.ImagePath != nil {
			withImage++
			if v.FullImageURL == nil || *v.FullImageURL != testBucketURL+*v.ImagePath {
				t.Fatalf("bad full_image_url for %d: %v", v.ID, v.FullImageURL)
			}
		} else if v.FullImageURL != nil {
			t.Fatalf("expected nil full_image_url for product without image")
		}
	}
	if withImage != 1 {
		t.Fatalf("expected exactly one product with image, got %d", withImage)
	}
}

func TestGetByIDNotFound(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.GetByID(context.Background(), 999)
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected no storage calls, got %v", store.calls)
	}
}

func TestUpdateReplacesImage(t *testing.T) {
	ctx := context.Background()
	svc, store, gdb := newTestService(t)

	oldKey := "imagenes/producto1.png"
	created := db.CreateTestProduct(t, gdb, "P", "d", &oldKey)
	// Pretend the old object is already in storage.
	store.objects["jose-myawsbucket1/"+oldKey] = []byte("old")

	view, err := svc.Update(ctx, created.ID, "P nuevo", "d nueva", &service.FileInput{
		FileName: "new.jpg",
		Data:     []byte("new jpg"),
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	newKey := fmt.Sprintf("imagenes/producto%d.jpg", created.ID)
	if view.ImagePath == nil || *view.ImagePath != newKey {
		t.Fatalf("expected image_path %q, got %v", newKey, view.ImagePath)
	}
	if view.Name != "P nuevo" || view.Description != "d nueva" {
		t.Fatalf("fields not updated: %+v", view)
	}

	if len(store.calls) != 2 {
		t.Fatalf("expected delete then put, got %v", store.calls)
	}
	if store.calls[0].Op != "delete" || store.calls[0].Key != oldKey {
		t.Fatalf("expected first call to delete %q, got %+v", oldKey, store.calls[0])
	}
	if store.calls[1].Op != "put" || store.calls[1].Key != newKey {
		t.Fatalf("expected second call to upload %q, got %+v", newKey, store.calls[1])
	}
}

func TestUpdateWithoutFileKeepsImage(t *testing.T) {
	ctx := context.Background()
	svc, store, gdb := newTestService(t)

	key := "imagenes/producto1.png"
	created := db.CreateTestProduct(t, gdb, "P", "d", &key)

	view, err := svc.Update(ctx, created.ID, "P2", "d2", nil)
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if view.ImagePath == nil || *view.ImagePath != key {
		t.Fatalf("expected image_path unchanged, got %v", view.ImagePath)
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected no storage calls, got %v", store.calls)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, store, _ := newTestService(t)

	_, err := svc.Update(context.Background(), 42, "x", "y", &service.FileInput{
		FileName: "a.png",
		Data:     []byte("a"),
	})
	if !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("not-found update must not touch storage, got %v", store.calls)
	}
}

func TestDeleteWithImage(t *testing.T) {
	ctx := context.Background()
	svc, store, gdb := newTestService(t)

	key := "imagenes/producto5.jpg"
	created := db.CreateTestProduct(t, gdb, "P5", "d5", &key)

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}

	if len(store.calls) != 1 || store.calls[0].Op != "delete" || store.calls[0].Key != key {
		t.Fatalf("expected single delete of %q, got %v", key, store.calls)
	}
	var count int64
	if err := gdb.Model(&model.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 0 {
		t.Fatalf("expected row removed, got %d rows", count)
	}
}

func TestDeleteWithoutImageSkipsStorage(t *testing.T) {
	ctx := context.Background()
	svc, store, gdb := newTestService(t)

	created := db.CreateTestProduct(t, gdb, "P", "d", nil)
	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if len(store.calls) != 0 {
		t.Fatalf("expected no storage calls, got %v", store.calls)
	}
}

func TestDeleteAbortsWhenStorageFails(t *testing.T) {
	ctx := context.Background()
	svc, store, gdb := newTestService(t)
	store.deleteErr = errors.New("s3 down")

	key := "imagenes/producto1.jpg"
	created := db.CreateTestProduct(t, gdb, "P", "d", &key)

	if err := svc.Delete(ctx, created.ID); err == nil {
		t.Fatalf("expected delete to fail")
	}

	var count int64
	if err := gdb.Model(&model.Product{}).Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("row must survive a failed storage delete, got %d rows", count)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc, _, _ := newTestService(t)
	if err := svc.Delete(context.Background(), 123); !errors.Is(err, service.ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}
}

func TestBucketBaseURLMissingRow(t *testing.T) {
	svc, _, gdb := newTestService(t)
	if err := gdb.Where("key = ?", service.BucketURLConfigKey).Delete(&model.Config{}).Error; err != nil {
		t.Fatalf("clear config: %v", err)
	}

	url, err := svc.BucketBaseURL(context.Background())
	if err != nil {
		t.Fatalf("BucketBaseURL: %v", err)
	}
	if url != "" {
		t.Fatalf("expected empty url for missing row, got %q", url)
	}
}
