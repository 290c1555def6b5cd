// Seeds the configs table with the bucket base URL and inserts a few demo
// products. Run once against a fresh database.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"

	"catalogo/biz/dal/db"
	"catalogo/biz/dal/model"
	"catalogo/biz/service"
	"catalogo/pkg/config"
	"catalogo/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	bucketURL := flag.String("bucket-url", "https://jose-myawsbucket1.s3.us-east-2.amazonaws.com/", "bucket base URL stored in the configs table")
	demo := flag.Bool("demo", true, "insert demo products when the table is empty")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	gdb, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := gdb.AutoMigrate(&model.Product{}, &model.Config{}); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	ctx := context.Background()
	configDAO := db.NewConfigDAO()
	if err := configDAO.Set(ctx, gdb, service.BucketURLConfigKey, *bucketURL); err != nil {
		log.Fatalf("seed bucket url: %v", err)
	}
	log.Printf("seeded %s = %s", service.BucketURLConfigKey, *bucketURL)

	if !*demo {
		return
	}

	var count int64
	if err := gdb.Model(&model.Product{}).Count(&count).Error; err != nil {
		log.Fatalf("count products: %v", err)
	}
	if count > 0 {
		log.Printf("products table not empty (%d rows), skipping demo data", count)
		return
	}

	productDAO := db.NewProductDAO()
	for i := 1; i <= 3; i++ {
		imagePath := fmt.Sprintf("imagenes/producto%d.jpg", i)
		p := &model.Product{
			Name:        fmt.Sprintf("Producto %d", i),
			Description: fmt.Sprintf("Descripción del producto %d", i),
			ImagePath:   &imagePath,
		}
		if err := productDAO.Create(ctx, gdb, p); err != nil {
			log.Fatalf("seed product %d: %v", i, err)
		}
	}
	log.Printf("seeded 3 demo products")
}
