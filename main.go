package main

import (
	"log"
	"time"

	"catalogo/biz/dal/model"
	"catalogo/biz/handler"
	"catalogo/biz/middleware"
	"catalogo/biz/router"
	"catalogo/biz/service"
	"catalogo/pkg/config"
	"catalogo/pkg/database"
	"catalogo/pkg/lock"
	"catalogo/pkg/redis"
	"catalogo/pkg/storage"

	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/joho/godotenv"
)

func main() {
	// .env is optional; deployments may export variables directly.
	_ = godotenv.Load()

	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		log.Fatalf("open database: %v", err)
	}
	if err := db.AutoMigrate(&model.Product{}, &model.Config{}); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	store, err := storage.New(cfg.Storage)
	if err != nil {
		log.Fatalf("init storage: %v", err)
	}
	log.Printf("storage backend: %s", store.Type())

	redisClient, err := redis.NewClient(cfg.Redis)
	if err != nil {
		log.Fatalf("init redis: %v", err)
	}
	if redisClient != nil {
		defer func() { _ = redisClient.Close() }()
		middleware.InitWriteLock(lock.New(redisClient, "catalogo:write_lock", 30*time.Second, 10*time.Second))
		log.Printf("distributed write lock enabled")
	}

	svc := service.NewService(db, store)
	h := handler.NewProductHandler(svc)

	srv := server.New(server.WithHostPorts(cfg.Server.Address))
	srv.Use(middleware.Recovery(), middleware.Logging(), middleware.CORS(&cfg.CORS))
	router.RegisterProductRoutes(srv, h)

	log.Printf("listening on %s", cfg.Server.Address)
	srv.Spin()
}
