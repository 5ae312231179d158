package main

import (
	"context"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"

	"artfolio/auth"
	"artfolio/cache"
	"artfolio/config"
	"artfolio/database"
	handler "artfolio/handlers"
	"artfolio/models"
	"artfolio/router"
	"artfolio/storage"
)

func main() {
	cfg := config.Load()

	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logrus.Fatalf("failed to connect to database: %v", err)
	}
	defer func() {
		if err := database.Close(db); err != nil {
			logrus.Errorf("failed to close database: %v", err)
		}
	}()

	// Run migrations
	if err := database.Migrate(db, &models.Account{}, &models.Artwork{}); err != nil {
		logrus.Fatalf("failed to migrate database: %v", err)
	}

	uploader, err := storage.NewGCSUploader(context.Background(), cfg.GCSProject, cfg.GCSBucket)
	if err != nil {
		logrus.Fatalf("%v", err)
	}
	defer uploader.Close()

	var galleryCache *cache.Client
	if cfg.RedisAddr != "" {
		galleryCache, err = cache.New(cfg.RedisAddr, cfg.RedisPass)
		if err != nil {
			logrus.Fatalf("failed to connect to redis: %v", err)
		}
	}

	authSvc := auth.NewService(cfg.JWTSecret)

	accounts := &handler.AccountHandler{DB: db, Auth: authSvc, Uploader: uploader}
	artworks := &handler.ArtworkHandler{DB: db, Uploader: uploader, Cache: galleryCache}

	app := fiber.New(fiber.Config{
		BodyLimit: 20 * 1024 * 1024, // multipart uploads
	})
	router.SetupRoutes(app, accounts, artworks, authSvc)

	logrus.Infof("Server is listening at the port %s", cfg.AppPort)
	logrus.Fatal(app.Listen(":" + cfg.AppPort))
}
