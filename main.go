package main

import (
	"context"
	"log"

	"github.com/ghissghiso/goblog/config"
	"github.com/ghissghiso/goblog/models"
	"github.com/ghissghiso/goblog/routes"
	"github.com/ghissghiso/goblog/services"
	"github.com/ghissghiso/goblog/storage"
	"github.com/ghissghiso/goblog/utils"
)

func main() {
	cfg := config.Load()

	if err := utils.InitLogger(cfg); err != nil {
		panic(err)
	}

	db := config.InitDatabase(&models.User{}, &models.Category{}, &models.Tag{}, &models.Post{})

	files, err := newFileStore(cfg)
	if err != nil {
		log.Fatalf("file store init failed: %v", err)
	}

	svc := services.NewPostService(storage.NewPostRepo(db), files, services.OwnerPolicy{})
	r := routes.SetupRouter(db, svc)

	utils.Sugar.Infof("starting server on port %s (graceful)", cfg.AppPort)
	if err := utils.GraceServer(":"+cfg.AppPort, r); err != nil {
		utils.Sugar.Fatalf("server stopped with error: %v", err)
	}
}

func newFileStore(cfg config.AppConfig) (services.FileStore, error) {
	if cfg.FileStoreBackend == "s3" {
		store, err := storage.NewS3Store(context.Background(), cfg.S3Region, cfg.S3Bucket, cfg.S3AccessKey, cfg.S3SecretKey)
		if err != nil {
			return nil, err
		}
		return store, nil
	}
	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}
	return store, nil
}
