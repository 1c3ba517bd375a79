package main

import (
	"context"
	"log"

	"github.com/gin-gonic/gin"
	"github.com/victoegallery/internal/config"
	"github.com/victoegallery/internal/db"
	"github.com/victoegallery/internal/handler"
	"github.com/victoegallery/internal/router"
	"github.com/victoegallery/internal/service"
	"github.com/victoegallery/internal/storage"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	gdb, err := db.Open(db.Options{
		Path:        cfg.DatabasePath,
		DatabaseURL: cfg.DatabaseURL,
	})
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}

	if err := db.EnsureUser(gdb, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		log.Fatalf("failed to bootstrap admin user: %v", err)
	}

	blobs, err := buildBlobStore(cfg)
	if err != nil {
		log.Fatalf("failed to initialize blob storage: %v", err)
	}

	auth := service.NewAuthService(gdb, cfg.JWTSecret)
	api := handler.NewAPI(gdb, auth, blobs, cfg.BlobFolder)

	r := router.SetupRouter(api, router.Options{
		SessionSecret: cfg.SessionSecret,
		CORSOrigins:   cfg.CORSOrigins,
		TemplateGlob:  "web/template/*/*.html",
		StaticDir:     "web/static",
	})

	if err := r.Run(cfg.ListenAddr); err != nil {
		log.Fatalf("failed to run server: %v", err)
	}
}

// buildBlobStore picks the S3 adapter when a bucket is configured and
// falls back to local disk for development.
func buildBlobStore(cfg config.AppConfig) (storage.BlobStore, error) {
	if cfg.BlobBucket != "" {
		return storage.NewS3Store(context.Background(), storage.S3Options{
			Bucket:        cfg.BlobBucket,
			Endpoint:      cfg.BlobEndpoint,
			Region:        cfg.BlobRegion,
			AccessKeyID:   cfg.BlobAccessKeyID,
			AccessSecret:  cfg.BlobAccessSecret,
			PublicBaseURL: cfg.BlobPublicBaseURL,
			Folder:        cfg.BlobFolder,
			MaxDimension:  cfg.MaxImageDimension,
		})
	}

	log.Println("no blob bucket configured, storing uploads on local disk")
	return storage.NewLocalStore(cfg.UploadDir, cfg.UploadURLPath, cfg.MaxImageDimension)
}
