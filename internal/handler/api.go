package handler

import (
	"github.com/victoegallery/internal/service"
	"github.com/victoegallery/internal/storage"
	"gorm.io/gorm"
)

// API bundles shared dependencies for HTTP handlers.
type API struct {
	db         *gorm.DB
	galleries  *service.GalleryService
	auth       *service.AuthService
	blobs      storage.BlobStore
	blobFolder string
}

// NewAPI constructs a handler set with shared services.
func NewAPI(gdb *gorm.DB, auth *service.AuthService, blobs storage.BlobStore, blobFolder string) *API {
	return &API{
		db:         gdb,
		galleries:  service.NewGalleryService(gdb),
		auth:       auth,
		blobs:      blobs,
		blobFolder: blobFolder,
	}
}
