package db

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GalleryEntry is a single image in the gallery.
type GalleryEntry struct {
	ID          string    `gorm:"primaryKey;size:36" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	ImageURL    string    `gorm:"not null" json:"imageUrl"`
	Category    string    `gorm:"not null;index" json:"category"`
	Description string    `json:"description"`
	UploadedAt  time.Time `gorm:"index" json:"uploadedAt"`
}

// BeforeCreate assigns the identifier and upload timestamp so both stay
// store-controlled. Pre-set values (from fixtures) are left alone.
func (e *GalleryEntry) BeforeCreate(*gorm.DB) error {
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	if e.UploadedAt.IsZero() {
		e.UploadedAt = time.Now()
	}
	return nil
}
