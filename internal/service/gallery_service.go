package service

import (
	"errors"
	"strings"

	"github.com/victoegallery/internal/db"
	"gorm.io/gorm"
)

var (
	ErrEntryNotFound      = errors.New("gallery entry not found")
	ErrEntryFieldsMissing = errors.New("title, image, and category are required")
	ErrCategoryInvalid    = errors.New("gallery category is invalid")
)

// Categories is the closed set of valid gallery categories.
var Categories = []string{"Projects", "Team", "Events", "Achievements", "Other"}

// IsValidCategory reports whether category belongs to the fixed set.
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// GalleryService handles gallery CRUD.
type GalleryService struct {
	db *gorm.DB
}

// GalleryInput represents fields accepted when creating a gallery entry.
type GalleryInput struct {
	Title       string
	ImageURL    string
	Category    string
	Description string
}

// GalleryUpdate carries a partial update. Nil means the field was not part
// of the request. Title, ImageURL and Category are only applied when
// supplied non-empty; Description is applied whenever present so an empty
// value explicitly clears it.
type GalleryUpdate struct {
	Title       *string
	ImageURL    *string
	Category    *string
	Description *string
}

// NewGalleryService creates a GalleryService instance.
func NewGalleryService(gdb *gorm.DB) *GalleryService {
	return &GalleryService{db: gdb}
}

// List returns all gallery entries, newest first.
func (s *GalleryService) List() ([]db.GalleryEntry, error) {
	var entries []db.GalleryEntry
	if err := s.db.Order("uploaded_at desc").Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

// Get fetches a gallery entry by id.
func (s *GalleryService) Get(id string) (*db.GalleryEntry, error) {
	var entry db.GalleryEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}
	return &entry, nil
}

// Create validates and inserts a new gallery entry. The store assigns the
// id and upload timestamp.
func (s *GalleryService) Create(input GalleryInput) (*db.GalleryEntry, error) {
	title := strings.TrimSpace(input.Title)
	imageURL := strings.TrimSpace(input.ImageURL)
	category := strings.TrimSpace(input.Category)

	if title == "" || imageURL == "" || category == "" {
		return nil, ErrEntryFieldsMissing
	}
	if !IsValidCategory(category) {
		return nil, ErrCategoryInvalid
	}

	entry := db.GalleryEntry{
		Title:       title,
		ImageURL:    imageURL,
		Category:    category,
		Description: strings.TrimSpace(input.Description),
	}

	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Update applies a partial update to an existing entry.
func (s *GalleryService) Update(id string, update GalleryUpdate) (*db.GalleryEntry, error) {
	var entry db.GalleryEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEntryNotFound
		}
		return nil, err
	}

	if update.Title != nil {
		if title := strings.TrimSpace(*update.Title); title != "" {
			entry.Title = title
		}
	}
	if update.ImageURL != nil {
		if imageURL := strings.TrimSpace(*update.ImageURL); imageURL != "" {
			entry.ImageURL = imageURL
		}
	}
	if update.Category != nil {
		if category := strings.TrimSpace(*update.Category); category != "" {
			if !IsValidCategory(category) {
				return nil, ErrCategoryInvalid
			}
			entry.Category = category
		}
	}
	if update.Description != nil {
		entry.Description = strings.TrimSpace(*update.Description)
	}

	if err := s.db.Save(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

// Delete removes a gallery entry.
func (s *GalleryService) Delete(id string) error {
	var entry db.GalleryEntry
	if err := s.db.First(&entry, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrEntryNotFound
		}
		return err
	}
	return s.db.Delete(&entry).Error
}
