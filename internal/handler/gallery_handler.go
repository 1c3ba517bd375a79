package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/victoegallery/internal/service"
	"github.com/victoegallery/internal/storage"
)

type createGalleryPayload struct {
	Title       string `json:"title"`
	ImageURL    string `json:"imageUrl"`
	Category    string `json:"category"`
	Description string `json:"description"`
}

// updateGalleryPayload uses pointers so an omitted field and an explicitly
// empty one stay distinguishable.
type updateGalleryPayload struct {
	Title       *string `json:"title"`
	ImageURL    *string `json:"imageUrl"`
	Category    *string `json:"category"`
	Description *string `json:"description"`
}

// ListGalleryEntries returns all entries, newest first.
func (a *API) ListGalleryEntries(c *gin.Context) {
	entries, err := a.galleries.List()
	if err != nil {
		respondErrorDetail(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

// GetGalleryEntry returns a single entry by id.
func (a *API) GetGalleryEntry(c *gin.Context) {
	entry, err := a.galleries.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "Image not found")
			return
		}
		respondErrorDetail(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, entry)
}

// CreateGalleryEntry validates and persists a new entry.
func (a *API) CreateGalleryEntry(c *gin.Context) {
	var payload createGalleryPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	entry, err := a.galleries.Create(service.GalleryInput{
		Title:       payload.Title,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		Description: payload.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryFieldsMissing):
			respondError(c, http.StatusBadRequest, "Title, image, and category are required")
		case errors.Is(err, service.ErrCategoryInvalid):
			respondError(c, http.StatusBadRequest, "Invalid category")
		default:
			respondErrorDetail(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	c.JSON(http.StatusCreated, entry)
}

// UpdateGalleryEntry applies a partial update to an entry.
func (a *API) UpdateGalleryEntry(c *gin.Context) {
	var payload updateGalleryPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	entry, err := a.galleries.Update(c.Param("id"), service.GalleryUpdate{
		Title:       payload.Title,
		ImageURL:    payload.ImageURL,
		Category:    payload.Category,
		Description: payload.Description,
	})
	if err != nil {
		switch {
		case errors.Is(err, service.ErrEntryNotFound):
			respondError(c, http.StatusNotFound, "Image not found")
		case errors.Is(err, service.ErrCategoryInvalid):
			respondError(c, http.StatusBadRequest, "Invalid category")
		default:
			respondErrorDetail(c, http.StatusInternalServerError, "Server error", err)
		}
		return
	}

	c.JSON(http.StatusOK, entry)
}

// DeleteGalleryEntry removes the entry and best-effort deletes its blob.
// A blob-store failure is logged and never blocks the record deletion.
func (a *API) DeleteGalleryEntry(c *gin.Context) {
	id := c.Param("id")

	entry, err := a.galleries.Get(id)
	if err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "Image not found")
			return
		}
		respondErrorDetail(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	if key, keyErr := storage.KeyFromURL(entry.ImageURL, a.blobFolder); keyErr != nil {
		log.Printf("could not derive blob key from %s: %v", entry.ImageURL, keyErr)
	} else if delErr := a.blobs.Delete(c.Request.Context(), key); delErr != nil {
		log.Printf("failed to delete blob %s: %v", key, delErr)
	}

	if err := a.galleries.Delete(id); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			respondError(c, http.StatusNotFound, "Image not found")
			return
		}
		respondErrorDetail(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Image deleted successfully"})
}
