package handler

import (
	"html/template"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/victoegallery/internal/service"
)

type galleryViewItem struct {
	ID          string
	Title       string
	ImageURL    string
	Category    string
	Description template.HTML
	UploadedAt  time.Time
}

// ShowGallery renders the public gallery page with descriptions converted
// from markdown to sanitized HTML.
func (a *API) ShowGallery(c *gin.Context) {
	entries, err := a.galleries.List()
	if err != nil {
		c.HTML(http.StatusInternalServerError, "gallery.html", gin.H{
			"title": "Gallery",
			"error": "Failed to load the gallery, please try again later",
			"year":  time.Now().Year(),
		})
		return
	}

	items := make([]galleryViewItem, 0, len(entries))
	for _, entry := range entries {
		items = append(items, galleryViewItem{
			ID:          entry.ID,
			Title:       entry.Title,
			ImageURL:    entry.ImageURL,
			Category:    entry.Category,
			Description: service.RenderMarkdown(entry.Description),
			UploadedAt:  entry.UploadedAt,
		})
	}

	c.HTML(http.StatusOK, "gallery.html", gin.H{
		"title":      "Gallery",
		"items":      items,
		"categories": service.Categories,
		"year":       time.Now().Year(),
	})
}
