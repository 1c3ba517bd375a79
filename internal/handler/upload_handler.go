package handler

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/victoegallery/internal/storage"
)

// UploadImage stores exactly one multipart image in the blob store and
// returns the resulting URL. Creating the gallery record is a separate
// follow-up call.
func (a *API) UploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		respondErrorDetail(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respondErrorDetail(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	imageURL, _, err := a.blobs.Store(c.Request.Context(), data, contentType)
	if err != nil {
		if errors.Is(err, storage.ErrUnsupportedImageType) {
			respondError(c, http.StatusBadRequest, "Only image files are allowed")
			return
		}
		respondErrorDetail(c, http.StatusInternalServerError, "Upload failed", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"imageUrl": imageURL})
}
