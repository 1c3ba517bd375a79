package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, message string) {
	c.JSON(status, gin.H{"message": message})
}

// respondErrorDetail mirrors the error wire format with the underlying
// error passed through for upstream failures.
func respondErrorDetail(c *gin.Context, status int, message string, err error) {
	c.JSON(status, gin.H{"message": message, "error": err.Error()})
}

func bindJSON(c *gin.Context, dst interface{}, message string) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		respondError(c, http.StatusBadRequest, message)
		return false
	}
	return true
}
