package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/victoegallery/internal/service"
)

type loginPayload struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login exchanges admin credentials for a bearer token.
func (a *API) Login(c *gin.Context) {
	var payload loginPayload
	if !bindJSON(c, &payload, "Invalid request body") {
		return
	}

	user, err := a.auth.Authenticate(payload.Username, payload.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "Invalid username or password")
			return
		}
		respondErrorDetail(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	token, err := a.auth.IssueToken(user)
	if err != nil {
		respondErrorDetail(c, http.StatusInternalServerError, "Server error", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"token": token})
}
