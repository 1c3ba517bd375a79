package handler

import (
	"errors"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/victoegallery/internal/db"
	"github.com/victoegallery/internal/service"
)

// ShowLoginPage renders the admin login form.
func (a *API) ShowLoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", gin.H{
		"title": "Admin Login",
	})
}

// LoginForm handles the admin login form and starts a session.
func (a *API) LoginForm(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := a.auth.Authenticate(username, password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			c.HTML(http.StatusUnauthorized, "login.html", gin.H{
				"title": "Admin Login",
				"error": "Invalid username or password",
			})
			return
		}
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title": "Admin Login",
			"error": "Something went wrong, please try again",
		})
		return
	}

	session := sessions.Default(c)
	session.Set("user_id", user.ID)
	session.Set("username", user.Username)
	if err := session.Save(); err != nil {
		c.HTML(http.StatusInternalServerError, "login.html", gin.H{
			"title": "Admin Login",
			"error": "Could not save session",
		})
		return
	}

	c.Redirect(http.StatusFound, "/admin/gallery")
}

// Logout clears the admin session.
func (a *API) Logout(c *gin.Context) {
	session := sessions.Default(c)
	session.Clear()
	session.Save()
	c.Redirect(http.StatusFound, "/admin/login")
}

// SessionRequired gates admin pages behind a logged-in session.
func SessionRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		session := sessions.Default(c)
		if session.Get("user_id") == nil {
			c.Redirect(http.StatusFound, "/admin/login")
			c.Abort()
			return
		}
		c.Next()
	}
}

// ShowGalleryManagement renders the admin gallery panel. The page gets a
// fresh bearer token so its client-side calls can hit the JSON API.
func (a *API) ShowGalleryManagement(c *gin.Context) {
	session := sessions.Default(c)
	username, _ := session.Get("username").(string)

	var user db.User
	if err := a.db.Where("username = ?", username).First(&user).Error; err != nil {
		c.Redirect(http.StatusFound, "/admin/login")
		c.Abort()
		return
	}

	token, err := a.auth.IssueToken(&user)
	if err != nil {
		c.HTML(http.StatusInternalServerError, "gallery_manage.html", gin.H{
			"title": "Gallery Management",
			"error": "Could not prepare API access",
		})
		return
	}

	c.HTML(http.StatusOK, "gallery_manage.html", gin.H{
		"title":      "Gallery Management",
		"username":   username,
		"apiToken":   token,
		"categories": service.Categories,
	})
}
