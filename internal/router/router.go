package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/victoegallery/internal/handler"
)

// Options carries the router-level settings.
type Options struct {
	SessionSecret string
	CORSOrigins   []string
	TemplateGlob  string
	StaticDir     string
}

// SetupRouter configures the gin engine and all routes.
func SetupRouter(api *handler.API, opts Options) *gin.Engine {
	r := gin.Default()

	store := cookie.NewStore([]byte(opts.SessionSecret))
	r.Use(sessions.Sessions("victoe_gallery_session", store))

	r.Use(cors.New(cors.Config{
		AllowOrigins:     opts.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if opts.TemplateGlob != "" {
		r.LoadHTMLGlob(opts.TemplateGlob)
	}
	if opts.StaticDir != "" {
		r.Static("/static", opts.StaticDir)
	}

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Public gallery page
	r.GET("/gallery", api.ShowGallery)

	// JSON API
	apiGroup := r.Group("/api")
	{
		apiGroup.POST("/auth/login", api.Login)

		apiGroup.GET("/gallery", api.ListGalleryEntries)
		apiGroup.GET("/gallery/:id", api.GetGalleryEntry)

		authorized := apiGroup.Group("")
		authorized.Use(api.AuthRequired())
		{
			authorized.POST("/gallery/upload", api.UploadImage)
			authorized.POST("/gallery", api.CreateGalleryEntry)
			authorized.PUT("/gallery/:id", api.UpdateGalleryEntry)
			authorized.DELETE("/gallery/:id", api.DeleteGalleryEntry)
		}
	}

	// Admin panel
	admin := r.Group("/admin")
	{
		admin.GET("/login", api.ShowLoginPage)
		admin.POST("/login", api.LoginForm)
		admin.GET("/logout", api.Logout)

		gated := admin.Group("")
		gated.Use(handler.SessionRequired())
		{
			gated.GET("", func(c *gin.Context) {
				c.Redirect(302, "/admin/gallery")
			})
			gated.GET("/gallery", api.ShowGalleryManagement)
		}
	}

	return r
}
