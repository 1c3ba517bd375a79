package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// AppConfig bundles everything the server needs at startup.
type AppConfig struct {
	ListenAddr    string
	Port          string
	DatabasePath  string
	DatabaseURL   string
	SessionSecret string
	JWTSecret     string
	GinMode       string

	AdminUsername string
	AdminPassword string

	CORSOrigins []string

	// Blob storage settings. BlobBucket empty means local-disk fallback.
	BlobBucket        string
	BlobEndpoint      string
	BlobRegion        string
	BlobAccessKeyID   string
	BlobAccessSecret  string
	BlobPublicBaseURL string
	BlobFolder        string
	MaxImageDimension int

	UploadDir     string
	UploadURLPath string
}

// Load reads the application config from environment variables, with safe
// defaults for anything missing. A .env file is honored when present.
func Load() AppConfig {
	if err := godotenv.Load(); err != nil {
		log.Println("no .env file found, using system environment variables")
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	listenAddr := strings.TrimSpace(os.Getenv("LISTEN_ADDR"))
	if listenAddr == "" {
		listenAddr = fmt.Sprintf(":%s", port)
	}

	databasePath := strings.TrimSpace(os.Getenv("DATABASE_PATH"))
	if databasePath == "" {
		databasePath = "gallery.db"
	}

	sessionSecret := strings.TrimSpace(os.Getenv("SESSION_SECRET"))
	if sessionSecret == "" {
		sessionSecret = "victoe-gallery-dev-secret"
	}

	jwtSecret := strings.TrimSpace(os.Getenv("JWT_SECRET"))
	if jwtSecret == "" {
		jwtSecret = sessionSecret
	}

	ginMode := strings.TrimSpace(os.Getenv("GIN_MODE"))
	if ginMode == "" {
		ginMode = "release"
	}

	uploadDir := strings.TrimSpace(os.Getenv("UPLOAD_DIR"))
	if uploadDir == "" {
		uploadDir = "web/static/uploads"
	}

	uploadURLPath := strings.TrimSpace(os.Getenv("UPLOAD_URL_PATH"))
	if uploadURLPath == "" {
		uploadURLPath = "/static/uploads"
	}

	blobFolder := strings.TrimSpace(os.Getenv("BLOB_FOLDER"))
	if blobFolder == "" {
		blobFolder = "victoe-gallery"
	}

	corsOrigins := []string{"http://localhost:3000", "http://localhost:5173"}
	if raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS")); raw != "" {
		corsOrigins = corsOrigins[:0]
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				corsOrigins = append(corsOrigins, origin)
			}
		}
	}

	maxDimension := 1200
	if raw := strings.TrimSpace(os.Getenv("MAX_IMAGE_DIMENSION")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			maxDimension = parsed
		}
	}

	return AppConfig{
		ListenAddr:        listenAddr,
		Port:              port,
		DatabasePath:      databasePath,
		DatabaseURL:       strings.TrimSpace(os.Getenv("DATABASE_URL")),
		SessionSecret:     sessionSecret,
		JWTSecret:         jwtSecret,
		GinMode:           ginMode,
		AdminUsername:     strings.TrimSpace(os.Getenv("ADMIN_USERNAME")),
		AdminPassword:     strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		CORSOrigins:       corsOrigins,
		BlobBucket:        strings.TrimSpace(os.Getenv("BLOB_BUCKET")),
		BlobEndpoint:      strings.TrimSpace(os.Getenv("BLOB_ENDPOINT")),
		BlobRegion:        strings.TrimSpace(os.Getenv("BLOB_REGION")),
		BlobAccessKeyID:   strings.TrimSpace(os.Getenv("BLOB_ACCESS_KEY_ID")),
		BlobAccessSecret:  strings.TrimSpace(os.Getenv("BLOB_ACCESS_SECRET")),
		BlobPublicBaseURL: strings.TrimSpace(os.Getenv("BLOB_PUBLIC_BASE_URL")),
		BlobFolder:        blobFolder,
		MaxImageDimension: maxDimension,
		UploadDir:         uploadDir,
		UploadURLPath:     uploadURLPath,
	}
}
