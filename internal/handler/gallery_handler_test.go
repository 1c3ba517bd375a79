package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/victoegallery/internal/db"
	"github.com/victoegallery/internal/service"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type blobStoreStub struct {
	storedURL string
	storeErr  error
	stored    [][]byte
	deleted   []string
	deleteErr error
}

func (s *blobStoreStub) Store(_ context.Context, data []byte, _ string) (string, string, error) {
	if s.storeErr != nil {
		return "", "", s.storeErr
	}
	s.stored = append(s.stored, data)
	return s.storedURL, "stub-key", nil
}

func (s *blobStoreStub) Delete(_ context.Context, key string) error {
	s.deleted = append(s.deleted, key)
	return s.deleteErr
}

type handlerFixture struct {
	engine *gin.Engine
	gdb    *gorm.DB
	blobs  *blobStoreStub
	token  string
}

func setupHandlerTest(t *testing.T) (*handlerFixture, func()) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:gallery-handler-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	if err != nil {
		t.Fatalf("failed to open test db: %v", err)
	}
	if err := gdb.AutoMigrate(&db.User{}, &db.GalleryEntry{}); err != nil {
		t.Fatalf("failed to migrate test db: %v", err)
	}

	auth := service.NewAuthService(gdb, "test-secret")
	blobs := &blobStoreStub{storedURL: "https://cdn.example.com/victoe-gallery/stub-key"}
	api := NewAPI(gdb, auth, blobs, "victoe-gallery")

	admin := &db.User{Username: "admin"}
	admin.ID = 1
	token, err := auth.IssueToken(admin)
	if err != nil {
		t.Fatalf("failed to issue test token: %v", err)
	}

	engine := gin.New()
	engine.POST("/api/auth/login", api.Login)
	engine.GET("/api/gallery", api.ListGalleryEntries)
	engine.GET("/api/gallery/:id", api.GetGalleryEntry)
	authorized := engine.Group("", api.AuthRequired())
	authorized.POST("/api/gallery/upload", api.UploadImage)
	authorized.POST("/api/gallery", api.CreateGalleryEntry)
	authorized.PUT("/api/gallery/:id", api.UpdateGalleryEntry)
	authorized.DELETE("/api/gallery/:id", api.DeleteGalleryEntry)

	fixture := &handlerFixture{engine: engine, gdb: gdb, blobs: blobs, token: token}
	return fixture, func() {
		sqlDB, err := gdb.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}

func (f *handlerFixture) do(t *testing.T, method, path, body string, authed bool) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if authed {
		req.Header.Set("Authorization", "Bearer "+f.token)
	}

	w := httptest.NewRecorder()
	f.engine.ServeHTTP(w, req)
	return w
}

func (f *handlerFixture) seed(t *testing.T, entry db.GalleryEntry) db.GalleryEntry {
	t.Helper()
	if err := f.gdb.Create(&entry).Error; err != nil {
		t.Fatalf("failed to seed entry: %v", err)
	}
	return entry
}

func TestCreateRequiresAuth(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	w := fixture.do(t, http.MethodPost, "/api/gallery",
		`{"title":"Team Retreat","imageUrl":"https://host/x.jpg","category":"Team"}`, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	var count int64
	fixture.gdb.Model(&db.GalleryEntry{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected no record created, got %d", count)
	}
}

func TestCreateGalleryEntry(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	w := fixture.do(t, http.MethodPost, "/api/gallery",
		`{"title":"Team Retreat","imageUrl":"https://host/x.jpg","category":"Team"}`, true)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	var entry db.GalleryEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entry); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if entry.ID == "" {
		t.Fatalf("expected generated id in response")
	}
	if entry.UploadedAt.IsZero() {
		t.Fatalf("expected uploadedAt set in response")
	}

	// Missing required field.
	w = fixture.do(t, http.MethodPost, "/api/gallery",
		`{"title":"No image","category":"Team"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing image, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Title, image, and category are required") {
		t.Fatalf("unexpected error body: %s", w.Body.String())
	}

	// Category outside the fixed set.
	w = fixture.do(t, http.MethodPost, "/api/gallery",
		`{"title":"Bad","imageUrl":"https://host/y.jpg","category":"Landscapes"}`, true)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid category, got %d", w.Code)
	}

	var count int64
	fixture.gdb.Model(&db.GalleryEntry{}).Count(&count)
	if count != 1 {
		t.Fatalf("expected exactly one persisted entry, got %d", count)
	}
}

func TestListNewestFirst(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	now := time.Now()
	fixture.seed(t, db.GalleryEntry{ID: "old", Title: "Old", ImageURL: "https://h/a.jpg", Category: "Events", UploadedAt: now.Add(-time.Hour)})
	fixture.seed(t, db.GalleryEntry{ID: "new", Title: "New", ImageURL: "https://h/b.jpg", Category: "Team", UploadedAt: now})

	w := fixture.do(t, http.MethodGet, "/api/gallery", "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var entries []db.GalleryEntry
	if err := json.Unmarshal(w.Body.Bytes(), &entries); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if len(entries) != 2 || entries[0].ID != "new" || entries[1].ID != "old" {
		t.Fatalf("expected newest-first order, got %+v", entries)
	}
}

func TestGetGalleryEntry(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	entry := fixture.seed(t, db.GalleryEntry{Title: "One", ImageURL: "https://h/a.jpg", Category: "Other"})

	w := fixture.do(t, http.MethodGet, "/api/gallery/"+entry.ID, "", false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	w = fixture.do(t, http.MethodGet, "/api/gallery/missing", "", false)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Image not found") {
		t.Fatalf("unexpected 404 body: %s", w.Body.String())
	}
}

func TestUpdateDescriptionOnly(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	entry := fixture.seed(t, db.GalleryEntry{
		Title: "Team Retreat", ImageURL: "https://h/x.jpg", Category: "Team", Description: "First day",
	})

	w := fixture.do(t, http.MethodPut, "/api/gallery/"+entry.ID, `{"description":"Updated caption"}`, true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var updated db.GalleryEntry
	if err := json.Unmarshal(w.Body.Bytes(), &updated); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if updated.Description != "Updated caption" {
		t.Fatalf("expected description updated, got %q", updated.Description)
	}
	if updated.Title != "Team Retreat" || updated.ImageURL != "https://h/x.jpg" || updated.Category != "Team" {
		t.Fatalf("expected other fields untouched, got %+v", updated)
	}

	w = fixture.do(t, http.MethodPut, "/api/gallery/missing", `{"description":"x"}`, true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing entry, got %d", w.Code)
	}
}

func TestDeleteRemovesBlobAndRecord(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	entry := fixture.seed(t, db.GalleryEntry{
		Title: "Gone soon", ImageURL: "https://res.example.com/v1/victoe-gallery/abc123.jpg", Category: "Other",
	})

	w := fixture.do(t, http.MethodDelete, "/api/gallery/"+entry.ID, "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Image deleted successfully") {
		t.Fatalf("unexpected delete body: %s", w.Body.String())
	}

	if len(fixture.blobs.deleted) != 1 || fixture.blobs.deleted[0] != "victoe-gallery/abc123" {
		t.Fatalf("expected blob deletion for victoe-gallery/abc123, got %v", fixture.blobs.deleted)
	}

	var count int64
	fixture.gdb.Model(&db.GalleryEntry{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected record removed, got %d", count)
	}
}

func TestDeleteBlobFailureDoesNotBlockRecordDeletion(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	fixture.blobs.deleteErr = fmt.Errorf("bucket unavailable")
	entry := fixture.seed(t, db.GalleryEntry{
		Title: "Sticky blob", ImageURL: "https://h/victoe-gallery/x.jpg", Category: "Other",
	})

	w := fixture.do(t, http.MethodDelete, "/api/gallery/"+entry.ID, "", true)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 despite blob failure, got %d", w.Code)
	}

	var count int64
	fixture.gdb.Model(&db.GalleryEntry{}).Count(&count)
	if count != 0 {
		t.Fatalf("expected record removed despite blob failure, got %d", count)
	}
}

func TestDeleteMissingEntry(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	w := fixture.do(t, http.MethodDelete, "/api/gallery/missing", "", true)
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if len(fixture.blobs.deleted) != 0 {
		t.Fatalf("expected no blob deletion for missing entry")
	}
}

func TestUploadImage(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="photo.png"`)
	header.Set("Content-Type", "image/png")
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("failed to create multipart body: %v", err)
	}
	part.Write([]byte("fake png bytes"))
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/gallery/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+fixture.token)

	w := httptest.NewRecorder()
	fixture.engine.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["imageUrl"] != fixture.blobs.storedURL {
		t.Fatalf("expected imageUrl %q, got %q", fixture.blobs.storedURL, resp["imageUrl"])
	}
	if len(fixture.blobs.stored) != 1 {
		t.Fatalf("expected one stored blob, got %d", len(fixture.blobs.stored))
	}
}

func TestUploadWithoutFile(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	writer.WriteField("note", "no file here")
	writer.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/gallery/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+fixture.token)

	w := httptest.NewRecorder()
	fixture.engine.ServeHTTP(w, req)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "No file uploaded") {
		t.Fatalf("unexpected body: %s", w.Body.String())
	}
}

func TestLogin(t *testing.T) {
	fixture, cleanup := setupHandlerTest(t)
	defer cleanup()

	if err := db.EnsureUser(fixture.gdb, "admin", "hunter2"); err != nil {
		t.Fatalf("failed to bootstrap user: %v", err)
	}

	w := fixture.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"wrong"}`, false)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}

	w = fixture.do(t, http.MethodPost, "/api/auth/login", `{"username":"admin","password":"hunter2"}`, false)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var resp map[string]string
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp["token"] == "" {
		t.Fatalf("expected a token in the response")
	}
}
