package storage

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// LocalStore keeps uploaded images on the local filesystem and serves them
// through the static file route. It is the development fallback when no
// bucket is configured.
type LocalStore struct {
	dir     string
	urlPath string
	maxDim  int
}

// NewLocalStore creates the upload directory if needed.
func NewLocalStore(dir, urlPath string, maxDim int) (*LocalStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &LocalStore{
		dir:     dir,
		urlPath: strings.TrimRight(urlPath, "/"),
		maxDim:  maxDim,
	}, nil
}

// Store writes the image under a generated extension-less name.
func (l *LocalStore) Store(_ context.Context, data []byte, contentType string) (string, string, error) {
	if !AllowedImageType(contentType) {
		return "", "", ErrUnsupportedImageType
	}

	scaled, err := fitWithin(data, l.maxDim)
	if err != nil {
		return "", "", err
	}

	name := uuid.NewString()
	if err := os.WriteFile(filepath.Join(l.dir, name), scaled, 0o644); err != nil {
		return "", "", err
	}

	return l.urlPath + "/" + name, name, nil
}

// Delete removes the stored file. Keys derived from URLs may carry a
// folder prefix that local storage never uses, so only the base name
// matters here.
func (l *LocalStore) Delete(_ context.Context, key string) error {
	name := path.Base(key)
	if name == "" || name == "." || name == "/" {
		return os.ErrNotExist
	}
	return os.Remove(filepath.Join(l.dir, name))
}
