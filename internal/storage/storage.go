// Package storage hosts the blob store adapters backing gallery uploads.
package storage

import (
	"context"
	"errors"
	"net/url"
	"path"
	"strings"
)

// ErrUnsupportedImageType is returned when an upload is not one of the
// accepted raster formats.
var ErrUnsupportedImageType = errors.New("unsupported image type")

// BlobStore stores uploaded images and hands back a publicly retrievable
// URL plus the key needed to delete the blob later.
type BlobStore interface {
	Store(ctx context.Context, data []byte, contentType string) (blobURL, key string, err error)
	Delete(ctx context.Context, key string) error
}

// allowedImageTypes is the closed set of accepted upload formats.
var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

// AllowedImageType reports whether contentType is an accepted upload format.
func AllowedImageType(contentType string) bool {
	return allowedImageTypes[strings.ToLower(strings.TrimSpace(contentType))]
}

// KeyFromURL derives a blob key from a stored image URL: the last path
// segment with its extension stripped, prefixed with the storage folder.
// This is a best-effort reverse mapping of the adapters' naming scheme;
// adapters write extension-less keys so the derived value stays exact.
func KeyFromURL(rawURL, folder string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}

	segment := path.Base(parsed.Path)
	if segment == "" || segment == "." || segment == "/" {
		return "", errors.New("image URL has no path segment")
	}

	if ext := path.Ext(segment); ext != "" {
		segment = strings.TrimSuffix(segment, ext)
	}
	if segment == "" {
		return "", errors.New("image URL has no usable name")
	}

	folder = strings.Trim(strings.TrimSpace(folder), "/")
	if folder == "" {
		return segment, nil
	}
	return folder + "/" + segment, nil
}
