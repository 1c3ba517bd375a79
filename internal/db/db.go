package db

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Options selects the backing database. DatabaseURL wins when set;
// otherwise a local SQLite file at Path is used.
type Options struct {
	Path        string
	DatabaseURL string
}

// Open connects to the database and runs auto-migration. The returned
// handle is safe for concurrent use and is injected into services rather
// than held as package state.
func Open(opts Options) (*gorm.DB, error) {
	var (
		gdb *gorm.DB
		err error
	)

	if dsn := strings.TrimSpace(opts.DatabaseURL); dsn != "" {
		gdb, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	} else {
		path := strings.TrimSpace(opts.Path)
		if path == "" {
			path = "gallery.db"
		}
		if err := ensureParentDir(path); err != nil {
			return nil, err
		}
		gdb, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}
	if err != nil {
		return nil, err
	}

	if err := gdb.AutoMigrate(
		&User{},
		&GalleryEntry{},
	); err != nil {
		return nil, err
	}

	return gdb, nil
}

func ensureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "." || dir == "" {
		return nil
	}

	info, err := os.Stat(dir)
	if err == nil {
		if !info.IsDir() {
			return errors.New("database path parent is not a directory")
		}
		return nil
	}

	if os.IsNotExist(err) {
		return os.MkdirAll(dir, 0o755)
	}

	return err
}
