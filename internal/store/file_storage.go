// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

//go:generate mockgen -source=file_storage.go -destination=../mock/file_storage_mock.go -package=mock

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/models"
)

// FileStorage keeps uploaded files in named areas. Names are flat: they
// never contain path separators.
type FileStorage interface {
	Save(ctx context.Context, area models.StorageArea, name string, content io.Reader) error
	Open(ctx context.Context, area models.StorageArea, name string) (io.ReadCloser, error)
	Remove(ctx context.Context, area models.StorageArea, name string) error
}

// localFileStorage keeps every area in its own directory on disk.
type localFileStorage struct {
	dirs   map[models.StorageArea]string
	logger *logger.Logger
}

// NewLocalFileStorage creates the area directories when missing.
func NewLocalFileStorage(documentsDir, chatDir string, log *logger.Logger) (FileStorage, error) {
	dirs := map[models.StorageArea]string{
		models.AreaDocuments: documentsDir,
		models.AreaChat:      chatDir,
	}

	for area, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Err(err).Str("func", "NewLocalFileStorage").Str("area", string(area)).Str("dir", dir).Msg("failed to create storage directory")
			return nil, fmt.Errorf("%w: %w", ErrCreatingStorageRoot, err)
		}
	}

	log.Debug().Str("documents_dir", documentsDir).Str("chat_dir", chatDir).Msg("local file storage created")

	return &localFileStorage{dirs: dirs, logger: log}, nil
}

func (s *localFileStorage) path(area models.StorageArea, name string) (string, error) {
	dir, ok := s.dirs[area]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStorageArea, area)
	}
	if !ValidFileName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return filepath.Join(dir, name), nil
}

// Save writes content under name. An existing file is never overwritten.
func (s *localFileStorage) Save(ctx context.Context, area models.StorageArea, name string, content io.Reader) error {
	log := logger.FromContext(ctx)

	path, err := s.path(area, name)
	if err != nil {
		return err
	}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("%w: %q", ErrFileExists, name)
	}
	if err != nil {
		log.Err(err).Str("func", "*localFileStorage.Save").Str("path", path).Msg("failed to create file")
		return fmt.Errorf("failed to create file: %w", err)
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		os.Remove(path)
		log.Err(err).Str("func", "*localFileStorage.Save").Str("path", path).Msg("failed to write file")
		return fmt.Errorf("failed to write file: %w", err)
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return fmt.Errorf("failed to close file: %w", err)
	}

	return nil
}

func (s *localFileStorage) Open(ctx context.Context, area models.StorageArea, name string) (io.ReadCloser, error) {
	path, err := s.path(area, name)
	if err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localFileStorage.Open").Str("path", path).Msg("failed to open file")
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	return f, nil
}

func (s *localFileStorage) Remove(ctx context.Context, area models.StorageArea, name string) error {
	path, err := s.path(area, name)
	if err != nil {
		return err
	}

	err = os.Remove(path)
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*localFileStorage.Remove").Str("path", path).Msg("failed to remove file")
		return fmt.Errorf("failed to remove file: %w", err)
	}

	return nil
}

// ValidFileName reports whether name addresses a file directly inside an
// area: no separators, no dot entries.
func ValidFileName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	if strings.ContainsAny(name, `/\`+"\x00") {
		return false
	}
	return filepath.Base(name) == name
}
