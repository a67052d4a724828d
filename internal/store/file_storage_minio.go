// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/models"
)

// minioFileStorage keeps every area under its own key prefix of one
// S3-compatible bucket.
type minioFileStorage struct {
	client *minio.Client
	bucket string
	logger *logger.Logger
}

// NewMinioFileStorage connects to the bucket and creates it when missing.
func NewMinioFileStorage(ctx context.Context, cfg config.S3, log *logger.Logger) (FileStorage, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		log.Err(err).Str("func", "NewMinioFileStorage").Str("endpoint", cfg.Endpoint).Msg("failed to create object storage client")
		return nil, fmt.Errorf("failed to create object storage client: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		log.Err(err).Str("func", "NewMinioFileStorage").Str("bucket", cfg.Bucket).Msg("failed to check bucket")
		return nil, fmt.Errorf("failed to check bucket %q: %w", cfg.Bucket, err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			log.Err(err).Str("func", "NewMinioFileStorage").Str("bucket", cfg.Bucket).Msg("failed to create bucket")
			return nil, fmt.Errorf("%w: %w", ErrCreatingStorageRoot, err)
		}
		log.Info().Str("bucket", cfg.Bucket).Msg("bucket created")
	}

	return &minioFileStorage{client: client, bucket: cfg.Bucket, logger: log}, nil
}

// objectKey builds "<area>/<name>".
func objectKey(area models.StorageArea, name string) (string, error) {
	switch area {
	case models.AreaDocuments, models.AreaChat:
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownStorageArea, area)
	}
	if !ValidFileName(name) {
		return "", fmt.Errorf("%w: %q", ErrInvalidFileName, name)
	}
	return string(area) + "/" + name, nil
}

func isNoSuchKey(err error) bool {
	resp := minio.ToErrorResponse(err)
	return resp.Code == "NoSuchKey" || resp.StatusCode == http.StatusNotFound
}

func isPreconditionFailed(err error) bool {
	if err == nil {
		return false
	}
	resp := minio.ToErrorResponse(err)
	return resp.Code == minio.PreconditionFailed || resp.StatusCode == http.StatusPreconditionFailed
}

func (s *minioFileStorage) exists(ctx context.Context, key string) (bool, error) {
	_, err := s.client.StatObject(ctx, s.bucket, key, minio.StatObjectOptions{})
	if err == nil {
		return true, nil
	}
	if isNoSuchKey(err) {
		return false, nil
	}
	return false, err
}

// Save writes a new object and never replaces one. Backends that ignore
// If-None-Match on PUT only get the stat check.
func (s *minioFileStorage) Save(ctx context.Context, area models.StorageArea, name string, content io.Reader) error {
	log := logger.FromContext(ctx)

	key, err := objectKey(area, name)
	if err != nil {
		return err
	}

	exists, err := s.exists(ctx, key)
	if err != nil {
		log.Err(err).Str("func", "*minioFileStorage.Save").Str("key", key).Msg("failed to stat object")
		return fmt.Errorf("failed to stat object: %w", err)
	}
	if exists {
		return fmt.Errorf("%w: %q", ErrFileExists, name)
	}

	// the stat above is only a fast path; If-None-Match makes the backend
	// refuse a key written in between
	opts := minio.PutObjectOptions{ContentType: "application/octet-stream"}
	opts.SetMatchETagExcept("*")

	_, err = s.client.PutObject(ctx, s.bucket, key, content, -1, opts)
	if isPreconditionFailed(err) {
		return fmt.Errorf("%w: %q", ErrFileExists, name)
	}
	if err != nil {
		log.Err(err).Str("func", "*minioFileStorage.Save").Str("key", key).Msg("failed to put object")
		return fmt.Errorf("failed to put object: %w", err)
	}

	return nil
}

func (s *minioFileStorage) Open(ctx context.Context, area models.StorageArea, name string) (io.ReadCloser, error) {
	key, err := objectKey(area, name)
	if err != nil {
		return nil, err
	}

	obj, err := s.client.GetObject(ctx, s.bucket, key, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get object: %w", err)
	}

	// GetObject is lazy, the first Stat reveals a missing key
	if _, err := obj.Stat(); err != nil {
		obj.Close()
		if isNoSuchKey(err) {
			return nil, fmt.Errorf("%w: %q", ErrFileNotFound, name)
		}
		logger.FromContext(ctx).Err(err).Str("func", "*minioFileStorage.Open").Str("key", key).Msg("failed to stat object")
		return nil, fmt.Errorf("failed to stat object: %w", err)
	}

	return obj, nil
}

func (s *minioFileStorage) Remove(ctx context.Context, area models.StorageArea, name string) error {
	log := logger.FromContext(ctx)

	key, err := objectKey(area, name)
	if err != nil {
		return err
	}

	exists, err := s.exists(ctx, key)
	if err != nil {
		log.Err(err).Str("func", "*minioFileStorage.Remove").Str("key", key).Msg("failed to stat object")
		return fmt.Errorf("failed to stat object: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %q", ErrFileNotFound, name)
	}

	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		log.Err(err).Str("func", "*minioFileStorage.Remove").Str("key", key).Msg("failed to remove object")
		return fmt.Errorf("failed to remove object: %w", err)
	}

	return nil
}
