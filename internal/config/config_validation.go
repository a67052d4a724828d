// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

const (
	defaultHTTPAddress       = "localhost:8080"
	defaultRequestTimeout    = 30 * time.Second
	defaultMaxUploadSize     = 32 << 20
	defaultDSN               = "file:crm.db"
	defaultDocumentsDir      = "uploads"
	defaultChatDir           = "chat_uploads"
	defaultTokenIssuer       = "go-mini-crm"
	defaultTokenDuration     = 12 * time.Hour
	defaultVersion           = "dev"
	defaultAdminUsername     = "admin"
	defaultAdminPassword     = "admin123"
	defaultIdentityCacheSize = 256
)

// applyDefaults fills the fields left empty by every configuration source.
func (cfg *StructuredConfig) applyDefaults() {
	if cfg.Server.HTTPAddress == "" {
		cfg.Server.HTTPAddress = defaultHTTPAddress
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = defaultRequestTimeout
	}
	if cfg.Server.MaxUploadSize == 0 {
		cfg.Server.MaxUploadSize = defaultMaxUploadSize
	}

	if cfg.Storage.DB.DSN == "" {
		cfg.Storage.DB.DSN = defaultDSN
	}
	if cfg.Storage.DB.Driver == "" {
		cfg.Storage.DB.Driver = driverFromDSN(cfg.Storage.DB.DSN)
	}

	if cfg.Storage.Files.Backend == "" {
		cfg.Storage.Files.Backend = FilesBackendLocal
	}
	if cfg.Storage.Files.DocumentsDir == "" {
		cfg.Storage.Files.DocumentsDir = defaultDocumentsDir
	}
	if cfg.Storage.Files.ChatDir == "" {
		cfg.Storage.Files.ChatDir = defaultChatDir
	}

	if cfg.App.TokenIssuer == "" {
		cfg.App.TokenIssuer = defaultTokenIssuer
	}
	if cfg.App.TokenDuration == 0 {
		cfg.App.TokenDuration = defaultTokenDuration
	}
	if cfg.App.Version == "" {
		cfg.App.Version = defaultVersion
	}
	if cfg.App.BootstrapAdminUsername == "" {
		cfg.App.BootstrapAdminUsername = defaultAdminUsername
	}
	if cfg.App.BootstrapAdminPassword == "" {
		cfg.App.BootstrapAdminPassword = defaultAdminPassword
	}
	if cfg.App.IdentityCacheSize == 0 {
		cfg.App.IdentityCacheSize = defaultIdentityCacheSize
	}
}

func driverFromDSN(dsn string) string {
	if strings.HasPrefix(dsn, "postgres://") || strings.HasPrefix(dsn, "postgresql://") {
		return DriverPostgres
	}
	return DriverSQLite
}

// validate checks that the final merged [StructuredConfig] satisfies all
// application invariants before it is used at startup.
func (cfg *StructuredConfig) validate() error {
	if cfg.App.TokenSignKey == "" {
		return fmt.Errorf("%w: token sign key is required", ErrInvalidAppConfigs)
	}
	if cfg.App.TokenDuration < 0 || cfg.App.IdentityCacheSize < 0 {
		return fmt.Errorf("%w: token duration and identity cache size must be positive", ErrInvalidAppConfigs)
	}

	switch cfg.Storage.DB.Driver {
	case DriverPostgres, DriverSQLite:
	default:
		return fmt.Errorf("%w: unsupported database driver %q", ErrInvalidStorageConfigs, cfg.Storage.DB.Driver)
	}

	files := cfg.Storage.Files
	switch files.Backend {
	case FilesBackendLocal:
		if filepath.Clean(files.DocumentsDir) == filepath.Clean(files.ChatDir) {
			return fmt.Errorf("%w: documents and chat areas must be different directories", ErrInvalidStorageConfigs)
		}
	case FilesBackendS3:
		if files.S3.Endpoint == "" || files.S3.Bucket == "" {
			return fmt.Errorf("%w: s3 endpoint and bucket are required", ErrInvalidStorageConfigs)
		}
	default:
		return fmt.Errorf("%w: unsupported files backend %q", ErrInvalidStorageConfigs, files.Backend)
	}

	if cfg.Server.RequestTimeout < 0 || cfg.Server.MaxUploadSize < 0 {
		return fmt.Errorf("%w: request timeout and max upload size must be positive", ErrInvalidServerConfigs)
	}

	return nil
}
