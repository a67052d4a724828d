// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

func newTestBuilder(args ...string) *configBuilder {
	b := newConfigBuilder()
	b.args = args
	return b
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_AppliesDefaults verifies that a config with only the sign key
// receives every default.
func TestBuild_AppliesDefaults(t *testing.T) {
	b := newTestBuilder()
	b.configs = append(b.configs, &StructuredConfig{App: App{TokenSignKey: "k"}})

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "localhost:8080", cfg.Server.HTTPAddress)
	assert.Equal(t, 30*time.Second, cfg.Server.RequestTimeout)
	assert.Equal(t, int64(32<<20), cfg.Server.MaxUploadSize)
	assert.Equal(t, "file:crm.db", cfg.Storage.DB.DSN)
	assert.Equal(t, DriverSQLite, cfg.Storage.DB.Driver)
	assert.Equal(t, FilesBackendLocal, cfg.Storage.Files.Backend)
	assert.Equal(t, "uploads", cfg.Storage.Files.DocumentsDir)
	assert.Equal(t, "chat_uploads", cfg.Storage.Files.ChatDir)
	assert.Equal(t, "admin", cfg.App.BootstrapAdminUsername)
	assert.Equal(t, "admin123", cfg.App.BootstrapAdminPassword)
	assert.Equal(t, 12*time.Hour, cfg.App.TokenDuration)
	assert.Equal(t, "dev", cfg.App.Version)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newTestBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_LaterSourceWins verifies that later configs override earlier
// non-zero fields and keep fields they leave empty.
func TestBuild_LaterSourceWins(t *testing.T) {
	b := newTestBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{App: App{TokenSignKey: "k", Version: "1.0.0", TokenIssuer: "first"}},
		&StructuredConfig{App: App{TokenIssuer: "second"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "1.0.0", cfg.App.Version)
	assert.Equal(t, "second", cfg.App.TokenIssuer)
}

// TestBuild_DriverFromDSN verifies that a postgres URL selects the pgx driver.
func TestBuild_DriverFromDSN(t *testing.T) {
	b := newTestBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		App:     App{TokenSignKey: "k"},
		Storage: Storage{DB: DB{DSN: "postgresql://localhost/crm"}},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.Storage.DB.Driver)
}

// ── validate ──────────────────────────────────────────────────────────────────

// TestBuild_ValidationErrors verifies the rejected configurations.
func TestBuild_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		cfg     StructuredConfig
		wantErr error
	}{
		{
			name:    "missing sign key",
			cfg:     StructuredConfig{},
			wantErr: ErrInvalidAppConfigs,
		},
		{
			name: "unknown driver",
			cfg: StructuredConfig{
				App:     App{TokenSignKey: "k"},
				Storage: Storage{DB: DB{Driver: "mysql"}},
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "same directory for both areas",
			cfg: StructuredConfig{
				App:     App{TokenSignKey: "k"},
				Storage: Storage{Files: Files{DocumentsDir: "data/", ChatDir: "data"}},
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "s3 without bucket",
			cfg: StructuredConfig{
				App:     App{TokenSignKey: "k"},
				Storage: Storage{Files: Files{Backend: FilesBackendS3, S3: S3{Endpoint: "minio:9000"}}},
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "unknown backend",
			cfg: StructuredConfig{
				App:     App{TokenSignKey: "k"},
				Storage: Storage{Files: Files{Backend: "ftp"}},
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "negative upload size",
			cfg: StructuredConfig{
				App:    App{TokenSignKey: "k"},
				Server: Server{MaxUploadSize: -1},
			},
			wantErr: ErrInvalidServerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := newTestBuilder()
			cfg := tt.cfg
			b.configs = append(b.configs, &cfg)

			got, err := b.build()
			assert.Nil(t, got)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

// ── sources ───────────────────────────────────────────────────────────────────

// TestBuilder_EnvFlagsJSON verifies the full source chain: env is overridden
// by flags, and the JSON file named by a flag overrides both.
func TestBuilder_EnvFlagsJSON(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "from-env")
	t.Setenv("APP_TOKEN_ISSUER", "env-issuer")
	t.Setenv("SERVER_ADDRESS", "localhost:1111")

	jsonPath := writeTempJSONConfig(t, map[string]any{
		"server": map[string]any{"http_address": "localhost:3333"},
	})

	cfg, err := newTestBuilder("-a", "localhost:2222", "-token-issuer", "flag-issuer", "-c", jsonPath).
		withEnv().
		withFlags().
		withJSON().
		build()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.App.TokenSignKey)
	assert.Equal(t, "flag-issuer", cfg.App.TokenIssuer)
	assert.Equal(t, "localhost:3333", cfg.Server.HTTPAddress)
}

// TestBuilder_MissingJSONFile verifies that an unreadable JSON file fails the build.
func TestBuilder_MissingJSONFile(t *testing.T) {
	t.Setenv("APP_TOKEN_SIGN_KEY", "k")

	cfg, err := newTestBuilder("-c", "/definitely/not/here.json").
		withEnv().
		withFlags().
		withJSON().
		build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading a json file")
}

// TestBuilder_BadFlags verifies that an invalid flag fails the build.
func TestBuilder_BadFlags(t *testing.T) {
	cfg, err := newTestBuilder("-unknown-flag").withFlags().build()
	assert.Nil(t, cfg)
	require.Error(t, err)
}
