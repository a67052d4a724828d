// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// StructuredJSONConfig mirrors [StructuredConfig] for JSON files. Durations
// are written as strings ("30s") or as nanosecond numbers.
type StructuredJSONConfig struct {
	App struct {
		TokenSignKey           string   `json:"token_sign_key"`
		TokenIssuer            string   `json:"token_issuer"`
		TokenDuration          Duration `json:"token_duration"`
		Version                string   `json:"version"`
		BootstrapAdminUsername string   `json:"bootstrap_admin_username"`
		BootstrapAdminPassword string   `json:"bootstrap_admin_password"`
		IdentityCacheSize      int      `json:"identity_cache_size"`
	} `json:"app,omitempty"`

	Storage struct {
		DB struct {
			Driver string `json:"driver"`
			DSN    string `json:"dsn"`
		} `json:"db,omitempty"`

		Files struct {
			Backend      string `json:"backend"`
			DocumentsDir string `json:"documents_dir"`
			ChatDir      string `json:"chat_dir"`
			S3           struct {
				Endpoint  string `json:"endpoint"`
				AccessKey string `json:"access_key"`
				SecretKey string `json:"secret_key"`
				Bucket    string `json:"bucket"`
				UseSSL    bool   `json:"use_ssl"`
			} `json:"s3,omitempty"`
		} `json:"files,omitempty"`

		Sessions struct {
			RedisURL string `json:"redis_url"`
		} `json:"sessions,omitempty"`
	} `json:"storage,omitempty"`

	Server struct {
		HTTPAddress    string   `json:"http_address"`
		RequestTimeout Duration `json:"request_timeout"`
		MaxUploadSize  int64    `json:"max_upload_size"`
	} `json:"server,omitempty"`
}

func parseJSON(jsonFilePath string) (*StructuredConfig, error) {
	jsonFile, err := os.Open(jsonFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading a json file: %w", err)
	}
	defer jsonFile.Close()

	var jsonCfg StructuredJSONConfig
	if err := json.NewDecoder(jsonFile).Decode(&jsonCfg); err != nil {
		return nil, fmt.Errorf("error decoding json configs: %w", err)
	}

	s3 := jsonCfg.Storage.Files.S3
	cfg := &StructuredConfig{
		App: App{
			TokenSignKey:           jsonCfg.App.TokenSignKey,
			TokenIssuer:            jsonCfg.App.TokenIssuer,
			TokenDuration:          time.Duration(jsonCfg.App.TokenDuration),
			Version:                jsonCfg.App.Version,
			BootstrapAdminUsername: jsonCfg.App.BootstrapAdminUsername,
			BootstrapAdminPassword: jsonCfg.App.BootstrapAdminPassword,
			IdentityCacheSize:      jsonCfg.App.IdentityCacheSize,
		},
		Storage: Storage{
			DB: DB{
				Driver: jsonCfg.Storage.DB.Driver,
				DSN:    jsonCfg.Storage.DB.DSN,
			},
			Files: Files{
				Backend:      jsonCfg.Storage.Files.Backend,
				DocumentsDir: jsonCfg.Storage.Files.DocumentsDir,
				ChatDir:      jsonCfg.Storage.Files.ChatDir,
				S3: S3{
					Endpoint:  s3.Endpoint,
					AccessKey: s3.AccessKey,
					SecretKey: s3.SecretKey,
					Bucket:    s3.Bucket,
					UseSSL:    s3.UseSSL,
				},
			},
			Sessions: Sessions{
				RedisURL: jsonCfg.Storage.Sessions.RedisURL,
			},
		},
		Server: Server{
			HTTPAddress:    jsonCfg.Server.HTTPAddress,
			RequestTimeout: time.Duration(jsonCfg.Server.RequestTimeout),
			MaxUploadSize:  jsonCfg.Server.MaxUploadSize,
		},
	}

	return cfg, nil
}

// Duration is a wrapper around time.Duration that supports JSON unmarshaling from strings like "1h", "30s"
type Duration time.Duration

func (d *Duration) UnmarshalJSON(b []byte) error {
	var v any
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}

	switch value := v.(type) {
	case float64:
		*d = Duration(time.Duration(value))
		return nil
	case string:
		tmp, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		*d = Duration(tmp)
		return nil
	default:
		return fmt.Errorf("invalid duration: %s", string(b))
	}
}

func (d Duration) MarshalJSON() ([]byte, error) {
	return json.Marshal(time.Duration(d).String())
}
