// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"dario.cat/mergo"
)

const (
	defaultClientServerURL = "http://localhost:8080"
	defaultClientTimeout   = 15 * time.Second
)

// ClientConfig configures the command-line client.
type ClientConfig struct {
	// ServerURL is the base URL of the CRM server.
	// Env: CRM_SERVER_URL
	ServerURL string `env:"SERVER_URL"`

	// Username and Password are used to log in before every command.
	// Env: CRM_USERNAME, CRM_PASSWORD
	Username string `env:"USERNAME"`
	Password string `env:"PASSWORD"`

	// RequestTimeout bounds every API call.
	// Env: CRM_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

type clientEnv struct {
	Client ClientConfig `envPrefix:"CRM_"`
}

// GetClientConfig merges environment variables and flags from args (flags
// win) and returns the remaining positional arguments: the command and its
// operands.
//
// Flags:
//
//	-s server URL
//	-u username
//	-p password
//	-timeout request timeout (e.g., "15s")
func GetClientConfig(args []string) (*ClientConfig, []string, error) {
	var fromEnv clientEnv
	if err := parseEnv(&fromEnv); err != nil {
		return nil, nil, err
	}

	fromFlags := new(ClientConfig)
	fs := flag.NewFlagSet("crm", flag.ContinueOnError)
	fs.StringVar(&fromFlags.ServerURL, "s", "", "CRM server URL")
	fs.StringVar(&fromFlags.Username, "u", "", "Username")
	fs.StringVar(&fromFlags.Password, "p", "", "Password")
	fs.DurationVar(&fromFlags.RequestTimeout, "timeout", 0, "Request timeout (e.g., 15s)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, fmt.Errorf("error parsing flags: %w", err)
	}

	cfg := fromEnv.Client
	if err := mergo.Merge(&cfg, fromFlags, mergo.WithOverride); err != nil {
		return nil, nil, fmt.Errorf("error merging configs: %w", err)
	}

	cfg.ServerURL = strings.TrimSpace(cfg.ServerURL)
	if cfg.ServerURL == "" {
		cfg.ServerURL = defaultClientServerURL
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultClientTimeout
	}

	return &cfg, fs.Args(), nil
}
