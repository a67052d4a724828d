// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package migrations embeds the database schema of the CRM and applies it
// with goose. Every supported driver has its own directory of migrations.
package migrations

import (
	"database/sql"
	"embed"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/pressly/goose/v3"
)

//go:embed postgres/*.sql sqlite/*.sql
var embedMigrations embed.FS

// ErrUnsupportedDialect is returned for a driver that has no migrations.
var ErrUnsupportedDialect = errors.New("unsupported migration dialect")

// dialects maps a database/sql driver name to the goose dialect and the
// embedded directory holding its migrations.
var dialects = map[string]struct {
	goose string
	dir   string
}{
	"pgx":     {goose: "pgx", dir: "postgres"},
	"sqlite3": {goose: "sqlite3", dir: "sqlite"},
}

// Migrate applies every pending migration for the given driver.
func Migrate(db *sql.DB, driver string) error {
	if db == nil {
		return fmt.Errorf("migration error: db is nil")
	}

	d, ok := dialects[driver]
	if !ok {
		return fmt.Errorf("migration error: %w: %q", ErrUnsupportedDialect, driver)
	}

	goose.SetBaseFS(embedMigrations)

	if err := goose.SetDialect(d.goose); err != nil {
		return fmt.Errorf("migration error setting dialect for db: %w", err)
	}

	if err := goose.Up(db, d.dir); err != nil {
		return fmt.Errorf("migration error: %w", err)
	}

	return nil
}

// SetLogger routes goose output through the application logger.
func SetLogger(l *logger.Logger) {
	if l == nil {
		return
	}
	goose.SetLogger(gooseLogger{l: l})
}

type gooseLogger struct {
	l *logger.Logger
}

func (g gooseLogger) Printf(format string, v ...interface{}) {
	g.l.Info().Str("component", "goose").Msgf(format, v...)
}

func (g gooseLogger) Fatalf(format string, v ...interface{}) {
	g.l.Fatal().Str("component", "goose").Msgf(format, v...)
}
