// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/migrations"
)

// DB is a database/sql pool bound to one driver. The driver decides the
// placeholder format of generated queries and how errors are classified.
type DB struct {
	*sql.DB
	driver             string
	errorClassificator ErrorClassificator
	logger             *logger.Logger
}

// NewConnect opens the database selected by cfg.Driver.
func NewConnect(ctx context.Context, cfg config.DB, log *logger.Logger) (*DB, error) {
	switch cfg.Driver {
	case config.DriverPostgres:
		return NewConnectPostgres(ctx, cfg, log)
	case config.DriverSQLite:
		return NewConnectSQLite(ctx, cfg, log)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, cfg.Driver)
	}
}

// Migrate applies the embedded schema for the connected driver.
func (db *DB) Migrate() error {
	migrations.SetLogger(db.logger)
	return migrations.Migrate(db.DB, db.driver)
}

// builder returns a squirrel statement builder using the placeholders of
// the connected driver.
func (db *DB) builder() sq.StatementBuilderType {
	if db.driver == config.DriverPostgres {
		return sq.StatementBuilder.PlaceholderFormat(sq.Dollar)
	}
	return sq.StatementBuilder.PlaceholderFormat(sq.Question)
}

// lowerFunc names the SQL function that case-folds text on the connected
// driver.
func (db *DB) lowerFunc() string {
	if db.driver == config.DriverSQLite {
		return sqliteLowerFunc
	}
	return "LOWER"
}

// classify wraps a failed statement error with the matching store sentinel.
func (db *DB) classify(err error) error {
	var class ErrorClassification
	if db.errorClassificator != nil {
		class = db.errorClassificator.Classify(err)
	}

	switch class {
	case UniqueViolation:
		return fmt.Errorf("%w: %w", ErrDuplicateRecord, err)
	case ForeignKeyViolation:
		return fmt.Errorf("%w: %w", ErrReferencedRecordNotFound, err)
	case CheckViolation:
		return fmt.Errorf("%w: %w", ErrConstraintViolated, err)
	default:
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
}

// rollback ends a failed transaction. The rollback error is only logged
// because the original failure is what the caller needs.
func rollback(ctx context.Context, tx *sql.Tx, funcName string) {
	if err := tx.Rollback(); err != nil && err != sql.ErrTxDone {
		logger.FromContext(ctx).Err(err).Str("func", funcName).Msg("failed to rollback transaction")
	}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullString(v string) sql.NullString {
	return sql.NullString{String: v, Valid: v != ""}
}
