// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/models"
)

type clientRepository struct {
	*DB
	logger *logger.Logger
}

func NewClientRepository(db *DB, logger *logger.Logger) ClientRepository {
	logger.Debug().Msg("ClientRepository created")
	return &clientRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *clientRepository) CreateClient(ctx context.Context, client models.Client) (models.Client, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Insert("clients").
		Columns("name", "email", "phone", "address", "notes", "commercial", "status", "user_id").
		Values(client.Name, client.Email, client.Phone, client.Address, client.Notes, client.Commercial, string(client.Status), client.UserID).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Client{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&client.ID); err != nil {
		log.Err(err).Str("func", "*clientRepository.CreateClient").Int64("user_id", client.UserID).Msg("error inserting client")
		return models.Client{}, r.classify(err)
	}

	return client, nil
}

func (r *clientRepository) GetClient(ctx context.Context, id int64) (models.Client, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(clientColumns...).
		From("clients").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Client{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	client, err := scanClient(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Client{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*clientRepository.GetClient").Int64("client_id", id).Msg("error scanning client")
		return models.Client{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return client, nil
}

// UpdateClient overwrites the editable fields of client.ID. Ownership is
// left untouched.
func (r *clientRepository) UpdateClient(ctx context.Context, client models.Client) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Update("clients").
		SetMap(map[string]any{
			"name":       client.Name,
			"email":      client.Email,
			"phone":      client.Phone,
			"address":    client.Address,
			"notes":      client.Notes,
			"commercial": client.Commercial,
			"status":     string(client.Status),
		}).
		Where(sq.Eq{"id": client.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*clientRepository.UpdateClient").Int64("client_id", client.ID).Msg("error updating client")
		return r.classify(err)
	}

	return expectAffected(result)
}

func (r *clientRepository) ListClients(ctx context.Context, filter models.ClientFilter) ([]models.Client, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildListClientsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*clientRepository.ListClients").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	clients := make([]models.Client, 0, 50)
	for rows.Next() {
		client, err := scanClient(rows)
		if err != nil {
			log.Err(err).Str("func", "*clientRepository.ListClients").Msg("failed to scan client row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		clients = append(clients, client)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*clientRepository.ListClients").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return clients, nil
}

func (r *clientRepository) CountClients(ctx context.Context, owner models.OwnerFilter) (int64, error) {
	return r.count(ctx, "clients", owner)
}

// rowScanner is satisfied by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanClient(row rowScanner) (models.Client, error) {
	var client models.Client
	err := row.Scan(
		&client.ID,
		&client.Name,
		&client.Email,
		&client.Phone,
		&client.Address,
		&client.Notes,
		&client.Commercial,
		&client.Status,
		&client.UserID,
	)
	return client, err
}

// count returns the number of rows of table visible through owner.
func (db *DB) count(ctx context.Context, table string, owner models.OwnerFilter) (int64, error) {
	log := logger.FromContext(ctx)

	query, args, err := db.buildCountQuery(table, owner)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var n int64
	if err := db.QueryRowContext(ctx, query, args...).Scan(&n); err != nil {
		log.Err(err).Str("func", "*DB.count").Str("table", table).Msg("failed to count rows")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return n, nil
}
