// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/models"
)

type revenueRepository struct {
	*DB
	logger *logger.Logger
}

func NewRevenueRepository(db *DB, logger *logger.Logger) RevenueRepository {
	logger.Debug().Msg("RevenueRepository created")
	return &revenueRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *revenueRepository) CreateRevenue(ctx context.Context, revenue models.Revenue) (models.Revenue, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Insert("revenues").
		Columns("commercial", "amount", "entry_date").
		Values(revenue.Commercial, revenue.Amount, revenue.Date).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Revenue{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&revenue.ID); err != nil {
		log.Err(err).Str("func", "*revenueRepository.CreateRevenue").Str("commercial", revenue.Commercial).Msg("error inserting revenue")
		return models.Revenue{}, r.classify(err)
	}

	return revenue, nil
}

// ListRevenue returns the visible entries, newest date first.
func (r *revenueRepository) ListRevenue(ctx context.Context, owner models.OwnerFilter) ([]models.Revenue, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildListRevenueQuery(owner)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*revenueRepository.ListRevenue").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	entries := make([]models.Revenue, 0, 50)
	for rows.Next() {
		var entry models.Revenue
		if err := rows.Scan(&entry.ID, &entry.Commercial, &entry.Amount, &entry.Date); err != nil {
			log.Err(err).Str("func", "*revenueRepository.ListRevenue").Msg("failed to scan revenue row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*revenueRepository.ListRevenue").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return entries, nil
}

// SumRevenue totals the visible entries. No entries sum to zero.
func (r *revenueRepository) SumRevenue(ctx context.Context, owner models.OwnerFilter) (float64, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildSumRevenueQuery(owner)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var total float64
	if err := r.QueryRowContext(ctx, query, args...).Scan(&total); err != nil {
		log.Err(err).Str("func", "*revenueRepository.SumRevenue").Msg("failed to sum revenue")
		return 0, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return total, nil
}
