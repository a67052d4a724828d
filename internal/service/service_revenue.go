// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/policy"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/internal/validators"
	"github.com/MKhiriev/go-mini-crm/models"
)

// revenueService records revenue entries. Agents see the entries labelled
// with their own username.
type revenueService struct {
	revenueRepository store.RevenueRepository
	validator         validators.Validator

	logger *logger.Logger
}

func NewRevenueService(revenueRepository store.RevenueRepository, validator validators.Validator, logger *logger.Logger) RevenueService {
	return &revenueService{
		revenueRepository: revenueRepository,
		validator:         validator,
		logger:            logger,
	}
}

func (r *revenueService) ListRevenue(ctx context.Context, actor models.Actor) (models.RevenueSummary, error) {
	log := logger.FromContext(ctx)
	owner := policy.OwnerFilter(actor)

	entries, err := r.revenueRepository.ListRevenue(ctx, owner)
	if err != nil {
		log.Err(err).Str("func", "*revenueService.ListRevenue").Msg("failed to list revenue")
		return models.RevenueSummary{}, fmt.Errorf("failed to list revenue: %w", err)
	}

	total, err := r.revenueRepository.SumRevenue(ctx, owner)
	if err != nil {
		log.Err(err).Str("func", "*revenueService.ListRevenue").Msg("failed to sum revenue")
		return models.RevenueSummary{}, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return models.RevenueSummary{Entries: entries, Total: total}, nil
}

// AddRevenue appends an entry labelled with the actor's username.
func (r *revenueService) AddRevenue(ctx context.Context, actor models.Actor, input models.RevenueInput) (models.Revenue, error) {
	if err := r.validator.Validate(ctx, input); err != nil {
		return models.Revenue{}, validationError(err)
	}

	day, err := time.Parse(models.DateLayout, strings.TrimSpace(input.Date))
	if err != nil {
		return models.Revenue{}, validationError(fmt.Errorf("date: %w", err))
	}

	revenue, err := r.revenueRepository.CreateRevenue(ctx, models.Revenue{
		Commercial: actor.Username,
		Amount:     *input.Amount,
		Date:       day.Format(models.DateLayout),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*revenueService.AddRevenue").Str("commercial", actor.Username).Msg("failed to add revenue")
		return models.Revenue{}, fmt.Errorf("failed to add revenue: %w", err)
	}

	return revenue, nil
}

func (r *revenueService) SumRevenue(ctx context.Context, actor models.Actor) (float64, error) {
	total, err := r.revenueRepository.SumRevenue(ctx, policy.OwnerFilter(actor))
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*revenueService.SumRevenue").Msg("failed to sum revenue")
		return 0, fmt.Errorf("failed to sum revenue: %w", err)
	}

	return total, nil
}
