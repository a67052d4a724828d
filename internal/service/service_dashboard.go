// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"fmt"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/policy"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/models"
)

// dashboardListSize is the number of appointments and documents shown.
const dashboardListSize = 5

type dashboardService struct {
	clientRepository      store.ClientRepository
	appointmentRepository store.AppointmentRepository
	documentRepository    store.DocumentRepository

	logger *logger.Logger
}

func NewDashboardService(
	clientRepository store.ClientRepository,
	appointmentRepository store.AppointmentRepository,
	documentRepository store.DocumentRepository,
	logger *logger.Logger,
) DashboardService {
	return &dashboardService{
		clientRepository:      clientRepository,
		appointmentRepository: appointmentRepository,
		documentRepository:    documentRepository,
		logger:                logger,
	}
}

func (d *dashboardService) GetDashboard(ctx context.Context, actor models.Actor) (models.Dashboard, error) {
	owner := policy.OwnerFilter(actor)

	var (
		dashboard models.Dashboard
		err       error
	)

	defer func() {
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*dashboardService.GetDashboard").Int64("user_id", actor.UserID).Msg("failed to build dashboard")
		}
	}()

	if dashboard.ClientsCount, err = d.clientRepository.CountClients(ctx, owner); err != nil {
		return models.Dashboard{}, fmt.Errorf("failed to count clients: %w", err)
	}
	if dashboard.DocumentsCount, err = d.documentRepository.CountDocuments(ctx, owner); err != nil {
		return models.Dashboard{}, fmt.Errorf("failed to count documents: %w", err)
	}
	if dashboard.AppointmentsCount, err = d.appointmentRepository.CountAppointments(ctx, owner); err != nil {
		return models.Dashboard{}, fmt.Errorf("failed to count appointments: %w", err)
	}

	dashboard.UpcomingAppointments, err = d.appointmentRepository.ListAppointments(ctx, models.AppointmentFilter{Owner: owner, Limit: dashboardListSize})
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("failed to list appointments: %w", err)
	}

	dashboard.LatestDocuments, err = d.documentRepository.ListDocuments(ctx, models.DocumentFilter{Owner: owner, Limit: dashboardListSize})
	if err != nil {
		return models.Dashboard{}, fmt.Errorf("failed to list documents: %w", err)
	}

	return dashboard, nil
}
