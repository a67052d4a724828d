// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/policy"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/internal/validators"
	"github.com/MKhiriev/go-mini-crm/models"
)

type appointmentService struct {
	appointmentRepository store.AppointmentRepository
	clientRepository      store.ClientRepository
	validator             validators.Validator

	logger *logger.Logger
}

func NewAppointmentService(
	appointmentRepository store.AppointmentRepository,
	clientRepository store.ClientRepository,
	validator validators.Validator,
	logger *logger.Logger,
) AppointmentService {
	return &appointmentService{
		appointmentRepository: appointmentRepository,
		clientRepository:      clientRepository,
		validator:             validator,
		logger:                logger,
	}
}

func (a *appointmentService) ListAppointments(ctx context.Context, actor models.Actor, rawDate string) ([]models.Appointment, error) {
	filter := models.AppointmentFilter{Owner: policy.OwnerFilter(actor)}
	if day, ok := policy.DateFilter(rawDate); ok {
		filter.Date = day
	}

	appointments, err := a.appointmentRepository.ListAppointments(ctx, filter)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appointmentService.ListAppointments").Msg("failed to list appointments")
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}

	return appointments, nil
}

func (a *appointmentService) CreateAppointment(ctx context.Context, actor models.Actor, input models.AppointmentInput) (models.Appointment, error) {
	appointment, err := a.appointmentFromInput(ctx, actor, input)
	if err != nil {
		return models.Appointment{}, err
	}
	appointment.UserID = actor.UserID

	created, err := a.appointmentRepository.CreateAppointment(ctx, appointment)
	if errors.Is(err, store.ErrReferencedRecordNotFound) {
		return models.Appointment{}, ErrClientNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appointmentService.CreateAppointment").Int64("user_id", actor.UserID).Msg("failed to create appointment")
		return models.Appointment{}, fmt.Errorf("failed to create appointment: %w", err)
	}

	return created, nil
}

func (a *appointmentService) UpdateAppointment(ctx context.Context, actor models.Actor, id int64, input models.AppointmentInput) (models.Appointment, error) {
	existing, err := a.authorizedAppointment(ctx, actor, id, policy.OperationWrite)
	if err != nil {
		return models.Appointment{}, err
	}

	// an edit without client_id keeps the current link
	if input.ClientID == nil && existing.ClientID != nil {
		clientID := *existing.ClientID
		input.ClientID = &clientID
	}

	appointment, err := a.appointmentFromInput(ctx, actor, input)
	if err != nil {
		return models.Appointment{}, err
	}
	appointment.ID = existing.ID
	appointment.UserID = existing.UserID

	err = a.appointmentRepository.UpdateAppointment(ctx, appointment)
	switch {
	case errors.Is(err, store.ErrRecordNotFound):
		return models.Appointment{}, ErrAppointmentNotFound
	case errors.Is(err, store.ErrReferencedRecordNotFound):
		return models.Appointment{}, ErrClientNotFound
	case err != nil:
		logger.FromContext(ctx).Err(err).Str("func", "*appointmentService.UpdateAppointment").Int64("appointment_id", id).Msg("failed to update appointment")
		return models.Appointment{}, fmt.Errorf("failed to update appointment: %w", err)
	}

	return appointment, nil
}

// DeleteAppointment removes the appointment and returns it as it was.
func (a *appointmentService) DeleteAppointment(ctx context.Context, actor models.Actor, id int64) (models.Appointment, error) {
	appointment, err := a.authorizedAppointment(ctx, actor, id, policy.OperationDelete)
	if err != nil {
		return models.Appointment{}, err
	}

	err = a.appointmentRepository.DeleteAppointment(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appointmentService.DeleteAppointment").Int64("appointment_id", id).Msg("failed to delete appointment")
		return models.Appointment{}, fmt.Errorf("failed to delete appointment: %w", err)
	}

	return appointment, nil
}

func (a *appointmentService) authorizedAppointment(ctx context.Context, actor models.Actor, id int64, op policy.Operation) (models.Appointment, error) {
	appointment, err := a.appointmentRepository.GetAppointment(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Appointment{}, ErrAppointmentNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*appointmentService.authorizedAppointment").Int64("appointment_id", id).Msg("failed to load appointment")
		return models.Appointment{}, fmt.Errorf("failed to load appointment: %w", err)
	}

	if !policy.Authorize(actor, appointment.UserID, op) {
		return models.Appointment{}, ErrRecordForbidden
	}

	return appointment, nil
}

// appointmentFromInput validates input, canonicalizes the schedule and
// resolves the linked client. A linked client overrides the typed name.
func (a *appointmentService) appointmentFromInput(ctx context.Context, actor models.Actor, input models.AppointmentInput) (models.Appointment, error) {
	if err := a.validator.Validate(ctx, input); err != nil {
		return models.Appointment{}, validationError(err)
	}

	day, err := time.Parse(models.DateLayout, strings.TrimSpace(input.Date))
	if err != nil {
		return models.Appointment{}, validationError(fmt.Errorf("date: %w", err))
	}
	clock, err := time.Parse(models.TimeLayout, strings.TrimSpace(input.Time))
	if err != nil {
		return models.Appointment{}, validationError(fmt.Errorf("time: %w", err))
	}

	appointment := models.Appointment{
		Title:      strings.TrimSpace(input.Title),
		ClientName: strings.TrimSpace(input.ClientName),
		Date:       day.Format(models.DateLayout),
		Time:       clock.Format(models.TimeLayout),
		Notes:      input.Notes,
	}

	if input.ClientID != nil {
		client, err := a.clientRepository.GetClient(ctx, *input.ClientID)
		if errors.Is(err, store.ErrRecordNotFound) {
			return models.Appointment{}, ErrClientNotFound
		}
		if err != nil {
			return models.Appointment{}, fmt.Errorf("failed to load linked client: %w", err)
		}
		if !policy.Authorize(actor, client.UserID, policy.OperationRead) {
			return models.Appointment{}, ErrRecordForbidden
		}

		clientID := client.ID
		appointment.ClientID = &clientID
		appointment.ClientName = client.Name
	}

	if appointment.ClientName == "" {
		return models.Appointment{}, validationError(errors.New("client_name is required when client_id is not set"))
	}

	return appointment, nil
}
