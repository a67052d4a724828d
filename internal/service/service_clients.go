// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/policy"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/internal/validators"
	"github.com/MKhiriev/go-mini-crm/models"
)

type clientService struct {
	clientRepository      store.ClientRepository
	appointmentRepository store.AppointmentRepository
	documentRepository    store.DocumentRepository
	validator             validators.Validator

	logger *logger.Logger
}

func NewClientService(
	clientRepository store.ClientRepository,
	appointmentRepository store.AppointmentRepository,
	documentRepository store.DocumentRepository,
	validator validators.Validator,
	logger *logger.Logger,
) ClientService {
	return &clientService{
		clientRepository:      clientRepository,
		appointmentRepository: appointmentRepository,
		documentRepository:    documentRepository,
		validator:             validator,
		logger:                logger,
	}
}

func (c *clientService) ListClients(ctx context.Context, actor models.Actor) ([]models.Client, error) {
	return c.SearchClients(ctx, actor, "")
}

// SearchClients matches query against name, email, phone, commercial and
// status. A blank query lists every visible client.
func (c *clientService) SearchClients(ctx context.Context, actor models.Actor, query string) ([]models.Client, error) {
	clients, err := c.clientRepository.ListClients(ctx, models.ClientFilter{
		Owner:   policy.OwnerFilter(actor),
		Pattern: policy.SearchPattern(query),
	})
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*clientService.SearchClients").Msg("failed to list clients")
		return nil, fmt.Errorf("failed to list clients: %w", err)
	}

	return clients, nil
}

func (c *clientService) CreateClient(ctx context.Context, actor models.Actor, input models.ClientInput) (models.Client, error) {
	if err := c.validator.Validate(ctx, input); err != nil {
		return models.Client{}, validationError(err)
	}

	client := clientFromInput(input)
	client.UserID = actor.UserID

	created, err := c.clientRepository.CreateClient(ctx, client)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*clientService.CreateClient").Int64("user_id", actor.UserID).Msg("failed to create client")
		return models.Client{}, fmt.Errorf("failed to create client: %w", err)
	}

	return created, nil
}

// GetClient returns the client with the appointments and documents linked to
// it that the actor can see.
func (c *clientService) GetClient(ctx context.Context, actor models.Actor, id int64) (models.ClientDetail, error) {
	log := logger.FromContext(ctx)

	client, err := c.authorizedClient(ctx, actor, id, policy.OperationRead)
	if err != nil {
		return models.ClientDetail{}, err
	}

	owner := policy.OwnerFilter(actor)

	appointments, err := c.appointmentRepository.ListAppointments(ctx, models.AppointmentFilter{Owner: owner, ClientID: &client.ID})
	if err != nil {
		log.Err(err).Str("func", "*clientService.GetClient").Int64("client_id", id).Msg("failed to list client appointments")
		return models.ClientDetail{}, fmt.Errorf("failed to list client appointments: %w", err)
	}

	documents, err := c.documentRepository.ListDocuments(ctx, models.DocumentFilter{Owner: owner, ClientID: &client.ID})
	if err != nil {
		log.Err(err).Str("func", "*clientService.GetClient").Int64("client_id", id).Msg("failed to list client documents")
		return models.ClientDetail{}, fmt.Errorf("failed to list client documents: %w", err)
	}

	return models.ClientDetail{
		Client:       client,
		Appointments: appointments,
		Documents:    documents,
	}, nil
}

// UpdateClient replaces the editable fields. Ownership never changes.
func (c *clientService) UpdateClient(ctx context.Context, actor models.Actor, id int64, input models.ClientInput) (models.Client, error) {
	if err := c.validator.Validate(ctx, input); err != nil {
		return models.Client{}, validationError(err)
	}

	existing, err := c.authorizedClient(ctx, actor, id, policy.OperationWrite)
	if err != nil {
		return models.Client{}, err
	}

	client := clientFromInput(input)
	client.ID = existing.ID
	client.UserID = existing.UserID

	err = c.clientRepository.UpdateClient(ctx, client)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Client{}, ErrClientNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*clientService.UpdateClient").Int64("client_id", id).Msg("failed to update client")
		return models.Client{}, fmt.Errorf("failed to update client: %w", err)
	}

	return client, nil
}

func (c *clientService) authorizedClient(ctx context.Context, actor models.Actor, id int64, op policy.Operation) (models.Client, error) {
	client, err := c.clientRepository.GetClient(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Client{}, ErrClientNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*clientService.authorizedClient").Int64("client_id", id).Msg("failed to load client")
		return models.Client{}, fmt.Errorf("failed to load client: %w", err)
	}

	if !policy.Authorize(actor, client.UserID, op) {
		return models.Client{}, ErrRecordForbidden
	}

	return client, nil
}

func clientFromInput(input models.ClientInput) models.Client {
	return models.Client{
		Name:       strings.TrimSpace(input.Name),
		Email:      strings.TrimSpace(input.Email),
		Phone:      strings.TrimSpace(input.Phone),
		Address:    strings.TrimSpace(input.Address),
		Notes:      input.Notes,
		Commercial: strings.TrimSpace(input.Commercial),
		Status:     models.NormalizeClientStatus(strings.TrimSpace(input.Status)),
	}
}
