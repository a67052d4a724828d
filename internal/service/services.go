// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/session"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/internal/validators"
	"github.com/MKhiriev/go-mini-crm/models"
)

type Services struct {
	AuthService        AuthService
	UserService        UserService
	ClientService      ClientService
	AppointmentService AppointmentService
	DocumentService    DocumentService
	RevenueService     RevenueService
	ChatService        ChatService
	DashboardService   DashboardService
	AppInfoService     AppInfoService
}

func NewServices(
	storages *store.Storages,
	sessions session.Store,
	cfg config.StructuredConfig,
	build models.AppBuildInfo,
	logger *logger.Logger,
) (*Services, error) {
	identities, err := NewIdentityCache(cfg.App.IdentityCacheSize, DefaultIdentityTTL)
	if err != nil {
		return nil, err
	}

	appInfo, err := NewAppInfoService(cfg.App, build, logger)
	if err != nil {
		return nil, err
	}

	validator := validators.NewRequestValidator()
	attachments := NewAttachmentService(storages.FileStorage, logger)

	return &Services{
		AuthService:        NewAuthService(storages.UserRepository, sessions, identities, validator, cfg.App, logger),
		UserService:        NewUserService(storages.UserRepository, identities, validator, logger),
		ClientService:      NewClientService(storages.ClientRepository, storages.AppointmentRepository, storages.DocumentRepository, validator, logger),
		AppointmentService: NewAppointmentService(storages.AppointmentRepository, storages.ClientRepository, validator, logger),
		DocumentService:    NewDocumentService(storages.DocumentRepository, storages.ClientRepository, attachments, logger),
		RevenueService:     NewRevenueService(storages.RevenueRepository, validator, logger),
		ChatService:        NewChatService(storages.MessageRepository, attachments, logger),
		DashboardService:   NewDashboardService(storages.ClientRepository, storages.AppointmentRepository, storages.DocumentRepository, logger),
		AppInfoService:     appInfo,
	}, nil
}
