// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"time"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/service"
	"github.com/MKhiriev/go-mini-crm/internal/utils"
)

const (
	defaultMaxUploadSize  = 32 << 20
	defaultRequestTimeout = 30 * time.Second
)

type Handler struct {
	services *service.Services

	maxUploadSize  int64
	requestTimeout time.Duration

	traceIDs *utils.UUIDGenerator
	logger   *logger.Logger
}

func NewHandler(services *service.Services, cfg config.Server, logger *logger.Logger) *Handler {
	h := &Handler{
		services:       services,
		maxUploadSize:  cfg.MaxUploadSize,
		requestTimeout: cfg.RequestTimeout,
		traceIDs:       utils.NewUUIDGenerator(),
		logger:         logger,
	}
	if h.maxUploadSize <= 0 {
		h.maxUploadSize = defaultMaxUploadSize
	}
	if h.requestTimeout <= 0 {
		h.requestTimeout = defaultRequestTimeout
	}

	logger.Info().Msg("http handler created")
	return h
}
