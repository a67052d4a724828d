// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"context"
	"net/http"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/policy"
	"github.com/MKhiriev/go-mini-crm/internal/service"
	"github.com/MKhiriev/go-mini-crm/internal/utils"
)

// auth is an HTTP middleware that enforces JWT-based authentication.
//
// It extracts the bearer token from the "Authorization" header, validates it
// via [service.AuthService.ParseToken] and resolves the current identity of
// its account via [service.AuthService.ResolveActor]. The actor and the token
// are stored in the request context under [utils.ActorCtxKey] and
// [utils.TokenCtxKey].
//
// Identity is resolved on every request, so a deleted account is rejected
// at once and a renamed one is seen under its new name.
func (h *Handler) auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromRequest(r)
		ctx := r.Context()

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Debug().Err(ErrEmptyAuthorizationHeader).Send()
			utils.WriteError(w, ErrEmptyAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		tokenString, err := utils.ParseBearerToken(authHeader)
		if err != nil {
			log.Debug().Err(err).Send()
			utils.WriteError(w, ErrInvalidAuthorizationHeader.Error(), http.StatusUnauthorized)
			return
		}

		token, err := h.services.AuthService.ParseToken(ctx, tokenString)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		actor, err := h.services.AuthService.ResolveActor(ctx, token)
		if err != nil {
			writeServiceError(w, r, err)
			return
		}

		ctx = logger.WithActor(ctx, actor)
		ctx = context.WithValue(ctx, utils.ActorCtxKey, actor)
		ctx = context.WithValue(ctx, utils.TokenCtxKey, token)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// adminOnly must run after auth.
func (h *Handler) adminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		actor, ok := utils.GetActorFromContext(r.Context())
		if !ok {
			writeServiceError(w, r, ErrMissingActor)
			return
		}
		if !policy.CanAdminister(actor) {
			writeServiceError(w, r, service.ErrAdministrationOnly)
			return
		}

		next.ServeHTTP(w, r)
	})
}
