// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package http implements the JSON API of the CRM on top of chi.
// Middlewares attach a trace id and a request-scoped logger, record
// Prometheus metrics, resolve the bearer token into an actor and gate the
// administration routes. Handlers decode requests, call the service layer
// and map service error kinds to status codes.
package http
