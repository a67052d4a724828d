// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package logger

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-mini-crm/models"
)

func decodeEntry(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	return entry
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger("crm-server")
	l.Logger = l.Output(&buf)

	l.Info().Msg("server started")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "crm-server", entry["role"])
	assert.Contains(t, entry, "time")
	assert.Contains(t, entry, "func")
	assert.Equal(t, zerolog.DebugLevel, zerolog.GlobalLevel())
}

func TestNewConsoleLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewConsoleLogger("crm-client", &buf)

	l.Debug().Msg("request sent")
	l.Info().Str("command", "clients").Msg("command finished")

	out := buf.String()
	assert.Contains(t, out, "command finished")
	assert.Contains(t, out, "command=clients")
	assert.NotContains(t, out, "request sent")
	assert.False(t, json.Valid(buf.Bytes()))
}

func TestNop(t *testing.T) {
	var buf bytes.Buffer
	l := Nop()
	l.Logger = l.Output(&buf)

	l.Error().Msg("dropped")

	assert.Empty(t, buf.String())
}

func TestWithTraceID(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{zerolog.New(&buf).With().Str("role", "crm-server").Logger()}

	traced := base.WithTraceID("0190f3c1-trace")
	traced.Info().Msg("handled")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "0190f3c1-trace", entry[TraceIDField])
	assert.Equal(t, "crm-server", entry["role"])

	buf.Reset()
	base.Info().Msg("untouched")
	assert.NotContains(t, decodeEntry(t, &buf), TraceIDField)
}

// A request logger travels through the context: the trace id set by the HTTP
// layer and the actor set after authentication both reach store-level entries.
func TestWithActor_ExtendsRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{zerolog.New(&buf)}
	ctx := base.WithTraceID("trace-7").WithContext(context.Background())

	ctx = WithActor(ctx, models.Actor{UserID: 2, Username: "alice", Role: models.RoleAgent})
	FromContext(ctx).Info().Str("func", "*clientRepository.ListClients").Msg("listing clients")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "trace-7", entry[TraceIDField])
	assert.Equal(t, float64(2), entry[UserIDField])
	assert.Equal(t, "alice", entry[UsernameField])
	assert.Equal(t, string(models.RoleAgent), entry[RoleField])
}

func TestFromRequest(t *testing.T) {
	var buf bytes.Buffer
	base := &Logger{zerolog.New(&buf)}

	req := httptest.NewRequest(http.MethodGet, "/api/clients", nil)
	req = req.WithContext(base.WithTraceID("trace-9").WithContext(req.Context()))

	FromRequest(req).Warn().Msg("slow query")

	entry := decodeEntry(t, &buf)
	assert.Equal(t, "trace-9", entry[TraceIDField])
	assert.Equal(t, "warn", entry["level"])
}

func TestFromContext_WithoutLogger(t *testing.T) {
	l := FromContext(context.Background())
	require.NotNil(t, l)

	// the fallback must be usable without a panic
	l.Debug().Msg("no request logger")
}
