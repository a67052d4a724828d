// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package logger wraps zerolog for the CRM server and its command-line client.
//
// Request handling attaches a logger to the context (see WithTraceID and
// WithActor), and every layer below the handler picks it up with FromContext,
// so store and service entries carry the trace id and the acting account.
package logger

import (
	"context"
	"io"
	"net/http"
	"os"
	"runtime"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/MKhiriev/go-mini-crm/models"
)

// Field names shared by every request-scoped entry.
const (
	TraceIDField  = "trace_id"
	UserIDField   = "user_id"
	UsernameField = "username"
	RoleField     = "user_role"
)

type Logger struct {
	zerolog.Logger
}

// NewLogger returns the JSON logger of a long-running process. Entries go to
// stdout with the process role, a timestamp and the calling function.
func NewLogger(role string) *Logger {
	zerolog.SetGlobalLevel(zerolog.DebugLevel)
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		return runtime.FuncForPC(pc).Name()
	}
	zerolog.CallerFieldName = "func"

	logger := zerolog.New(os.Stdout).With().
		Str("role", role).
		Timestamp().
		Caller().
		Logger()

	return &Logger{logger}
}

// NewConsoleLogger returns a plain-text logger for the command-line client.
// Only Info and above are written.
func NewConsoleLogger(role string, w io.Writer) *Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: w, NoColor: true, PartsExclude: []string{zerolog.TimestampFieldName}}).
		Level(zerolog.InfoLevel).
		With().
		Str("role", role).
		Logger()

	return &Logger{logger}
}

func Nop() *Logger {
	return &Logger{zerolog.Nop()}
}

// WithTraceID returns a child logger tagging every entry with traceID.
func (l *Logger) WithTraceID(traceID string) *Logger {
	return &Logger{l.With().Str(TraceIDField, traceID).Logger()}
}

// WithActor returns ctx with its logger extended by the acting account.
func WithActor(ctx context.Context, actor models.Actor) context.Context {
	l := log.Ctx(ctx).With().
		Int64(UserIDField, actor.UserID).
		Str(UsernameField, actor.Username).
		Str(RoleField, string(actor.Role)).
		Logger()
	return l.WithContext(ctx)
}

func FromRequest(r *http.Request) *Logger {
	return FromContext(r.Context())
}

// FromContext returns the logger stored in ctx. Without one, zerolog's
// default context logger is returned, never nil.
func FromContext(ctx context.Context) *Logger {
	return &Logger{*log.Ctx(ctx)}
}
