// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/MKhiriev/go-mini-crm/internal/adapter"
	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/models"
)

type command struct {
	usage string
	// args is the minimum number of operands.
	args int
	// public commands run without logging in.
	public bool
	run    func(ctx context.Context, a *App, args []string) (any, error)
}

var commands = map[string]command{
	"version": {usage: "version", public: true, run: func(ctx context.Context, a *App, _ []string) (any, error) {
		return a.api.Version(ctx)
	}},
	"me": {usage: "me", run: func(ctx context.Context, a *App, _ []string) (any, error) {
		return a.api.Me(ctx)
	}},
	"dashboard": {usage: "dashboard", run: func(ctx context.Context, a *App, _ []string) (any, error) {
		return a.api.Dashboard(ctx)
	}},
	"clients": {usage: "clients [query]", run: func(ctx context.Context, a *App, args []string) (any, error) {
		return a.api.ListClients(ctx, strings.Join(args, " "))
	}},
	"client": {usage: "client <id>", args: 1, run: func(ctx context.Context, a *App, args []string) (any, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return a.api.GetClient(ctx, id)
	}},
	"add-client": {usage: "add-client <name> <commercial> [status]", args: 2, run: func(ctx context.Context, a *App, args []string) (any, error) {
		input := models.ClientInput{Name: args[0], Commercial: args[1]}
		if len(args) > 2 {
			input.Status = args[2]
		}
		return a.api.CreateClient(ctx, input)
	}},
	"appointments": {usage: "appointments [YYYY-MM-DD]", run: func(ctx context.Context, a *App, args []string) (any, error) {
		var date string
		if len(args) > 0 {
			date = args[0]
		}
		return a.api.ListAppointments(ctx, date)
	}},
	"add-appointment": {usage: "add-appointment <title> <client name> <YYYY-MM-DD> <HH:MM>", args: 4, run: func(ctx context.Context, a *App, args []string) (any, error) {
		return a.api.CreateAppointment(ctx, models.AppointmentInput{
			Title: args[0], ClientName: args[1], Date: args[2], Time: args[3],
		})
	}},
	"delete-appointment": {usage: "delete-appointment <id>", args: 1, run: func(ctx context.Context, a *App, args []string) (any, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return nil, a.api.DeleteAppointment(ctx, id)
	}},
	"documents": {usage: "documents", run: func(ctx context.Context, a *App, _ []string) (any, error) {
		return a.api.ListDocuments(ctx)
	}},
	"upload": {usage: "upload <file.pdf> [client id]", args: 1, run: func(ctx context.Context, a *App, args []string) (any, error) {
		return a.upload(ctx, args)
	}},
	"download": {usage: "download <id> [directory]", args: 1, run: func(ctx context.Context, a *App, args []string) (any, error) {
		return a.download(ctx, args)
	}},
	"delete-document": {usage: "delete-document <id>", args: 1, run: func(ctx context.Context, a *App, args []string) (any, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return nil, a.api.DeleteDocument(ctx, id)
	}},
	"revenue": {usage: "revenue", run: func(ctx context.Context, a *App, _ []string) (any, error) {
		return a.api.ListRevenue(ctx)
	}},
	"add-revenue": {usage: "add-revenue <amount> <YYYY-MM-DD>", args: 2, run: func(ctx context.Context, a *App, args []string) (any, error) {
		amount, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return nil, fmt.Errorf("%w: amount %q", ErrUsage, args[0])
		}
		return a.api.AddRevenue(ctx, models.RevenueInput{Amount: &amount, Date: args[1]})
	}},
	"chat": {usage: "chat", run: func(ctx context.Context, a *App, _ []string) (any, error) {
		return a.api.ListMessages(ctx)
	}},
	"say": {usage: "say <text>", args: 1, run: func(ctx context.Context, a *App, args []string) (any, error) {
		return a.api.SendMessage(ctx, strings.Join(args, " "))
	}},
	"users": {usage: "users", run: func(ctx context.Context, a *App, _ []string) (any, error) {
		return a.api.ListUsers(ctx)
	}},
	"add-agent": {usage: "add-agent <username> <password>", args: 2, run: func(ctx context.Context, a *App, args []string) (any, error) {
		return a.api.CreateAgent(ctx, models.AgentInput{Username: args[0], Password: args[1]})
	}},
	"delete-agent": {usage: "delete-agent <id>", args: 1, run: func(ctx context.Context, a *App, args []string) (any, error) {
		id, err := parseID(args[0])
		if err != nil {
			return nil, err
		}
		return a.api.DeleteAgent(ctx, id)
	}},
}

// App runs one command per invocation.
type App struct {
	api adapter.ServerAdapter
	cfg config.ClientConfig
	out io.Writer

	logger *logger.Logger
}

func NewApp(api adapter.ServerAdapter, cfg config.ClientConfig, out io.Writer, logger *logger.Logger) (*App, error) {
	if api == nil {
		return nil, errors.New("server adapter is nil")
	}
	if out == nil {
		out = os.Stdout
	}
	return &App{api: api, cfg: cfg, out: out, logger: logger}, nil
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrNoCommand
	}

	cmd, ok := commands[args[0]]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownCommand, args[0])
	}
	operands := args[1:]
	if len(operands) < cmd.args {
		return fmt.Errorf("%w: usage: %s", ErrUsage, cmd.usage)
	}

	if !cmd.public {
		if a.cfg.Username == "" || a.cfg.Password == "" {
			return ErrNoCredentials
		}
		if _, err := a.api.Login(ctx, a.cfg.Username, a.cfg.Password); err != nil {
			return fmt.Errorf("login: %w", err)
		}
		defer func() {
			if err := a.api.Logout(ctx); err != nil {
				a.logger.Warn().Err(err).Msg("logout failed")
			}
		}()
	}

	result, err := cmd.run(ctx, a, operands)
	if err != nil {
		return err
	}
	if result == nil {
		return nil
	}
	return a.print(result)
}

func (a *App) upload(ctx context.Context, args []string) (any, error) {
	var clientID *int64
	if len(args) > 1 {
		id, err := parseID(args[1])
		if err != nil {
			return nil, err
		}
		clientID = &id
	}

	f, err := os.Open(args[0])
	if err != nil {
		return nil, fmt.Errorf("open upload: %w", err)
	}
	defer f.Close()

	return a.api.UploadDocument(ctx, filepath.Base(args[0]), f, clientID)
}

// download saves the document into the given directory under its original
// name.
func (a *App) download(ctx context.Context, args []string) (any, error) {
	id, err := parseID(args[0])
	if err != nil {
		return nil, err
	}
	dir := "."
	if len(args) > 1 {
		dir = args[1]
	}

	tmp, err := os.CreateTemp(dir, ".crm-download-*")
	if err != nil {
		return nil, fmt.Errorf("create download file: %w", err)
	}
	defer os.Remove(tmp.Name())

	name, err := a.api.DownloadDocument(ctx, id, tmp)
	if closeErr := tmp.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, err
	}

	name = filepath.Base(name)
	if name == "." || name == string(filepath.Separator) || name == "" {
		name = "document-" + args[0]
	}
	target := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return nil, fmt.Errorf("save download: %w", err)
	}

	a.logger.Info().Str("path", target).Msg("document saved")
	return nil, nil
}

func (a *App) print(v any) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// Usage lists the available commands.
func Usage() string {
	lines := make([]string, 0, len(commands))
	for _, cmd := range commands {
		lines = append(lines, "  "+cmd.usage)
	}
	sort.Strings(lines)
	return "commands:\n" + strings.Join(lines, "\n")
}

func parseID(raw string) (int64, error) {
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", ErrUsage, raw)
	}
	return id, nil
}
