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
	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/internal/validators"
	"github.com/MKhiriev/go-mini-crm/models"
)

type userService struct {
	userRepository store.UserRepository
	identities     *IdentityCache
	validator      validators.Validator

	logger *logger.Logger
}

func NewUserService(userRepository store.UserRepository, identities *IdentityCache, validator validators.Validator, logger *logger.Logger) UserService {
	return &userService{
		userRepository: userRepository,
		identities:     identities,
		validator:      validator,
		logger:         logger,
	}
}

func (u *userService) ListUsers(ctx context.Context, actor models.Actor) ([]models.User, error) {
	if !policy.CanAdminister(actor) {
		return nil, ErrAdministrationOnly
	}

	users, err := u.userRepository.ListUsers(ctx)
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.ListUsers").Msg("failed to list users")
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// CreateAgent registers a new agent account. Agents are the only role that
// can be created; administrators come from bootstrap.
func (u *userService) CreateAgent(ctx context.Context, actor models.Actor, input models.AgentInput) (models.User, error) {
	log := logger.FromContext(ctx)

	if !policy.CanAdminister(actor) {
		return models.User{}, ErrAdministrationOnly
	}
	if err := u.validator.Validate(ctx, input); err != nil {
		return models.User{}, validationError(err)
	}

	hash, err := utils.HashPassword(input.Password)
	if err != nil {
		return models.User{}, validationError(err)
	}

	user, err := u.userRepository.CreateUser(ctx, models.User{
		Username:     strings.TrimSpace(input.Username),
		PasswordHash: hash,
		Role:         models.RoleAgent,
	})
	if errors.Is(err, store.ErrUsernameTaken) {
		return models.User{}, ErrUsernameTaken
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.CreateAgent").Msg("failed to create agent")
		return models.User{}, fmt.Errorf("failed to create agent: %w", err)
	}

	log.Info().Int64("user_id", user.ID).Int64("by", actor.UserID).Msg("agent created")
	return user, nil
}

// EditAgent renames an agent and optionally resets its password.
func (u *userService) EditAgent(ctx context.Context, actor models.Actor, id int64, input models.AgentUpdate) (models.User, error) {
	log := logger.FromContext(ctx)

	if !policy.CanAdminister(actor) {
		return models.User{}, ErrAdministrationOnly
	}
	if err := u.validator.Validate(ctx, input); err != nil {
		return models.User{}, validationError(err)
	}

	user, err := u.findUser(ctx, id)
	if err != nil {
		return models.User{}, err
	}
	if user.IsAdministrator() {
		return models.User{}, ErrAdministratorNotEditable
	}

	user.Username = strings.TrimSpace(input.Username)
	// a blank password leaves the current one in place
	if strings.TrimSpace(input.Password) != "" {
		user.PasswordHash, err = utils.HashPassword(input.Password)
		if err != nil {
			return models.User{}, validationError(err)
		}
	}

	err = u.userRepository.UpdateUser(ctx, user)
	switch {
	case errors.Is(err, store.ErrUsernameTaken):
		return models.User{}, ErrUsernameTaken
	case errors.Is(err, store.ErrRecordNotFound):
		return models.User{}, ErrUserNotFound
	case err != nil:
		log.Err(err).Str("func", "*userService.EditAgent").Int64("user_id", id).Msg("failed to update agent")
		return models.User{}, fmt.Errorf("failed to update agent: %w", err)
	}

	u.identities.Remove(user.ID)
	log.Info().Int64("user_id", user.ID).Int64("by", actor.UserID).Msg("agent updated")
	return user, nil
}

// DeleteAgent removes an agent and hands its clients, appointments, documents
// and messages to the first administrator. Revenue entries keep their label.
func (u *userService) DeleteAgent(ctx context.Context, actor models.Actor, id int64) (models.ReassignmentReport, error) {
	log := logger.FromContext(ctx)

	if !policy.CanAdminister(actor) {
		return models.ReassignmentReport{}, ErrAdministrationOnly
	}

	user, err := u.findUser(ctx, id)
	if err != nil {
		return models.ReassignmentReport{}, err
	}
	if user.IsAdministrator() {
		return models.ReassignmentReport{}, ErrAdministratorNotDeletable
	}

	fallback, err := u.userRepository.FirstAdministrator(ctx)
	if errors.Is(err, store.ErrNoAdministrator) {
		return models.ReassignmentReport{}, ErrNoAdministrator
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.DeleteAgent").Msg("failed to find fallback administrator")
		return models.ReassignmentReport{}, fmt.Errorf("failed to find fallback administrator: %w", err)
	}

	report, err := u.userRepository.DeleteAgentReassigningRecords(ctx, user.ID, fallback.ID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.ReassignmentReport{}, ErrUserNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*userService.DeleteAgent").Int64("user_id", id).Msg("failed to delete agent")
		return models.ReassignmentReport{}, fmt.Errorf("failed to delete agent: %w", err)
	}

	u.identities.Remove(user.ID)
	return report, nil
}

func (u *userService) EnsureAdministrator(ctx context.Context, username, password string) (bool, error) {
	log := logger.FromContext(ctx)

	_, err := u.userRepository.FirstAdministrator(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, store.ErrNoAdministrator) {
		return false, fmt.Errorf("failed to look up administrator: %w", err)
	}

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return false, validationError(errors.New("bootstrap administrator credentials are empty"))
	}

	hash, err := utils.HashPassword(password)
	if err != nil {
		return false, validationError(err)
	}

	admin, err := u.userRepository.CreateUser(ctx, models.User{
		Username:     username,
		PasswordHash: hash,
		Role:         models.RoleAdministrator,
	})
	if errors.Is(err, store.ErrUsernameTaken) {
		return false, ErrUsernameTaken
	}
	if err != nil {
		return false, fmt.Errorf("failed to create administrator: %w", err)
	}

	log.Info().Int64("user_id", admin.ID).Str("username", admin.Username).Msg("bootstrap administrator created")
	return true, nil
}

func (u *userService) findUser(ctx context.Context, id int64) (models.User, error) {
	user, err := u.userRepository.FindUserByID(ctx, id)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.User{}, ErrUserNotFound
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*userService.findUser").Int64("user_id", id).Msg("failed to load user")
		return models.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
