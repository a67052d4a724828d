// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/internal/session"
	"github.com/MKhiriev/go-mini-crm/internal/store"
	"github.com/MKhiriev/go-mini-crm/internal/utils"
	"github.com/MKhiriev/go-mini-crm/internal/validators"
	"github.com/MKhiriev/go-mini-crm/models"
)

// authService is the concrete implementation of AuthService.
// It verifies bcrypt password hashes, issues HS256 JWTs and consults the
// session store so that logged out tokens stop working.
type authService struct {
	userRepository store.UserRepository
	sessions       session.Store
	identities     *IdentityCache
	validator      validators.Validator

	// tokenSignKey is the HMAC secret used to sign and verify JWT tokens.
	tokenSignKey string

	// tokenIssuer is the "iss" claim embedded in every issued JWT.
	tokenIssuer string

	tokenDuration time.Duration

	logger *logger.Logger
}

func NewAuthService(
	userRepository store.UserRepository,
	sessions session.Store,
	identities *IdentityCache,
	validator validators.Validator,
	cfg config.App,
	logger *logger.Logger,
) AuthService {
	return &authService{
		userRepository: userRepository,
		sessions:       sessions,
		identities:     identities,
		validator:      validator,
		tokenSignKey:   cfg.TokenSignKey,
		tokenIssuer:    cfg.TokenIssuer,
		tokenDuration:  cfg.TokenDuration,
		logger:         logger,
	}
}

// Authenticate returns the account matching username and password. Unknown
// usernames and wrong passwords are indistinguishable to the caller.
func (a *authService) Authenticate(ctx context.Context, username, password string) (models.User, error) {
	log := logger.FromContext(ctx)

	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return models.User{}, ErrInvalidCredentials
	}

	user, err := a.userRepository.FindUserByUsername(ctx, username)
	if errors.Is(err, store.ErrRecordNotFound) {
		log.Info().Str("username", username).Msg("login attempt for unknown username")
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		log.Err(err).Str("func", "*authService.Authenticate").Msg("user search by username failed")
		return models.User{}, fmt.Errorf("user search by username failed: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, password) {
		log.Info().Int64("user_id", user.ID).Msg("wrong password")
		return models.User{}, ErrInvalidCredentials
	}

	a.identities.Add(user)
	return user, nil
}

// CreateToken issues a signed JWT for the given user.
func (a *authService) CreateToken(ctx context.Context, user models.User) (models.Token, error) {
	token, err := utils.GenerateJWTToken(a.tokenIssuer, user.ID, a.tokenDuration, a.tokenSignKey)
	if err != nil {
		return models.Token{}, fmt.Errorf("%w: %w", ErrTokenCreationFailed, err)
	}

	return token, nil
}

// ParseToken validates a raw JWT string and rejects revoked tokens. Any
// validation failure is normalised to [ErrTokenIsExpiredOrInvalid].
func (a *authService) ParseToken(ctx context.Context, tokenString string) (models.Token, error) {
	token, err := utils.ValidateAndParseJWTToken(tokenString, a.tokenSignKey, a.tokenIssuer)
	if err != nil {
		return models.Token{}, ErrTokenIsExpiredOrInvalid
	}

	if token.ID != "" {
		revoked, err := a.sessions.IsRevoked(ctx, token.ID)
		if err != nil {
			logger.FromContext(ctx).Err(err).Str("func", "*authService.ParseToken").Msg("failed to check token revocation")
			return models.Token{}, fmt.Errorf("failed to check token revocation: %w", err)
		}
		if revoked {
			return models.Token{}, ErrTokenRevoked
		}
	}

	return token, nil
}

// ResolveActor loads the current identity of the token's account.
func (a *authService) ResolveActor(ctx context.Context, token models.Token) (models.Actor, error) {
	if user, ok := a.identities.Get(token.UserID); ok {
		return user.Actor(), nil
	}

	user, err := a.userRepository.FindUserByID(ctx, token.UserID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return models.Actor{}, ErrUnknownIdentity
	}
	if err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.ResolveActor").Int64("user_id", token.UserID).Msg("failed to load identity")
		return models.Actor{}, fmt.Errorf("failed to load identity: %w", err)
	}

	a.identities.Add(user)
	return user.Actor(), nil
}

// Logout revokes the token until it would have expired.
func (a *authService) Logout(ctx context.Context, token models.Token) error {
	if token.ID == "" {
		return nil
	}

	if err := a.sessions.Revoke(ctx, token.ID, token.ExpiresAt); err != nil {
		logger.FromContext(ctx).Err(err).Str("func", "*authService.Logout").Int64("user_id", token.UserID).Msg("failed to revoke token")
		return fmt.Errorf("failed to revoke token: %w", err)
	}

	return nil
}

// ChangePassword rotates the actor's own password after checking the
// current one.
func (a *authService) ChangePassword(ctx context.Context, actor models.Actor, change models.PasswordChange) error {
	log := logger.FromContext(ctx)

	if err := a.validator.Validate(ctx, change); err != nil {
		return validationError(err)
	}

	user, err := a.userRepository.FindUserByID(ctx, actor.UserID)
	if errors.Is(err, store.ErrRecordNotFound) {
		return ErrUnknownIdentity
	}
	if err != nil {
		return fmt.Errorf("failed to load identity: %w", err)
	}

	if !utils.CheckPassword(user.PasswordHash, change.CurrentPassword) {
		return ErrWrongPassword
	}

	user.PasswordHash, err = utils.HashPassword(change.NewPassword)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := a.userRepository.UpdateUser(ctx, user); err != nil {
		log.Err(err).Str("func", "*authService.ChangePassword").Int64("user_id", user.ID).Msg("failed to store new password")
		return fmt.Errorf("failed to store new password: %w", err)
	}

	a.identities.Remove(user.ID)
	log.Info().Int64("user_id", user.ID).Msg("password changed")
	return nil
}
