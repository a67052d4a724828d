// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mini-crm/internal/logger"
	"github.com/MKhiriev/go-mini-crm/models"
)

type userRepository struct {
	*DB
	logger *logger.Logger
}

func NewUserRepository(db *DB, logger *logger.Logger) UserRepository {
	logger.Debug().Msg("UserRepository created")
	return &userRepository{
		DB:     db,
		logger: logger,
	}
}

// CreateUser inserts a new account and returns it with the assigned ID.
//
// Error handling:
//   - unique violation on username → [ErrUsernameTaken].
//   - any other driver-level error → wrapped store sentinel.
func (r *userRepository) CreateUser(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Insert("users").
		Columns("username", "password_hash", "role").
		Values(user.Username, user.PasswordHash, string(user.Role)).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&user.ID); err != nil {
		log.Err(err).Str("func", "*userRepository.CreateUser").Str("username", user.Username).Msg("error inserting user")
		return models.User{}, usernameError(r.classify(err))
	}

	return user, nil
}

func (r *userRepository) FindUserByUsername(ctx context.Context, username string) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByUsername", sq.Eq{"username": username})
}

func (r *userRepository) FindUserByID(ctx context.Context, id int64) (models.User, error) {
	return r.findUser(ctx, "*userRepository.FindUserByID", sq.Eq{"id": id})
}

// FirstAdministrator returns the administrator with the lowest ID. Records
// of deleted agents are handed over to this account.
func (r *userRepository) FirstAdministrator(ctx context.Context) (models.User, error) {
	user, err := r.findUser(ctx, "*userRepository.FirstAdministrator", sq.Eq{"role": string(models.RoleAdministrator)})
	if errors.Is(err, ErrRecordNotFound) {
		return models.User{}, ErrNoAdministrator
	}
	return user, err
}

func (r *userRepository) findUser(ctx context.Context, funcName string, where sq.Eq) (models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(userColumns...).
		From("users").
		Where(where).
		OrderBy("id ASC").
		Limit(1).
		ToSql()
	if err != nil {
		return models.User{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	var user models.User
	err = r.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", funcName).Msg("error scanning user")
		return models.User{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return user, nil
}

func (r *userRepository) ListUsers(ctx context.Context) ([]models.User, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(userColumns...).
		From("users").
		OrderBy("id ASC").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	users := make([]models.User, 0, 8)
	for rows.Next() {
		var user models.User
		if err := rows.Scan(&user.ID, &user.Username, &user.PasswordHash, &user.Role); err != nil {
			log.Err(err).Str("func", "*userRepository.ListUsers").Msg("failed to scan user row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*userRepository.ListUsers").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return users, nil
}

// UpdateUser stores a new username and password hash for user.ID. The role
// is never changed.
func (r *userRepository) UpdateUser(ctx context.Context, user models.User) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Update("users").
		Set("username", user.Username).
		Set("password_hash", user.PasswordHash).
		Where(sq.Eq{"id": user.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*userRepository.UpdateUser").Int64("user_id", user.ID).Msg("error updating user")
		return usernameError(r.classify(err))
	}

	return expectAffected(result)
}

// DeleteAgentReassigningRecords hands every record owned by the agent over to
// the fallback account and deletes the agent. Nothing changes unless every
// step succeeds.
func (r *userRepository) DeleteAgentReassigningRecords(ctx context.Context, agentID, fallbackID int64) (models.ReassignmentReport, error) {
	log := logger.FromContext(ctx).With().
		Str("func", "*userRepository.DeleteAgentReassigningRecords").
		Int64("agent_id", agentID).
		Int64("fallback_id", fallbackID).
		Logger()

	report := models.ReassignmentReport{DeletedUserID: agentID, FallbackUserID: fallbackID}

	tx, err := r.BeginTx(ctx, nil)
	if err != nil {
		log.Err(err).Msg("failed to begin transaction")
		return models.ReassignmentReport{}, fmt.Errorf("%w: %w", ErrBeginningTransaction, err)
	}
	defer rollback(ctx, tx, "*userRepository.DeleteAgentReassigningRecords")

	counters := map[string]*int64{
		"clients":      &report.Clients,
		"appointments": &report.Appointments,
		"documents":    &report.Documents,
		"messages":     &report.Messages,
	}

	for _, table := range reassignedTables {
		query, args, err := r.buildReassignQuery(table, agentID, fallbackID)
		if err != nil {
			return models.ReassignmentReport{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
		}

		result, err := tx.ExecContext(ctx, query, args...)
		if err != nil {
			log.Err(err).Str("table", table).Msg("failed to reassign records")
			return models.ReassignmentReport{}, r.classify(err)
		}

		moved, err := result.RowsAffected()
		if err != nil {
			return models.ReassignmentReport{}, fmt.Errorf("%w: %w", ErrExecutingStatement, err)
		}
		*counters[table] = moved
	}

	query, args, err := r.buildDeleteAgentQuery(agentID)
	if err != nil {
		return models.ReassignmentReport{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Msg("failed to delete agent")
		return models.ReassignmentReport{}, r.classify(err)
	}
	if err := expectAffected(result); err != nil {
		return models.ReassignmentReport{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Err(err).Msg("failed to commit transaction")
		return models.ReassignmentReport{}, fmt.Errorf("%w: %w", ErrCommitingTransaction, err)
	}

	log.Info().
		Int64("clients", report.Clients).
		Int64("appointments", report.Appointments).
		Int64("documents", report.Documents).
		Int64("messages", report.Messages).
		Msg("agent deleted, records reassigned")

	return report, nil
}

// usernameError turns a duplicate record into [ErrUsernameTaken], the only
// unique column of users besides the key.
func usernameError(err error) error {
	if errors.Is(err, ErrDuplicateRecord) {
		return fmt.Errorf("%w: %w", ErrUsernameTaken, err)
	}
	return err
}

// expectAffected reports [ErrRecordNotFound] when a statement touched no row.
func expectAffected(result sql.Result) error {
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, err)
	}
	if affected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
