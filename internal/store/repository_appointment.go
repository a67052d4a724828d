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

type appointmentRepository struct {
	*DB
	logger *logger.Logger
}

func NewAppointmentRepository(db *DB, logger *logger.Logger) AppointmentRepository {
	logger.Debug().Msg("AppointmentRepository created")
	return &appointmentRepository{
		DB:     db,
		logger: logger,
	}
}

func (r *appointmentRepository) CreateAppointment(ctx context.Context, appointment models.Appointment) (models.Appointment, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Insert("appointments").
		Columns("title", "client_name", "scheduled_date", "scheduled_time", "notes", "client_id", "user_id").
		Values(
			appointment.Title,
			appointment.ClientName,
			appointment.Date,
			appointment.Time,
			appointment.Notes,
			nullInt64(appointment.ClientID),
			appointment.UserID,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	if err := r.QueryRowContext(ctx, query, args...).Scan(&appointment.ID); err != nil {
		log.Err(err).Str("func", "*appointmentRepository.CreateAppointment").Int64("user_id", appointment.UserID).Msg("error inserting appointment")
		return models.Appointment{}, r.classify(err)
	}

	return appointment, nil
}

func (r *appointmentRepository) GetAppointment(ctx context.Context, id int64) (models.Appointment, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Select(appointmentColumns...).
		From("appointments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	appointment, err := scanAppointment(r.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Appointment{}, ErrRecordNotFound
	}
	if err != nil {
		log.Err(err).Str("func", "*appointmentRepository.GetAppointment").Int64("appointment_id", id).Msg("error scanning appointment")
		return models.Appointment{}, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	return appointment, nil
}

func (r *appointmentRepository) UpdateAppointment(ctx context.Context, appointment models.Appointment) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Update("appointments").
		SetMap(map[string]any{
			"title":          appointment.Title,
			"client_name":    appointment.ClientName,
			"scheduled_date": appointment.Date,
			"scheduled_time": appointment.Time,
			"notes":          appointment.Notes,
			"client_id":      nullInt64(appointment.ClientID),
		}).
		Where(sq.Eq{"id": appointment.ID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*appointmentRepository.UpdateAppointment").Int64("appointment_id", appointment.ID).Msg("error updating appointment")
		return r.classify(err)
	}

	return expectAffected(result)
}

func (r *appointmentRepository) DeleteAppointment(ctx context.Context, id int64) error {
	log := logger.FromContext(ctx)

	query, args, err := r.builder().
		Delete("appointments").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	result, err := r.ExecContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*appointmentRepository.DeleteAppointment").Int64("appointment_id", id).Msg("error deleting appointment")
		return r.classify(err)
	}

	return expectAffected(result)
}

func (r *appointmentRepository) ListAppointments(ctx context.Context, filter models.AppointmentFilter) ([]models.Appointment, error) {
	log := logger.FromContext(ctx)

	query, args, err := r.buildListAppointmentsQuery(filter)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, err)
	}

	rows, err := r.QueryContext(ctx, query, args...)
	if err != nil {
		log.Err(err).Str("func", "*appointmentRepository.ListAppointments").Str("date", filter.Date).Msg("failed to execute query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}
	defer rows.Close()

	appointments := make([]models.Appointment, 0, 50)
	for rows.Next() {
		appointment, err := scanAppointment(rows)
		if err != nil {
			log.Err(err).Str("func", "*appointmentRepository.ListAppointments").Msg("failed to scan appointment row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, err)
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		log.Err(err).Str("func", "*appointmentRepository.ListAppointments").Msg("error occurred during rows iteration")
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, err)
	}

	return appointments, nil
}

func (r *appointmentRepository) CountAppointments(ctx context.Context, owner models.OwnerFilter) (int64, error) {
	return r.count(ctx, "appointments", owner)
}

func scanAppointment(row rowScanner) (models.Appointment, error) {
	var (
		appointment models.Appointment
		clientID    sql.NullInt64
	)
	err := row.Scan(
		&appointment.ID,
		&appointment.Title,
		&appointment.ClientName,
		&appointment.Date,
		&appointment.Time,
		&appointment.Notes,
		&clientID,
		&appointment.UserID,
	)
	appointment.ClientID = int64Ptr(clientID)
	return appointment, err
}
