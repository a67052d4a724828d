// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"fmt"

	sq "github.com/Masterminds/squirrel"

	"github.com/MKhiriev/go-mini-crm/internal/policy"
	"github.com/MKhiriev/go-mini-crm/models"
)

var (
	userColumns        = []string{"id", "username", "password_hash", "role"}
	clientColumns      = []string{"id", "name", "email", "phone", "address", "notes", "commercial", "status", "user_id"}
	appointmentColumns = []string{"id", "title", "client_name", "scheduled_date", "scheduled_time", "notes", "client_id", "user_id"}
	documentColumns    = []string{"id", "filename", "original_name", "uploaded_at", "client_id", "user_id"}
	revenueColumns     = []string{"id", "commercial", "amount", "entry_date"}
	messageColumns     = []string{"m.id", "m.user_id", "u.username", "m.content", "m.created_at", "m.filename", "m.original_name"}
)

// reassignedTables lists the tables whose rows follow their owner when an
// agent is deleted, in the order they are updated.
var reassignedTables = []string{"clients", "appointments", "documents", "messages"}

// ownedBy restricts a select to the rows of the filter's account.
func ownedBy(qb sq.SelectBuilder, column string, owner models.OwnerFilter) sq.SelectBuilder {
	if !owner.Restricted {
		return qb
	}
	return qb.Where(sq.Eq{column: owner.UserID})
}

// searchClients matches the pattern against every searchable client column.
// Both sides are folded by the database so they agree on non-ASCII letters.
func (db *DB) searchClients(pattern string) sq.Or {
	lower := db.lowerFunc()
	or := make(sq.Or, 0, len(policy.ClientSearchColumns))
	for _, column := range policy.ClientSearchColumns {
		or = append(or, sq.Expr(fmt.Sprintf("%[1]s(%[2]s) LIKE %[1]s(?) ESCAPE '%[3]s'", lower, column, policy.LikeEscape), pattern))
	}
	return or
}

func (db *DB) buildListClientsQuery(filter models.ClientFilter) (string, []any, error) {
	qb := db.builder().
		Select(clientColumns...).
		From("clients")

	qb = ownedBy(qb, "user_id", filter.Owner)
	if filter.Pattern != "" {
		qb = qb.Where(db.searchClients(filter.Pattern))
	}

	return qb.OrderBy("name ASC", "id ASC").ToSql()
}

func (db *DB) buildListAppointmentsQuery(filter models.AppointmentFilter) (string, []any, error) {
	qb := db.builder().
		Select(appointmentColumns...).
		From("appointments")

	qb = ownedBy(qb, "user_id", filter.Owner)
	if filter.Date != "" {
		qb = qb.Where(sq.Eq{"scheduled_date": filter.Date})
	}
	if filter.ClientID != nil {
		qb = qb.Where(sq.Eq{"client_id": *filter.ClientID})
	}

	qb = qb.OrderBy("scheduled_date ASC", "scheduled_time ASC", "id ASC")
	if filter.Limit > 0 {
		qb = qb.Limit(filter.Limit)
	}

	return qb.ToSql()
}

func (db *DB) buildListDocumentsQuery(filter models.DocumentFilter) (string, []any, error) {
	qb := db.builder().
		Select(documentColumns...).
		From("documents")

	qb = ownedBy(qb, "user_id", filter.Owner)
	if filter.ClientID != nil {
		qb = qb.Where(sq.Eq{"client_id": *filter.ClientID})
	}

	qb = qb.OrderBy("uploaded_at DESC", "id DESC")
	if filter.Limit > 0 {
		qb = qb.Limit(filter.Limit)
	}

	return qb.ToSql()
}

// revenue is attributed by label, so agents are scoped by username
func revenueScope(qb sq.SelectBuilder, owner models.OwnerFilter) sq.SelectBuilder {
	if !owner.Restricted {
		return qb
	}
	return qb.Where(sq.Eq{"commercial": owner.Username})
}

func (db *DB) buildListRevenueQuery(owner models.OwnerFilter) (string, []any, error) {
	qb := db.builder().
		Select(revenueColumns...).
		From("revenues")

	return revenueScope(qb, owner).OrderBy("entry_date DESC", "id DESC").ToSql()
}

func (db *DB) buildSumRevenueQuery(owner models.OwnerFilter) (string, []any, error) {
	qb := db.builder().
		Select("COALESCE(SUM(amount), 0)").
		From("revenues")

	return revenueScope(qb, owner).ToSql()
}

func (db *DB) buildCountQuery(table string, owner models.OwnerFilter) (string, []any, error) {
	qb := db.builder().
		Select("COUNT(*)").
		From(table)

	return ownedBy(qb, "user_id", owner).ToSql()
}

func (db *DB) buildListMessagesQuery() (string, []any, error) {
	return db.builder().
		Select(messageColumns...).
		From("messages m").
		Join("users u ON u.id = m.user_id").
		OrderBy("m.created_at ASC", "m.id ASC").
		ToSql()
}

func (db *DB) buildGetMessageQuery(id int64) (string, []any, error) {
	return db.builder().
		Select(messageColumns...).
		From("messages m").
		Join("users u ON u.id = m.user_id").
		Where(sq.Eq{"m.id": id}).
		ToSql()
}

func (db *DB) buildReassignQuery(table string, agentID, fallbackID int64) (string, []any, error) {
	return db.builder().
		Update(table).
		Set("user_id", fallbackID).
		Where(sq.Eq{"user_id": agentID}).
		ToSql()
}

func (db *DB) buildDeleteAgentQuery(agentID int64) (string, []any, error) {
	return db.builder().
		Delete("users").
		Where(sq.Eq{"id": agentID, "role": string(models.RoleAgent)}).
		ToSql()
}
