// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"strings"
	"testing"

	"github.com/MKhiriev/go-mini-crm/internal/config"
	"github.com/MKhiriev/go-mini-crm/models"
	"github.com/stretchr/testify/require"
)

func TestBuildListClientsQuery(t *testing.T) {
	db := &DB{driver: config.DriverPostgres}

	tests := []struct {
		name       string
		filter     models.ClientFilter
		checkQuery func(t *testing.T, query string, args []any)
	}{
		{
			name:   "administrator without search sees everything",
			filter: models.ClientFilter{},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.NotContains(t, query, "WHERE")
				require.Contains(t, query, "ORDER BY name ASC, id ASC")
				require.Empty(t, args)
			},
		},
		{
			name:   "agent is scoped by user_id",
			filter: models.ClientFilter{Owner: models.OwnerFilter{Restricted: true, UserID: 5}},
			checkQuery: func(t *testing.T, query string, args []any) {
				require.Contains(t, query, "WHERE user_id = $1")
				require.Equal(t, []any{int64(5)}, args)
			},
		},
		{
			name: "search is OR-ed over every searchable column",
			filter: models.ClientFilter{
				Owner:   models.OwnerFilter{Restricted: true, UserID: 5},
				Pattern: "%dup%",
			},
			checkQuery: func(t *testing.T, query string, args []any) {
				for _, column := range []string{"name", "email", "phone", "commercial", "status"} {
					require.Contains(t, query, "LOWER("+column+") LIKE LOWER($")
				}
				require.Equal(t, 4, strings.Count(query, " OR "))
				require.Contains(t, query, `ESCAPE '\'`)
				// owner + five pattern arguments
				require.Len(t, args, 6)
				require.Equal(t, int64(5), args[0])
				require.Equal(t, "%dup%", args[1])
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			query, args, err := db.buildListClientsQuery(tt.filter)
			require.NoError(t, err)
			tt.checkQuery(t, query, args)
		})
	}
}

func TestBuildListClientsQuery_SQLiteFoldsWithUnicodeLower(t *testing.T) {
	db := &DB{driver: config.DriverSQLite}

	query, args, err := db.buildListClientsQuery(models.ClientFilter{Pattern: "%École%"})
	require.NoError(t, err)

	require.Contains(t, query, "crm_lower(name) LIKE crm_lower(?)")
	require.NotContains(t, query, "LOWER(")
	require.Equal(t, "%École%", args[0])
}

func TestBuildListAppointmentsQuery(t *testing.T) {
	db := &DB{driver: config.DriverSQLite}
	clientID := int64(9)

	query, args, err := db.buildListAppointmentsQuery(models.AppointmentFilter{
		Owner:    models.OwnerFilter{Restricted: true, UserID: 2},
		Date:     "2024-05-01",
		ClientID: &clientID,
		Limit:    5,
	})
	require.NoError(t, err)

	require.Contains(t, query, "user_id = ?")
	require.Contains(t, query, "scheduled_date = ?")
	require.Contains(t, query, "client_id = ?")
	require.Contains(t, query, "ORDER BY scheduled_date ASC, scheduled_time ASC, id ASC")
	require.Contains(t, query, "LIMIT 5")
	require.Equal(t, []any{int64(2), "2024-05-01", int64(9)}, args)
}

func TestBuildListRevenueQuery_ScopesByLabel(t *testing.T) {
	db := &DB{driver: config.DriverPostgres}

	query, args, err := db.buildListRevenueQuery(models.OwnerFilter{Restricted: true, UserID: 2, Username: "alice"})
	require.NoError(t, err)
	require.Contains(t, query, "WHERE commercial = $1")
	require.Contains(t, query, "ORDER BY entry_date DESC, id DESC")
	require.Equal(t, []any{"alice"}, args)

	query, args, err = db.buildSumRevenueQuery(models.OwnerFilter{})
	require.NoError(t, err)
	require.Contains(t, query, "COALESCE(SUM(amount), 0)")
	require.NotContains(t, query, "WHERE")
	require.Empty(t, args)
}

func TestBuildListMessagesQuery(t *testing.T) {
	db := &DB{driver: config.DriverPostgres}

	query, _, err := db.buildListMessagesQuery()
	require.NoError(t, err)
	require.Contains(t, query, "JOIN users u ON u.id = m.user_id")
	require.Contains(t, query, "ORDER BY m.created_at ASC, m.id ASC")
}
