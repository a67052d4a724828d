// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package policy

import (
	"strings"
	"time"

	"github.com/MKhiriev/go-mini-crm/models"
)

// LikeEscape is the escape character used in the patterns built by SearchPattern.
const LikeEscape = `\`

// ClientSearchColumns are matched by client search, OR-combined.
var ClientSearchColumns = []string{"name", "email", "phone", "commercial", "status"}

var likeReplacer = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// SearchPattern turns a free-text query into a LIKE pattern matching it as a
// substring. Case folding is left to the database. LIKE wildcards typed by the user match literally.
// An empty or blank query yields an empty pattern, meaning no search.
func SearchPattern(query string) string {
	query = strings.TrimSpace(query)
	if query == "" {
		return ""
	}

	return "%" + likeReplacer.Replace(query) + "%"
}

// DateFilter returns the appointment date filter for raw. Unparseable or empty
// input yields "" and false, which means the full listing.
func DateFilter(raw string) (string, bool) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", false
	}

	day, err := time.Parse(models.DateLayout, raw)
	if err != nil {
		return "", false
	}

	return day.Format(models.DateLayout), true
}
