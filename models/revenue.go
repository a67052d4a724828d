// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package models

// Revenue is an append-only revenue entry. Commercial holds the username of
// the account that recorded it and is not a link to that account.
type Revenue struct {
	ID         int64   `json:"id"`
	Commercial string  `json:"commercial"`
	Amount     float64 `json:"amount"`
	Date       string  `json:"date"`
}

// TableName returns the name of the database table
// associated with the Revenue model.
func (r Revenue) TableName() string {
	return "revenues"
}

// RevenueInput carries a new revenue entry. Amount is signed.
type RevenueInput struct {
	Amount *float64 `json:"amount" validate:"required"`
	Date   string   `json:"date" validate:"required,datetime=2006-01-02"`
}

// RevenueSummary is the revenue visible to an actor with its total.
type RevenueSummary struct {
	Entries []Revenue `json:"entries"`
	Total   float64   `json:"total"`
}
