// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseWriter_FirstStatusWins(t *testing.T) {
	rec := httptest.NewRecorder()
	w := newResponseWriter(rec)

	w.WriteHeader(http.StatusCreated)
	w.WriteHeader(http.StatusInternalServerError)
	w.Write([]byte("abc"))
	w.Write([]byte("de"))

	assert.Equal(t, http.StatusCreated, w.status)
	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 5, w.size)
}

func TestNewResponseWriter_ReusesWrapper(t *testing.T) {
	w := newResponseWriter(httptest.NewRecorder())

	assert.Same(t, w, newResponseWriter(w))
	assert.Equal(t, http.StatusOK, w.status)
}
