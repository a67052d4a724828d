// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-mini-crm/models"
)

func mapHTTPError(resp *resty.Response) error {
	return mapStatus(resp.StatusCode(), resp.Body())
}

// mapStatus turns a non-2xx answer into a sentinel wrapped with the
// server's notice.
func mapStatus(status int, body []byte) error {
	if status >= http.StatusOK && status < http.StatusMultipleChoices {
		return nil
	}

	notice := strings.TrimSpace(string(body))
	var errorResponse models.ErrorResponse
	if err := json.Unmarshal(body, &errorResponse); err == nil && errorResponse.Error != "" {
		notice = errorResponse.Error
	}

	switch status {
	case http.StatusBadRequest:
		return fmt.Errorf("%w: %s", ErrBadRequest, notice)
	case http.StatusUnauthorized:
		return fmt.Errorf("%w: %s", ErrUnauthorized, notice)
	case http.StatusForbidden:
		return fmt.Errorf("%w: %s", ErrForbidden, notice)
	case http.StatusNotFound:
		return fmt.Errorf("%w: %s", ErrNotFound, notice)
	case http.StatusConflict:
		return fmt.Errorf("%w: %s", ErrConflict, notice)
	case http.StatusRequestEntityTooLarge:
		return fmt.Errorf("%w: %s", ErrTooLarge, notice)
	case http.StatusInternalServerError:
		return fmt.Errorf("%w: %s", ErrInternalServerError, notice)
	default:
		if notice == "" {
			notice = http.StatusText(status)
		}
		return fmt.Errorf("http %d: %s", status, notice)
	}
}
