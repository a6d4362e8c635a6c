// Package service contains the business logic layer of the application.
//
// THE THREE-LAYER ARCHITECTURE:
//
//	Handler (HTTP layer)     → parses requests, writes responses
//	Service (Business layer) → validates, applies defaults, orchestrates
//	Repository (Data layer)  → reads/writes the database
//
// Services accept plain Go values and return domain errors from apperror.
// They never see an *http.Request and never pick a status code; the handler
// maps apperror sentinels to HTTP (see handler/response.go).
//
// DEPENDENCY INJECTION:
// Every service takes repository INTERFACES, not *sqlite.DB, so the tests in
// this package run against small in-memory fakes.
package service

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/sakif/wellness-tracker/internal/apperror"
)

// Request payloads use pointer fields so "absent" is distinguishable from a
// zero value: {"duration": 0} is a valid zero-minute entry, while a missing
// duration is a validation error.

// NumericID is a user id in a request body. Browser clients keep the id in
// localStorage and send it back as a string, so both 7 and "7" decode.
type NumericID int64

func (n *NumericID) UnmarshalJSON(data []byte) error {
	raw := string(data)
	if raw == "null" {
		return nil
	}
	if unquoted, err := strconv.Unquote(raw); err == nil {
		raw = strings.TrimSpace(unquoted)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return invalidUserID()
	}
	*n = NumericID(id)
	return nil
}

func invalidUserID() error {
	return apperror.ValidationFailed("user_id", "user_id must be a positive integer")
}

// requireUserID checks the owner of a new record.
func requireUserID(id *NumericID) (int64, error) {
	if id == nil {
		return 0, apperror.Required("user_id")
	}
	if *id <= 0 {
		return 0, invalidUserID()
	}
	return int64(*id), nil
}

// requireText returns the value of a mandatory string field.
// Blank strings count as missing.
func requireText(field string, v *string) (string, error) {
	if v == nil || strings.TrimSpace(*v) == "" {
		return "", apperror.Required(field)
	}
	return *v, nil
}

// textOr returns *v, or def when v is absent or blank.
func textOr(v *string, def string) string {
	if v == nil || strings.TrimSpace(*v) == "" {
		return def
	}
	return *v
}

func requireInt(field string, v *int) (int, error) {
	if v == nil {
		return 0, apperror.Required(field)
	}
	if *v < 0 {
		return 0, apperror.ValidationFailed(field, fmt.Sprintf("%s must not be negative", field))
	}
	return *v, nil
}

func requireFloat(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, apperror.Required(field)
	}
	if *v < 0 {
		return 0, apperror.ValidationFailed(field, fmt.Sprintf("%s must not be negative", field))
	}
	return *v, nil
}
