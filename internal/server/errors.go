package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/lead-scraper/internal/store"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var validationErr *ErrValidation
	var fieldErrs validator.ValidationErrors
	var writeErr *store.WriteError
	var lockErr *store.LockError

	switch {
	case errors.As(err, &validationErr), errors.As(err, &fieldErrs):
		return http.StatusBadRequest
	case errors.As(err, &lockErr):
		return http.StatusServiceUnavailable
	case errors.As(err, &writeErr):
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// validationMessage flattens validator errors into one client message.
func validationMessage(err error) string {
	var validationErr *ErrValidation
	if errors.As(err, &validationErr) {
		return validationErr.Message
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err.Error()
	}
	first := fieldErrs[0]
	switch first.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", first.Field())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", first.Field(), first.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", first.Field(), first.Tag())
	}
}
