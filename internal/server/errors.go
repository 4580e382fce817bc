// Package server provides the HTTP REST API for the channel dashboard.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/channel-dashboard/internal/ingestion"
	"github.com/jonathan/channel-dashboard/internal/session"
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
	var (
		validationErr  *ErrValidation
		requestErr     *session.RequestError
		loadErr        *ingestion.LoadError
		unsupportedErr *ingestion.UnsupportedFormatError
		emptyErr       *ingestion.EmptyWorkbookError
		tooLargeErr    *http.MaxBytesError
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &validationErr), errors.As(err, &requestErr):
		return http.StatusBadRequest
	case errors.As(err, &loadErr), errors.As(err, &unsupportedErr), errors.As(err, &emptyErr):
		return http.StatusBadRequest
	case errors.Is(err, session.ErrNoDataset):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
