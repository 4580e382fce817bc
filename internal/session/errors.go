// Package session holds the dataset currently loaded into the dashboard and
// computes reports against it.
package session

import (
	"errors"
	"fmt"
)

// ErrNoDataset is returned when a report is requested before any upload.
var ErrNoDataset = errors.New("no dataset loaded")

// RequestError represents an invalid report or options request.
type RequestError struct {
	Message string
	Cause   error
}

func (e *RequestError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid request: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("invalid request: %s", e.Message)
}

func (e *RequestError) Unwrap() error {
	return e.Cause
}
