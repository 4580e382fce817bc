package config

import "fmt"

// ValidationError reports a configuration value that cannot be used.
type ValidationError struct {
	Message string
	Cause   error
}

func (e *ValidationError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("config error: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("config error: %s", e.Message)
}

func (e *ValidationError) Unwrap() error {
	return e.Cause
}
