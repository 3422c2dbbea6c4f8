package repository

import (
	"errors"
	"fmt"
	"net/http"
)

// Error represents a hosting API failure carrying the upstream status code
type Error struct {
	StatusCode int
	Message    string
	Err        error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("hosting API error %d: %s", e.StatusCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("hosting API error %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("hosting API error %d: %s", e.StatusCode, http.StatusText(e.StatusCode))
}

func (e *Error) Unwrap() error {
	return e.Err
}

// AsError returns the upstream error wrapped by err, if any
func AsError(err error) (*Error, bool) {
	var upstream *Error
	if errors.As(err, &upstream) {
		return upstream, true
	}
	return nil, false
}
