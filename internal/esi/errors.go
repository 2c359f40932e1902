package esi

import (
	"errors"
	"fmt"
	"net/http"
)

// StatusError is returned for any non-2xx ESI response.
type StatusError struct {
	StatusCode int
	Method     string
	Path       string
	Body       string
}

func (e *StatusError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("ESI %d: %s %s", e.StatusCode, e.Method, e.Path)
	}
	return fmt.Sprintf("ESI %d: %s %s: %s", e.StatusCode, e.Method, e.Path, e.Body)
}

// IsNotFound reports whether err is an ESI 404.
func IsNotFound(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.StatusCode == http.StatusNotFound
}
