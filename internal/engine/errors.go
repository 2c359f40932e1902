package engine

import (
	"errors"
	"fmt"
)

// ErrTooManyPages is wrapped in a RemoteError when an order book does not end
// within the configured page cap.
var ErrTooManyPages = errors.New("order book exceeds page limit")

// NotFoundError means a name did not resolve to any id of the wanted kind.
// Name is exactly what the user typed.
type NotFoundError struct {
	Kind string // "System" or "Item"
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Kind, e.Name)
}

// RemoteError wraps any ESI failure that does not simply mean "no data".
type RemoteError struct {
	Op  string
	Err error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *RemoteError) Unwrap() error { return e.Err }

func remoteErr(op string, err error) error {
	var re *RemoteError
	if errors.As(err, &re) {
		return err
	}
	return &RemoteError{Op: op, Err: err}
}

// UserMessage renders err as plain text for a user. Only not-found errors carry
// details; everything else collapses to a generic remote failure.
func UserMessage(err error) string {
	var nf *NotFoundError
	if errors.As(err, &nf) {
		return nf.Error()
	}
	return "ESI error: remote service error"
}
