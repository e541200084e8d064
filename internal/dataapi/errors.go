package dataapi

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned when a record looked up by id is not in the
// loaded collection.
var ErrNotFound = errors.New("dataapi: not found")

// Error describes a failed data API call. StatusCode is zero for transport
// failures, in which case Err holds the cause.
type Error struct {
	Op         string
	StatusCode int
	Body       string
	RequestID  string
	Err        error
}

func (e *Error) Error() string {
	switch {
	case e.StatusCode != 0 && e.Err != nil:
		return fmt.Sprintf("%s: status %d: %v", e.Op, e.StatusCode, e.Err)
	case e.StatusCode != 0:
		return fmt.Sprintf("%s: data api returned status %d: %s", e.Op, e.StatusCode, e.Body)
	default:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	}
}

func (e *Error) Unwrap() error { return e.Err }

// Transport reports whether the call failed before a response arrived.
func (e *Error) Transport() bool { return e.StatusCode == 0 }
