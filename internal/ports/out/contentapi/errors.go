package contentapi

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	// ErrTransport indicates the request never produced an API response
	// (connection refused, DNS failure, timeout, cancelled context).
	ErrTransport = errors.New("content api unreachable")

	// ErrStore indicates the API answered with a server-side failure.
	ErrStore = errors.New("content store failure")

	// ErrMethodNotAllowed indicates the operation is not supported for the kind.
	ErrMethodNotAllowed = errors.New("method not allowed")

	// ErrNotFound indicates the record to update does not exist.
	ErrNotFound = errors.New("content record not found")

	// ErrUnauthorized indicates the admin secret was missing or wrong.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrRejected covers any other client error (bad payload, idempotency conflict).
	ErrRejected = errors.New("request rejected")
)

// Error describes a failed Content API call. Unwrap yields one of the sentinel errors above.
type Error struct {
	Op      string
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Status == 0:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %d %s: %s", e.Op, e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("%s: status %d", e.Op, e.Status)
}

func (e *Error) Unwrap() error { return e.Err }

// ClassifyStatus maps an HTTP status to the sentinel error for it.
func ClassifyStatus(status int) error {
	switch {
	case status == http.StatusMethodNotAllowed:
		return ErrMethodNotAllowed
	case status == http.StatusNotFound:
		return ErrNotFound
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return ErrUnauthorized
	case status >= 500:
		return ErrStore
	}
	return ErrRejected
}
