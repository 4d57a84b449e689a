package contentrepo

import "errors"

// ErrNotFound indicates the record to update does not exist.
var ErrNotFound = errors.New("content record not found")
