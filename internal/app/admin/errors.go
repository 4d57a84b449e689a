package admin

import (
	"errors"
	"sort"
	"strings"
)

var (
	ErrNotAuthenticated = errors.New("admin: not authenticated")
	ErrInvalidSecret    = errors.New("admin: invalid secret")
	ErrEditUnsupported  = errors.New("admin: kind cannot be edited")
	ErrNoForm           = errors.New("admin: no form open")
	ErrUnknownField     = errors.New("admin: unknown form field")

	// ErrSaveFailed wraps a failed create, update or delete. The form and lists are left as they were.
	ErrSaveFailed = errors.New("admin: save failed")
)

// ValidationError lists form fields that fail their native constraints
// (required, email shape). Nothing is sent while it is returned.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for name := range e.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+e.Fields[name])
	}
	return "admin: invalid form: " + strings.Join(parts, ", ")
}
