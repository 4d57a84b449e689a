package content

// Error is an application-layer error that can be mapped to an HTTP response.
type Error struct {
	Status  int
	Code    string
	Message string
	Details map[string]any

	// Err is the underlying cause, if any. It is logged, never returned to callers.
	Err error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Message != "" {
		return e.Message
	}
	return e.Code
}

func (e *Error) Unwrap() error { return e.Err }

func storeError(message string, err error) *Error {
	return &Error{Status: 500, Code: "STORE_ERROR", Message: message, Err: err}
}

func notFound(kind string, id string, err error) *Error {
	return &Error{
		Status:  404,
		Code:    "NOT_FOUND",
		Message: kind + " not found",
		Details: map[string]any{"id": id},
		Err:     err,
	}
}

func missingID() *Error {
	return &Error{
		Status:  400,
		Code:    "BAD_REQUEST",
		Message: "missing id",
		Details: map[string]any{"id": "required"},
	}
}
