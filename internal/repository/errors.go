package repository

import "errors"

// ErrNotFound is wrapped by reader queries when no row matches.
var ErrNotFound = errors.New("not found")

// ErrorKind classifies a DatabaseError so callers can branch on the failure
// tier programmatically instead of matching message strings.
type ErrorKind int

const (
	// ErrorKindConnect means connection acquisition itself failed; the
	// wrapped operation was never invoked.
	ErrorKindConnect ErrorKind = iota

	// ErrorKindOperation means a statement failed after a connection was
	// successfully acquired (query construction, constraint violation, I/O).
	ErrorKindOperation

	// ErrorKindNotFound means a required resource (the bundled init script)
	// is missing.
	ErrorKindNotFound
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindConnect:
		return "connect"
	case ErrorKindNotFound:
		return "not_found"
	default:
		return "operation"
	}
}

// DatabaseError is the single error type surfaced by the project database.
// Message carries operation-specific context; Err is the underlying cause
// when one exists.
type DatabaseError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *DatabaseError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *DatabaseError) Unwrap() error {
	return e.Err
}

func connectError(cause error) *DatabaseError {
	return &DatabaseError{Kind: ErrorKindConnect, Message: "failed to connect to the database", Err: cause}
}

func operationError(message string, cause error) *DatabaseError {
	return &DatabaseError{Kind: ErrorKindOperation, Message: message, Err: cause}
}

func notFoundError(message string, cause error) *DatabaseError {
	return &DatabaseError{Kind: ErrorKindNotFound, Message: message, Err: cause}
}
