package applications

import "errors"

var (
	// ErrInvalidInput wraps a *ValidationError.
	ErrInvalidInput = errors.New("invalid application")
	// ErrPersist means the decision was made but the record was not stored.
	ErrPersist = errors.New("record not saved")
	// ErrCorruptStore means the record store exists but cannot be parsed.
	ErrCorruptStore = errors.New("record store is corrupt")
	// ErrNotConfigured is returned when an optional collaborator is absent.
	ErrNotConfigured = errors.New("not configured")
)

// ValidationError lists the offending fields and why.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	return ErrInvalidInput.Error()
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }
