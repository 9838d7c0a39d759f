package services

import (
	"errors"
	"fmt"
)

// Service-layer error taxonomy. Handlers map these onto HTTP statuses:
// ValidationError -> 400, ErrInvalidCredentials -> 401,
// ErrDuplicateEmail -> 409, ErrNotFound -> 404, llm.UpstreamError -> the
// upstream status, anything else -> 500.
var (
	ErrNotFound = errors.New("not found")
	// ErrInvalidCredentials is deliberately generic: login never reveals
	// whether the email or the password was wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrDuplicateEmail     = errors.New("an account with this email already exists")
)

type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func invalid(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
