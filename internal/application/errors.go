package application

import (
	"errors"
)

var (
	ErrUnauthenticated     = errors.New("unauthenticated")
	ErrValidationFailed    = errors.New("validation failed")
	ErrDuplicateIdentity   = errors.New("identity already exists")
	ErrInvalidCredentials  = errors.New("invalid credentials")
	ErrIdentityNotFound    = errors.New("identity not found")
	ErrProfileNotFound     = errors.New("profile not found")
	ErrMalformedKey        = errors.New("malformed owner key")
	ErrUpstreamNotFound    = errors.New("upstream resource not found")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// FieldError reports one invalid input field. It matches ErrValidationFailed
// under errors.Is.
type FieldError struct {
	Param string
	Msg   string
}

func (e *FieldError) Error() string {
	return e.Param + ": " + e.Msg
}

func (e *FieldError) Is(target error) bool {
	return target == ErrValidationFailed
}

func invalid(param, msg string) error {
	return &FieldError{Param: param, Msg: msg}
}
