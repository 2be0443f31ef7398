package services

import "errors"

// Error kinds. Services wrap these with a human-readable message via the
// helpers below; handlers classify with errors.Is and use Error() as the
// response message.
var (
	ErrNotFound        = errors.New("not found")
	ErrPremiumRequired = errors.New("premium required")
	ErrNotOwner        = errors.New("not authorized")
	ErrConflict        = errors.New("conflict")
	ErrInvalid         = errors.New("invalid input")
	ErrBadCredentials  = errors.New("bad credentials")
)

type domainError struct {
	kind    error
	message string
}

func (e *domainError) Error() string { return e.message }
func (e *domainError) Unwrap() error { return e.kind }

func notFound(msg string) error        { return &domainError{kind: ErrNotFound, message: msg} }
func premiumRequired(msg string) error { return &domainError{kind: ErrPremiumRequired, message: msg} }
func notOwner(msg string) error        { return &domainError{kind: ErrNotOwner, message: msg} }
func conflict(msg string) error        { return &domainError{kind: ErrConflict, message: msg} }
func invalid(msg string) error         { return &domainError{kind: ErrInvalid, message: msg} }
func badCredentials(msg string) error  { return &domainError{kind: ErrBadCredentials, message: msg} }
