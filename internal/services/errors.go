package services

import "errors"

var (
	// ErrDuplicateEmail is admin-facing; handlers may surface it verbatim.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// the external response never reveals whether an email exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrAccountDisabled is logged distinctly but rendered to the client with
	// the same generic wording as ErrInvalidCredentials.
	ErrAccountDisabled = errors.New("account is disabled")
	ErrNotFound        = errors.New("not found")
)
