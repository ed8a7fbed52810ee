package common

import "errors"

var (
	// Storage errors.
	ErrorNotFound = errors.New("not found")

	// Transport errors.
	ErrUnavailable = errors.New("server unavailable")

	// Auth errors.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrRegistrationFailed = errors.New("registration failed")

	// Response decoding errors.
	ErrUnexpectedResponse   = errors.New("unexpected server response")
	ErrNoAuthenticatedField = errors.New("response has no authenticated field")
)
