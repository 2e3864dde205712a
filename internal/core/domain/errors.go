package domain

import "errors"

var (
	// ErrEmailExists marks a registration for an email that is already
	// taken, whether caught by the pre-check or by the store's unique
	// index during a concurrent signup race.
	ErrEmailExists = errors.New("email already registered")

	// ErrInvalidData marks a store rejection on a non-uniqueness
	// constraint.
	ErrInvalidData = errors.New("invalid data provided")

	// ErrRegistrationFailed covers transient failures during signup
	// (hashing, unexpected store errors). The message shown to clients
	// is deliberately generic.
	ErrRegistrationFailed = errors.New("registration failed")

	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid token")
)
