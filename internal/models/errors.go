package models

import "errors"

// Domain errors returned by the stores and services. Handlers map
// these to HTTP statuses with errors.Is; persistence failures are
// wrapped I/O errors and fall through to a generic 500.
var (
	// ErrValidation indicates a required field was empty.
	ErrValidation = errors.New("required field is empty")

	// ErrUsernameTaken indicates the username is already registered.
	// Comparison is case-sensitive.
	ErrUsernameTaken = errors.New("username already taken")

	// ErrPasswordMismatch indicates password and confirmation differ.
	ErrPasswordMismatch = errors.New("password confirmation does not match")

	// ErrInvalidCredentials is returned for both unknown usernames and
	// wrong passwords so callers cannot enumerate accounts.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrNotFound indicates no message or user matches the given key.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates the actor is not the resource's author.
	ErrForbidden = errors.New("forbidden")

	// ErrEmptyText indicates a message body was empty after trimming.
	ErrEmptyText = errors.New("text must not be empty")
)
