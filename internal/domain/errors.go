package domain

import "errors"

var (
	// ErrInvalidInput is returned when a required field is missing or malformed.
	ErrInvalidInput = errors.New("invalid input")
	// ErrQuestionBankNotFound indicates the question bank does not exist yet.
	ErrQuestionBankNotFound = errors.New("question bank not found")
	// ErrUnknownAdmin is returned when the admin username has no credential.
	ErrUnknownAdmin = errors.New("invalid username")
	// ErrWrongPassword is returned when the password digest does not match.
	ErrWrongPassword = errors.New("invalid password")
	// ErrStoreUnavailable indicates the backing store could not be reached.
	ErrStoreUnavailable = errors.New("store unavailable")
)
