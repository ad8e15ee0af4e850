package services

import (
	"errors"
	"fmt"
)

// Common service-level errors
var (
	// Auth errors
	ErrNoSession        = errors.New("no authenticated session")
	ErrUnauthorized     = errors.New("unauthorized access")
	ErrInvalidAuthCode  = errors.New("invalid authorization code")
	ErrInvalidToken     = errors.New("invalid token")
	ErrInvalidUserInfo  = errors.New("invalid user information")
	ErrSessionNotFound  = errors.New("session not found")
	ErrOAuthUnavailable = errors.New("google sign-in is not configured")

	// Planner errors
	ErrNoteNotFound     = errors.New("note not found")
	ErrReminderNotFound = errors.New("reminder not found")
)

// IsCredentialError reports whether a sign-in failed because Google rejected
// the credentials, as opposed to a store or network failure
func IsCredentialError(err error) bool {
	return errors.Is(err, ErrInvalidToken) ||
		errors.Is(err, ErrInvalidUserInfo) ||
		errors.Is(err, ErrInvalidAuthCode) ||
		errors.Is(err, ErrOAuthUnavailable)
}

// RemoteReadError wraps a rejected fetch from the hosted store
type RemoteReadError struct {
	Table string
	Err   error
}

func (e *RemoteReadError) Error() string {
	return fmt.Sprintf("read %s: %v", e.Table, e.Err)
}

func (e *RemoteReadError) Unwrap() error { return e.Err }

// RemoteWriteError wraps a rejected insert, update or upsert
type RemoteWriteError struct {
	Op    string
	Table string
	Err   error
}

func (e *RemoteWriteError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Table, e.Err)
}

func (e *RemoteWriteError) Unwrap() error { return e.Err }
