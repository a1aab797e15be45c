package connprof

import (
	"errors"
	"strings"
)

// Sentinel errors for common failure scenarios.
// These enable callers to distinguish error types using errors.Is().
//
// Example usage:
//
//	p, err := creator.CreateProfile(ctx, prompter, nil)
//	if errors.Is(err, connprof.ErrProfileNotCompleted) {
//	    // User cancelled or entered an unusable profile; not fatal.
//	}
var (
	// ErrProfileNotCompleted indicates no usable profile was produced.
	// It covers both user cancellation and validation failure; the two are
	// deliberately indistinguishable to keep the contract simple.
	ErrProfileNotCompleted = errors.New("profile not completed")

	// ErrProfileExists indicates a profile with the same name is already stored.
	ErrProfileExists = errors.New("profile already exists")

	// ErrProfileNotFound indicates the named profile is not in the store.
	ErrProfileNotFound = errors.New("profile not found")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrAuthFailed indicates the Azure AD login flow failed.
	ErrAuthFailed = errors.New("authentication failed")

	// ErrConnectionFailed indicates the database connection test failed.
	ErrConnectionFailed = errors.New("connection failed")

	// ErrNonInteractive indicates an interactive operation was requested
	// without a terminal attached.
	ErrNonInteractive = errors.New("interactive terminal required")
)

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrProfileNotCompleted):
		return ExitNotCompleted
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrProfileExists), errors.Is(err, ErrProfileNotFound):
		return ExitConfigError
	case errors.Is(err, ErrAuthFailed):
		return ExitAuthError
	case errors.Is(err, ErrConnectionFailed):
		return ExitConnectionError
	case errors.Is(err, ErrNonInteractive):
		return ExitUsageError
	}

	// Check for common connection error patterns
	errStr := err.Error()
	if strings.Contains(errStr, "failed to connect") ||
		strings.Contains(errStr, "connection refused") ||
		strings.Contains(errStr, "no such host") {
		return ExitConnectionError
	}

	return ExitGeneralError
}
