/*
Package errs provides custom error types and application-level error code constants.

This file defines the CustomError struct, which implements the standard Go error
interface and adds a business code, a user-facing message, and an error kind that
classifies how the caller is expected to recover.
*/
package errs

import (
	"fmt"
	"strings"

	"storefront/internal/pkg/logx"
)

// Kind classifies an error by its recovery path.
type Kind int

const (
	// KindValidation marks errors caught before any network call; the user
	// corrects the input and retries, nothing else changed.
	KindValidation Kind = iota + 1

	// KindApplication marks a non-zero envelope code from the remote service;
	// the server-supplied message is surfaced and the action can be resubmitted.
	KindApplication

	// KindTransport marks a network-level failure; the action is terminal and
	// requires a manual re-trigger, no retry is attempted.
	KindTransport

	// KindIdentity marks a missing or undecodable session token; the caller
	// clears the stale token and returns the user to the login screen.
	KindIdentity

	// KindInternal marks an unclassified client-side failure.
	KindInternal
)

// CustomError is the error structure used throughout the application.
// It wraps the Go error interface, adding a business code and a recovery kind.
type CustomError struct {
	// Code is the business error code (see constants definition).
	Code int

	// Message is the user-facing error description.
	Message string

	// Kind classifies the error for recovery handling.
	Kind Kind

	// RemoteCode holds the envelope code returned by the remote service for
	// KindApplication errors; zero otherwise.
	RemoteCode int32
}

// Error implements the standard Go error interface.
func (e CustomError) Error() string {
	return fmt.Sprintf("error code %d: %s", e.Code, e.Message)
}

// IsKind reports whether err is a *CustomError of the given kind.
func IsKind(err error, kind Kind) bool {
	customErr, ok := err.(*CustomError)
	return ok && customErr.Kind == kind
}

// NewError constructs a new *CustomError from a predefined error code.
// The optional details parameter supplies printf-style arguments for message
// templates that contain formatting placeholders. An unknown code falls back
// to ErrUnknown.
func NewError(code int, details ...any) *CustomError {
	templateErr, ok := errorMap[code]

	if !ok {
		logx.Error(
			fmt.Errorf("attempted to create an error with a code missing from errorMap"),
			"Unknown error code requested",
			"requested_code", code,
		)

		unknownErr := errorMap[ErrUnknown]
		return &unknownErr
	}

	customErr := templateErr

	if len(details) > 0 {
		if strings.Contains(customErr.Message, "%") {
			customErr.Message = fmt.Sprintf(customErr.Message, details...)
		} else {
			logx.Warn(
				"Details provided for error, but message template has no formatting placeholders. Details ignored.",
				"code", code,
			)
		}
	}

	return &customErr
}

// NewRemoteError constructs a KindApplication error carrying the envelope code
// and message returned by the remote service.
func NewRemoteError(remoteCode int32, remoteMsg string) *CustomError {
	if remoteMsg == "" {
		remoteMsg = "unknown error"
	}

	customErr := NewError(ErrRemoteRejected, remoteMsg)
	customErr.RemoteCode = remoteCode
	return customErr
}
