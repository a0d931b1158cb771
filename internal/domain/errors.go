package domain

import "errors"

// Spell-check error types

var (
	// ErrInvalidArgument indicates a required input was missing or empty
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrServiceUnavailable indicates the platform spell-check capability is absent
	ErrServiceUnavailable = errors.New("spell checker service unavailable")

	// ErrPlatformFailure indicates the platform failed while issuing a request or delivering results
	ErrPlatformFailure = errors.New("spell checker platform failure")

	// ErrQueueFull indicates too many suggestion requests are already waiting
	ErrQueueFull = errors.New("suggestion queue is full")

	// ErrSessionClosed indicates the manager was shut down
	ErrSessionClosed = errors.New("spell checker session closed")
)

// Push token error types

var (
	// ErrTokenStore indicates the remote token store rejected or failed an upload
	ErrTokenStore = errors.New("token store failure")

	// ErrTokenUnavailable indicates no messaging token has been issued yet
	ErrTokenUnavailable = errors.New("messaging token unavailable")

	// ErrPushClosed indicates the token synchronizer was shut down
	ErrPushClosed = errors.New("push token synchronizer closed")
)
