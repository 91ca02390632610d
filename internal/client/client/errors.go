package client

import "errors"

var (
	// ErrUnavailable means a remote service could not be reached or answered
	// with a transport-level failure.
	ErrUnavailable = errors.New("server unavailable")

	// ErrUnauthorized means the remote service rejected the credentials.
	ErrUnauthorized = errors.New("unauthorized")
)
