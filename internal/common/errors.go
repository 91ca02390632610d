// Package common defines shared sentinel errors and small helpers used across
// the E-Hima Vote client and the API emulator. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Service-level errors.
	ErrorInternal = errors.New("internal error")
)
