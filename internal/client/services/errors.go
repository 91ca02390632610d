package services

import "errors"

// ValidationError reports a form field that failed validation. Message is
// ready to show to the user.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

func invalid(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

var (
	// ErrUnknownCandidate is returned for a ballot number that is not on the ballot.
	ErrUnknownCandidate = errors.New("unknown candidate pair")
	// ErrLoggedOut is returned by flows that need an authenticated session.
	ErrLoggedOut = errors.New("not logged in")
	// ErrProfileIncomplete is returned by flows that need a completed profile.
	ErrProfileIncomplete = errors.New("profile not completed")
)
