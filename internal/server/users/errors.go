package users

import "errors"

// Account errors. Their text is the code the identity service reports in
// error.message.
var (
	ErrEmailExists        = errors.New("EMAIL_EXISTS")
	ErrInvalidEmail       = errors.New("INVALID_EMAIL")
	ErrMissingPassword    = errors.New("MISSING_PASSWORD")
	ErrWeakPassword       = errors.New("WEAK_PASSWORD : Password should be at least 6 characters")
	ErrInvalidCredentials = errors.New("INVALID_LOGIN_CREDENTIALS")
	ErrUserDisabled       = errors.New("USER_DISABLED")
)

// IsClientError reports whether err is one of the account errors above.
func IsClientError(err error) bool {
	for _, e := range []error{ErrEmailExists, ErrInvalidEmail, ErrMissingPassword, ErrWeakPassword, ErrInvalidCredentials, ErrUserDisabled} {
		if errors.Is(err, e) {
			return true
		}
	}
	return false
}
