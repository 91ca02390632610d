package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/ehimavote/evote/internal/client/identity"
)

// Status prints the session state, the cached profile flag and, when a token
// is cached, its expiry.
func (a *App) Status(ctx context.Context) error {
	s := a.status.Status()

	a.println("State:   " + s.State().String())
	if s.UserEmail != "" {
		a.println("Email:   " + s.UserEmail)
	}
	if s.UserID != "" {
		a.println("User ID: " + s.UserID)
	}

	completed, err := a.cache.ProfileCompleted(ctx)
	if err != nil {
		return err
	}
	a.println(fmt.Sprintf("Profile flag (cached): %t", completed))

	token, ok, err := a.cache.Token(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return nil
	}
	exp, err := identity.TokenExpiry(token)
	if err != nil {
		a.println("Token expiry: unknown")
		return nil
	}
	a.println("Token expires: " + exp.Local().Format(time.RFC1123))
	return nil
}
