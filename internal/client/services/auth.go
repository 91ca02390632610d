// Package services contains the application flows of the E-Hima Vote client:
// registration, login, the profile form, the home screen and the ballot.
// They validate user input, call the remote clients and drive the session
// manager; rendering is left to the caller.
package services

import (
	"context"
	"strings"

	"github.com/ehimavote/evote/internal/client/models"
	"github.com/ehimavote/evote/internal/logging"
)

const minPasswordLength = 6

// RegisterForm is the input of the registration screen.
type RegisterForm struct {
	Email           string
	Password        string
	ConfirmPassword string
}

// AuthService defines the authentication flows of the CLI.
//
// Contract:
//   - Register: validate the form, create the account, start a session.
//   - Login: validate the credentials, sign in, start a session.
//   - Logout: end the session.
//
// Identity failures are returned as *identity.AuthError, form problems as
// *ValidationError.
type AuthService interface {
	Register(ctx context.Context, form RegisterForm) error
	Login(ctx context.Context, email, password string) error
	Logout(ctx context.Context) error
}

type authService struct {
	identity IdentityClient
	session  SessionManager
	logger   logging.Logger
}

func NewAuthService(identity IdentityClient, session SessionManager, logger logging.Logger) AuthService {
	return &authService{identity: identity, session: session, logger: logger}
}

func (a *authService) Register(ctx context.Context, form RegisterForm) error {
	email := strings.TrimSpace(form.Email)
	if email == "" || form.Password == "" || form.ConfirmPassword == "" {
		return invalid("form", "Please fill in all fields")
	}
	if form.Password != form.ConfirmPassword {
		return invalid("confirm_password", "Passwords do not match")
	}
	if len(form.Password) < minPasswordLength {
		return invalid("password", "Password must be at least 6 characters")
	}

	resp, err := a.identity.SignUp(ctx, email, form.Password)
	if err != nil {
		a.logger.Info(ctx, "sign-up failed", "error", err)
		return err
	}
	return a.session.Login(ctx, sessionFrom(resp.IDToken, resp.LocalID, resp.Email, email))
}

func (a *authService) Login(ctx context.Context, email, password string) error {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return invalid("form", "Please fill all fields")
	}

	resp, err := a.identity.SignIn(ctx, email, password)
	if err != nil {
		a.logger.Info(ctx, "sign-in failed", "error", err)
		return err
	}
	return a.session.Login(ctx, sessionFrom(resp.IDToken, resp.LocalID, resp.Email, email))
}

func (a *authService) Logout(ctx context.Context) error {
	return a.session.Logout(ctx)
}

func sessionFrom(token, userID, email, typedEmail string) models.Session {
	if email == "" {
		email = typedEmail
	}
	return models.Session{Token: token, UserID: userID, Email: email}
}
