package users

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/ehimavote/evote/internal/common"
	"github.com/ehimavote/evote/internal/server/auth"
	"github.com/ehimavote/evote/internal/server/config"
	"github.com/rs/xid"
)

const minPasswordLength = 6

// Session is what sign-up and sign-in hand back to the caller.
type Session struct {
	IDToken      string
	RefreshToken string
	LocalID      string
	Email        string
	ExpiresIn    time.Duration
}

type Service struct {
	repo                  Repository
	passwords             *auth.PasswordService
	projectID             string
	jwtSecret             []byte
	tokenValidityDuration time.Duration
	now                   func() time.Time
}

func NewService(repo Repository, cfg *config.Config) *Service {
	return &Service{
		repo:                  repo,
		passwords:             auth.NewPasswordService(cfg.PasswordCost),
		projectID:             cfg.ProjectID,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
		now:                   time.Now,
	}
}

// Create adds an account without signing in. An empty id gets a fresh xid.
func (s *Service) Create(ctx context.Context, id, email, password string, disabled bool) (*User, error) {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}
	if len(password) < minPasswordLength {
		return nil, ErrWeakPassword
	}

	hash, err := s.passwords.Hash(password)
	if err != nil {
		return nil, ErrWeakPassword
	}

	if id == "" {
		id = xid.New().String()
	}

	user := &User{
		ID:           id,
		Email:        email,
		PasswordHash: hash,
		Disabled:     disabled,
		CreatedAt:    s.now(),
	}

	user, err = s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, ErrEmailExists) {
			return nil, err
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return user, nil
}

func (s *Service) SignUp(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.Create(ctx, "", email, password, false)
	if err != nil {
		return nil, err
	}
	return s.newSession(user)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if !validEmail(email) {
		return nil, ErrInvalidEmail
	}
	if password == "" {
		return nil, ErrMissingPassword
	}

	user, err := s.repo.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if err := s.passwords.Verify(user.PasswordHash, password); err != nil {
		if errors.Is(err, auth.ErrPasswordMismatch) {
			return nil, ErrInvalidCredentials
		}
		return nil, common.ErrorInternal
	}

	if user.Disabled {
		return nil, ErrUserDisabled
	}

	return s.newSession(user)
}

func (s *Service) newSession(user *User) (*Session, error) {
	idToken, err := auth.GenerateToken(user.ID, user.Email, s.projectID, s.jwtSecret, s.now(), s.tokenValidityDuration)
	if err != nil {
		return nil, common.ErrorInternal
	}

	refreshToken, err := common.MakeRandHexString(32)
	if err != nil {
		return nil, common.ErrorInternal
	}

	return &Session{
		IDToken:      idToken,
		RefreshToken: refreshToken,
		LocalID:      user.ID,
		Email:        user.Email,
		ExpiresIn:    s.tokenValidityDuration,
	}, nil
}

func validEmail(email string) bool {
	addr, err := mail.ParseAddress(email)
	return err == nil && addr.Address == email
}
