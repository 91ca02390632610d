package services

import (
	"context"

	"github.com/ehimavote/evote/internal/client/identity"
	"github.com/ehimavote/evote/internal/client/models"
)

// IdentityClient signs users up and in against the identity service.
type IdentityClient interface {
	SignUp(ctx context.Context, email, password string) (*identity.Response, error)
	SignIn(ctx context.Context, email, password string) (*identity.Response, error)
}

// SessionManager is the part of session.Manager the flows drive.
type SessionManager interface {
	Status() models.AuthStatus
	Login(ctx context.Context, s models.Session) error
	Logout(ctx context.Context) error
	CompleteProfile(ctx context.Context) error
}

// RemoteProfiles is the remote profile store.
type RemoteProfiles interface {
	GetProfile(ctx context.Context, userID string) (*models.UserProfile, error)
	SaveProfile(ctx context.Context, userID string, p models.UserProfile) error
}

// LocalProfiles is the locally cached copy of the profile.
type LocalProfiles interface {
	SaveProfile(ctx context.Context, p models.UserProfile) error
	Profile(ctx context.Context) (*models.UserProfile, error)
}
