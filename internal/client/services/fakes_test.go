package services

import (
	"context"

	"github.com/ehimavote/evote/internal/client/identity"
	"github.com/ehimavote/evote/internal/client/models"
)

// ---- fake identity ----

type fakeIdentity struct {
	resp  *identity.Response
	err   error
	calls []string
}

func (f *fakeIdentity) SignUp(_ context.Context, email, password string) (*identity.Response, error) {
	f.calls = append(f.calls, "signUp:"+email+":"+password)
	return f.resp, f.err
}

func (f *fakeIdentity) SignIn(_ context.Context, email, password string) (*identity.Response, error) {
	f.calls = append(f.calls, "signIn:"+email+":"+password)
	return f.resp, f.err
}

// ---- fake session ----

type fakeSession struct {
	status      models.AuthStatus
	logins      []models.Session
	loginErr    error
	logouts     int
	logoutErr   error
	completes   int
	completeErr error
}

func (f *fakeSession) Status() models.AuthStatus { return f.status }

func (f *fakeSession) Login(_ context.Context, s models.Session) error {
	f.logins = append(f.logins, s)
	if f.loginErr != nil {
		return f.loginErr
	}
	f.status = models.AuthStatus{IsAuthenticated: true, UserID: s.UserID, UserEmail: s.Email}
	return nil
}

func (f *fakeSession) Logout(context.Context) error {
	f.logouts++
	if f.logoutErr != nil {
		return f.logoutErr
	}
	f.status = models.LoggedOutStatus()
	return nil
}

func (f *fakeSession) CompleteProfile(context.Context) error {
	f.completes++
	if f.completeErr != nil {
		return f.completeErr
	}
	if f.status.IsAuthenticated {
		f.status.HasCompletedProfile = true
	}
	return nil
}

// ---- fake profile stores ----

type fakeRemote struct {
	profiles map[string]*models.UserProfile
	getErr   error
	saveErr  error
	saved    []string
}

func (f *fakeRemote) GetProfile(_ context.Context, userID string) (*models.UserProfile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profiles[userID], nil
}

func (f *fakeRemote) SaveProfile(_ context.Context, userID string, p models.UserProfile) error {
	f.saved = append(f.saved, userID)
	if f.saveErr != nil {
		return f.saveErr
	}
	if f.profiles == nil {
		f.profiles = map[string]*models.UserProfile{}
	}
	f.profiles[userID] = &p
	return nil
}

type fakeLocal struct {
	profile *models.UserProfile
	saveErr error
	getErr  error
}

func (f *fakeLocal) SaveProfile(_ context.Context, p models.UserProfile) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.profile = &p
	return nil
}

func (f *fakeLocal) Profile(context.Context) (*models.UserProfile, error) {
	return f.profile, f.getErr
}
