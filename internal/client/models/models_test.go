package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSession_Complete(t *testing.T) {
	assert.True(t, Session{Token: "tok", UserID: "u1", Email: "a@b.com"}.Complete())
	assert.False(t, Session{Token: "tok", UserID: "u1"}.Complete())
	assert.False(t, Session{UserID: "u1", Email: "a@b.com"}.Complete())
	assert.False(t, Session{}.Complete())
}

func TestUserProfile_IsComplete(t *testing.T) {
	var nilProfile *UserProfile
	assert.False(t, nilProfile.IsComplete())
	assert.False(t, (&UserProfile{Name: "Ada"}).IsComplete())
	assert.False(t, (&UserProfile{NIM: 42}).IsComplete())
	assert.True(t, (&UserProfile{Name: "Ada", NIM: 42}).IsComplete())
}

func TestAuthStatus_State(t *testing.T) {
	tests := []struct {
		name   string
		status AuthStatus
		want   State
	}{
		{"initial", InitialStatus(), StateUnknown},
		{"logged out", LoggedOutStatus(), StateLoggedOut},
		{"incomplete", AuthStatus{IsAuthenticated: true, UserID: "u1"}, StateLoggedInIncompleteProfile},
		{"complete", AuthStatus{IsAuthenticated: true, UserID: "u1", HasCompletedProfile: true}, StateLoggedInComplete},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.status.State())
		})
	}
	assert.Equal(t, "logged-in-complete", StateLoggedInComplete.String())
	assert.Equal(t, "unknown", State(99).String())
}

func TestFindCandidatePair(t *testing.T) {
	c, ok := FindCandidatePair(2)
	assert.True(t, ok)
	assert.Equal(t, "Paslon 2", c.Label())

	_, ok = FindCandidatePair(3)
	assert.False(t, ok)
}
