package cli

import (
	"testing"

	"github.com/ehimavote/evote/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestRouteFor(t *testing.T) {
	tests := []struct {
		name   string
		status models.AuthStatus
		want   Route
	}{
		{"initial", models.InitialStatus(), RouteLoading},
		{"loading wins over auth", models.AuthStatus{IsLoading: true, IsAuthenticated: true, HasCompletedProfile: true}, RouteLoading},
		{"logged out", models.LoggedOutStatus(), RouteLogin},
		{"incomplete", models.AuthStatus{IsAuthenticated: true, UserID: "u1"}, RouteProfileForm},
		{"complete", models.AuthStatus{IsAuthenticated: true, UserID: "u1", HasCompletedProfile: true}, RouteHome},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RouteFor(tt.status))
		})
	}
}

func TestAllowed(t *testing.T) {
	assert.True(t, allowed(RouteLogin, "login"))
	assert.True(t, allowed(RouteProfileForm, "logout"))
	assert.True(t, allowed(RouteHome, "vote"))
	assert.False(t, allowed(RouteLoading, "login"))
	assert.False(t, allowed(RouteProfileForm, "vote"))
	assert.False(t, allowed(RouteHome, "profile"))
	assert.False(t, allowed(RouteLogin, "home"))
}

func TestRoute_String(t *testing.T) {
	assert.Equal(t, "loading", RouteLoading.String())
	assert.Equal(t, "login", RouteLogin.String())
	assert.Equal(t, "profile", RouteProfileForm.String())
	assert.Equal(t, "home", RouteHome.String())
}
