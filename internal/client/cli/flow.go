package cli

import (
	"slices"

	"github.com/ehimavote/evote/internal/client/models"
)

// Route is the screen the user is on, derived from the session status.
type Route int

const (
	RouteLoading Route = iota
	RouteLogin
	RouteProfileForm
	RouteHome
)

func (r Route) String() string {
	switch r {
	case RouteLogin:
		return "login"
	case RouteProfileForm:
		return "profile"
	case RouteHome:
		return "home"
	default:
		return "loading"
	}
}

// RouteFor maps a status to its route. Nothing protected is reachable while
// the status is loading.
func RouteFor(s models.AuthStatus) Route {
	switch {
	case s.IsLoading:
		return RouteLoading
	case !s.IsAuthenticated:
		return RouteLogin
	case !s.HasCompletedProfile:
		return RouteProfileForm
	default:
		return RouteHome
	}
}

var routeCommands = map[Route][]string{
	RouteLoading:     {},
	RouteLogin:       {"register", "login"},
	RouteProfileForm: {"profile", "logout"},
	RouteHome:        {"home", "vote", "logout"},
}

var alwaysAvailable = []string{"status", "help", "exit"}

// allowed reports whether cmd may run on route r.
func allowed(r Route, cmd string) bool {
	return slices.Contains(routeCommands[r], cmd)
}

func routeHint(r Route) string {
	switch r {
	case RouteLogin:
		return "Please log in or register (type 'login' or 'register')."
	case RouteProfileForm:
		return "Please complete your personal data (type 'profile')."
	case RouteHome:
		return "Welcome! Type 'home' to see your data or 'vote' to cast your vote."
	default:
		return "Loading..."
	}
}
