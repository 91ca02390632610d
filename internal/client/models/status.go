package models

// State is the reconciliation state derived from an AuthStatus.
type State int

const (
	StateUnknown State = iota
	StateLoggedOut
	StateLoggedInIncompleteProfile
	StateLoggedInComplete
)

func (s State) String() string {
	switch s {
	case StateLoggedOut:
		return "logged-out"
	case StateLoggedInIncompleteProfile:
		return "logged-in-incomplete-profile"
	case StateLoggedInComplete:
		return "logged-in-complete"
	default:
		return "unknown"
	}
}

// AuthStatus is the snapshot published by the session manager. An empty
// UserID or UserEmail means "none".
type AuthStatus struct {
	IsAuthenticated     bool
	UserID              string
	UserEmail           string
	IsLoading           bool
	HasCompletedProfile bool
}

// InitialStatus is the status before the first reconciliation has finished.
func InitialStatus() AuthStatus {
	return AuthStatus{IsLoading: true}
}

// LoggedOutStatus is the reset status reachable from any state.
func LoggedOutStatus() AuthStatus {
	return AuthStatus{}
}

func (s AuthStatus) State() State {
	switch {
	case s.IsLoading:
		return StateUnknown
	case !s.IsAuthenticated:
		return StateLoggedOut
	case s.HasCompletedProfile:
		return StateLoggedInComplete
	default:
		return StateLoggedInIncompleteProfile
	}
}
