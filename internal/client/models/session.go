// Package models defines the client-side data models of the E-Hima Vote CLI.
package models

// Session is the locally persisted login triple. It is written as a unit on
// login and cleared as a unit on logout.
type Session struct {
	Token  string
	UserID string
	Email  string
}

// Complete reports whether all three fields are present. A partially stored
// session is treated as no session at all.
func (s Session) Complete() bool {
	return s.Token != "" && s.UserID != "" && s.Email != ""
}
