// Package cli provides the interactive E-Hima Vote command-line client.
//
// It wires configuration, the local SQLite store, the remote identity and
// profile clients and the session manager, then runs a REPL. The commands
// offered depend on the current route, derived from the session status:
//
//   - loading: nothing until the cached session has been checked
//   - login: register, login
//   - profile form: profile, logout
//   - home: home, vote, logout
//
// help, status and exit are always available. The REPL is started via
// App.Run(ctx), which blocks until the user exits.
package cli
