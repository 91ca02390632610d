// Package client contains the shared plumbing of the E-Hima Vote client:
// the local SQLite bootstrap (InitDatabase, RunMigrations) and the sentinel
// errors that the remote clients wrap (ErrUnavailable, ErrUnauthorized).
//
// Callers match the sentinels with errors.Is; the typed errors of the
// identity and profiles packages unwrap to them when appropriate.
package client
