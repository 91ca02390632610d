// Package session owns the client's authentication status.
//
// A Manager reconciles the session cached in local storage with the profile
// record held by the remote profile store and publishes the result as a
// models.AuthStatus snapshot. Consumers read the snapshot with Status or
// receive every change through Subscribe; the status is only ever changed by
// the Manager's own operations:
//
//   - Initialize: restore the cached session at process start.
//   - Login: persist a freshly issued session.
//   - Logout: drop the session and every cached profile key.
//   - CompleteProfile: record that the profile form has been saved.
//
// Operations are serialized; overlapping calls never interleave their
// storage writes.
package session
