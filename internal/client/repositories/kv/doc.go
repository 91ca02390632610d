// Package kv implements the key/value repository behind the local store.
//
// Data lives in the `kv` table created by the client migrations:
//
//	CREATE TABLE kv (key TEXT PRIMARY KEY, value BLOB NOT NULL);
//
// Single-key writes are upserts. Batch writes (SetMany, DeleteMany) run in one
// transaction via dbx.WithTx so no intermediate state is ever observable.
// Every error is wrapped with the operation and key it concerns.
package kv
