// Package config loads runtime configuration for the E-Hima Vote CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-u string   identity service base URL
//	-s string   profile store base URL
//	-k string   API key
//	-p string   project id
//	-d string   path of the local SQLite database
//	-t int      request timeout (seconds)
//	-l string   message locale (id, en)
//
// # JSON schema
//
// Durations use timex.Duration, so they can be strings like "10s" or integer
// nanoseconds. Keys left out of the file keep their previous value:
//
//	{
//	  "identity_base_url": "http://127.0.0.1:9099",
//	  "profile_store_base_url": "http://127.0.0.1:9099",
//	  "api_key": "dev-key",
//	  "project_id": "e-himavote",
//	  "collection": "E-HimaVote",
//	  "database_path": "ehimavote.db",
//	  "request_timeout": "10s",
//	  "locale": "id",
//	  "log_level": "warn"
//	}
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
