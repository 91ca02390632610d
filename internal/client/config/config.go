package config

import "time"

// Config holds runtime settings for the E-Hima Vote CLI.
//
// Fields:
//   - IdentityBaseURL: base URL of the identity service (sign-up, sign-in).
//   - ProfileStoreBaseURL: base URL of the document store holding profiles.
//   - APIKey: key appended to every remote request.
//   - ProjectID, Collection: where profile documents live.
//   - DatabasePath: SQLite file backing the local key-value store.
//   - RequestTimeout: per-request HTTP timeout.
//   - Locale: language of user-facing error messages ("id" or "en").
//   - LogLevel: debug, info, warn or error.
type Config struct {
	IdentityBaseURL     string
	ProfileStoreBaseURL string
	APIKey              string
	ProjectID           string
	Collection          string
	DatabasePath        string
	RequestTimeout      time.Duration
	Locale              string
	LogLevel            string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.IdentityBaseURL = "https://identitytoolkit.googleapis.com"
	c.ProfileStoreBaseURL = "https://firestore.googleapis.com"
	c.APIKey = ""
	c.ProjectID = "e-himavote"
	c.Collection = "E-HimaVote"
	c.DatabasePath = "ehimavote.db"
	c.RequestTimeout = 10 * time.Second
	c.Locale = "id"
	c.LogLevel = "warn"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
