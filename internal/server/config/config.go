// Package config holds the settings of the local identity and document
// store emulator.
package config

import "time"

// Config holds runtime settings for the emulator.
//
// Fields:
//   - EndpointAddrHTTP: bind address of the HTTP endpoint.
//   - APIKey: value every request must carry in the "key" query parameter.
//   - ProjectID: the only project whose documents are served.
//   - SecretKey: HMAC secret for signing id tokens (HS256).
//   - TokenValidityDuration: lifetime of issued id tokens.
//   - PasswordCost: bcrypt cost for stored passwords.
//   - SeedPath: optional YAML fixture loaded at start-up.
type Config struct {
	EndpointAddrHTTP      string
	APIKey                string
	ProjectID             string
	SecretKey             string
	TokenValidityDuration time.Duration
	PasswordCost          int
	SeedPath              string
}

// LoadDefaults populates Config with development defaults.
// NOTE: The secret is public; the emulator is not meant to face a network.
func (c *Config) LoadDefaults() {
	c.EndpointAddrHTTP = "127.0.0.1:9099"
	c.APIKey = "dev-key"
	c.ProjectID = "e-himavote"
	c.SecretKey = "emulator-secret-key"
	c.TokenValidityDuration = time.Hour
	c.PasswordCost = 10
	c.SeedPath = ""
}
