package config

import (
	"encoding/json"
	"os"

	"github.com/ehimavote/evote/internal/flagx"
	"github.com/ehimavote/evote/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling.
// RequestTimeout relies on timex.Duration so JSON can specify it either as a
// string like "10s" or as integer nanoseconds.
type JsonConfig struct {
	IdentityBaseURL     string         `json:"identity_base_url"`
	ProfileStoreBaseURL string         `json:"profile_store_base_url"`
	APIKey              string         `json:"api_key"`
	ProjectID           string         `json:"project_id"`
	Collection          string         `json:"collection"`
	DatabasePath        string         `json:"database_path"`
	RequestTimeout      timex.Duration `json:"request_timeout"`
	Locale              string         `json:"locale"`
	LogLevel            string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c or -config. Without either flag nothing happens. Read or unmarshal
// errors panic. Empty or missing keys leave the field untouched.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	overlay(&cfg.IdentityBaseURL, jc.IdentityBaseURL)
	overlay(&cfg.ProfileStoreBaseURL, jc.ProfileStoreBaseURL)
	overlay(&cfg.APIKey, jc.APIKey)
	overlay(&cfg.ProjectID, jc.ProjectID)
	overlay(&cfg.Collection, jc.Collection)
	overlay(&cfg.DatabasePath, jc.DatabasePath)
	overlay(&cfg.Locale, jc.Locale)
	overlay(&cfg.LogLevel, jc.LogLevel)
	if jc.RequestTimeout.Duration > 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
}

func overlay(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
