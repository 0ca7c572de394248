package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey is the secret key required to access the catalog routes; empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// CacheSeconds is how long a catalog snapshot is served before it is reloaded.
	CacheSeconds int `mapstructure:"cache_seconds" default:"30"`
}

// Address returns the listen address for the configured port.
func (c Config) Address() string {
	if strings.Contains(c.Port, ":") {
		return c.Port
	}
	return ":" + c.Port
}

// AuthEnabled reports whether requests must carry the API key.
func (c Config) AuthEnabled() bool {
	return c.ApiKey != ""
}
