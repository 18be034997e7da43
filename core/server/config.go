package server

import "strings"

// Config holds configuration for the HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8000"`
	// ApiKey is the secret key required to access the API. Empty disables auth.
	ApiKey string `mapstructure:"api_key" default:""`
	// CorsOrigins is a comma-separated list of allowed CORS origins.
	CorsOrigins string `mapstructure:"cors_origins" default:"*"`
}

// Origins returns the configured CORS origins with whitespace trimmed.
func (c Config) Origins() string {
	parts := strings.Split(c.CorsOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return strings.Join(out, ", ")
}
