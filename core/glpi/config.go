package glpi

// Config holds configuration for the GLPI REST API client.
type Config struct {
	// URL is the base URL of the GLPI REST API (e.g. https://glpi.example.com/apirest.php).
	URL string `mapstructure:"url" default:"http://localhost/apirest.php"`
	// AppToken is the GLPI application token.
	AppToken string `mapstructure:"app_token" default:""`
	// UserToken is the GLPI user API token used for session init.
	UserToken string `mapstructure:"user_token" default:""`
	// TimeoutSeconds is the HTTP request timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
