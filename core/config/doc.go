// Package config provides configuration management for the maintenance manager.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file (loaded via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key, CORS origins)
//   - Database: MySQL/sqlite connection details
//   - Glpi: GLPI REST API endpoint and tokens
//   - Storage: S3/MinIO credentials for report archiving
//   - Log: Logging level and format
//   - Sync: sync engine tuning (page size)
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
