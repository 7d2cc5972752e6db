// Package config provides configuration management for brandstock.
//
// It utilizes Viper for loading configuration from environment variables and
// a local .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: shared store connection details
//   - Storage: S3/MinIO credentials and image bucket settings
//   - Stream: Redis change feed connection
//   - Log: Logging level and format
//   - Identity: brand and acting user the engine runs as
//   - Sync: poll interval and reload debounce window
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
