// Package config provides configuration management for filevault.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults come from the `default` struct tags of each
// partial configuration.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings, divided into subsections:
//   - Server: HTTP server settings (port, API key)
//   - Database: Postgres/MySQL connection and pool settings
//   - Storage: S3/MinIO credentials, bucket, client pool and upload defaults
//   - Log: Logging level and format
//
// # Storage settings document
//
// STORAGE_CONFIG may hold a JSON document that overrides bucket, region,
// endpoint and credentials in one value:
//
//	STORAGE_CONFIG={"bucket":"uploads","region":"eu-west-1","accessKeyId":"...","secretAccessKey":"..."}
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Storage.Bucket)
package config
