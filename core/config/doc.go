// Package config provides configuration management for the auto-reference tools.
//
// It utilizes Viper for loading configuration from a .env file, an optional
// config.yaml and environment variables. Defaults come from the `default` struct
// tags of every section.
//
// # Configuration Structure
//
//   - Server: HTTP port and API key
//   - Storage: S3/MinIO credentials and bucket
//   - Log: level, format and optional rotated log file
//   - Database: optional sync history database (mysql, sqlite)
//   - Sync: metadata caching, message formatting, live mode
//   - Project: scene and asset sources, manifest path, save behaviour
//
// Environment variables map to nested keys with underscores, e.g.
// PROJECT_SCENES_DIR sets project.scenes_dir.
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Project.ScenesDir)
package config
