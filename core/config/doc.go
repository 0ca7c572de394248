// Package config provides configuration management for the media catalog.
//
// It utilizes Viper for loading configuration from environment variables and an
// optional .env file. Defaults live next to each section in `default` struct tags.
//
// # Configuration Structure
//
// The Config struct is divided into subsections:
//   - Log: level and format
//   - Database: catalog database driver and connection
//   - Storage: S3/MinIO settings for exports
//   - Server: HTTP port and API key
//   - Scan: ignored directory and file names
//   - Hash: algorithm and budget strategy
//   - Enrichment: Wikidata endpoint and rate limit
//   - TypeDetect: exiftool usage
//   - Metrics: textfile output
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Hash.Strategy)
package config
