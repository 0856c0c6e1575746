// Package config provides configuration management for the extension host.
//
// It utilizes Viper for loading configuration from environment variables and
// an optional .env file.
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP listener settings (port, API key)
//   - Modules: extension source directory, scan interval, allow/deny lists
//   - Journal: lifecycle event persistence (SQLite or MySQL)
//   - Log: logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Modules.Dir)
package config
