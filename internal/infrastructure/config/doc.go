// Package config provides 12-factor process configuration for the vcms
// bootstrap.
//
// Values are read from environment variables with defaults. A .env file in
// the working directory (or the path in VCMS_ENV_FILE) is applied first;
// variables already present in the environment win over the file.
// CLI flags override both.
//
// Configuration Sections:
//   - Bootstrap: settings file, lib path, debug mode
//   - Autoload: source extension, pattern search, rescan-on-miss
//   - Loader: maximum JSON nesting depth
//   - Logging: log level and output format
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	fmt.Printf("Loading settings from %s\n", cfg.Bootstrap.Settings)
//
// Environment Variables:
//   - VCMS_SETTINGS, VCMS_LIB_PATH, VCMS_DEBUG
//   - VCMS_SOURCE_EXT, VCMS_AUTOLOAD_SEARCH, VCMS_RESCAN_ON_MISS
//   - VCMS_MAX_DEPTH
//   - LOG_LEVEL, LOG_DEV
package config
