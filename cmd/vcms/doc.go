// Package main is the entry point for the vcms bootstrap tool.
//
// The tool runs the startup sequence against a settings file and reports
// what it produced: the registry contents, the autoload index and symbol
// resolutions.
//
// Configuration:
//   - Environment variables (VCMS_*, LOG_*), optionally from a .env file
//   - CLI flags (override env vars)
//
// Usage:
//
//	vcms bootstrap --settings config.json --lib lib
//	vcms resolve Vcms.Registry Controller
//	vcms dump --json
package main
