// Package logging provides structured logging using uber/zap.
//
// Two modes are offered:
//   - Production: JSON output for machine parsing
//   - Development: Coloured console output for humans (enabled by the
//     bootstrap's debug flag or LOG_DEV)
//
// Components never build their own loggers. The bootstrap creates one
// Logger and hands each component a named child via Component, so log lines
// carry "loader", "autoload", "registry" or "library" in the logger field.
//
// Example Usage:
//
//	logger := logging.NewDefault()
//	defer logger.Sync()
//	loaderLog := logger.Component("loader")
//	loaderLog.Info("Configuration loaded", zap.String("path", path))
package logging
