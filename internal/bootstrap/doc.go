// Package bootstrap wires the registry, settings loader, autoloader and
// library loader into the startup sequence.
//
// Startup Sequence:
//  1. Seed the registry with settings_path, debug_enabled and lib_path
//  2. Register the lib path with the autoloader
//  3. Load the settings file and everything it includes
//  4. Rescan, picking up configured autoload and ignore directories
//  5. Load external libraries (lib_external, then app_external)
//  6. Resolve the configured authenticator and front controller
//
// Any failure halts startup. The returned error renders an operator-facing
// message through UserMessage.
//
// Example Usage:
//
//	cfg := config.LoadOrDefault()
//	core, err := bootstrap.Run(cfg)
//	if err != nil {
//	    fmt.Fprintln(os.Stderr, bootstrap.UserMessage(err))
//	    os.Exit(1)
//	}
//	defer core.Close()
package bootstrap
