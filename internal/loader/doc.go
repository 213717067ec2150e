// Package loader ingests layered settings files into the registry.
//
// A settings file is a JSON object whose top-level keys become registry
// bindings. Lines starting with "##" are comments and are removed before
// decoding. The reserved key "load" names further settings files, which are
// loaded recursively; every path is recorded under the registry's "load"
// key and a path already recorded is never loaded again, so include cycles
// and diamonds are processed once.
//
// Value forms:
//
//	"admin_email": "root@example.com"                  bare value, read-only
//	"autoload": {"value": ["lib"], "readonly": false}  explicit flag
//	"debug_enabled": {"value": true}                   read-only
//	"database": {"host": "db", "port": 5432}           raw object, read-only
//
// Besides JSON, files ending in .yaml/.yml or .toml are decoded with the
// corresponding format and processed with the same rules.
//
// Failures abort the whole load chain. Bindings applied before the failure
// stay in the registry; a failed Load means the configuration is
// inconsistent and the process should stop.
//
// Example Usage:
//
//	l := loader.New(reg, loader.WithLogger(logger))
//	if err := l.Load("config.json"); err != nil {
//	    return err
//	}
package loader
