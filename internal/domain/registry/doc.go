// Package registry provides the process-wide configuration registry.
//
// The registry maps string keys to values, each with a read-only flag. Once
// a binding is read-only it can never be replaced, merged into, or cleared;
// every such attempt fails with errs.ErrOverwrite instead of being ignored.
//
// Components:
//   - Registry: Add/Set/Attach/Get/IsKey/IsReadOnly/Clear plus typed accessors
//   - Seeder: writes the bootstrap keys (settings path, debug flag, lib path)
//   - Key* constants: well-known keys shared with the loader and autoloader
//
// Semantics:
//   - Add merges: values are coerced to lists and concatenated
//   - Set replaces the value as given
//   - Attach binds a caller-owned reference (pointer, map, slice, ...)
//
// There is exactly one Registry per process, constructed by the bootstrap
// and passed to the components that need it. The type holds a mutex and must
// not be copied.
//
// Example Usage:
//
//	reg := registry.New(registry.WithLogger(logger))
//	_ = reg.Add(registry.KeyAutoload, "/srv/app/lib", false)
//	dirs, err := reg.Strings(registry.KeyAutoload)
package registry
