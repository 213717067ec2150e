// Package paths canonicalizes filesystem paths for the bootstrap core.
//
// Every component that stores or compares a path (autoload directories,
// ignore entries, settings files) runs it through Resolve first so that two
// spellings of the same location compare equal.
//
// # Rules
//
//   - Paths without a root separator or drive/scheme marker are prefixed
//     with the working directory.
//   - Both '/' and '\' are treated as separators.
//   - Empty and "." segments are dropped; ".." pops the previous segment and
//     silently stays at the root when there is nothing left to pop.
//   - The result has one leading separator and no trailing separator.
//   - If the result exists and is a symbolic link it is replaced by the
//     link target. Only one level is followed.
//
// Resolution is lexical apart from the final symlink check, so non-existent
// paths resolve without error.
//
// # Usage
//
//	abs := paths.Resolve("lib/../app/./controllers")
//	abs = paths.ResolveFrom("/srv/site", "config.json") // /srv/site/config.json
package paths
