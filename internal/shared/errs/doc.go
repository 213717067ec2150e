// Package errs defines the error kinds shared by the registry, loader and
// autoloader.
//
// Every failure surfaced by the bootstrap core wraps exactly one of the
// sentinel errors below, so callers branch with errors.Is:
//
//	if errors.Is(err, errs.ErrOverwrite) {
//	    // key was already marked read-only by an earlier settings file
//	}
//
// Configuration decode failures are reported as *SyntaxError, which matches
// ErrSyntax and carries the offending path and decoder category.
package errs
