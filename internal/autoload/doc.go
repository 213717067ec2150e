// Package autoload maps symbolic names to source files.
//
// An Autoloader owns an ordered list of search directories and an ignore
// list, both stored in the registry. Each directory is scanned once into an
// index keyed by the normalized file name:
//
//	lib/Foo.Bar.php          -> foo-bar
//	lib/class.Baz.inc.php    -> class-baz-inc
//
// Resolve normalizes the symbol the same way ("Foo.Bar", "\Foo-Bar" and
// "foo.bar" all become "foo-bar") and consults the indexes in directory
// order; the first hit wins. When pattern search is enabled a miss falls
// back to matching every indexed file name against
//
//	^(class\.)?<symbol>(\.class|\.inc){0,2}$
//
// which finds "class.Baz.inc.php" for "Baz". The fallback is a linear sweep
// and is disabled unless the registry's autoload_search_enable flag is set.
//
// A miss is not an error: Resolve reports found=false and the caller
// decides what absence means.
package autoload
