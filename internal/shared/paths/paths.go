package paths

import (
	"os"
	"path/filepath"
	"strings"
)

const sep = string(filepath.Separator)

// Resolve returns the canonical absolute form of path, relative paths being
// taken from the current working directory.
func Resolve(path string) string {
	base, err := os.Getwd()
	if err != nil {
		base = sep
	}
	return ResolveFrom(base, path)
}

// ResolveFrom is Resolve with an explicit base for relative paths.
func ResolveFrom(base, path string) string {
	if !IsRooted(path) {
		path = base + sep + path
	}
	resolved := Normalize(path)
	return followLink(resolved)
}

// IsRooted reports whether path carries a drive/scheme marker or starts with
// a separator.
func IsRooted(path string) bool {
	if strings.Contains(path, ":") {
		return true
	}
	return path != "" && (path[0] == '/' || path[0] == '\\')
}

// Normalize performs the lexical part of Resolve without consulting the
// filesystem or the working directory.
func Normalize(path string) string {
	path = strings.NewReplacer("/", sep, "\\", sep).Replace(path)

	kept := make([]string, 0, strings.Count(path, sep)+1)
	for _, part := range strings.Split(path, sep) {
		switch part {
		case "", ".":
			continue
		case "..":
			if len(kept) > 0 {
				kept = kept[:len(kept)-1]
			}
		default:
			kept = append(kept, part)
		}
	}
	return sep + strings.Join(kept, sep)
}

// followLink replaces a symbolic link by its target, one level deep.
func followLink(path string) string {
	info, err := os.Lstat(path)
	if err != nil || info.Mode()&os.ModeSymlink == 0 {
		return path
	}
	target, err := os.Readlink(path)
	if err != nil {
		return path
	}
	if !IsRooted(target) {
		target = filepath.Dir(path) + sep + target
	}
	return Normalize(target)
}

// Within reports whether path equals root or lies underneath it. Both
// arguments must already be canonical.
func Within(path, root string) bool {
	if path == root {
		return true
	}
	if root == sep {
		return strings.HasPrefix(path, sep)
	}
	return strings.HasPrefix(path, root+sep)
}
