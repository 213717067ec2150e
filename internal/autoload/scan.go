package autoload

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GriffinCanCode/vcms/internal/domain/registry"
	"github.com/GriffinCanCode/vcms/internal/shared/errs"
	"github.com/GriffinCanCode/vcms/internal/shared/paths"
	"github.com/bmatcuk/doublestar/v4"
	"github.com/charlievieth/fastwalk"
	"go.uber.org/zap"
)

// ignoreRules holds the process-wide exclusions, resolved at scan time.
type ignoreRules struct {
	roots    []string
	patterns []string
}

func (a *Autoloader) ignoreRules() (ignoreRules, error) {
	var rules ignoreRules
	if !a.registry.IsKey(registry.KeyAutoloadIgnore) {
		return rules, nil
	}
	entries, err := a.registry.Strings(registry.KeyAutoloadIgnore)
	if err != nil {
		return rules, err
	}

	for _, entry := range entries {
		if strings.TrimSpace(entry) == "" {
			continue
		}
		// every entry names a literal path; "lib/cache[old]" is a real directory
		rules.roots = append(rules.roots, paths.Resolve(entry))
		if !strings.ContainsAny(entry, "*?[{") {
			continue
		}
		pattern := entry
		if !filepath.IsAbs(pattern) {
			pattern = filepath.Join(paths.Resolve("."), pattern)
		}
		if !doublestar.ValidatePathPattern(pattern) {
			return rules, fmt.Errorf("invalid ignore pattern %q: %w", entry, errs.ErrInvalidArgument)
		}
		rules.patterns = append(rules.patterns, pattern)
	}
	return rules, nil
}

// match reports whether path is, or lies under, an ignored directory.
func (r ignoreRules) match(path string) bool {
	for _, root := range r.roots {
		if paths.Within(path, root) {
			return true
		}
	}
	for _, pattern := range r.patterns {
		if ok, _ := doublestar.PathMatch(pattern, path); ok {
			return true
		}
	}
	return false
}

// scan rebuilds the index of dir. The walk runs concurrently; results are
// sorted before indexing so a key collision always resolves to the
// lexically last path.
func (a *Autoloader) scan(dir string) error {
	if err := checkDir(dir); err != nil {
		return err
	}
	rules, err := a.ignoreRules()
	if err != nil {
		return err
	}

	start := time.Now()
	var (
		mu    sync.Mutex
		found []string
	)

	if !rules.match(dir) {
		conf := fastwalk.Config{Follow: false}
		err = fastwalk.Walk(&conf, dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return err
				}
				a.logger.Warn("Skipping unreadable path", zap.String("path", path), zap.Error(err))
				return nil
			}
			if path == dir {
				return nil
			}
			if rules.match(path) {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !a.hasExtension(d.Name()) {
				return nil
			}

			mu.Lock()
			found = append(found, path)
			mu.Unlock()
			return nil
		})
		if err != nil {
			return fmt.Errorf("scan %s: %w", dir, err)
		}
	}

	sort.Strings(found)
	index := make(map[string]string, len(found))
	for _, path := range found {
		index[IndexKey(filepath.Base(path), a.extension)] = path
	}
	a.indexes[dir] = index
	a.files[dir] = found

	elapsed := time.Since(start)
	a.metrics.RecordScan(dir, len(index), elapsed)
	a.logger.Info("Directory indexed",
		zap.String("dir", dir),
		zap.Int("files", len(found)),
		zap.Int("keys", len(index)),
		zap.Duration("elapsed", elapsed))
	return nil
}

func (a *Autoloader) hasExtension(name string) bool {
	ext := a.extension
	return len(name) > len(ext) && strings.EqualFold(name[len(name)-len(ext):], ext)
}
