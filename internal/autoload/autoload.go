package autoload

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/GriffinCanCode/vcms/internal/domain/registry"
	"github.com/GriffinCanCode/vcms/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/vcms/internal/shared/errs"
	"github.com/GriffinCanCode/vcms/internal/shared/paths"
	"go.uber.org/zap"
)

// DefaultExtension is the recognized source-file extension.
const DefaultExtension = ".php"

// State is the lifecycle stage of an Autoloader.
type State int

const (
	StateUninitialized State = iota
	StateConfigured
	StateIndexed
	StateResolving
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateConfigured:
		return "configured"
	case StateIndexed:
		return "indexed"
	case StateResolving:
		return "resolving"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// IndexEntry is one indexed file.
type IndexEntry struct {
	Dir  string
	Key  string
	Path string
}

// Autoloader resolves symbols to files under registered directories.
type Autoloader struct {
	mu           sync.Mutex
	registry     *registry.Registry
	logger       *zap.Logger
	metrics      *monitoring.Metrics
	extension    string
	forceSearch  bool
	rescanOnMiss bool

	indexes map[string]map[string]string // dir -> key -> path
	files   map[string][]string          // dir -> sorted indexed files
	state   State
}

// Option configures an Autoloader.
type Option func(*Autoloader)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(a *Autoloader) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(a *Autoloader) {
		a.metrics = metrics
	}
}

// WithExtension sets the source-file extension, e.g. ".php".
func WithExtension(ext string) Option {
	return func(a *Autoloader) {
		if ext == "" {
			return
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		a.extension = ext
	}
}

// WithPatternSearch enables the fallback search regardless of the registry
// flag.
func WithPatternSearch(enabled bool) Option {
	return func(a *Autoloader) {
		a.forceSearch = enabled
	}
}

// WithRescanOnMiss rescans every directory once before reporting a miss.
func WithRescanOnMiss(enabled bool) Option {
	return func(a *Autoloader) {
		a.rescanOnMiss = enabled
	}
}

// New creates an Autoloader backed by reg. The pattern-search flag is
// seeded as disabled when reg does not define it.
func New(reg *registry.Registry, opts ...Option) *Autoloader {
	a := &Autoloader{
		registry:  reg,
		logger:    zap.NewNop(),
		extension: DefaultExtension,
		indexes:   make(map[string]map[string]string),
		files:     make(map[string][]string),
	}
	for _, opt := range opts {
		opt(a)
	}

	if !reg.IsKey(registry.KeyAutoloadSearch) {
		if err := reg.Set(registry.KeyAutoloadSearch, []any{false}, false); err != nil {
			a.logger.Warn("Failed to seed pattern search flag", zap.Error(err))
		}
	}
	return a
}

// AddDir registers dir as a search directory and indexes it.
func (a *Autoloader) AddDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("empty autoload directory: %w", errs.ErrInvalidArgument)
	}
	abs := paths.Resolve(dir)
	if err := checkDir(abs); err != nil {
		return err
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.registry.Add(registry.KeyAutoload, abs, false); err != nil {
		return err
	}
	if a.state == StateUninitialized {
		a.state = StateConfigured
	}
	a.logger.Debug("Autoload directory added", zap.String("dir", abs))

	if err := a.scan(abs); err != nil {
		return err
	}
	a.state = StateIndexed
	return nil
}

// AddIgnoreDir excludes dir and its subtree from future scans. Entries
// containing glob metacharacters are also matched as doublestar patterns.
// Directories already indexed are not rescanned.
func (a *Autoloader) AddIgnoreDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("empty ignore directory: %w", errs.ErrInvalidArgument)
	}
	abs := paths.Resolve(dir)

	a.mu.Lock()
	defer a.mu.Unlock()

	if err := a.registry.Add(registry.KeyAutoloadIgnore, abs, false); err != nil {
		return err
	}
	a.logger.Debug("Autoload ignore added", zap.String("path", abs))
	return nil
}

// Dirs returns the registered search directories in registration order,
// without duplicates.
func (a *Autoloader) Dirs() ([]string, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.dirs()
}

// Rescan rebuilds the index of every registered directory.
func (a *Autoloader) Rescan() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.rescan()
}

// Resolve returns the file defining symbol. found is false when no
// directory holds a match; that is not an error.
func (a *Autoloader) Resolve(symbol string) (path string, found bool, err error) {
	key := NormalizeSymbol(symbol)
	if key == "" {
		return "", false, fmt.Errorf("empty symbol %q: %w", symbol, errs.ErrInvalidArgument)
	}

	a.mu.Lock()
	defer a.mu.Unlock()

	path, outcome, err := a.lookup(symbol, key)
	if err != nil {
		return "", false, err
	}
	if len(a.indexes) > 0 {
		a.state = StateResolving
	}
	if outcome == monitoring.ResolveMiss && a.rescanOnMiss {
		a.logger.Debug("Rescanning after miss", zap.String("symbol", symbol))
		if err := a.rescan(); err != nil {
			return "", false, err
		}
		a.state = StateResolving
		if path, outcome, err = a.lookup(symbol, key); err != nil {
			return "", false, err
		}
	}

	a.metrics.RecordResolve(outcome)
	a.logger.Debug("Symbol resolved",
		zap.String("symbol", symbol),
		zap.String("outcome", outcome),
		zap.String("path", path))
	return path, outcome != monitoring.ResolveMiss, nil
}

// State reports the lifecycle stage.
func (a *Autoloader) State() State {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.state
}

// Index returns every indexed file ordered by directory registration, then
// key.
func (a *Autoloader) Index() ([]IndexEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	dirs, err := a.dirs()
	if err != nil {
		return nil, err
	}

	var entries []IndexEntry
	for _, dir := range dirs {
		index := a.indexes[dir]
		keys := make([]string, 0, len(index))
		for k := range index {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			entries = append(entries, IndexEntry{Dir: dir, Key: k, Path: index[k]})
		}
	}
	return entries, nil
}

// lookup runs the direct phase and, when enabled, the pattern phase.
// Directories registered without a scan, e.g. from a settings file, are
// indexed on first use.
func (a *Autoloader) lookup(symbol, key string) (string, string, error) {
	dirs, err := a.dirs()
	if err != nil {
		return "", "", err
	}

	for _, dir := range dirs {
		if _, ok := a.indexes[dir]; !ok {
			if err := a.scan(dir); err != nil {
				return "", "", err
			}
		}
		if path, ok := a.indexes[dir][key]; ok {
			return path, monitoring.ResolveDirect, nil
		}
	}

	if !a.searchEnabled() {
		return "", monitoring.ResolveMiss, nil
	}

	pattern, err := Pattern(symbol)
	if err != nil {
		return "", "", err
	}
	for _, dir := range dirs {
		for _, file := range a.files[dir] {
			name := filepath.Base(file)
			base := name[:len(name)-len(a.extension)]
			if pattern.MatchString(base) {
				return file, monitoring.ResolvePattern, nil
			}
		}
	}
	return "", monitoring.ResolveMiss, nil
}

func (a *Autoloader) searchEnabled() bool {
	return a.forceSearch || a.registry.BoolOr(registry.KeyAutoloadSearch, false)
}

func (a *Autoloader) rescan() error {
	dirs, err := a.dirs()
	if err != nil {
		return err
	}

	a.indexes = make(map[string]map[string]string, len(dirs))
	a.files = make(map[string][]string, len(dirs))
	for _, dir := range dirs {
		if err := a.scan(dir); err != nil {
			return err
		}
	}
	if len(dirs) > 0 {
		a.state = StateIndexed
	}
	return nil
}

func (a *Autoloader) dirs() ([]string, error) {
	if !a.registry.IsKey(registry.KeyAutoload) {
		return nil, nil
	}
	raw, err := a.registry.Strings(registry.KeyAutoload)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool, len(raw))
	dirs := make([]string, 0, len(raw))
	for _, dir := range raw {
		abs := paths.Resolve(dir)
		if !seen[abs] {
			seen[abs] = true
			dirs = append(dirs, abs)
		}
	}
	return dirs, nil
}

func checkDir(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("autoload directory %s: %v: %w", path, err, errs.ErrNotFound)
	}
	if !info.IsDir() {
		return fmt.Errorf("autoload path %s is not a directory: %w", path, errs.ErrInvalidArgument)
	}
	return nil
}
