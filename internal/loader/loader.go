package loader

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"
	"time"

	"github.com/GriffinCanCode/vcms/internal/domain/registry"
	"github.com/GriffinCanCode/vcms/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/vcms/internal/shared/errs"
	"github.com/GriffinCanCode/vcms/internal/shared/paths"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultMaxDepth bounds JSON nesting.
const DefaultMaxDepth = 512

// Loader reads settings files into a registry.
type Loader struct {
	registry *registry.Registry
	logger   *zap.Logger
	metrics  *monitoring.Metrics
	maxDepth int
}

// Option configures a Loader.
type Option func(*Loader)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(l *Loader) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// WithMetrics sets the metrics collector.
func WithMetrics(metrics *monitoring.Metrics) Option {
	return func(l *Loader) {
		l.metrics = metrics
	}
}

// WithMaxDepth overrides the JSON nesting limit.
func WithMaxDepth(depth int) Option {
	return func(l *Loader) {
		if depth > 0 {
			l.maxDepth = depth
		}
	}
}

// New creates a loader writing into reg.
func New(reg *registry.Registry, opts ...Option) *Loader {
	l := &Loader{
		registry: reg,
		logger:   zap.NewNop(),
		maxDepth: DefaultMaxDepth,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// session tracks one top-level Load call and its recursive includes.
type session struct {
	id      string
	visited map[string]bool
	files   int
}

// Load reads path and every file it includes. Bindings applied before a
// failure are not rolled back.
func (l *Loader) Load(path string) error {
	sess := &session{
		id:      uuid.NewString(),
		visited: make(map[string]bool),
	}
	start := time.Now()
	log := l.logger.With(zap.String("session", sess.id))

	if err := l.load(sess, log, path); err != nil {
		l.metrics.RecordLoadError(errs.KindName(err))
		log.Error("Configuration load failed", zap.String("path", path), zap.Error(err))
		return err
	}

	log.Info("Configuration loaded",
		zap.String("path", path),
		zap.Int("files", sess.files),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

func (l *Loader) load(sess *session, log *zap.Logger, path string) error {
	abs := paths.Resolve(path)

	data, err := os.ReadFile(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("configuration file %s: %w", abs, errs.ErrNotFound)
		}
		return fmt.Errorf("cannot read configuration file %s: %v: %w", abs, err, errs.ErrNotFound)
	}
	sess.visited[abs] = true

	format := formatOf(abs)
	doc, err := decode(abs, format, data, l.maxDepth)
	if err != nil {
		return err
	}

	sess.files++
	l.metrics.RecordFileLoaded(string(format))
	log.Debug("Configuration file decoded",
		zap.String("path", abs),
		zap.String("format", string(format)),
		zap.Int("keys", len(doc)))

	for _, f := range doc {
		if err := l.apply(sess, log, f); err != nil {
			return fmt.Errorf("%s: key %q: %w", abs, f.key, err)
		}
	}
	return nil
}

// apply writes one top-level field into the registry.
func (l *Loader) apply(sess *session, log *zap.Logger, f field) error {
	if isEmptyValue(f.value) {
		log.Debug("Skipping empty key", zap.String("key", f.key))
		return nil
	}

	if f.key == registry.KeyLoad {
		return l.loadDirective(sess, log, f.value)
	}

	obj, isObject := f.value.(map[string]any)
	if !isObject {
		// bare values are stored as lists so they read the same as Add-ed ones
		value := f.value
		if _, isList := value.([]any); !isList {
			value = []any{value}
		}
		return l.registry.Set(f.key, value, true)
	}

	inner, hasValue := obj["value"]
	if !hasValue {
		return l.registry.Add(f.key, obj, true)
	}
	if isEmptyValue(inner) {
		log.Debug("Skipping empty value", zap.String("key", f.key))
		return nil
	}

	readonly := true
	if raw, ok := obj["readonly"]; ok {
		flag, ok := raw.(bool)
		if !ok {
			return fmt.Errorf("readonly must be a boolean, got %T: %w", raw, errs.ErrInvalidArgument)
		}
		readonly = flag
	}
	return l.registry.Add(f.key, inner, readonly)
}

// loadDirective handles the reserved "load" key: one path, a list of paths,
// or an object whose "value" holds either.
func (l *Loader) loadDirective(sess *session, log *zap.Logger, value any) error {
	switch v := value.(type) {
	case string:
		return l.include(sess, log, v)
	case []any:
		for i, item := range v {
			switch entry := item.(type) {
			case string:
				if err := l.include(sess, log, entry); err != nil {
					return err
				}
			case []any, map[string]any:
				return fmt.Errorf("load entry %d is a nested %T: %w", i, entry, errs.ErrUnsupportedStructure)
			default:
				return fmt.Errorf("load entry %d is %T, not a path: %w", i, entry, errs.ErrInvalidArgument)
			}
		}
		return nil
	case map[string]any:
		inner, ok := v["value"]
		if !ok {
			return fmt.Errorf("load object without value: %w", errs.ErrUnsupportedStructure)
		}
		if _, nested := inner.(map[string]any); nested {
			return fmt.Errorf("load value is a nested object: %w", errs.ErrUnsupportedStructure)
		}
		return l.loadDirective(sess, log, inner)
	default:
		return fmt.Errorf("load is %T, not a path: %w", value, errs.ErrInvalidArgument)
	}
}

// include records path under the load key and loads it, unless it was
// already recorded or visited in this session.
func (l *Loader) include(sess *session, log *zap.Logger, path string) error {
	if path == "" {
		return nil
	}

	var recorded []string
	if l.registry.IsKey(registry.KeyLoad) {
		var err error
		recorded, err = l.registry.Strings(registry.KeyLoad)
		if err != nil {
			return err
		}
	}
	if slices.Contains(recorded, path) || sess.visited[paths.Resolve(path)] {
		log.Debug("Skipping already loaded file", zap.String("path", path))
		return nil
	}

	if err := l.registry.Add(registry.KeyLoad, path, false); err != nil {
		return err
	}
	return l.load(sess, log, path)
}

func isEmptyValue(value any) bool {
	switch v := value.(type) {
	case nil:
		return true
	case string:
		return v == ""
	case []any:
		return len(v) == 0
	case map[string]any:
		return len(v) == 0
	}
	return false
}
