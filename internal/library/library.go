package library

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/GriffinCanCode/vcms/internal/domain/registry"
	"github.com/GriffinCanCode/vcms/internal/shared/errs"
	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
)

// ConfigFile is the per-library settings file name.
const ConfigFile = "config.json"

// Resolver maps a class symbol to a source file.
type Resolver interface {
	Resolve(symbol string) (path string, found bool, err error)
}

// ConfigLoader loads a settings file into the registry.
type ConfigLoader interface {
	Load(path string) error
}

// Descriptor names one external library.
type Descriptor struct {
	Name  string `mapstructure:"name"`
	Class string `mapstructure:"class"`
}

// Library is a loaded external library.
type Library struct {
	Descriptor
	Source string // key the descriptor came from
	Path   string // resolved class file
	Config string // loaded config.json, empty if none
}

// Error reports a library that could not be loaded.
type Error struct {
	Name   string
	Reason string
	Err    error
}

func (e *Error) Error() string {
	name := e.Name
	if name == "" {
		name = "<unnamed>"
	}
	return fmt.Sprintf("external library %s: %s: %v", name, e.Reason, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// UserMessage returns the operator-facing reason.
func (e *Error) UserMessage() string {
	return e.Reason
}

// Loader loads external libraries.
type Loader struct {
	registry *registry.Registry
	resolver Resolver
	config   ConfigLoader
	logger   *zap.Logger
}

// New creates a library loader.
func New(reg *registry.Registry, resolver Resolver, config ConfigLoader, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		registry: reg,
		resolver: resolver,
		config:   config,
		logger:   logger,
	}
}

// LoadAll loads the lib_external libraries, then the app_external ones.
// It stops at the first failure.
func (l *Loader) LoadAll() ([]Library, error) {
	var loaded []Library
	for _, key := range []string{registry.KeyLibExternal, registry.KeyAppExternal} {
		descriptors, err := l.Descriptors(key)
		if err != nil {
			return loaded, err
		}
		for _, d := range descriptors {
			lib, err := l.load(d)
			if err != nil {
				return loaded, err
			}
			lib.Source = key
			loaded = append(loaded, lib)
		}
	}

	l.logger.Info("External libraries loaded", zap.Int("count", len(loaded)))
	return loaded, nil
}

// Descriptors decodes the descriptor list stored under key. A missing key
// yields no descriptors.
func (l *Loader) Descriptors(key string) ([]Descriptor, error) {
	value, ok := l.registry.Lookup(key)
	if !ok {
		return nil, nil
	}

	items, ok := value.([]any)
	if !ok {
		items = []any{value}
	}

	descriptors := make([]Descriptor, 0, len(items))
	for i, item := range items {
		if _, isObject := item.(map[string]any); !isObject {
			return nil, &Error{
				Reason: fmt.Sprintf("%s entry %d is not a library descriptor", key, i),
				Err:    errs.ErrInvalidArgument,
			}
		}

		var d Descriptor
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			Result:           &d,
			WeaklyTypedInput: true,
		})
		if err != nil {
			return nil, err
		}
		if err := decoder.Decode(item); err != nil {
			return nil, &Error{
				Reason: fmt.Sprintf("%s entry %d is malformed", key, i),
				Err:    fmt.Errorf("%v: %w", err, errs.ErrInvalidArgument),
			}
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

func (l *Loader) load(d Descriptor) (Library, error) {
	lib := Library{Descriptor: d}

	if d.Class == "" {
		return lib, &Error{
			Name:   d.Name,
			Reason: "Library class not set properly in the configuration file.",
			Err:    errs.ErrInvalidArgument,
		}
	}

	path, found, err := l.resolver.Resolve(d.Class)
	if err != nil {
		return lib, &Error{Name: d.Name, Reason: "Library class could not be resolved.", Err: err}
	}
	if !found {
		return lib, &Error{
			Name:   d.Name,
			Reason: "Library class does not exist - filename might not be recognized by the autoloader.",
			Err:    fmt.Errorf("class %s: %w", d.Class, errs.ErrNotFound),
		}
	}
	lib.Path = path

	config := filepath.Join(filepath.Dir(path), ConfigFile)
	if info, err := os.Stat(config); err == nil && info.Mode().IsRegular() {
		if err := l.config.Load(config); err != nil {
			return lib, &Error{Name: d.Name, Reason: "Library configuration could not be loaded.", Err: err}
		}
		lib.Config = config
	}

	l.logger.Debug("External library loaded",
		zap.String("name", d.Name),
		zap.String("class", d.Class),
		zap.String("path", path),
		zap.String("config", lib.Config))
	return lib, nil
}
