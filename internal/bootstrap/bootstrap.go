package bootstrap

import (
	"errors"
	"fmt"
	"time"

	"github.com/GriffinCanCode/vcms/internal/autoload"
	"github.com/GriffinCanCode/vcms/internal/domain/registry"
	"github.com/GriffinCanCode/vcms/internal/infrastructure/config"
	"github.com/GriffinCanCode/vcms/internal/infrastructure/logging"
	"github.com/GriffinCanCode/vcms/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/vcms/internal/library"
	"github.com/GriffinCanCode/vcms/internal/loader"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"
)

// Stage names a step of the startup sequence.
type Stage string

const (
	StageSeed      Stage = "seed"
	StageAutoload  Stage = "autoload"
	StageSettings  Stage = "settings"
	StageLibraries Stage = "libraries"
)

var stagePrefix = map[Stage]string{
	StageSeed:      "Error seeding the registry: ",
	StageAutoload:  "Error configuring the autoloader: ",
	StageSettings:  "Error loading in configuration settings: ",
	StageLibraries: "Error loading the external libraries: ",
}

// Error reports the stage at which startup halted.
type Error struct {
	Stage Stage
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("bootstrap %s: %v", e.Stage, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

type userMessager interface {
	UserMessage() string
}

// UserMessage renders err for an operator. Errors carrying their own
// message, such as settings syntax errors, contribute it verbatim.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	detail := err.Error()
	var inner userMessager
	if errors.As(err, &inner) {
		detail = inner.UserMessage()
	}

	var bootErr *Error
	if errors.As(err, &bootErr) {
		if errors.As(bootErr.Err, &inner) {
			detail = inner.UserMessage()
		} else {
			detail = bootErr.Err.Error()
		}
		return stagePrefix[bootErr.Stage] + detail
	}
	return detail
}

// Entrypoint is a class named by the settings that the host dispatches to.
type Entrypoint struct {
	Key    string
	Symbol string
	Path   string
	Found  bool
}

// Core is the initialized runtime.
type Core struct {
	Registry    *registry.Registry
	Autoloader  *autoload.Autoloader
	Loader      *loader.Loader
	Libraries   []library.Library
	Entrypoints []Entrypoint
	Metrics     *monitoring.Metrics

	logger *logging.Logger
}

// Option configures Run.
type Option func(*options)

type options struct {
	logger     *logging.Logger
	registerer prometheus.Registerer
}

// WithLogger supplies the logger instead of building one from the config.
func WithLogger(logger *logging.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// WithRegisterer registers metrics on reg. By default a private registry is
// used.
func WithRegisterer(reg prometheus.Registerer) Option {
	return func(o *options) {
		o.registerer = reg
	}
}

// Run executes the startup sequence.
func Run(cfg *config.Config, opts ...Option) (*Core, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = newLogger(cfg.Logging)
	}
	if o.registerer == nil {
		o.registerer = prometheus.NewRegistry()
	}

	start := time.Now()
	logger.Info("Bootstrapping",
		zap.String("settings", cfg.Bootstrap.Settings),
		zap.String("lib", cfg.Bootstrap.LibPath),
		zap.Bool("debug", cfg.Bootstrap.Debug))

	metrics := monitoring.NewMetrics(o.registerer)
	reg := registry.New(registry.WithLogger(logger.Component("registry")))

	// Seed
	seeder := registry.NewSeeder(reg, logger.Component("seeder"))
	if err := seeder.Seed(cfg.Bootstrap.Settings, cfg.Bootstrap.Debug, cfg.Bootstrap.LibPath); err != nil {
		return nil, &Error{Stage: StageSeed, Err: err}
	}

	// Autoloader on the lib path
	autoloader := autoload.New(reg,
		autoload.WithLogger(logger.Component("autoload")),
		autoload.WithMetrics(metrics),
		autoload.WithExtension(cfg.Autoload.SourceExt),
		autoload.WithPatternSearch(cfg.Autoload.Search),
		autoload.WithRescanOnMiss(cfg.Autoload.RescanOnMiss),
	)
	libPath, err := reg.String(registry.KeyLibPath)
	if err != nil {
		return nil, &Error{Stage: StageAutoload, Err: err}
	}
	if err := autoloader.AddDir(libPath); err != nil {
		return nil, &Error{Stage: StageAutoload, Err: err}
	}

	// Settings
	settings := loader.New(reg,
		loader.WithLogger(logger.Component("loader")),
		loader.WithMetrics(metrics),
		loader.WithMaxDepth(cfg.Loader.MaxDepth),
	)
	settingsPath, err := reg.String(registry.KeySettingsPath)
	if err != nil {
		return nil, &Error{Stage: StageSettings, Err: err}
	}
	if err := settings.Load(settingsPath); err != nil {
		return nil, &Error{Stage: StageSettings, Err: err}
	}

	// Configured autoload and ignore directories
	if err := autoloader.Rescan(); err != nil {
		return nil, &Error{Stage: StageAutoload, Err: err}
	}

	// External libraries
	libs, err := library.New(reg, autoloader, settings, logger.Component("library")).LoadAll()
	if err != nil {
		return nil, &Error{Stage: StageLibraries, Err: err}
	}

	core := &Core{
		Registry:   reg,
		Autoloader: autoloader,
		Loader:     settings,
		Libraries:  libs,
		Metrics:    metrics,
		logger:     logger,
	}
	if core.Entrypoints, err = core.resolveEntrypoints(); err != nil {
		return nil, &Error{Stage: StageAutoload, Err: err}
	}

	logger.Info("Bootstrap complete",
		zap.Int("keys", reg.Len()),
		zap.Int("libraries", len(libs)),
		zap.Duration("elapsed", time.Since(start)))
	return core, nil
}

// resolveEntrypoints looks up the authenticator and front controller
// classes. A class that cannot be found is reported, not fatal.
func (c *Core) resolveEntrypoints() ([]Entrypoint, error) {
	var entrypoints []Entrypoint
	for _, ep := range []struct{ key, label string }{
		{registry.KeyAuthenticator, "Authenticator"},
		{registry.KeyFrontController, "Controller"},
	} {
		if !c.Registry.IsKey(ep.key) {
			continue
		}
		symbol, err := c.Registry.String(ep.key)
		if err != nil {
			return nil, err
		}

		path, found, err := c.Autoloader.Resolve(symbol)
		if err != nil {
			return nil, err
		}
		if !found {
			c.logger.Warn(fmt.Sprintf("%s class '%s' could not be found.", ep.label, symbol))
		}
		entrypoints = append(entrypoints, Entrypoint{Key: ep.key, Symbol: symbol, Path: path, Found: found})
	}
	return entrypoints, nil
}

// Close flushes the logger.
func (c *Core) Close() error {
	if c.logger == nil {
		return nil
	}
	// stderr sync fails on some platforms; not worth surfacing
	_ = c.logger.Sync()
	return nil
}

// newLogger builds the process logger. An unparseable level falls back to
// the stock configuration for the requested mode.
func newLogger(cfg config.LogConfig) *logging.Logger {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Level,
		Development: cfg.Development,
	})
	if err == nil {
		return logger
	}
	if cfg.Development {
		return logging.NewDevelopment()
	}
	return logging.NewDefault()
}
