package registry

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/vcms/internal/shared/errs"
	"github.com/GriffinCanCode/vcms/internal/shared/paths"
	"go.uber.org/zap"
)

// Seeder writes the keys every bootstrap needs before any settings file is
// read.
type Seeder struct {
	registry *Registry
	logger   *zap.Logger
}

// NewSeeder creates a seeder for reg.
func NewSeeder(reg *Registry, logger *zap.Logger) *Seeder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Seeder{registry: reg, logger: logger}
}

// Seed binds settings_path, debug_enabled and lib_path read-only. The
// settings file must exist and be readable.
func (s *Seeder) Seed(settingsPath string, debug bool, libPath string) error {
	if settingsPath == "" {
		return fmt.Errorf("seed: settings path is required: %w", errs.ErrInvalidArgument)
	}
	if libPath == "" {
		return fmt.Errorf("seed: lib path is required: %w", errs.ErrInvalidArgument)
	}

	settingsPath = paths.Resolve(settingsPath)
	if err := checkReadable(settingsPath); err != nil {
		return err
	}

	seeds := []struct {
		key   string
		value any
	}{
		{KeySettingsPath, settingsPath},
		{KeyDebug, debug},
		{KeyLibPath, paths.Resolve(libPath)},
	}
	for _, seed := range seeds {
		if err := s.registry.Set(seed.key, seed.value, true); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	s.logger.Info("Registry seeded",
		zap.String("settings", settingsPath),
		zap.Bool("debug", debug),
		zap.String("lib", libPath))
	return nil
}

func checkReadable(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("settings file %s is not readable: %v: %w", path, err, errs.ErrNotFound)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("settings file %s: %v: %w", path, err, errs.ErrNotFound)
	}
	if info.IsDir() {
		return fmt.Errorf("settings path %s is a directory: %w", path, errs.ErrInvalidArgument)
	}
	return nil
}
