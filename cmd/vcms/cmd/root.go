package cmd

import (
	"fmt"
	"os"

	"github.com/GriffinCanCode/vcms/internal/bootstrap"
	"github.com/GriffinCanCode/vcms/internal/infrastructure/config"
	"github.com/spf13/cobra"
)

var (
	settingsPath string
	libPath      string
	debug        bool
	search       bool
	devLogs      bool
)

var rootCmd = &cobra.Command{
	Use:   "vcms",
	Short: "Bootstrap settings, registry and autoloader",
	Long: `vcms runs the bootstrap sequence of a VictoryCMS application:
it seeds the registry, loads the layered settings files, indexes the
autoload directories and loads external libraries.

Commands:
  bootstrap - run the sequence and print a summary
  resolve   - resolve symbols to source files
  dump      - print the registry contents`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		printError(err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&settingsPath, "settings", "", "settings file (default $VCMS_SETTINGS or config.json)")
	rootCmd.PersistentFlags().StringVar(&libPath, "lib", "", "library directory (default $VCMS_LIB_PATH or lib)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug mode")
	rootCmd.PersistentFlags().BoolVar(&search, "search", false, "enable autoload pattern search")
	rootCmd.PersistentFlags().BoolVar(&devLogs, "dev", false, "development logging")
}

// loadConfig reads the environment configuration and applies flags set on
// the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("settings") {
		cfg.Bootstrap.Settings = settingsPath
	}
	if flags.Changed("lib") {
		cfg.Bootstrap.LibPath = libPath
	}
	if flags.Changed("debug") {
		cfg.Bootstrap.Debug = debug
	}
	if flags.Changed("search") {
		cfg.Autoload.Search = search
	}
	if flags.Changed("dev") {
		cfg.Logging.Development = devLogs
		if devLogs {
			cfg.Logging.Level = "debug"
		}
	}
	return cfg, nil
}

// boot loads the configuration and runs the startup sequence.
func boot(cmd *cobra.Command) (*bootstrap.Core, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return bootstrap.Run(cfg)
}

func printError(err error) {
	fmt.Fprintf(os.Stderr, "Error: %s\n", bootstrap.UserMessage(err))
}
