// Package main provides the orrery CLI, a read-only explorer for the
// cosmos entity engine and its solar-system reference dataset.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/mesh-intelligence/orrery/pkg/catalog"
	"github.com/mesh-intelligence/orrery/pkg/cosmos"
)

// Exit codes.
const (
	exitSuccess   = 0
	exitUserError = 1
	exitSysError  = 2
)

var (
	// Global flag values.
	flagConfigDir string
	flagUniverse  string
	flagJSON      bool
	flagDebug     bool

	// logger is initialized by initApp before any subcommand runs.
	logger *zap.Logger

	// registrar holds the declared kinds, universes, and dataset loaders.
	registrar *cosmos.Registrar

	// universeName is the resolved target universe for this invocation.
	universeName string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(exitUserError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "orrery",
	Short: "Orrery explores cataloged celestial bodies",
	Long: `Orrery models celestial bodies as typed entities with unit-checked,
provenance-tagged attributes, organized into universes. It ships with a
solar-system reference dataset compiled from NASA fact sheets.`,
	SilenceUsage:      true,
	PersistentPreRunE: initApp,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default: platform config dir)")
	rootCmd.PersistentFlags().StringVar(&flagUniverse, "universe", "", "universe to operate in (default from config)")
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(universesCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
}

// initApp loads config, sets up logging, declares the astronomy kinds,
// and creates the target universe with its dataset loaders installed.
func initApp(cmd *cobra.Command, args []string) error {
	if cmd.Name() == "version" {
		return nil
	}

	config := zap.NewProductionConfig()
	if flagDebug {
		config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	var err error
	if logger, err = config.Build(); err != nil {
		return fmt.Errorf("init logger: %w", err)
	}

	cfg, err := loadConfig(flagConfigDir)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	universeName = flagUniverse
	if universeName == "" {
		universeName = cfg.GetString(cfgKeyDefaultUniverse)
	}

	registrar = cosmos.NewRegistrar()
	if err := catalog.Register(registrar); err != nil {
		return fmt.Errorf("declare kinds: %w", err)
	}
	if cfg.GetBool(cfgKeyAutoload) {
		catalog.Install(registrar, universeName)
		logger.Debug("Dataset loaders installed", zap.String("universe", universeName))
	}
	if _, err := registrar.NewUniverse(universeName); err != nil {
		return fmt.Errorf("create universe %q: %w", universeName, err)
	}
	logger.Debug("Universe ready", zap.String("universe", universeName))
	return nil
}

// targetUniverse resolves the universe this invocation operates in.
func targetUniverse() (*cosmos.Universe, error) {
	return registrar.Universe(universeName)
}
