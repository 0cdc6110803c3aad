package commands

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/AlgoFoe/hackpack"
	"github.com/AlgoFoe/hackpack/internal/config"
	"github.com/AlgoFoe/hackpack/internal/exec"
	"github.com/AlgoFoe/hackpack/internal/input"
	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/logger"
	"github.com/AlgoFoe/hackpack/internal/output"
)

type configKey struct{}

// RootCmd creates and returns the root command for the HackPack CLI
func RootCmd() *cobra.Command {
	var (
		verbose    bool
		configFile string
	)

	cmd := &cobra.Command{
		Use:   "hackpack",
		Short: "Scaffold front-end projects with a UI library already wired in",
		Long: `HackPack runs the official generator for your framework, then wires a
UI library into the fresh project:
• Installs the library and its peers with your package manager
• Writes Tailwind, PostCSS and tsconfig settings
• Patches the root layout and stylesheet
• Replaces the starter page with a working demo

Frameworks: Next.js, Vite + React, Vue, Angular, Astro

Example:
  hackpack new myapp --framework next --ui daisyui`,
		Version:       hackpack.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}
			output.SetVerbose(verbose || cfg.Verbose)
			if cfg.File != "" {
				output.Verbose("Using config " + cfg.File)
			}
			cmd.SetContext(context.WithValue(cmd.Context(), configKey{}, cfg))
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output for debugging")
	cmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file (default: ./hackpack.yml, then the user config dir)")

	return cmd
}

// configFrom returns the config loaded by the root command, or built-in
// defaults when a subcommand runs on its own.
func configFrom(ctx context.Context) *config.Config {
	if ctx != nil {
		if cfg, ok := ctx.Value(configKey{}).(*config.Config); ok {
			return cfg
		}
	}
	return &config.Config{PackageManager: install.NPM, LogLevel: logger.LevelWarn}
}

// newLogger logs stage diagnostics at the configured level; --verbose
// lowers it to debug.
func newLogger(cfg *config.Config) logger.Logger {
	level := cfg.LogLevel
	if output.IsVerbose() {
		level = logger.LevelDebug
	}
	return logger.New(level, logStderr)
}

// logStderr receives stage diagnostics. Tests redirect it.
var logStderr io.Writer = os.Stderr

// newRunner builds the runner for generators and installs. Tests swap it for
// an exec.Recorder.
var newRunner = func() exec.Runner {
	return exec.NewExecutor(&exec.Options{
		Spinner: input.IsTerminal(),
		Verbose: output.IsVerbose(),
	})
}
