// Package config loads hackpack.yml with viper. Values come from, in
// increasing priority: built-in defaults, the config file, HACKPACK_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/AlgoFoe/hackpack/internal/install"
	"github.com/AlgoFoe/hackpack/internal/logger"
	"github.com/AlgoFoe/hackpack/internal/page"
	"github.com/AlgoFoe/hackpack/internal/variant"
)

// EnvPrefix prefixes every environment override, e.g.
// HACKPACK_PACKAGE_MANAGER=pnpm or HACKPACK_BRAND_TITLE.
const EnvPrefix = "HACKPACK"

var frameworks = []variant.Framework{variant.Next, variant.ViteReact, variant.Vue, variant.Angular, variant.Astro}

// Defaults pre-answers the interactive questions of `hackpack new`.
type Defaults struct {
	Framework string
	Language  string
	Styling   string
	Library   string
}

// Config is the effective configuration.
type Config struct {
	PackageManager install.Manager
	NonInteractive bool
	Verbose        bool
	LogLevel       logger.Level
	Brand          page.Brand
	Generators     map[variant.Framework]string
	Defaults       Defaults

	// File is the config file that was read, empty when none was found.
	File string
}

// SearchPaths are the directories searched for hackpack.yml: the working
// directory, then $XDG_CONFIG_HOME/hackpack.
func SearchPaths() []string {
	paths := []string{"."}
	if dir, err := os.UserConfigDir(); err == nil {
		paths = append(paths, filepath.Join(dir, "hackpack"))
	}
	return paths
}

// Load reads the configuration. file, when set, must exist; otherwise
// hackpack.yml is looked up in SearchPaths and may be absent.
func Load(file string) (*Config, error) {
	return load(file, SearchPaths())
}

func load(file string, paths []string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("hackpack")
		for _, p := range paths {
			v.AddConfigPath(p)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	v.SetDefault("package_manager", string(install.NPM))
	v.SetDefault("non_interactive", false)
	v.SetDefault("verbose", false)
	v.SetDefault("log_level", "warn")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	used := v.ConfigFileUsed()
	if used != "" {
		if err := validateFile(used); err != nil {
			return nil, err
		}
	}

	pm, err := install.ParseManager(v.GetString("package_manager"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	level, err := logger.ParseLevel(v.GetString("log_level"))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	cfg := &Config{
		PackageManager: pm,
		NonInteractive: v.GetBool("non_interactive"),
		Verbose:        v.GetBool("verbose"),
		LogLevel:       level,
		Brand: page.Brand{
			Name:        v.GetString("brand.name"),
			Tagline:     v.GetString("brand.tagline"),
			Title:       v.GetString("brand.title"),
			Description: v.GetString("brand.description"),
			Theme:       v.GetString("daisyui.theme"),
		},
		Generators: map[variant.Framework]string{},
		Defaults: Defaults{
			Framework: v.GetString("defaults.framework"),
			Language:  v.GetString("defaults.language"),
			Styling:   v.GetString("defaults.styling"),
			Library:   v.GetString("defaults.library"),
		},
		File: used,
	}
	for _, fw := range frameworks {
		if spec := v.GetString("generators." + string(fw)); spec != "" {
			cfg.Generators[fw] = spec
		}
	}
	return cfg, nil
}

func validateFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}
	issues, err := Validate(data)
	if err != nil {
		return fmt.Errorf("%w: %s: %v", ErrInvalidConfig, path, err)
	}
	if len(issues) == 0 {
		return nil
	}
	lines := make([]string, len(issues))
	for i, is := range issues {
		lines[i] = "  " + is.String()
	}
	return fmt.Errorf("%w: %s\n%s", ErrInvalidConfig, path, strings.Join(lines, "\n"))
}
