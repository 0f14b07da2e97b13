// Package config loads project settings of the ss compiler
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/spf13/viper"
)

// FileName is the name of the project file looked up in the working directory
const FileName = "ss.toml"

type Config struct {
	Project ProjectConfig `mapstructure:"project"`
	HTML    HTMLConfig    `mapstructure:"html"`
	Log     LogConfig     `mapstructure:"log"`
}

type ProjectConfig struct {
	Name    string `mapstructure:"name"`
	Source  string `mapstructure:"source"`
	Output  string `mapstructure:"output"`
	Workers int    `mapstructure:"workers"`
}

type HTMLConfig struct {
	Layout  string   `mapstructure:"layout"` // path to page template, empty for the built-in one
	Styles  []string `mapstructure:"styles"`
	Scripts []string `mapstructure:"scripts"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

func Default() *Config {
	return &Config{
		Project: ProjectConfig{
			Source:  ".",
			Output:  "dist",
			Workers: runtime.NumCPU(),
		},
		HTML: HTMLConfig{
			Styles:  []string{"https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.css"},
			Scripts: []string{"https://cdn.jsdelivr.net/npm/katex@0.16.11/dist/katex.min.js"},
		},
		Log: LogConfig{Level: "info"},
	}
}

// Load reads configuration from a TOML file and SS_* environment variables. When path is empty, ss.toml is
// looked up in the working directory and it's fine if there is none.
func Load(fs afero.Fs, path string) (*Config, error) {
	v := viper.New()
	v.SetFs(fs)

	setDefaults(v)

	v.SetEnvPrefix("SS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetConfigType("toml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(strings.TrimSuffix(FileName, ".toml"))
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &nf) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

func (c *Config) Validate() error {
	if c.Project.Source == "" {
		return errors.New("project source directory is required")
	}

	if c.Project.Output == "" {
		return errors.New("project output directory is required")
	}

	if c.Project.Workers < 0 {
		return fmt.Errorf("invalid number of workers: %d", c.Project.Workers)
	}

	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	return nil
}

// LogLevel returns configured level, Validate makes sure it's parseable
func (c *Config) LogLevel() zerolog.Level {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.InfoLevel
	}

	return level
}

func setDefaults(v *viper.Viper) {
	defaults := Default()
	v.SetDefault("project.name", defaults.Project.Name)
	v.SetDefault("project.source", defaults.Project.Source)
	v.SetDefault("project.output", defaults.Project.Output)
	v.SetDefault("project.workers", defaults.Project.Workers)
	v.SetDefault("html.layout", defaults.HTML.Layout)
	v.SetDefault("html.styles", defaults.HTML.Styles)
	v.SetDefault("html.scripts", defaults.HTML.Scripts)
	v.SetDefault("log.level", defaults.Log.Level)
}
