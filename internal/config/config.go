// Package config loads codescope configuration from .codescope/config.yml
// with environment-variable overrides.
package config

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/codescope/codescope/internal/parsers"
)

// Config is the full codescope configuration.
type Config struct {
	// Ignore holds extra glob patterns layered on the fixed pruned
	// directory set (node_modules, .git, dist, .idea, .vscode).
	Ignore []string `mapstructure:"ignore"`

	Chunking   ChunkingConfig   `mapstructure:"chunking"`
	Storage    StorageConfig    `mapstructure:"storage"`
	Generation GenerationConfig `mapstructure:"generation"`
	Languages  LanguagesConfig  `mapstructure:"languages"`
}

// ChunkingConfig controls the context chunker.
type ChunkingConfig struct {
	// MaxSize is the per-chunk size budget in estimated units.
	MaxSize int `mapstructure:"max_size"`
}

// StorageConfig controls run persistence.
type StorageConfig struct {
	// Path of the SQLite run database, relative to the project root.
	Path string `mapstructure:"path"`
}

// GenerationConfig describes the external text-generation service.
type GenerationConfig struct {
	Endpoint       string `mapstructure:"endpoint"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

// LanguagesConfig enables parsers beyond the default TS/JS/YAML set.
type LanguagesConfig struct {
	// Extra language names, e.g. ["python"].
	Extra []string `mapstructure:"extra"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Ignore: []string{},
		Chunking: ChunkingConfig{
			MaxSize: 32000,
		},
		Storage: StorageConfig{
			Path: filepath.Join(".codescope", "runs.db"),
		},
		Generation: GenerationConfig{
			Endpoint:       "http://127.0.0.1:8121/generate",
			TimeoutSeconds: 60,
		},
		Languages: LanguagesConfig{
			Extra: []string{},
		},
	}
}

// Load reads configuration for the project rooted at rootDir. Priority:
// environment variables (CODESCOPE_*) over the config file over defaults.
// A missing config file is not an error.
func Load(rootDir string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(rootDir, ".codescope"))

	v.SetEnvPrefix("CODESCOPE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.BindEnv("chunking.max_size")
	v.BindEnv("storage.path")
	v.BindEnv("generation.endpoint")
	v.BindEnv("generation.timeout_seconds")

	defaults := Default()
	v.SetDefault("ignore", defaults.Ignore)
	v.SetDefault("chunking.max_size", defaults.Chunking.MaxSize)
	v.SetDefault("storage.path", defaults.Storage.Path)
	v.SetDefault("generation.endpoint", defaults.Generation.Endpoint)
	v.SetDefault("generation.timeout_seconds", defaults.Generation.TimeoutSeconds)
	v.SetDefault("languages.extra", defaults.Languages.Extra)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks configuration invariants.
func (c *Config) Validate() error {
	if c.Chunking.MaxSize < 1 {
		return fmt.Errorf("chunking.max_size must be >= 1, got %d", c.Chunking.MaxSize)
	}
	if c.Storage.Path == "" {
		return fmt.Errorf("storage.path must not be empty")
	}
	if c.Generation.TimeoutSeconds < 1 {
		return fmt.Errorf("generation.timeout_seconds must be >= 1, got %d", c.Generation.TimeoutSeconds)
	}
	for _, lang := range c.Languages.Extra {
		if lang != "python" {
			return fmt.Errorf("unsupported extra language: %s", lang)
		}
	}
	return nil
}

// BuildRegistry returns the parser registry for this configuration: the
// default TS/JS/YAML set plus any enabled extra languages, appended after
// the defaults so they never shadow them.
func (c *Config) BuildRegistry() *parsers.Registry {
	registry := parsers.DefaultRegistry()
	for _, lang := range c.Languages.Extra {
		if lang == "python" {
			registry.Register(parsers.NewPythonParser())
		}
	}
	return registry
}
