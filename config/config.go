package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	goerrors "github.com/goliatone/go-errors"
	"gopkg.in/yaml.v3"

	"makedoc2rst/internal/adapter/makedoc"
	"makedoc2rst/internal/domain"
)

const configInvalidCode = "CONFIG_INVALID"

// DefaultAttribution credits the library the documentation was taken from.
const DefaultAttribution = "The information in this section was generated from " +
	"documentation included with the `Newlib C Library " +
	"<https://sourceware.org/newlib/>`_."

// Config holds all configuration for the converter.
type Config struct {
	Convert  ConvertConfig     `yaml:"convert"`
	Batch    BatchConfig       `yaml:"batch"`
	Commands map[string]string `yaml:"commands"` // extra command -> strategy entries
	Logging  LoggingConfig     `yaml:"logging"`
}

// ConvertConfig holds per-file conversion settings.
type ConvertConfig struct {
	Profile     string `yaml:"profile"` // "standard" or "legacy"
	Provenance  bool   `yaml:"provenance"`
	Attribution string `yaml:"attribution"`
}

// BatchConfig holds directory conversion settings.
type BatchConfig struct {
	Includes  []string `yaml:"includes"`
	Excludes  []string `yaml:"excludes"`
	OutputDir string   `yaml:"output_dir"`
	OutputExt string   `yaml:"output_ext"`
	Cache     bool     `yaml:"cache"`
	Prune     bool     `yaml:"prune"`
}

// LoggingConfig holds logging configuration.
type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"` // "console", "json" or "pretty"
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Convert: ConvertConfig{
			Profile:     domain.ProfileStandard.Name,
			Provenance:  true,
			Attribution: DefaultAttribution,
		},
		Batch: BatchConfig{
			Includes:  []string{"**/*.c"},
			Excludes:  []string{"**/.git/**", "**/build/**", "**/.makedoc/**"},
			OutputDir: "rst",
			OutputExt: ".rst",
			Cache:     true,
			Prune:     false,
		},
		Commands: map[string]string{},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load loads configuration from a YAML file.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil // Return defaults if no config file
		}
		return nil, err
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// LoadFromDir loads configuration from a directory (looks for makedoc.yaml).
func LoadFromDir(dir string) (*Config, error) {
	path := filepath.Join(dir, "makedoc.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	path = filepath.Join(dir, ".makedoc", "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return Load(path)
	}

	return DefaultConfig(), nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate rejects settings the converter cannot honour.
func (c *Config) Validate() error {
	errs := validation.Errors{}
	if _, ok := domain.LookupProfile(c.Convert.Profile); !ok {
		errs["convert.profile"] = validation.NewError("makedoc.config.profile_unknown",
			fmt.Sprintf("unknown profile %q", c.Convert.Profile))
	}
	if !strings.HasPrefix(c.Batch.OutputExt, ".") {
		errs["batch.output_ext"] = validation.NewError("makedoc.config.output_ext_invalid",
			fmt.Sprintf("%q must start with a dot", c.Batch.OutputExt))
	}
	for _, cmd := range sortedCommands(c.Commands) {
		if !makedoc.IsCommand(cmd) {
			errs["commands."+cmd] = validation.NewError("makedoc.config.command_invalid",
				"command names must be at least three upper-case letters or underscores")
			continue
		}
		if _, ok := domain.ParseStrategy(c.Commands[cmd]); !ok {
			errs["commands."+cmd] = validation.NewError("makedoc.config.strategy_unknown",
				fmt.Sprintf("unknown strategy %q", c.Commands[cmd]))
		}
	}
	if err := validation.Validate(strings.ToLower(c.Logging.Format),
		validation.In("", "console", "json", "pretty")); err != nil {
		errs["logging.format"] = err
	}
	if err := validation.Validate(strings.ToLower(c.Logging.Level),
		validation.In("", "trace", "debug", "info", "warn", "warning", "error")); err != nil {
		errs["logging.level"] = err
	}

	if len(errs) > 0 {
		return invalid(errs)
	}
	return nil
}

// Profile returns the conversion profile selected by the configuration.
func (c *Config) Profile() domain.Profile {
	p, _ := domain.LookupProfile(c.Convert.Profile)
	if p.Name == domain.ProfileStandard.Name && !c.Convert.Provenance {
		p.Provenance = false
	}
	return p
}

func sortedCommands(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func invalid(err error) error {
	return goerrors.Wrap(err, goerrors.CategoryValidation, "invalid configuration").
		WithTextCode(configInvalidCode)
}

// StateDir returns the directory holding converter state.
func StateDir(dir string) string {
	return filepath.Join(dir, ".makedoc")
}

// ManifestDBPath returns the path to the conversion manifest database.
func ManifestDBPath(dir string) string {
	return filepath.Join(StateDir(dir), "manifest.db")
}

// EnsureStateDir ensures the .makedoc directory exists.
func EnsureStateDir(dir string) error {
	return os.MkdirAll(StateDir(dir), 0755)
}
