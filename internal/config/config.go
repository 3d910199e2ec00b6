// Package config resolves clawd-onboard's own settings. Values are layered
// from lowest to highest precedence: built-in defaults, a YAML file, a .env
// file in the working directory, and CLAWD_ONBOARD_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/blang/semver"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const (
	// EnvPrefix prefixes every environment override.
	EnvPrefix = "CLAWD_ONBOARD_"
	// EnvConfigFile names the variable that points at a YAML config file.
	EnvConfigFile = EnvPrefix + "CONFIG"

	defaultWorkspaceDir = "~/clawd"
	defaultRuntime      = "clawdbot"
	defaultMinVersion   = "1.0.0"
	defaultLogLevel     = "info"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("config: invalid configuration")

// DefaultYAML is written by WriteDefault.
const DefaultYAML = `# clawd-onboard configuration
# Every key can be overridden with CLAWD_ONBOARD_<KEY> (for example
# CLAWD_ONBOARD_WORKSPACE_DIR).

# Where the workspace is generated.
workspace_dir: ~/clawd

# Directory of <role>.yaml files that add to or replace built-in templates.
# templates_dir: ~/.config/clawd-onboard/templates

# debug, info, warn or error.
log_level: info

# Write skills/<skill>/SKILL.md and package.json scaffolds.
materialize_skills: true

# Runtime checked by the doctor command before generation.
runtime_binary: clawdbot
runtime_min_version: 1.0.0
skip_checks: false
`

// Config holds resolved settings.
type Config struct {
	WorkspaceDir      string `koanf:"workspace_dir"`
	TemplatesDir      string `koanf:"templates_dir"`
	LogLevel          string `koanf:"log_level"`
	MaterializeSkills bool   `koanf:"materialize_skills"`
	RuntimeBinary     string `koanf:"runtime_binary"`
	RuntimeMinVersion string `koanf:"runtime_min_version"`
	SkipChecks        bool   `koanf:"skip_checks"`

	// Source is the YAML file that was loaded, if any.
	Source string `koanf:"-"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		WorkspaceDir:      defaultWorkspaceDir,
		LogLevel:          defaultLogLevel,
		MaterializeSkills: true,
		RuntimeBinary:     defaultRuntime,
		RuntimeMinVersion: defaultMinVersion,
	}
}

// LoadOptions controls where Load looks.
type LoadOptions struct {
	// File is an explicit config path. When empty, CLAWD_ONBOARD_CONFIG is used.
	File string
	// DotEnv is the .env path. Defaults to ".env"; a missing file is ignored.
	DotEnv string
	// Home expands a leading "~". Defaults to the user's home directory.
	Home string
}

// Load resolves the configuration.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()
	k := koanf.New(".")

	path := strings.TrimSpace(opts.File)
	if path == "" {
		path = strings.TrimSpace(os.Getenv(EnvConfigFile))
	}
	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("config: load %s: %w", path, err)
		}
		cfg.Source = path
	}

	if err := loadDotEnv(k, opts.DotEnv); err != nil {
		return nil, err
	}

	envProvider := env.Provider(EnvPrefix, ".", envKey)
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}

	source := cfg.Source
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Source = source

	cfg.applyDefaults()
	cfg.normalize(opts.Home)
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	return &cfg, nil
}

// envKey maps CLAWD_ONBOARD_WORKSPACE_DIR to workspace_dir.
func envKey(s string) string {
	return strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
}

// loadDotEnv layers prefixed keys from a .env file. Variables already set in
// the process environment win, matching godotenv.Load.
func loadDotEnv(k *koanf.Koanf, path string) error {
	if path == "" {
		path = ".env"
	}
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("config: stat %s: %w", path, err)
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	for name, value := range values {
		if !strings.HasPrefix(name, EnvPrefix) || name == EnvConfigFile {
			continue
		}
		if _, set := os.LookupEnv(name); set {
			continue
		}
		if err := k.Set(envKey(name), value); err != nil {
			return fmt.Errorf("config: %s: %w", name, err)
		}
	}
	return nil
}

func (c *Config) applyDefaults() {
	def := Default()
	if strings.TrimSpace(c.WorkspaceDir) == "" {
		c.WorkspaceDir = def.WorkspaceDir
	}
	if strings.TrimSpace(c.LogLevel) == "" {
		c.LogLevel = def.LogLevel
	}
	if strings.TrimSpace(c.RuntimeBinary) == "" {
		c.RuntimeBinary = def.RuntimeBinary
	}
	if strings.TrimSpace(c.RuntimeMinVersion) == "" {
		c.RuntimeMinVersion = def.RuntimeMinVersion
	}
}

func (c *Config) normalize(home string) {
	c.WorkspaceDir = ExpandPath(c.WorkspaceDir, home)
	c.TemplatesDir = ExpandPath(c.TemplatesDir, home)
	c.LogLevel = strings.ToLower(strings.TrimSpace(c.LogLevel))
	c.RuntimeBinary = strings.TrimSpace(c.RuntimeBinary)
	c.RuntimeMinVersion = strings.TrimSpace(c.RuntimeMinVersion)
}

func (c *Config) validate() error {
	switch c.LogLevel {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("log_level must be debug, info, warn or error (got %q)", c.LogLevel)
	}
	if _, err := semver.ParseTolerant(c.RuntimeMinVersion); err != nil {
		return fmt.Errorf("runtime_min_version: %w", err)
	}
	return nil
}

// LogsDir returns the workspace logs directory.
func (c *Config) LogsDir() string {
	return filepath.Join(c.WorkspaceDir, "logs")
}

// HistoryPath returns the setup journal path.
func (c *Config) HistoryPath() string {
	return filepath.Join(c.LogsDir(), "setup-history.log")
}

// ExpandPath resolves a leading "~" against home and cleans the result.
// Empty input stays empty.
func ExpandPath(p, home string) string {
	trimmed := strings.TrimSpace(p)
	if trimmed == "" {
		return ""
	}
	if trimmed == "~" || strings.HasPrefix(trimmed, "~/") {
		if home == "" {
			home, _ = os.UserHomeDir()
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	if abs, err := filepath.Abs(trimmed); err == nil {
		return abs
	}
	return filepath.Clean(trimmed)
}

// WriteDefault writes DefaultYAML to path unless a file already exists.
// It reports whether a file was written.
func WriteDefault(path string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	} else if !errors.Is(err, fs.ErrNotExist) {
		return false, fmt.Errorf("config: stat %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return false, fmt.Errorf("config: ensure dir: %w", err)
	}
	if err := os.WriteFile(path, []byte(DefaultYAML), 0o644); err != nil {
		return false, fmt.Errorf("config: write %s: %w", path, err)
	}
	return true, nil
}
