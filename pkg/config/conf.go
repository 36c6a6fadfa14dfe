package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/mchmarny/kappa/pkg/kappa"
	"gopkg.in/yaml.v3"
)

const (
	// AppDirName is the per-user directory holding the default config file.
	AppDirName     = ".kappa"
	configFileName = "config.yaml"
	dirMode        = 0700
	fileMode       = 0600

	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

var (
	// Formats lists the supported output formats.
	Formats = []string{FormatText, FormatJSON, FormatYAML}

	// LogLevels lists the accepted log_level values.
	LogLevels = []string{"debug", "info", "warn", "warning", "error"}
)

// Config holds defaults applied before command line flags.
type Config struct {
	Scheme   string `yaml:"scheme"`
	Weights  string `yaml:"weights,omitempty"`
	CSV      bool   `yaml:"csv"`
	Format   string `yaml:"format"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Scheme:   kappa.SchemeLinear.String(),
		Format:   FormatText,
		LogLevel: "info",
	}
}

// Validate checks the scheme, format and log level values. An empty log
// level means info.
func (c *Config) Validate() error {
	if c == nil {
		return errors.New("config required")
	}
	if _, err := c.Mode(); err != nil {
		return err
	}
	if !slices.Contains(Formats, NormalizeFormat(c.Format)) {
		return fmt.Errorf("invalid format %q (expected one of %s)", c.Format, strings.Join(Formats, ", "))
	}
	if lvl := strings.ToLower(strings.TrimSpace(c.LogLevel)); lvl != "" && !slices.Contains(LogLevels, lvl) {
		return fmt.Errorf("invalid log_level %q (expected one of %s)", c.LogLevel, strings.Join(LogLevels, ", "))
	}
	return nil
}

// Mode returns the weighting mode described by the config.
func (c *Config) Mode() (kappa.Mode, error) {
	s, err := kappa.ParseScheme(c.Scheme)
	if err != nil {
		return kappa.Mode{}, err
	}
	if s == kappa.SchemeCustom {
		if c.Weights == "" {
			return kappa.Mode{}, errors.New("custom scheme requires weights file")
		}
		return kappa.Custom(c.Weights), nil
	}
	return kappa.Mode{Scheme: s}, nil
}

// NormalizeFormat lowercases f and maps the yml alias to yaml.
func NormalizeFormat(f string) string {
	f = strings.ToLower(strings.TrimSpace(f))
	if f == "yml" {
		return FormatYAML
	}
	return f
}

// Save writes c as YAML to path.
func Save(path string, c *Config) error {
	if path == "" {
		return errors.New("config path required")
	}
	if c == nil {
		return errors.New("config required")
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(path, b, fileMode); err != nil {
		return fmt.Errorf("failed to write config file %s: %w", path, err)
	}
	return nil
}

// Load reads the config file at path on top of the defaults.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path required")
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening config file %s: %w", path, err)
	}
	defer f.Close()

	b, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("error reading config file %s: %w", path, err)
	}

	c := Default()
	dec := yaml.NewDecoder(bytes.NewReader(b))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("error parsing config file %s: %w", path, err)
	}

	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}
	slog.Debug("config loaded", "path", path)
	return c, nil
}

// LoadOrDefault reads path when set. Otherwise it reads the per-user config
// file if one exists, falling back to the defaults.
func LoadOrDefault(path string) (*Config, error) {
	if path != "" {
		return Load(path)
	}

	p, err := DefaultPath()
	if err != nil {
		slog.Debug("no home dir, using default config", "error", err)
		return Default(), nil
	}
	if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return Load(p)
}

// DefaultPath returns the per-user config file path. The file may not exist.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home dir: %w", err)
	}
	return filepath.Join(home, AppDirName, configFileName), nil
}

// GetOrCreateHomeDir returns the app directory under the user's home dir.
// The create flag is set to true if the directory was created.
func GetOrCreateHomeDir(name string) (path string, created bool, err error) {
	if name == "" {
		return "", false, errors.New("name cannot be empty")
	}

	if !strings.HasPrefix(name, ".") {
		name = "." + name
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return "", false, fmt.Errorf("failed to get user home dir: %w", err)
	}
	slog.Debug("home dir", "path", home)

	dir := filepath.Join(home, name)
	if _, err := os.Stat(dir); errors.Is(err, os.ErrNotExist) {
		slog.Debug("creating dir", "path", dir)
		if err := os.Mkdir(dir, dirMode); err != nil {
			return "", false, fmt.Errorf("failed to create dir %s: %w", dir, err)
		}
		created = true
	}
	return dir, created, nil
}

// Init writes the default config into the per-user app directory unless a
// config file already exists there. It returns the config file path.
func Init() (string, error) {
	dir, _, err := GetOrCreateHomeDir(AppDirName)
	if err != nil {
		return "", err
	}
	path := filepath.Join(dir, configFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}
	if err := Save(path, Default()); err != nil {
		return "", fmt.Errorf("failed to create default config: %w", err)
	}
	return path, nil
}
