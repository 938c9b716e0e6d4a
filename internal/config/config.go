package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Elpulgo/hcwatch/internal/polling"
)

// Widget is one dashboard panel bound to a server set
type Widget struct {
	ServerSet string `mapstructure:"server_set" yaml:"server_set"`
	Title     string `mapstructure:"title" yaml:"title,omitempty"`
}

// Config holds the application configuration
type Config struct {
	Host      string   `mapstructure:"host" yaml:"host"`
	Port      int      `mapstructure:"port" yaml:"port"`
	Theme     string   `mapstructure:"theme" yaml:"theme"`
	Widgets   []Widget `mapstructure:"widgets" yaml:"widgets"`
	LogFile   string   `mapstructure:"log_file" yaml:"log_file,omitempty"`
	LogLevel  string   `mapstructure:"log_level" yaml:"log_level"`
	LogFormat string   `mapstructure:"log_format" yaml:"log_format"`

	// path is the file the configuration was loaded from
	path string
}

// Default configuration values
const (
	DefaultPort      = 80
	DefaultTheme     = "dark"
	DefaultLogLevel  = "info"
	DefaultLogFormat = "text"

	// EnvPrefix prefixes environment overrides, e.g. HCWATCH_HOST.
	EnvPrefix = "HCWATCH"

	appDir = "hcwatch"
)

// ErrConfigNotFound is returned when no configuration file exists
var ErrConfigNotFound = errors.New("config file not found")

// Dir returns the directory holding the config file and default log file
func Dir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".config", appDir), nil
}

// GetPath returns the path to the config file
func GetPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.yaml"), nil
}

// DefaultLogPath returns the log file used when log_file is not set
func DefaultLogPath() (string, error) {
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, appDir+".log"), nil
}

// Load reads the configuration from ~/.config/hcwatch/config.yaml
func Load() (*Config, error) {
	path, err := GetPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the configuration from path. Values can be overridden by
// HCWATCH_* environment variables, which are also read from a .env file in
// the working directory when one exists.
func LoadFrom(path string) (*Config, error) {
	// A missing .env is normal; existing variables win over the file.
	_ = godotenv.Load()

	// Create a new viper instance to avoid state pollution
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("host", "")
	v.SetDefault("port", DefaultPort)
	v.SetDefault("theme", DefaultTheme)
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("log_format", DefaultLogFormat)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) || errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w at: %s\nRun 'hcwatch config init' to create one", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	cfg.path = path

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// Validate checks if the configuration values are valid
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Host) == "" {
		return errors.New("host is required")
	}

	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("port must be between 1 and 65535, got %d", c.Port)
	}

	if c.Theme == "" {
		return errors.New("theme cannot be empty")
	}

	if len(c.Widgets) == 0 {
		return errors.New("at least one widget must be configured")
	}

	for i, w := range c.Widgets {
		if strings.TrimSpace(w.ServerSet) == "" {
			return fmt.Errorf("widgets[%d]: server_set is required", i)
		}
	}

	return nil
}

// GetTheme returns the configured theme name.
// Returns the default theme if the theme is empty.
func (c *Config) GetTheme() string {
	if c.Theme == "" {
		return DefaultTheme
	}
	return c.Theme
}

// Path returns the file the configuration was loaded from, if any
func (c *Config) Path() string {
	return c.path
}

// PollerConfigs returns one poller configuration per widget. A widget
// without a title is titled after its server set.
func (c *Config) PollerConfigs() []polling.Config {
	out := make([]polling.Config, 0, len(c.Widgets))
	for _, w := range c.Widgets {
		title := w.Title
		if title == "" {
			title = w.ServerSet
		}
		out = append(out, polling.Config{
			Host:      c.Host,
			Port:      c.Port,
			ServerSet: w.ServerSet,
			Title:     title,
		})
	}
	return out
}

// Save validates the configuration and writes it back to the file it was
// loaded from
func (c *Config) Save() error {
	if err := c.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.path == "" {
		return errors.New("config has no file path")
	}
	return write(c.path, c)
}

// UpdateTheme changes the theme and persists it
func (c *Config) UpdateTheme(name string) error {
	if name == "" {
		return errors.New("theme name cannot be empty")
	}

	previous := c.Theme
	c.Theme = name
	if err := c.Save(); err != nil {
		c.Theme = previous
		return err
	}
	return nil
}

// Default returns a starter configuration for host
func Default(host string) *Config {
	if host == "" {
		host = "localhost"
	}
	return &Config{
		Host:      host,
		Port:      DefaultPort,
		Theme:     DefaultTheme,
		LogLevel:  DefaultLogLevel,
		LogFormat: DefaultLogFormat,
		Widgets: []Widget{
			{ServerSet: "default", Title: "Servers"},
		},
	}
}

// WriteDefault writes a starter configuration to path. An existing file is
// only replaced when force is set.
func WriteDefault(path, host string, force bool) error {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config file already exists at: %s", path)
		}
	}
	return write(path, Default(host))
}

func write(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
