package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"
)

// setTestHome sets the appropriate home directory environment variable for the current OS
func setTestHome(t *testing.T, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Setenv("USERPROFILE", dir)
		return
	}
	t.Setenv("HOME", dir)
}

func writeConfig(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("Failed to create config directory: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config file: %v", err)
	}
}

const sampleConfig = `host: health.internal
port: 3000
theme: nord
log_level: debug
widgets:
  - server_set: web
    title: Web tier
  - server_set: db
`

func TestLoad_ConfigFileNotFound(t *testing.T) {
	setTestHome(t, t.TempDir())

	cfg, err := Load()
	if err == nil {
		t.Fatal("Load() should fail when config file is not found")
	}
	if cfg != nil {
		t.Error("Expected cfg to be nil when config file is not found")
	}
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Expected ErrConfigNotFound, got %v", err)
	}
	if !strings.Contains(err.Error(), "config.yaml") {
		t.Errorf("Expected error message to mention 'config.yaml', got: %s", err)
	}
}

func TestLoad_WithConfigFile(t *testing.T) {
	tempDir := t.TempDir()
	writeConfig(t, filepath.Join(tempDir, ".config", "hcwatch", "config.yaml"), sampleConfig)
	setTestHome(t, tempDir)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Host != "health.internal" {
		t.Errorf("Expected Host 'health.internal', got %s", cfg.Host)
	}
	if cfg.Port != 3000 {
		t.Errorf("Expected Port 3000, got %d", cfg.Port)
	}
	if cfg.Theme != "nord" {
		t.Errorf("Expected Theme 'nord', got %s", cfg.Theme)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected LogLevel 'debug', got %s", cfg.LogLevel)
	}
	if len(cfg.Widgets) != 2 {
		t.Fatalf("Expected 2 widgets, got %d", len(cfg.Widgets))
	}
	if cfg.Widgets[0].ServerSet != "web" || cfg.Widgets[0].Title != "Web tier" {
		t.Errorf("Unexpected first widget: %+v", cfg.Widgets[0])
	}
}

func TestLoadFrom_Defaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "host: localhost\nwidgets:\n  - server_set: web\n")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}

	if cfg.Port != DefaultPort {
		t.Errorf("Port = %d, want %d", cfg.Port, DefaultPort)
	}
	if cfg.Theme != DefaultTheme {
		t.Errorf("Theme = %s, want %s", cfg.Theme, DefaultTheme)
	}
	if cfg.LogLevel != DefaultLogLevel || cfg.LogFormat != DefaultLogFormat {
		t.Errorf("log settings = %s/%s, want defaults", cfg.LogLevel, cfg.LogFormat)
	}
	if cfg.Path() != path {
		t.Errorf("Path() = %s, want %s", cfg.Path(), path)
	}
}

func TestLoadFrom_EnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, sampleConfig)

	t.Setenv("HCWATCH_HOST", "override.example")
	t.Setenv("HCWATCH_PORT", "9090")

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() failed: %v", err)
	}
	if cfg.Host != "override.example" {
		t.Errorf("Host = %s, want override.example", cfg.Host)
	}
	if cfg.Port != 9090 {
		t.Errorf("Port = %d, want 9090", cfg.Port)
	}
}

func TestLoadFrom_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "port: 3000\nwidgets:\n  - server_set: web\n")

	if _, err := LoadFrom(path); err == nil || !strings.Contains(err.Error(), "host") {
		t.Errorf("Expected host validation error, got %v", err)
	}
}

func TestLoadFrom_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, "host: [unterminated\n")

	_, err := LoadFrom(path)
	if err == nil {
		t.Fatal("Expected malformed YAML to fail")
	}
	if errors.Is(err, ErrConfigNotFound) {
		t.Error("Malformed YAML is not a missing file")
	}
}

func TestGetPath_ReturnsExpectedPath(t *testing.T) {
	tempDir := t.TempDir()
	setTestHome(t, tempDir)

	path, err := GetPath()
	if err != nil {
		t.Fatalf("GetPath() failed: %v", err)
	}
	if want := filepath.Join(tempDir, ".config", "hcwatch", "config.yaml"); path != want {
		t.Errorf("GetPath() = %s, want %s", path, want)
	}

	logPath, err := DefaultLogPath()
	if err != nil {
		t.Fatalf("DefaultLogPath() failed: %v", err)
	}
	if want := filepath.Join(tempDir, ".config", "hcwatch", "hcwatch.log"); logPath != want {
		t.Errorf("DefaultLogPath() = %s, want %s", logPath, want)
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Host:    "localhost",
			Port:    80,
			Theme:   "dark",
			Widgets: []Widget{{ServerSet: "web"}},
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid config", mutate: func(c *Config) {}},
		{name: "multiple widgets", mutate: func(c *Config) { c.Widgets = append(c.Widgets, Widget{ServerSet: "db"}) }},
		{name: "highest port", mutate: func(c *Config) { c.Port = 65535 }},
		{name: "empty host", mutate: func(c *Config) { c.Host = "  " }, wantErr: true},
		{name: "port zero", mutate: func(c *Config) { c.Port = 0 }, wantErr: true},
		{name: "port too large", mutate: func(c *Config) { c.Port = 65536 }, wantErr: true},
		{name: "empty theme", mutate: func(c *Config) { c.Theme = "" }, wantErr: true},
		{name: "no widgets", mutate: func(c *Config) { c.Widgets = nil }, wantErr: true},
		{name: "widget without server set", mutate: func(c *Config) { c.Widgets = []Widget{{Title: "x"}} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Config.Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_GetTheme(t *testing.T) {
	if got := (&Config{}).GetTheme(); got != DefaultTheme {
		t.Errorf("GetTheme() = %s, want %s", got, DefaultTheme)
	}
	if got := (&Config{Theme: "gruvbox"}).GetTheme(); got != "gruvbox" {
		t.Errorf("GetTheme() = %s, want gruvbox", got)
	}
}

func TestConfig_PollerConfigs(t *testing.T) {
	cfg := Config{
		Host: "health.internal",
		Port: 3000,
		Widgets: []Widget{
			{ServerSet: "web", Title: "Web tier"},
			{ServerSet: "db"},
		},
	}

	got := cfg.PollerConfigs()
	if len(got) != 2 {
		t.Fatalf("Expected 2 poller configs, got %d", len(got))
	}
	if got[0].Host != "health.internal" || got[0].Port != 3000 || got[0].ServerSet != "web" || got[0].Title != "Web tier" {
		t.Errorf("Unexpected first config: %+v", got[0])
	}
	if got[1].Title != "db" {
		t.Errorf("Expected untitled widget to use its server set, got %q", got[1].Title)
	}
}

func TestConfigSave(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, sampleConfig)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	cfg.Theme = "gruvbox"
	if err := cfg.Save(); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if reloaded.Theme != "gruvbox" {
		t.Errorf("Expected saved theme 'gruvbox', got '%s'", reloaded.Theme)
	}
	if reloaded.Host != "health.internal" || len(reloaded.Widgets) != 2 {
		t.Errorf("Other fields not preserved: %+v", reloaded)
	}
}

func TestConfigSaveValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, sampleConfig)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	cfg.Port = -1
	if err := cfg.Save(); err == nil {
		t.Error("Expected save to fail with invalid port")
	}

	unsaved := Default("localhost")
	if err := unsaved.Save(); err == nil {
		t.Error("Expected save to fail without a file path")
	}
}

func TestConfigUpdateTheme(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	writeConfig(t, path, sampleConfig)

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if err := cfg.UpdateTheme(""); err == nil {
		t.Error("Expected UpdateTheme to fail with empty theme name")
	}
	if cfg.Theme != "nord" {
		t.Errorf("Expected theme to remain 'nord', got '%s'", cfg.Theme)
	}

	if err := cfg.UpdateTheme("light"); err != nil {
		t.Fatalf("Failed to update theme: %v", err)
	}
	reloaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Failed to reload config: %v", err)
	}
	if reloaded.Theme != "light" {
		t.Errorf("Expected updated theme 'light', got '%s'", reloaded.Theme)
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	if err := WriteDefault(path, "health.internal", false); err != nil {
		t.Fatalf("WriteDefault() failed: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("Default config should load: %v", err)
	}
	if cfg.Host != "health.internal" {
		t.Errorf("Host = %s, want health.internal", cfg.Host)
	}
	if len(cfg.Widgets) != 1 || cfg.Widgets[0].ServerSet != "default" {
		t.Errorf("Unexpected widgets: %+v", cfg.Widgets)
	}

	if err := WriteDefault(path, "other", false); err == nil {
		t.Error("Expected WriteDefault to refuse to overwrite")
	}
	if err := WriteDefault(path, "other", true); err != nil {
		t.Errorf("WriteDefault with force failed: %v", err)
	}
}

func TestDefault_EmptyHost(t *testing.T) {
	if got := Default("").Host; got != "localhost" {
		t.Errorf("Default(\"\").Host = %s, want localhost", got)
	}
}
