package config

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.Mode != "stdio" {
		t.Errorf("Expected default mode to be 'stdio', got '%s'", cfg.Mode)
	}

	if cfg.SheetName != "Datos" {
		t.Errorf("Expected default sheet name to be 'Datos', got '%s'", cfg.SheetName)
	}

	if !cfg.UseTemplateHeuristics {
		t.Errorf("Expected template heuristics to be enabled by default")
	}

	if cfg.MaxPages != 2000 {
		t.Errorf("Expected default max pages to be 2000, got %d", cfg.MaxPages)
	}

	if !cfg.IncludePDFPage {
		t.Errorf("Expected the page column to be enabled by default")
	}

	if cfg.PresetPath != "" {
		t.Errorf("Expected no preset path by default, got '%s'", cfg.PresetPath)
	}

	if cfg.ServerName != "certextract" {
		t.Errorf("Expected default server name to be 'certextract', got '%s'", cfg.ServerName)
	}

	if cfg.LogLevel != "info" {
		t.Errorf("Expected default log level to be 'info', got '%s'", cfg.LogLevel)
	}

	if cfg.MaxFileSize != 100*1024*1024 {
		t.Errorf("Expected default max file size to be 100MB, got %d", cfg.MaxFileSize)
	}
}

func TestConfigValidate(t *testing.T) {
	valid := func(mutate func(*Config)) *Config {
		cfg := DefaultConfig()
		mutate(cfg)
		return cfg
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
	}{
		{
			name:    "valid config - stdio mode",
			config:  DefaultConfig(),
			wantErr: false,
		},
		{
			name:    "valid config - server mode",
			config:  valid(func(c *Config) { c.Mode = "server" }),
			wantErr: false,
		},
		{
			name:    "invalid mode",
			config:  valid(func(c *Config) { c.Mode = "invalid" }),
			wantErr: true,
		},
		{
			name:    "empty sheet name",
			config:  valid(func(c *Config) { c.SheetName = "" }),
			wantErr: true,
		},
		{
			name:    "max pages too low",
			config:  valid(func(c *Config) { c.MaxPages = 0 }),
			wantErr: true,
		},
		{
			name:    "max pages above ceiling",
			config:  valid(func(c *Config) { c.MaxPages = MaxPagesCeiling + 1 }),
			wantErr: true,
		},
		{
			name:    "max pages at ceiling",
			config:  valid(func(c *Config) { c.MaxPages = MaxPagesCeiling }),
			wantErr: false,
		},
		{
			name:    "missing preset file",
			config:  valid(func(c *Config) { c.PresetPath = filepath.Join("no", "existe.json") }),
			wantErr: true,
		},
		{
			name:    "invalid log level",
			config:  valid(func(c *Config) { c.LogLevel = "verbose" }),
			wantErr: true,
		},
		{
			name:    "non-positive max file size",
			config:  valid(func(c *Config) { c.MaxFileSize = 0 }),
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfigModeHelpers(t *testing.T) {
	cfg := DefaultConfig()

	if !cfg.IsStdioMode() {
		t.Errorf("Expected IsStdioMode() to be true for default config")
	}
	if cfg.IsServerMode() {
		t.Errorf("Expected IsServerMode() to be false for default config")
	}

	cfg.Mode = ModeServer
	if !cfg.IsServerMode() {
		t.Errorf("Expected IsServerMode() to be true after switching modes")
	}
	if cfg.IsStdioMode() {
		t.Errorf("Expected IsStdioMode() to be false after switching modes")
	}
}

func TestConfigIsDebug(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.IsDebug() {
		t.Errorf("Expected IsDebug() to be false at the info level")
	}

	cfg.LogLevel = "debug"
	if !cfg.IsDebug() {
		t.Errorf("Expected IsDebug() to be true at the debug level")
	}
}

func TestConfigString(t *testing.T) {
	cfg := DefaultConfig()
	s := cfg.String()

	for _, fragment := range []string{"Mode: stdio", "Sheet: Datos", "MaxPages: 2000"} {
		if !strings.Contains(s, fragment) {
			t.Errorf("Expected String() to contain %q, got %q", fragment, s)
		}
	}
}
