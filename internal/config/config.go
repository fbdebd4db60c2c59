package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	// Mode constants
	ModeStdio  = "stdio"
	ModeServer = "server"

	// Default values
	DefaultSheetName   = "Datos"
	DefaultMaxPages    = 2000
	DefaultLogLevel    = "info"
	DefaultMaxFileSize = 100 * 1024 * 1024 // 100MB

	// MaxPagesCeiling bounds the page cap a caller may configure.
	MaxPagesCeiling = 2000
)

// Config holds all configuration for the certificate extractor.
type Config struct {
	// Server configuration (MCP binary)
	Mode string // "server" or "stdio"

	// Extraction configuration
	SheetName             string
	UseTemplateHeuristics bool
	MaxPages              int
	IncludePDFPage        bool
	PresetPath            string // optional preset JSON overriding the built-in template

	// Application configuration
	Version     string
	ServerName  string
	LogLevel    string
	MaxFileSize int64 // maximum PDF file size in bytes
}

// DefaultConfig returns a configuration with the same defaults the original
// interactive tool shipped with.
func DefaultConfig() *Config {
	return &Config{
		Mode:                  ModeStdio,
		SheetName:             DefaultSheetName,
		UseTemplateHeuristics: true,
		MaxPages:              DefaultMaxPages,
		IncludePDFPage:        true,
		Version:               "1.1.0",
		ServerName:            "certextract",
		LogLevel:              DefaultLogLevel,
		MaxFileSize:           DefaultMaxFileSize,
	}
}

// LoadFromFlags parses command line flags and returns a configuration.
func LoadFromFlags() (*Config, error) {
	cfg := DefaultConfig()

	setupViperEnvironment(cfg)
	defineCommandLineFlags(cfg)
	bindFlagsToViper()
	setupUsageMessage()

	pflag.Parse()

	populateConfigFromViper(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// setupViperEnvironment configures viper with environment variables and defaults.
func setupViperEnvironment(cfg *Config) {
	viper.SetEnvPrefix("CERTEXTRACT")
	viper.AutomaticEnv()

	viper.SetDefault("mode", cfg.Mode)
	viper.SetDefault("sheet", cfg.SheetName)
	viper.SetDefault("heuristics", cfg.UseTemplateHeuristics)
	viper.SetDefault("maxpages", cfg.MaxPages)
	viper.SetDefault("pagecolumn", cfg.IncludePDFPage)
	viper.SetDefault("preset", cfg.PresetPath)
	viper.SetDefault("loglevel", cfg.LogLevel)
	viper.SetDefault("maxfilesize", cfg.MaxFileSize)
}

// defineCommandLineFlags sets up all command line flags.
func defineCommandLineFlags(cfg *Config) {
	pflag.String("mode", cfg.Mode, "Server mode: 'stdio' for MCP standard I/O, 'server' for HTTP server")
	pflag.String("sheet", cfg.SheetName, "Excel sheet name for exported rows")
	pflag.Bool("heuristics", cfg.UseTemplateHeuristics, "Use template heuristics for fields without a pattern")
	pflag.Int("maxpages", cfg.MaxPages, "Maximum number of pages to process")
	pflag.Bool("pagecolumn", cfg.IncludePDFPage, "Add a 'Página PDF' column with the source page number")
	pflag.String("preset", cfg.PresetPath, "Path to a preset JSON with field rules (uses built-in template if empty)")
	pflag.String("loglevel", cfg.LogLevel, "Log level (debug, info, warn, error)")
	pflag.Int64("maxfilesize", cfg.MaxFileSize, "Maximum PDF file size in bytes")
}

// bindFlagsToViper binds command line flags to viper configuration.
func bindFlagsToViper() {
	_ = viper.BindPFlag("mode", pflag.Lookup("mode"))
	_ = viper.BindPFlag("sheet", pflag.Lookup("sheet"))
	_ = viper.BindPFlag("heuristics", pflag.Lookup("heuristics"))
	_ = viper.BindPFlag("maxpages", pflag.Lookup("maxpages"))
	_ = viper.BindPFlag("pagecolumn", pflag.Lookup("pagecolumn"))
	_ = viper.BindPFlag("preset", pflag.Lookup("preset"))
	_ = viper.BindPFlag("loglevel", pflag.Lookup("loglevel"))
	_ = viper.BindPFlag("maxfilesize", pflag.Lookup("maxfilesize"))
}

// setupUsageMessage configures the custom usage message.
func setupUsageMessage() {
	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage of %s:\n", os.Args[0])
		fmt.Fprintf(os.Stderr, "\nCertificate Extractor - occupational medical certificates (PDF) to Excel rows\n\n")
		fmt.Fprintf(os.Stderr, "Options:\n")
		pflag.PrintDefaults()
		fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		fmt.Fprintf(os.Stderr, "  CERTEXTRACT_MODE         Server mode\n")
		fmt.Fprintf(os.Stderr, "  CERTEXTRACT_SHEET        Excel sheet name\n")
		fmt.Fprintf(os.Stderr, "  CERTEXTRACT_HEURISTICS   Use template heuristics\n")
		fmt.Fprintf(os.Stderr, "  CERTEXTRACT_MAXPAGES     Maximum pages to process\n")
		fmt.Fprintf(os.Stderr, "  CERTEXTRACT_PAGECOLUMN   Add source page column\n")
		fmt.Fprintf(os.Stderr, "  CERTEXTRACT_PRESET       Preset JSON path\n")
		fmt.Fprintf(os.Stderr, "  CERTEXTRACT_LOGLEVEL     Log level\n")
		fmt.Fprintf(os.Stderr, "  CERTEXTRACT_MAXFILESIZE  Maximum file size\n")
	}
}

// populateConfigFromViper fills the config struct with values from viper.
func populateConfigFromViper(cfg *Config) {
	cfg.Mode = viper.GetString("mode")
	cfg.SheetName = viper.GetString("sheet")
	cfg.UseTemplateHeuristics = viper.GetBool("heuristics")
	cfg.MaxPages = viper.GetInt("maxpages")
	cfg.IncludePDFPage = viper.GetBool("pagecolumn")
	cfg.PresetPath = viper.GetString("preset")
	cfg.LogLevel = viper.GetString("loglevel")
	cfg.MaxFileSize = viper.GetInt64("maxfilesize")
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if c.Mode != ModeStdio && c.Mode != ModeServer {
		return errors.New("mode must be either 'stdio' or 'server'")
	}

	if c.SheetName == "" {
		return errors.New("sheet name cannot be empty")
	}

	if c.MaxPages < 1 || c.MaxPages > MaxPagesCeiling {
		return fmt.Errorf("maxpages must be between 1 and %d", MaxPagesCeiling)
	}

	if c.PresetPath != "" {
		if _, err := os.Stat(c.PresetPath); err != nil {
			return fmt.Errorf("cannot access preset file %s: %w", c.PresetPath, err)
		}
	}

	if c.MaxFileSize <= 0 {
		return errors.New("maximum file size must be positive")
	}

	validLogLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLogLevels[c.LogLevel] {
		return fmt.Errorf("invalid log level: %s (must be one of: debug, info, warn, error)", c.LogLevel)
	}

	return nil
}

// IsDebug returns true if debug logging is enabled.
func (c *Config) IsDebug() bool {
	return c.LogLevel == "debug"
}

// String returns a string representation of the configuration.
func (c *Config) String() string {
	return fmt.Sprintf("Config{Mode: %s, Sheet: %s, Heuristics: %t, MaxPages: %d, PageColumn: %t, Preset: %s, LogLevel: %s, MaxFileSize: %d}",
		c.Mode, c.SheetName, c.UseTemplateHeuristics, c.MaxPages, c.IncludePDFPage, c.PresetPath, c.LogLevel, c.MaxFileSize)
}

// IsServerMode returns true if the server is running in HTTP server mode.
func (c *Config) IsServerMode() bool {
	return c.Mode == ModeServer
}

// IsStdioMode returns true if the server is running in stdio mode.
func (c *Config) IsStdioMode() bool {
	return c.Mode == ModeStdio
}
