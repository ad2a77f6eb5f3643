// Package config provides configuration loading and validation for the CLI and the local server.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/jonathan/resume-variants/internal/validation"
)

// Compiler modes
const (
	CompilerLocal  = "local"
	CompilerRemote = "remote"
	// CompilerAuto tries the remote service first and falls back to pdflatex
	CompilerAuto = "auto"
)

// Environment variables read by ApplyEnv
const (
	EnvAPIKey    = "GEMINI_API_KEY"
	EnvWorkspace = "RESUME_WORKSPACE"
	EnvLogLevel  = "RESUME_LOG_LEVEL"
)

// Config is loaded from a JSON or YAML file. Every field is optional;
// missing values come from Default or from CLI flags.
type Config struct {
	// Workspace is the SQLite database holding the master and its variants
	Workspace string `json:"workspace,omitempty" yaml:"workspace,omitempty"`
	Template  string `json:"template,omitempty" yaml:"template,omitempty"`
	OutputDir string `json:"output_dir,omitempty" yaml:"output_dir,omitempty"`

	APIKey string            `json:"api_key,omitempty" yaml:"api_key,omitempty"`
	Models map[string]string `json:"models,omitempty" yaml:"models,omitempty" validate:"dive,keys,oneof=lite standard advanced,endkeys,required"`

	Compiler       string            `json:"compiler,omitempty" yaml:"compiler,omitempty" validate:"omitempty,oneof=local remote auto"`
	RemoteEndpoint string            `json:"remote_endpoint,omitempty" yaml:"remote_endpoint,omitempty" validate:"omitempty,url"`
	PDFLatex       string            `json:"pdflatex,omitempty" yaml:"pdflatex,omitempty"`
	Limits         validation.Limits `json:"limits" yaml:"limits"`

	UseBrowser    bool `json:"use_browser,omitempty" yaml:"use_browser,omitempty"`
	CacheTTLHours int  `json:"cache_ttl_hours,omitempty" yaml:"cache_ttl_hours,omitempty" validate:"gte=0"`

	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty" validate:"omitempty,oneof=debug info warn error"`
	LogFormat string `json:"log_format,omitempty" yaml:"log_format,omitempty" validate:"omitempty,oneof=json console"`

	// Listen is the address of the local HTTP API
	Listen string `json:"listen,omitempty" yaml:"listen,omitempty" validate:"omitempty,hostname_port"`
}

// Default returns the built-in configuration
func Default() Config {
	return Config{
		Workspace:      "resume-workspace.db",
		OutputDir:      "out",
		Compiler:       CompilerAuto,
		RemoteEndpoint: validation.DefaultRemoteEndpoint,
		PDFLatex:       "pdflatex",
		Limits:         validation.Limits{MaxPages: 1, MaxCharsPerLine: 0},
		CacheTTLHours:  7 * 24,
		LogLevel:       "info",
		LogFormat:      "console",
		Listen:         "127.0.0.1:8080",
	}
}

// LoadConfig reads path as YAML when it ends in .yaml or .yml and as JSON otherwise
func LoadConfig(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config YAML: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config JSON: %w", err)
		}
	}

	return &cfg, nil
}

// ApplyEnv overrides fields from the environment. lookup is os.LookupEnv in
// production.
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvAPIKey); ok && v != "" {
		c.APIKey = v
	}
	if v, ok := lookup(EnvWorkspace); ok && v != "" {
		c.Workspace = v
	}
	if v, ok := lookup(EnvLogLevel); ok && v != "" {
		c.LogLevel = strings.ToLower(v)
	}
}

// Validate checks struct tags, then the rules tags cannot express
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	if c.Template != "" {
		if _, err := os.Stat(c.Template); os.IsNotExist(err) {
			return fmt.Errorf("config error: template file not found: %s", c.Template)
		}
	}
	if c.Compiler == CompilerRemote && c.RemoteEndpoint == "" {
		return fmt.Errorf("config error: 'remote_endpoint' is required when compiler is remote")
	}
	return nil
}

// MergeWithDefaults returns a copy of c with zero-valued fields taken from
// defaults. Booleans cannot be told apart from unset and are left alone.
func (c *Config) MergeWithDefaults(defaults Config) Config {
	result := *c

	strs := []struct {
		dst *string
		src string
	}{
		{&result.Workspace, defaults.Workspace},
		{&result.Template, defaults.Template},
		{&result.OutputDir, defaults.OutputDir},
		{&result.APIKey, defaults.APIKey},
		{&result.Compiler, defaults.Compiler},
		{&result.RemoteEndpoint, defaults.RemoteEndpoint},
		{&result.PDFLatex, defaults.PDFLatex},
		{&result.LogLevel, defaults.LogLevel},
		{&result.LogFormat, defaults.LogFormat},
		{&result.Listen, defaults.Listen},
	}
	for _, s := range strs {
		if *s.dst == "" {
			*s.dst = s.src
		}
	}

	if result.Limits.MaxPages == 0 {
		result.Limits.MaxPages = defaults.Limits.MaxPages
	}
	if result.Limits.MaxCharsPerLine == 0 {
		result.Limits.MaxCharsPerLine = defaults.Limits.MaxCharsPerLine
	}
	if result.CacheTTLHours == 0 {
		result.CacheTTLHours = defaults.CacheTTLHours
	}

	if len(defaults.Models) > 0 {
		models := make(map[string]string, len(defaults.Models)+len(c.Models))
		for k, v := range defaults.Models {
			models[k] = v
		}
		for k, v := range c.Models {
			models[k] = v
		}
		result.Models = models
	}

	return result
}
