// Package config loads and validates CLI configuration from YAML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-wikitext/md2wiki/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
)

// Config holds all configuration for wiki fragment generation.
type Config struct {
	Input   InputConfig   `yaml:"input"`
	Output  OutputConfig  `yaml:"output"`
	Convert ConvertConfig `yaml:"convert"`
	Math    MathConfig    `yaml:"math"`
}

// InputConfig defines input source options.
type InputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default input directory (empty = must specify)
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // Default output directory (empty = same as source)
}

// ConvertConfig defines conversion pipeline options.
type ConvertConfig struct {
	Tag       string `yaml:"tag"`       // Fenced-block language routed to passthrough (default "csf")
	Highlight bool   `yaml:"highlight"` // Emit highlighted <span> markup for code blocks
}

// MathConfig defines math image rendering options.
type MathConfig struct {
	Format   string `yaml:"format"`   // "png" or "svg" (default "png")
	DPI      int    `yaml:"dpi"`      // Dots per inch for PNG output (0 = default)
	FontSize int    `yaml:"fontSize"` // Point size (0 = default)
}

// Validate checks config values that would otherwise fail deep inside the
// pipeline, so the CLI can report them before touching any file.
func (c *Config) Validate() error {
	if c.Math.Format != "" {
		switch strings.ToLower(c.Math.Format) {
		case "png", "svg":
			// valid
		default:
			return fmt.Errorf("math.format: invalid value %q (must be png or svg)", c.Math.Format)
		}
	}
	if c.Math.DPI < 0 {
		return fmt.Errorf("math.dpi: must be positive, got %d", c.Math.DPI)
	}
	if c.Math.FontSize < 0 {
		return fmt.Errorf("math.fontSize: must be positive, got %d", c.Math.FontSize)
	}
	return nil
}

// DefaultConfig returns a neutral configuration.
func DefaultConfig() *Config {
	return &Config{
		Input:   InputConfig{DefaultDir: ""},
		Output:  OutputConfig{DefaultDir: ""},
		Convert: ConvertConfig{Tag: "", Highlight: false},
		Math:    MathConfig{Format: "", DPI: 0, FontSize: 0},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard locations.
// Returns error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	var configPath string
	var err error

	if isFilePath(nameOrPath) {
		configPath = nameOrPath
	} else {
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	if err := yamlutil.UnmarshalStrict(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// isFilePath returns true if the string looks like a file path.
func isFilePath(s string) bool {
	return strings.ContainsAny(s, "/\\")
}

// resolveConfigPath searches for a config file by name in standard locations.
// Tries extensions in order: .yaml, .yml
// Tries locations in order: current directory, ~/.config/md2wiki/
func resolveConfigPath(name string) (string, error) {
	extensions := []string{".yaml", ".yml"}
	triedPaths := make([]string, 0, len(extensions)*2) // 2 locations

	for _, ext := range extensions {
		localPath := name + ext
		if fileExists(localPath) {
			return localPath, nil
		}
		triedPaths = append(triedPaths, localPath)
	}

	userConfigDir, err := os.UserConfigDir()
	if err == nil {
		for _, ext := range extensions {
			userPath := filepath.Join(userConfigDir, "md2wiki", name+ext)
			if fileExists(userPath) {
				return userPath, nil
			}
			triedPaths = append(triedPaths, userPath)
		}
	}

	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(triedPaths, ", "))
}

// fileExists returns true if the path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}
