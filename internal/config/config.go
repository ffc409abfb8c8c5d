// Package config loads the interpreter's user settings from YAML.
//
//	prompt: "mua> "
//	continuation_prompt: "...  "
//	history_file: ".mua_history"
//	color: true
//	max_depth: 10000
//	preload:
//	  - lib.mua
//
// Keys not listed above are rejected. Relative history_file paths are taken
// relative to the user's home directory; relative preload paths relative to
// the config file.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// FileName is the per-user config looked up in $HOME.
const FileName = ".mua.yaml"

// Config holds the driver settings.
type Config struct {
	Path string `yaml:"-"`

	Prompt             string   `yaml:"prompt"`
	ContinuationPrompt string   `yaml:"continuation_prompt"`
	HistoryFile        string   `yaml:"history_file"`
	Color              bool     `yaml:"color"`
	MaxDepth           int      `yaml:"max_depth"`
	Preload            []string `yaml:"preload"`
}

// Default returns the settings used when no config file exists.
func Default() *Config {
	return &Config{
		Prompt:             "mua> ",
		ContinuationPrompt: "...  ",
		HistoryFile:        ".mua_history",
		Color:              true,
		MaxDepth:           10000,
	}
}

// Load reads path over the defaults; keys missing from the file keep their
// default values.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, fmt.Errorf("config: empty path")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("config: resolve %s: %w", path, err)
	}
	file, err := os.Open(abs)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	cfg := Default()
	decoder := yaml.NewDecoder(file)
	decoder.KnownFields(true)
	if err := decoder.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("config: parse %s: %w", abs, err)
	}
	cfg.Path = abs
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: %s: %w", abs, err)
	}
	return cfg, nil
}

// Resolve picks the config to use: explicit when non-empty (it must exist),
// else $HOME/.mua.yaml when present, else the defaults.
func Resolve(explicit string) (*Config, error) {
	if explicit != "" {
		return Load(explicit)
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return Default(), nil
	}
	cfg, err := Load(filepath.Join(home, FileName))
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Validate checks value ranges.
func (c *Config) Validate() error {
	var problems []string
	if c.Prompt == "" {
		problems = append(problems, "prompt must not be empty")
	}
	if c.ContinuationPrompt == "" {
		problems = append(problems, "continuation_prompt must not be empty")
	}
	if c.MaxDepth <= 0 {
		problems = append(problems, fmt.Sprintf("max_depth must be positive, got %d", c.MaxDepth))
	}
	for i, p := range c.Preload {
		if strings.TrimSpace(p) == "" {
			problems = append(problems, fmt.Sprintf("preload[%d] is empty", i))
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

// HistoryPath resolves history_file; "" disables history.
func (c *Config) HistoryPath() string {
	if c.HistoryFile == "" || filepath.IsAbs(c.HistoryFile) {
		return c.HistoryFile
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, c.HistoryFile)
}

// PreloadPaths resolves preload entries against the config file's directory.
func (c *Config) PreloadPaths() []string {
	out := make([]string, 0, len(c.Preload))
	for _, p := range c.Preload {
		if !filepath.IsAbs(p) && c.Path != "" {
			p = filepath.Join(filepath.Dir(c.Path), p)
		}
		out = append(out, p)
	}
	return out
}
