// Copyright 2017-2018 Denis Bernard <db047h@gmail.com>
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package config loads the nexusdump configuration from a TOML or YAML file.
//
package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is a configuration file format.
//
type Format int

// Supported formats.
//
const (
	FormatAuto Format = iota // detect from the file extension or content
	FormatTOML
	FormatYAML
)

func (f Format) String() string {
	switch f {
	case FormatTOML:
		return "toml"
	case FormatYAML:
		return "yaml"
	case FormatAuto:
		return "auto"
	}
	return "unknown"
}

// ErrInvalid is returned by Validate for out of range settings.
//
var ErrInvalid = errors.New("invalid configuration")

// Config holds the nexusdump settings.
//
type Config struct {
	Log    LogConfig    `toml:"log" yaml:"log"`
	Reader ReaderConfig `toml:"reader" yaml:"reader"`
	Output OutputConfig `toml:"output" yaml:"output"`
}

// LogConfig holds logging settings.
//
type LogConfig struct {
	Level  string `toml:"level" yaml:"level"`   // debug, info, warn or error
	Format string `toml:"format" yaml:"format"` // text or json
}

// ReaderConfig holds the settings passed to the NEXUS reader.
//
type ReaderConfig struct {
	ContinueOnError bool     `toml:"continue_on_error" yaml:"continue_on_error"`
	DisabledBlocks  []string `toml:"disabled_blocks" yaml:"disabled_blocks"`
}

// OutputConfig holds output settings.
//
type OutputConfig struct {
	Format string `toml:"format" yaml:"format"` // yaml or text
	Carets bool   `toml:"carets" yaml:"carets"` // print the source line under errors
}

// Default returns the default configuration.
//
func Default() *Config {
	return &Config{
		Log:    LogConfig{Level: "warn", Format: "text"},
		Output: OutputConfig{Format: "yaml", Carets: true},
	}
}

// Load reads the configuration file at path. The format is chosen from the
// file extension. Settings missing from the file keep their default value.
//
func Load(path string) (*Config, error) {
	path = os.ExpandEnv(path)
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	cfg, err := Parse(content, detectFormat(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// Parse parses content in the given format and validates the result.
//
func Parse(content []byte, format Format) (*Config, error) {
	if format == FormatAuto {
		format = sniff(content)
	}
	cfg := Default()
	switch format {
	case FormatTOML:
		if err := toml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("TOML parse error: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(content, cfg); err != nil {
			return nil, fmt.Errorf("YAML parse error: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported format: %s", format)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func detectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	case ".toml":
		return FormatTOML
	}
	return FormatAuto
}

// sniff guesses the format of content: TOML if it decodes as TOML, YAML
// otherwise.
//
func sniff(content []byte) Format {
	var v map[string]interface{}
	if _, err := toml.NewDecoder(bytes.NewReader(content)).Decode(&v); err == nil {
		return FormatTOML
	}
	return FormatYAML
}

// Validate checks that all settings are within range.
//
func (c *Config) Validate() error {
	if _, err := c.LogLevel(); err != nil {
		return err
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log format %q (want text or json)", ErrInvalid, c.Log.Format)
	}
	switch c.Output.Format {
	case "yaml", "text":
	default:
		return fmt.Errorf("%w: output format %q (want yaml or text)", ErrInvalid, c.Output.Format)
	}
	return nil
}

// LogLevel returns the slog level named by Log.Level.
//
func (c *Config) LogLevel() (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(c.Log.Level)); err != nil {
		return l, fmt.Errorf("%w: log level %q", ErrInvalid, c.Log.Level)
	}
	return l, nil
}

// IsDisabled reports whether the block id is listed in Reader.DisabledBlocks.
// Comparison ignores case.
//
func (c *Config) IsDisabled(id string) bool {
	for _, b := range c.Reader.DisabledBlocks {
		if strings.EqualFold(b, id) {
			return true
		}
	}
	return false
}
