// Package config loads malietl settings from a TOML file.
package config

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/BurntSushi/toml"
	"github.com/arloliu/malie/container"
	"github.com/arloliu/malie/editor"
	"github.com/arloliu/malie/errs"
	"github.com/arloliu/malie/format"
	"github.com/arloliu/malie/internal/logging"
	"github.com/arloliu/malie/segment"
)

// Config is the contents of a malietl.toml file.
type Config struct {
	Editor Editor `toml:"editor"`
	Dump   Dump   `toml:"dump"`
	Log    Log    `toml:"log"`
}

// Editor configures how containers are opened.
type Editor struct {
	Filter bool `toml:"filter"`
	// Classifier is an expression deciding label visibility in filter mode.
	// Empty selects the built-in rules.
	Classifier string `toml:"classifier"`
	// Strategies lists the locate strategies in the order they are tried.
	Strategies []string `toml:"strategies"`
}

// Dump configures project document output.
type Dump struct {
	Format      string `toml:"format"`
	Compression string `toml:"compression"`
}

// Log configures the CLI logger.
type Log struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// Default returns the settings used when no file is given.
func Default() *Config {
	return &Config{
		Editor: Editor{Strategies: []string{"trailing-length", "terminator-scan"}},
		Dump:   Dump{Format: "yaml", Compression: "none"},
		Log:    Log{Level: "info", Format: "text"},
	}
}

// Load reads path over the defaults. An empty path returns Default.
func Load(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return c, nil
}

// Parse decodes TOML data over the defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	c := Default()

	md, err := toml.Decode(string(data), c)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("%w: unknown key %s", errs.ErrInvalidConfig, undecoded[0])
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}

	return c, nil
}

// Validate checks every enumerated value.
func (c *Config) Validate() error {
	if _, err := c.Strategies(); err != nil {
		return err
	}
	if _, err := c.Classifier(); err != nil {
		return err
	}
	if _, err := format.ParseDumpFormat(c.Dump.Format); err != nil {
		return fmt.Errorf("%w: dump.format: %w", errs.ErrInvalidConfig, err)
	}
	if _, err := format.ParseCompression(c.Dump.Compression); err != nil {
		return fmt.Errorf("%w: dump.compression: %w", errs.ErrInvalidConfig, err)
	}
	if _, err := logging.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log.level: %w", errs.ErrInvalidConfig, err)
	}
	if _, err := logging.ParseFormat(c.Log.Format); err != nil {
		return fmt.Errorf("%w: log.format: %w", errs.ErrInvalidConfig, err)
	}

	return nil
}

// Strategies parses editor.strategies.
func (c *Config) Strategies() ([]format.LocateStrategy, error) {
	if len(c.Editor.Strategies) == 0 || len(c.Editor.Strategies) > container.MaxStrategies {
		return nil, fmt.Errorf("%w: editor.strategies: want 1 to %d entries, got %d",
			errs.ErrInvalidConfig, container.MaxStrategies, len(c.Editor.Strategies))
	}

	out := make([]format.LocateStrategy, len(c.Editor.Strategies))
	for i, name := range c.Editor.Strategies {
		s, err := format.ParseLocateStrategy(name)
		if err != nil {
			return nil, fmt.Errorf("%w: editor.strategies: %w", errs.ErrInvalidConfig, err)
		}
		out[i] = s
	}

	return out, nil
}

// Classifier compiles editor.classifier.
func (c *Config) Classifier() (segment.Classifier, error) {
	if c.Editor.Classifier == "" {
		return segment.DefaultClassifier{}, nil
	}

	classifier, err := segment.NewExprClassifier(c.Editor.Classifier)
	if err != nil {
		return nil, fmt.Errorf("%w: editor.classifier: %w", errs.ErrInvalidConfig, err)
	}

	return classifier, nil
}

// DumpFormat returns the parsed dump.format.
func (c *Config) DumpFormat() format.DumpFormat {
	f, _ := format.ParseDumpFormat(c.Dump.Format)
	return f
}

// Compression returns the parsed dump.compression.
func (c *Config) Compression() format.CompressionType {
	ct, _ := format.ParseCompression(c.Dump.Compression)
	return ct
}

// Logger builds the logger described by the [log] section, writing to w.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level, _ := logging.ParseLevel(c.Log.Level)
	f, _ := logging.ParseFormat(c.Log.Format)

	return logging.New(w, level, f)
}

// EditorOptions returns the editor options described by the [editor] section.
func (c *Config) EditorOptions(logger *slog.Logger) ([]editor.Option, error) {
	strategies, err := c.Strategies()
	if err != nil {
		return nil, err
	}
	classifier, err := c.Classifier()
	if err != nil {
		return nil, err
	}

	return []editor.Option{
		editor.WithLogger(logger),
		editor.WithClassifier(classifier),
		editor.WithFilter(c.Editor.Filter),
		editor.WithEngineOptions(container.WithStrategies(strategies...)),
	}, nil
}
