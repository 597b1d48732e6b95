package config

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/tendant/content-attrs/pkg/attrmodel"
	"github.com/tendant/content-attrs/pkg/content"
	"golang.org/x/exp/maps"
)

// Option applies configuration to a Config instance.
type Option func(*Config) error

// Load constructs a Config by applying the supplied options on top of library defaults.
func Load(opts ...Option) (*Config, error) {
	cfg := defaults()

	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(&cfg); err != nil {
			return nil, err
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func defaults() Config {
	return Config{
		LogLevel: "info",
	}
}

// Config represents the schema definitions and logging settings. The HTTP
// listener is configured by the server application itself.
type Config struct {
	LogLevel   string
	SchemaFile string

	Models []ModelConfig
}

// File is the on-disk layout of a schema file. YAML, TOML and JSON are
// accepted, chosen by file extension.
type File struct {
	Models []ModelConfig `yaml:"models" json:"models" toml:"models"`
}

// ModelConfig declares one model schema.
type ModelConfig struct {
	Name string `yaml:"name" json:"name" toml:"name"`

	// Record makes the model wrap a content record. Type is the document
	// type forced onto it.
	Record bool   `yaml:"record" json:"record" toml:"record"`
	Type   string `yaml:"type" json:"type" toml:"type"`

	Fillable []string `yaml:"fillable" json:"fillable" toml:"fillable"`
	Guarded  []string `yaml:"guarded" json:"guarded" toml:"guarded"`
	Hidden   []string `yaml:"hidden" json:"hidden" toml:"hidden"`
	Visible  []string `yaml:"visible" json:"visible" toml:"visible"`

	// Fields maps attribute names onto content fields, on top of
	// content.DefaultFields. An empty field removes a default mapping.
	Fields map[string]string `yaml:"fields" json:"fields" toml:"fields"`

	// Computed maps attribute names onto templates, e.g.
	// `example.com/{{.Attr "title"}}`.
	Computed map[string]string `yaml:"computed" json:"computed" toml:"computed"`
}

type serverEnv struct {
	LogLevel   string `env:"LOG_LEVEL"`
	SchemaFile string `env:"SCHEMA_FILE"`
}

// WithEnv applies environment variable overrides:
//
//	LOG_LEVEL   - debug, info, warn or error (default: "info")
//	SCHEMA_FILE - schema file to load when no models were given otherwise
func WithEnv() Option {
	return func(c *Config) error {
		var env serverEnv
		if err := cleanenv.ReadEnv(&env); err != nil {
			return fmt.Errorf("failed to read environment: %w", err)
		}
		if env.LogLevel != "" {
			c.LogLevel = env.LogLevel
		}
		if env.SchemaFile != "" && len(c.Models) == 0 {
			return WithFile(env.SchemaFile)(c)
		}
		return nil
	}
}

// WithFile appends the models declared in the schema file at path.
func WithFile(path string) Option {
	return func(c *Config) error {
		var file File
		if err := cleanenv.ReadConfig(path, &file); err != nil {
			return fmt.Errorf("failed to read schema file %s: %w", path, err)
		}
		c.SchemaFile = path
		c.Models = append(c.Models, file.Models...)
		return nil
	}
}

// WithModels appends model declarations.
func WithModels(models ...ModelConfig) Option {
	return func(c *Config) error {
		c.Models = append(c.Models, models...)
		return nil
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if _, err := c.Level(); err != nil {
		return err
	}

	seen := make(map[string]bool)
	for i, m := range c.Models {
		if m.Name == "" {
			return fmt.Errorf("model %d: name is required", i)
		}
		if seen[m.Name] {
			return fmt.Errorf("model %s: declared twice", m.Name)
		}
		seen[m.Name] = true

		if !m.Record && len(m.Fields) > 0 {
			return fmt.Errorf("model %s: fields require record: true", m.Name)
		}
	}

	return nil
}

// Level returns the configured slog level
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return level, fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	return level, nil
}

// BuildRegistry builds a schema registry from the declared models
func (c *Config) BuildRegistry() (*attrmodel.Registry, error) {
	registry, err := attrmodel.NewRegistry()
	if err != nil {
		return nil, err
	}

	for _, m := range c.Models {
		schema, err := m.Schema()
		if err != nil {
			return nil, err
		}
		if err := registry.Register(schema); err != nil {
			return nil, err
		}
	}

	return registry, nil
}

// Schema builds the attrmodel schema for the declaration
func (m ModelConfig) Schema() (*attrmodel.Schema, error) {
	var options []attrmodel.SchemaOption

	if m.Record {
		options = append(options, content.RecordOptions(m.Type, m.Fields)...)
	} else if m.Type != "" {
		options = append(options, attrmodel.WithRecordType(m.Type))
	}

	options = append(options,
		attrmodel.WithFillable(m.Fillable...),
		attrmodel.WithGuarded(m.Guarded...),
		attrmodel.WithHidden(m.Hidden...),
		attrmodel.WithVisible(m.Visible...),
	)

	names := maps.Keys(m.Computed)
	slices.Sort(names)
	for _, name := range names {
		fn, err := TemplateCompute(name, m.Computed[name])
		if err != nil {
			return nil, fmt.Errorf("model %s: %w", m.Name, err)
		}
		options = append(options, attrmodel.Compute(name, fn))
	}

	return attrmodel.NewSchema(m.Name, options...)
}
