// Package config loads javagen's YAML configuration: named database
// connections and generation defaults.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/syssam/javagen/dialect"
	"github.com/syssam/javagen/gen"
)

// Connection is one named database endpoint.
type Connection struct {
	Dialect string `yaml:"dialect"`
	DSN     string `yaml:"dsn"`
}

// Generation holds the default generation options applied when a request
// leaves them unset.
type Generation struct {
	Variant         string `yaml:"variant"`
	Package         string `yaml:"package"`
	Author          string `yaml:"author"`
	UseLombok       bool   `yaml:"lombok"`
	UseSwagger      bool   `yaml:"swagger"`
	GenerateDTO     bool   `yaml:"dto"`
	GenerateVO      bool   `yaml:"vo"`
	GenerateMappers bool   `yaml:"mappers"`
}

// Config is the root configuration document.
type Config struct {
	Connections map[string]Connection `yaml:"connections"`
	Generation  Generation            `yaml:"generation"`
}

// Default returns the configuration used when no file is present.
func Default() *Config {
	return &Config{
		Connections: make(map[string]Connection),
		Generation: Generation{
			Variant: string(gen.VariantDefault),
			Package: "com.example.app",
		},
	}
}

// Load reads and validates a configuration file.
func Load(path string) (*Config, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("javagen: reading config %s: %w", path, err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("javagen: parsing config %s: %w", path, err)
	}
	if err := cfg.validate(); err != nil {
		return nil, fmt.Errorf("javagen: config %s: %w", path, err)
	}
	return cfg, nil
}

func (c *Config) validate() error {
	for name, conn := range c.Connections {
		switch conn.Dialect {
		case dialect.MySQL, dialect.Postgres, dialect.SQLite:
		default:
			return fmt.Errorf("connection %q: unknown dialect %q", name, conn.Dialect)
		}
		if conn.DSN == "" {
			return fmt.Errorf("connection %q: missing dsn", name)
		}
	}
	if c.Generation.Variant != "" {
		if _, err := gen.ParseVariant(c.Generation.Variant); err != nil {
			return err
		}
	}
	return nil
}

// Options converts the generation defaults to generator options.
func (g Generation) Options() gen.Options {
	return gen.Options{
		Package:         g.Package,
		Author:          g.Author,
		UseLombok:       g.UseLombok,
		UseSwagger:      g.UseSwagger,
		GenerateDTO:     g.GenerateDTO,
		GenerateVO:      g.GenerateVO,
		GenerateMappers: g.GenerateMappers,
	}
}
