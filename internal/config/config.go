package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Paths   PathsConfig   `toml:"paths"`
	ItemDB  ItemDBConfig  `toml:"itemdb"`
	Output  OutputConfig  `toml:"output"`
	Logging LoggingConfig `toml:"logging"`
}

type PathsConfig struct {
	UserDir string `toml:"user_dir"` // client USER folder holding one directory per character
}

// ItemDB sources.
const (
	SourceSQLite   = "sqlite"
	SourcePostgres = "postgres"
	SourceYAML     = "yaml"
	SourceNone     = "none"
)

type ItemDBConfig struct {
	Source   string `toml:"source"` // "sqlite", "postgres", "yaml" or "none"
	Path     string `toml:"path"`   // sqlite or yaml file
	DSN      string `toml:"dsn"`
	Language string `toml:"language"` // "ja" or "en"
}

type OutputConfig struct {
	ShowEmpty bool   `toml:"show_empty"`
	Color     string `toml:"color"` // "auto", "always" or "never"
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := Defaults()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Defaults returns the configuration used when no config file exists.
func Defaults() *Config {
	return &Config{
		ItemDB: ItemDBConfig{
			Source:   SourceSQLite,
			Path:     "data/items.db",
			Language: "ja",
		},
		Output: OutputConfig{
			Color: "auto",
		},
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "console",
		},
	}
}
