package app

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/abhisek/studyloop/internal/embed"
	"github.com/abhisek/studyloop/internal/llm"
)

// Config is the full application configuration: a YAML file overlaid
// with STUDYLOOP_* environment variables, env winning.
type Config struct {
	// Addr is the HTTP listen address. Default: ":8080".
	Addr string `yaml:"addr"`

	// DBPath is the SQLite database location. Empty means the default
	// resolution (STUDYLOOP_DB, then the XDG data directory).
	DBPath string `yaml:"db_path"`

	// Debug enables debug logging and gin debug mode.
	Debug bool `yaml:"debug"`

	LLM   llm.Config   `yaml:"llm"`
	Embed embed.Config `yaml:"embed"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Addr:  ":8080",
		LLM:   llm.DefaultConfig(),
		Embed: embed.DefaultConfig(),
	}
}

// LoadConfig builds the effective configuration: defaults, then the
// YAML file at path (skipped when path is empty or the file does not
// exist), then environment variables.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil && !os.IsNotExist(err) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return Config{}, fmt.Errorf("parse config file %s: %w", path, err)
			}
		}
	}

	return cfg.fromEnv(), nil
}

func (c Config) fromEnv() Config {
	if a := os.Getenv("STUDYLOOP_ADDR"); a != "" {
		c.Addr = a
	}
	if p := os.Getenv("STUDYLOOP_DB"); p != "" {
		c.DBPath = p
	}
	if os.Getenv("STUDYLOOP_DEBUG") == "1" {
		c.Debug = true
	}
	c.LLM = c.LLM.FromEnv()
	c.Embed = c.Embed.FromEnv()
	return c
}
