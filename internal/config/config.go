// Package config loads application settings from defaults, an optional YAML
// file and STORYPATH_* environment variables, in that order of precedence.
package config

import (
	"encoding/base64"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the config file looked up in the working directory.
const DefaultFile = "storypath.yaml"

// Config is the full application configuration.
type Config struct {
	StoryFile string `yaml:"story_file" env:"STORYPATH_STORY_FILE"`
	LogLevel  string `yaml:"log_level" env:"STORYPATH_LOG_LEVEL"`

	Search   Search   `yaml:"search"`
	Playback Playback `yaml:"playback"`
	Reports  Reports  `yaml:"reports"`
	Server   Server   `yaml:"server"`
}

// Search tunes the search engine.
type Search struct {
	ProgressInterval int `yaml:"progress_interval" env:"STORYPATH_PROGRESS_INTERVAL"`
	TopN             int `yaml:"top_n" env:"STORYPATH_TOP_N"`
}

// Playback tunes scene-by-scene playback.
type Playback struct {
	Enabled      bool          `yaml:"enabled" env:"STORYPATH_PLAYBACK_ENABLED"`
	Delay        time.Duration `yaml:"delay" env:"STORYPATH_PLAYBACK_DELAY"`
	InitialDelay time.Duration `yaml:"initial_delay" env:"STORYPATH_PLAYBACK_INITIAL_DELAY"`
	WrapWidth    int           `yaml:"wrap_width" env:"STORYPATH_PLAYBACK_WRAP_WIDTH"`
}

// Reports selects the report store backend.
type Reports struct {
	Backend       string        `yaml:"backend" env:"STORYPATH_REPORTS_BACKEND"`
	Dir           string        `yaml:"dir" env:"STORYPATH_REPORTS_DIR"`
	RedisAddr     string        `yaml:"redis_addr" env:"STORYPATH_REDIS_ADDR"`
	RedisPassword string        `yaml:"redis_password" env:"STORYPATH_REDIS_PASSWORD"`
	RedisDB       int           `yaml:"redis_db" env:"STORYPATH_REDIS_DB"`
	TTL           time.Duration `yaml:"ttl" env:"STORYPATH_REPORTS_TTL"`

	// EncryptionKey is a base64 AES-256 key. When set, reports are sealed at rest.
	EncryptionKey string `yaml:"encryption_key" env:"STORYPATH_REPORTS_KEY"`
	// FallbackKeys are older base64 keys still accepted for decryption.
	FallbackKeys []string `yaml:"fallback_keys" env:"STORYPATH_REPORTS_FALLBACK_KEYS" envSeparator:","`
}

// Keys decodes the encryption keys. active is nil when encryption is off.
func (r Reports) Keys() (active []byte, fallback [][]byte, err error) {
	if r.EncryptionKey == "" {
		return nil, nil, nil
	}
	if active, err = decodeKey(r.EncryptionKey); err != nil {
		return nil, nil, fmt.Errorf("reports encryption_key: %w", err)
	}
	for i, k := range r.FallbackKeys {
		key, err := decodeKey(k)
		if err != nil {
			return nil, nil, fmt.Errorf("reports fallback_keys[%d]: %w", i, err)
		}
		fallback = append(fallback, key)
	}
	return active, fallback, nil
}

func decodeKey(s string) ([]byte, error) {
	key, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("invalid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("key must be 32 bytes, got %d", len(key))
	}
	return key, nil
}

// Server configures the HTTP API.
type Server struct {
	Addr string `yaml:"addr" env:"STORYPATH_SERVER_ADDR"`
}

// Backends accepted by Reports.Backend.
const (
	BackendFile   = "file"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		StoryFile: "story.json",
		LogLevel:  "info",
		Search: Search{
			ProgressInterval: 10,
			TopN:             5,
		},
		Playback: Playback{
			Enabled:      true,
			Delay:        1500 * time.Millisecond,
			InitialDelay: 3 * time.Second,
			WrapWidth:    60,
		},
		Reports: Reports{
			Backend:   BackendFile,
			Dir:       ".storypath/reports",
			RedisAddr: "localhost:6379",
		},
		Server: Server{Addr: ":8080"},
	}
}

// Load builds the configuration. path may be empty, in which case DefaultFile
// is used if it exists. An explicitly named file that does not exist is an error.
func Load(path string) (Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultFile
	}

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist) && !explicit:
	default:
		return cfg, fmt.Errorf("read config: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks values that cannot be expressed by types alone.
func (c Config) Validate() error {
	switch c.Reports.Backend {
	case BackendFile, BackendRedis, BackendMemory:
	default:
		return fmt.Errorf("unknown reports backend %q", c.Reports.Backend)
	}
	if c.Playback.WrapWidth <= 0 {
		return fmt.Errorf("playback wrap_width must be positive, got %d", c.Playback.WrapWidth)
	}
	if c.Playback.Delay < 0 || c.Playback.InitialDelay < 0 {
		return fmt.Errorf("playback delays cannot be negative")
	}
	if _, _, err := c.Reports.Keys(); err != nil {
		return err
	}
	return nil
}
