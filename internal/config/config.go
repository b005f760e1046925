package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	// Checkpoint is the opaque location the offset and commit logs live
	// under. Exactly one pipeline instance should own it at a time.
	Checkpoint string `json:"checkpoint" yaml:"checkpoint"`

	SourceTopic string `json:"sourceTopic" yaml:"sourceTopic"`
	SinkTopic   string `json:"sinkTopic" yaml:"sinkTopic"`

	// IdentityField names the string field that identifies the same
	// logical record across source and sink.
	IdentityField string `json:"identityField" yaml:"identityField"`

	// PollTimeoutMs bounds each poll against the source or sink log.
	PollTimeoutMs int `json:"pollTimeoutMs" yaml:"pollTimeoutMs"`
	// MaxPollRecords caps how many records one poll returns.
	MaxPollRecords int `json:"maxPollRecords" yaml:"maxPollRecords"`

	Log LogConfig `json:"log" yaml:"log"`
}

// LogConfig controls process logging.
type LogConfig struct {
	Level  string `json:"level" yaml:"level"`   // debug|info|warn|error
	Format string `json:"format" yaml:"format"` // text|json
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		IdentityField:  "id",
		PollTimeoutMs:  5000,
		MaxPollRecords: 500,
		Log:            LogConfig{Level: "info", Format: "text"},
	}
}

// PollTimeout returns the poll bound as a duration.
func (c Config) PollTimeout() time.Duration {
	return time.Duration(c.PollTimeoutMs) * time.Millisecond
}

// Validate checks the fields reconciliation cannot run without.
func (c Config) Validate() error {
	if c.Checkpoint == "" {
		return errors.New("config: checkpoint location is required")
	}
	if c.SourceTopic == "" || c.SinkTopic == "" {
		return errors.New("config: sourceTopic and sinkTopic are required")
	}
	if c.IdentityField == "" {
		return errors.New("config: identityField is required")
	}
	if c.PollTimeoutMs <= 0 {
		return errors.New("config: pollTimeoutMs must be positive")
	}
	return nil
}

// Load reads configuration from a JSON or YAML file (by extension). If
// path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
		}
	}
	return cfg, nil
}
