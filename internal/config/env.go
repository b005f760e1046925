package config

import (
	"os"
	"strconv"
)

// FromEnv overlays SIFT_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("SIFT_CHECKPOINT"); v != "" {
		cfg.Checkpoint = v
	}
	if v := os.Getenv("SIFT_SOURCE_TOPIC"); v != "" {
		cfg.SourceTopic = v
	}
	if v := os.Getenv("SIFT_SINK_TOPIC"); v != "" {
		cfg.SinkTopic = v
	}
	if v := os.Getenv("SIFT_IDENTITY_FIELD"); v != "" {
		cfg.IdentityField = v
	}
	if v := os.Getenv("SIFT_POLL_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PollTimeoutMs = n
		}
	}
	if v := os.Getenv("SIFT_MAX_POLL_RECORDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.MaxPollRecords = n
		}
	}
	if v := os.Getenv("SIFT_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("SIFT_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
}
