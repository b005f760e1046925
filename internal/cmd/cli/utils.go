package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	cfgpkg "github.com/rzbill/sift/internal/config"
	"github.com/rzbill/sift/internal/runtime"
	pebblestore "github.com/rzbill/sift/internal/storage/pebble"
)

// AddCommonFlags registers the flags shared by every subcommand that
// opens the data directory.
func AddCommonFlags(cmd *cobra.Command) {
	cmd.Flags().String("data-dir", "", "Data directory (defaults to an OS-specific location)")
	cmd.Flags().String("config", "", "Config file (JSON or YAML)")
	cmd.Flags().String("checkpoint", "", "Checkpoint location (overrides config)")
	cmd.Flags().String("source-topic", "", "Source topic (overrides config)")
	cmd.Flags().String("sink-topic", "", "Sink topic (overrides config)")
	cmd.Flags().String("identity-field", "", "Identity field name (overrides config)")
	cmd.Flags().Int("poll-timeout-ms", 0, "Poll timeout in ms (overrides config)")
	cmd.Flags().String("fsync", "always", "Fsync mode: always|interval|never")
}

// loadConfig resolves the effective configuration: file, then SIFT_* env,
// then explicit flags.
func loadConfig(cmd *cobra.Command) (cfgpkg.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := cfgpkg.Load(path)
	if err != nil {
		return cfgpkg.Config{}, err
	}
	cfgpkg.FromEnv(&cfg)
	if v, _ := cmd.Flags().GetString("checkpoint"); v != "" {
		cfg.Checkpoint = v
	}
	if v, _ := cmd.Flags().GetString("source-topic"); v != "" {
		cfg.SourceTopic = v
	}
	if v, _ := cmd.Flags().GetString("sink-topic"); v != "" {
		cfg.SinkTopic = v
	}
	if v, _ := cmd.Flags().GetString("identity-field"); v != "" {
		cfg.IdentityField = v
	}
	if v, _ := cmd.Flags().GetInt("poll-timeout-ms"); v > 0 {
		cfg.PollTimeoutMs = v
	}
	return cfg, nil
}

func openRuntime(cmd *cobra.Command, logger *zap.Logger) (*runtime.Runtime, cfgpkg.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, cfgpkg.Config{}, err
	}
	dataDir, _ := cmd.Flags().GetString("data-dir")
	if dataDir == "" {
		dataDir = cfgpkg.DefaultDataDir()
	}
	fsyncMode, _ := cmd.Flags().GetString("fsync")
	mode := pebblestore.FsyncModeAlways
	switch fsyncMode {
	case "always", "":
	case "interval":
		mode = pebblestore.FsyncModeInterval
	case "never":
		mode = pebblestore.FsyncModeNever
	default:
		return nil, cfgpkg.Config{}, fmt.Errorf("invalid --fsync; use always|interval|never")
	}
	rt, err := runtime.Open(runtime.Options{DataDir: dataDir, Fsync: mode, Config: cfg, Logger: logger})
	if err != nil {
		return nil, cfgpkg.Config{}, err
	}
	return rt, cfg, nil
}

// BuildLogger constructs the process logger from the log config.
func BuildLogger(cfg cfgpkg.LogConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	var zcfg zap.Config
	if cfg.Format == "json" {
		zcfg = zap.NewProductionConfig()
	} else {
		zcfg = zap.NewDevelopmentConfig()
	}
	zcfg.Level = zap.NewAtomicLevelAt(level)
	return zcfg.Build()
}
