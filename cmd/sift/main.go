package main

import (
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rzbill/sift/internal/cmd/cli"
	cfgpkg "github.com/rzbill/sift/internal/config"
)

func main() {
	logCfg := cfgpkg.LogConfig{
		Level:  os.Getenv("SIFT_LOG_LEVEL"),
		Format: os.Getenv("SIFT_LOG_FORMAT"),
	}
	logger, err := cli.BuildLogger(logCfg)
	if err != nil {
		logger = zap.NewNop()
	}
	defer logger.Sync()

	rootCmd := &cobra.Command{
		Use:   "sift",
		Short: "Sift reconciliation CLI",
		Long:  "Sift filters already-published records out of a pipeline's candidate batches after an interrupted cycle.",
	}

	rootCmd.AddCommand(cli.NewStatusCommand(logger))
	rootCmd.AddCommand(cli.NewReconcileCommand(logger))
	rootCmd.AddCommand(cli.NewTopicCommand(logger))
	rootCmd.AddCommand(cli.NewCheckpointCommand(logger))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
