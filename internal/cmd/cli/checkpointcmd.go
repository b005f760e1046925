package cli

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rzbill/sift/internal/checkpoint"
)

// NewCheckpointCommand writes checkpoint entries, the way the host
// pipeline does around each processing cycle.
func NewCheckpointCommand(logger *zap.Logger) *cobra.Command {
	cpCmd := &cobra.Command{Use: "checkpoint", Short: "Checkpoint log operations"}

	offsetsCmd := &cobra.Command{
		Use:   "offsets <cycle-id>",
		Short: "Record a cycle's source read positions before it runs",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid cycle id: %w", err)
			}
			entry, _ := cmd.Flags().GetString("entry")
			var groups []checkpoint.SourceOffsets
			if err := json.Unmarshal([]byte(entry), &groups); err != nil {
				return fmt.Errorf("parse --entry: %w", err)
			}
			rt, _, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()
			cp, err := rt.Checkpoint()
			if err != nil {
				return err
			}
			if err := cp.WriteOffsets(checkpoint.BatchID(id), groups); err != nil {
				return err
			}
			fmt.Printf("offsets recorded for cycle %d\n", id)
			return nil
		},
	}
	offsetsCmd.Flags().String("entry", "", `Offsets entry JSON, e.g. [{"source":"orders","offsets":{"0":100}}]`)
	AddCommonFlags(offsetsCmd)
	cpCmd.AddCommand(offsetsCmd)

	commitCmd := &cobra.Command{
		Use:   "commit <cycle-id>",
		Short: "Record that a cycle's output was durably published",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil {
				return fmt.Errorf("invalid cycle id: %w", err)
			}
			rt, _, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()
			cp, err := rt.Checkpoint()
			if err != nil {
				return err
			}
			if err := cp.WriteCommit(checkpoint.BatchID(id)); err != nil {
				return err
			}
			fmt.Printf("commit recorded for cycle %d\n", id)
			return nil
		},
	}
	AddCommonFlags(commitCmd)
	cpCmd.AddCommand(commitCmd)

	return cpCmd
}
