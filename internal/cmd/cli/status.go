package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rzbill/sift/internal/checkpoint"
)

// NewStatusCommand inspects a checkpoint location and reports whether the
// last processing cycle committed cleanly.
func NewStatusCommand(logger *zap.Logger) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report checkpoint state for a location",
		RunE: func(cmd *cobra.Command, args []string) error {
			rt, cfg, err := openRuntime(cmd, logger)
			if err != nil {
				return err
			}
			defer rt.Close()
			if cfg.Checkpoint == "" {
				return errors.New("a checkpoint location is required (--checkpoint or config)")
			}
			cp, err := rt.Checkpoint()
			if err != nil {
				return err
			}

			printLatest := func(name string, id checkpoint.BatchID, ok bool) {
				if ok {
					fmt.Printf("%s: cycle %d\n", name, id)
				} else {
					fmt.Printf("%s: empty\n", name)
				}
			}
			oid, ook, err := cp.Offsets().LatestBatchID()
			if err != nil {
				return err
			}
			cid, cok, err := cp.Commits().LatestBatchID()
			if err != nil {
				return err
			}
			printLatest("offset log", oid, ook)
			printLatest("commit log", cid, cok)

			cycle, err := checkpoint.DetectUncommittedCycle(cp.Offsets(), cp.Commits())
			if err != nil {
				return err
			}
			if cycle == nil {
				fmt.Println("state: clean")
				return nil
			}
			fmt.Printf("state: uncommitted cycle %d (source %q)\n", cycle.Batch, cycle.Offsets.Source)
			for p, off := range cycle.Offsets.Offsets {
				fmt.Printf("  partition %d: offset %d\n", p, off)
			}
			return nil
		},
	}
	AddCommonFlags(cmd)
	return cmd
}
